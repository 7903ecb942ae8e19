package memcache_fx

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	mem "swasthsetu/pkg/memcache"
)

const sweepInterval = 5 * time.Minute

var Module = fx.Provide(provideTokenStore)

func provideTokenStore(lc fx.Lifecycle, log logrus.FieldLogger) mem.TokenStore {
	tokens := mem.NewTokens()
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := tokens.Sweep(); n > 0 {
							log.WithField("removed", n).Debug("swept expired tokens")
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return tokens
}
