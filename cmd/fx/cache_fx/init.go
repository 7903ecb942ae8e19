package cache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"swasthsetu/internal/auth"
	"swasthsetu/internal/config"
	"swasthsetu/internal/infra"
	"swasthsetu/internal/realtime"
	mem "swasthsetu/pkg/memcache"
)

// Module provides the session store and alert broadcaster, backed by Redis
// when REDIS_ADDR is set and by process memory otherwise.
var Module = fx.Provide(provideRedis, provideSessionStore, provideBroadcaster)

func provideRedis(lc fx.Lifecycle, cfg *config.Config, log logrus.FieldLogger) (*redis.Client, error) {
	client, err := infra.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Warn("REDIS_ADDR not set, sessions and alert fan-out stay in process")
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func provideSessionStore(client *redis.Client, tokens mem.TokenStore) auth.SessionStore {
	if client == nil {
		return auth.NewMemorySessionStore(tokens)
	}
	return auth.NewRedisSessionStore(client)
}

func provideBroadcaster(client *redis.Client, log logrus.FieldLogger) realtime.Broadcaster {
	if client == nil {
		return realtime.NewMemoryHub()
	}
	return realtime.NewRedisHub(client, log)
}
