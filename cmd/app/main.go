package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"swasthsetu/cmd/fx/account_fx"
	"swasthsetu/cmd/fx/alert_fx"
	"swasthsetu/cmd/fx/cache_fx"
	"swasthsetu/cmd/fx/chat_fx"
	"swasthsetu/cmd/fx/clinic_fx"
	"swasthsetu/cmd/fx/config_fx"
	"swasthsetu/cmd/fx/controllers_fx"
	"swasthsetu/cmd/fx/db_fx"
	"swasthsetu/cmd/fx/events_fx"
	"swasthsetu/cmd/fx/health_fx"
	"swasthsetu/cmd/fx/mail_fx"
	"swasthsetu/cmd/fx/memcache_fx"
	"swasthsetu/cmd/fx/profile_fx"
	"swasthsetu/cmd/fx/storage_fx"
	"swasthsetu/cmd/fx/symptom_fx"
	"swasthsetu/internal/api"
	"swasthsetu/internal/auth"
	"swasthsetu/internal/config"
	"swasthsetu/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		cache_fx.Module,
		storage_fx.Module,
		events_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		profile_fx.Module,
		health_fx.Module,
		alert_fx.Module,
		symptom_fx.Module,
		clinic_fx.Module,
		chat_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log logrus.FieldLogger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.WithField("addr", srv.Addr).Info("Starting HTTP server")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.WithError(err).Fatal("HTTP server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg *config.Config, log logrus.FieldLogger, provider auth.Provider, ctl api.Controllers) *gin.Engine {
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOriginList()))

	api.RegisterRoutes(r, provider, ctl)

	return r
}
