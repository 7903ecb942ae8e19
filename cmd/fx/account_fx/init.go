package account_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"swasthsetu/internal/auth"
	"swasthsetu/internal/config"
	"swasthsetu/internal/repositories"
	"swasthsetu/internal/services"
	mem "swasthsetu/pkg/memcache"
)

var Module = fx.Provide(
	provideUserRepo, provideAuthProvider, provideAccountService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAuthProvider(cfg *config.Config, sessions auth.SessionStore, log logrus.FieldLogger) auth.Provider {
	return auth.NewProvider(auth.NewTokenIssuer(cfg.JWTSecret), sessions, cfg.TokenTTL, log)
}

func provideAccountService(
	userRepo repositories.UserRepository,
	provider auth.Provider,
	mailService services.MailService,
	tokens mem.TokenStore,
	log logrus.FieldLogger,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, provider, mailService, tokens, log)
}
