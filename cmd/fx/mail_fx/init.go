package mail_fx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"

	"swasthsetu/internal/config"
	"swasthsetu/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log logrus.FieldLogger) services.MailService {
	if cfg.SMTPHost == "" {
		log.Warn("SMTP_HOST not set, outgoing mail is logged instead of sent")
		return services.NewLogMailService(log)
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort, // 587 for STARTTLS; 465 switches to implicit TLS
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   "SwasthSetu",
		UseSSL:     cfg.SMTPPort == 465,
		RequireTLS: !cfg.IsLocal(),

		AppName:    "SwasthSetu",
		AppBaseURL: cfg.AppBaseURL,
	})
}
