package chat_fx

import (
	"go.uber.org/fx"

	"swasthsetu/internal/services"
)

var Module = fx.Provide(services.NewChatService)
