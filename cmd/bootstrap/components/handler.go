package components

import (
	"voucher-issuer/internal/handler"
	"voucher-issuer/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWebhookHandler,
		api.NewDiscountCodeHandler,
	),
	fx.Invoke(handler.NewRouter),
)
