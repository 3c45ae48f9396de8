package components

import (
	"voucher-issuer/internal/infra/readstore"
	"voucher-issuer/internal/infra/repository"
	"voucher-issuer/internal/usecase/commands"
	"voucher-issuer/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewDiscountCodeRepository,
			fx.As(new(commands.DiscountCodeRepository)),
		),
		fx.Annotate(
			repository.NewWebhookEventRepository,
			fx.As(new(commands.WebhookEventRepository)),
		),
		// concrete type; the alert sink selects it when ALERT_SINK=outbox
		repository.NewNotificationRepository,
		// Read side
		fx.Annotate(
			readstore.NewDiscountCodeReadStore,
			fx.As(new(queries.DiscountCodeReadStore)),
		),
	),
)
