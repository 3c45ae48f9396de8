package components

import (
	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/pkg/clock"
	"voucher-issuer/internal/usecase/commands"
	"voucher-issuer/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	voucher.DefaultCatalog,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			commands.NewCodeResolver,
			fx.As(new(commands.CodeIssuer)),
		),
		commands.NewIssuanceCommands,
		commands.NewWebhookCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDiscountCodeQueries,
	),
)
