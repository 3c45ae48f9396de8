package bootstrap

import (
	"context"

	"voucher-issuer/internal/infra/db"
	"voucher-issuer/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		NewDBTX,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// NewDBTX exposes the pool to repositories; every statement runs in its own implicit transaction.
func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
