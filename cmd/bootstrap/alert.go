package bootstrap

import (
	"context"
	"log/slog"

	"voucher-issuer/internal/infra/alert"
	"voucher-issuer/internal/infra/repository"
	"voucher-issuer/internal/pkg/clock"
	"voucher-issuer/internal/pkg/config"
	"voucher-issuer/internal/pkg/errs"
	"voucher-issuer/internal/usecase/commands"

	"go.uber.org/fx"
)

var AlertModule = fx.Module("alert",
	fx.Provide(
		NewAlerter,
	),
)

// NewAlerter picks the sink named by ALERT_SINK.
func NewAlerter(
	lc fx.Lifecycle,
	cfg config.Config,
	jobs *repository.NotificationRepository,
	clk clock.Clock,
	logger *slog.Logger,
) (commands.IssuanceAlerter, error) {
	switch cfg.Alert.Sink {
	case config.AlertSinkOutbox:
		return alert.NewOutboxAlerter(jobs, clk, logger), nil
	case config.AlertSinkKafka:
		producer, err := alert.NewKafkaProducer(cfg.Alert)
		if err != nil {
			return nil, err
		}
		a := alert.NewKafkaAlerter(producer, cfg.Alert.KafkaTopic, clk, logger)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return a.Close()
			},
		})
		return a, nil
	case config.AlertSinkLog:
		return alert.NewLogAlerter(logger), nil
	default:
		return nil, errs.Newf("unknown ALERT_SINK %q", cfg.Alert.Sink)
	}
}
