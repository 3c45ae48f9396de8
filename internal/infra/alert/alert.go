package alert

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/pkg/clock"
	"voucher-issuer/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	JobKind  = "ops"
	JobTopic = "voucher_issuance_failed"
)

// Payload is what operators receive for a variant that needs manual issuance.
type Payload struct {
	OrderID      string    `json:"orderId"`
	SuffixLabel  string    `json:"suffixLabel"`
	Status       string    `json:"status"`
	Attempts     int       `json:"attempts"`
	AttemptIndex int       `json:"attemptIndex"`
	Error        string    `json:"error,omitempty"`
	RaisedAt     time.Time `json:"raisedAt"`
}

func NewPayload(orderID string, outcome voucher.Outcome, now time.Time) Payload {
	p := Payload{
		OrderID:      orderID,
		SuffixLabel:  outcome.Variant.SuffixLabel,
		Status:       string(outcome.Status),
		Attempts:     outcome.Attempts,
		AttemptIndex: outcome.AttemptIndex,
		RaisedAt:     now,
	}
	if outcome.Cause != nil {
		p.Error = outcome.Cause.Error()
	}
	return p
}

type NotificationJobCreator interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) (uuid.UUID, error)
}

// OutboxAlerter queues the alert in notification_jobs for the operations notifier.
type OutboxAlerter struct {
	jobs   NotificationJobCreator
	clock  clock.Clock
	logger *slog.Logger
}

func NewOutboxAlerter(jobs NotificationJobCreator, clock clock.Clock, logger *slog.Logger) *OutboxAlerter {
	return &OutboxAlerter{
		jobs:   jobs,
		clock:  clock,
		logger: logger,
	}
}

func (a *OutboxAlerter) IssuanceFailed(ctx context.Context, orderID string, outcome voucher.Outcome) error {
	now := a.clock.Now()
	body, err := json.Marshal(NewPayload(orderID, outcome, now))
	if err != nil {
		return errs.Wrap(err, "failed to encode alert payload")
	}

	jobID, err := a.jobs.CreateJob(ctx, JobKind, JobTopic, body, now)
	if err != nil {
		return errs.Wrap(err, "failed to queue issuance alert")
	}

	a.logger.Warn("issuance alert queued",
		"order_id", orderID,
		"suffix_label", outcome.Variant.SuffixLabel,
		"status", string(outcome.Status),
		"job_id", jobID.String())
	return nil
}

// LogAlerter only logs; used in tests and local runs.
type LogAlerter struct {
	logger *slog.Logger
}

func NewLogAlerter(logger *slog.Logger) *LogAlerter {
	return &LogAlerter{logger: logger}
}

func (a *LogAlerter) IssuanceFailed(_ context.Context, orderID string, outcome voucher.Outcome) error {
	attrs := []any{
		"order_id", orderID,
		"suffix_label", outcome.Variant.SuffixLabel,
		"status", string(outcome.Status),
		"attempts", outcome.Attempts,
	}
	if outcome.Cause != nil {
		attrs = append(attrs, "error", outcome.Cause.Error())
	}
	a.logger.Error("discount code requires manual issuance", attrs...)
	return nil
}
