package commands

import (
	"context"
	"time"

	"voucher-issuer/internal/domain/voucher"

	"github.com/google/uuid"
)

// DiscountCodeRepository performs a single unique-constraint-enforced insert.
// A taken code text must be reported as infra.KindDuplicateKey; a second code for
// the same order and suffix label as infra.KindConflict.
type DiscountCodeRepository interface {
	Insert(ctx context.Context, code *voucher.DiscountCode) (uuid.UUID, error)
}

type WebhookEventRepository interface {
	// TryClaim reports false when the (provider, event id) pair was already recorded,
	// unless the row is still "processing" and was last touched more than lease ago.
	TryClaim(ctx context.Context, key WebhookEventKey, orderID, requestHash string, lease time.Duration) (bool, error)
	Get(ctx context.Context, key WebhookEventKey) (*WebhookEventRecord, error)
	Complete(ctx context.Context, key WebhookEventKey, status string, summary []byte) error
}

type IssuanceAlerter interface {
	IssuanceFailed(ctx context.Context, orderID string, outcome voucher.Outcome) error
}

type WebhookEventKey struct {
	Provider string
	EventID  string
}

const (
	WebhookEventProcessing = "processing"
	WebhookEventCompleted  = "completed"
	WebhookEventRejected   = "rejected"
)

// Write-side snapshot of a ledger row
type WebhookEventRecord struct {
	Provider    string
	EventID     string
	OrderID     string
	RequestHash string
	Status      string
	Summary     []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}
