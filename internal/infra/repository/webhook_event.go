package repository

import (
	"context"
	"time"

	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/infra/db"
	"voucher-issuer/internal/pkg/pgconv"
	"voucher-issuer/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// a stale "processing" row is taken over; the conflicting row is locked,
	// so only one of several concurrent redeliveries gets RowsAffected == 1
	tryClaimWebhookEventSQL = `
INSERT INTO payment_webhook_events (provider, event_id, order_id, request_hash, status)
VALUES ($1, $2, $3, $4, 'processing')
ON CONFLICT (provider, event_id) DO UPDATE
SET request_hash = EXCLUDED.request_hash, updated_at = now()
WHERE payment_webhook_events.status = 'processing'
  AND payment_webhook_events.updated_at < now() - make_interval(secs => $5)`

	getWebhookEventSQL = `
SELECT provider, event_id, order_id, request_hash, status, summary, created_at, updated_at, completed_at
FROM payment_webhook_events
WHERE provider = $1 AND event_id = $2`

	completeWebhookEventSQL = `
UPDATE payment_webhook_events
SET status = $3, summary = $4, completed_at = $5, updated_at = $5
WHERE provider = $1 AND event_id = $2`
)

type WebhookEventRepository struct {
	db db.DBTX
}

func NewWebhookEventRepository(dbtx db.DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{
		db: dbtx,
	}
}

func (r *WebhookEventRepository) TryClaim(ctx context.Context, key commands.WebhookEventKey, orderID, requestHash string, lease time.Duration) (bool, error) {
	tag, err := r.db.Exec(ctx, tryClaimWebhookEventSQL, key.Provider, key.EventID, orderID, requestHash, lease.Seconds())
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert webhook event", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *WebhookEventRepository) Get(ctx context.Context, key commands.WebhookEventKey) (*commands.WebhookEventRecord, error) {
	var (
		rec         commands.WebhookEventRecord
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getWebhookEventSQL, key.Provider, key.EventID).Scan(
		&rec.Provider,
		&rec.EventID,
		&rec.OrderID,
		&rec.RequestHash,
		&rec.Status,
		&rec.Summary,
		&createdAt,
		&updatedAt,
		&completedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("webhook event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get webhook event", err)
	}

	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time
	rec.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	return &rec, nil
}

func (r *WebhookEventRepository) Complete(ctx context.Context, key commands.WebhookEventKey, status string, summary []byte) error {
	tag, err := r.db.Exec(ctx, completeWebhookEventSQL, key.Provider, key.EventID, status, summary, time.Now().UTC())
	if err != nil {
		return infra.WrapRepoErr("failed to complete webhook event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("webhook event not found", nil, infra.KindNotFound)
	}
	return nil
}
