package repository

import (
	"context"
	"time"

	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/infra/db"
	"voucher-issuer/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'queued')
RETURNING id`

// NotificationRepository is the outbox drained by the operations notifier.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{
		db: dbtx,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createNotificationJobSQL, kind, topic, payload, pgconv.TimeToPgtype(runAt)).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create notification job", err)
	}
	return id, nil
}

