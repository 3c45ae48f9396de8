//go:build unit || e2e

package memstore

import (
	"context"
	"sync"
	"time"

	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/pkg/clock"
	"voucher-issuer/internal/usecase/commands"
)

// WebhookEvents mirrors the payment_webhook_events claim rules, including the
// takeover of a stale "processing" row. Clock drives the lease.
type WebhookEvents struct {
	mu     sync.Mutex
	events map[commands.WebhookEventKey]*commands.WebhookEventRecord

	Clock       clock.Clock
	ClaimErr    error
	CompleteErr error
}

func NewWebhookEvents() *WebhookEvents {
	return &WebhookEvents{
		events: make(map[commands.WebhookEventKey]*commands.WebhookEventRecord),
		Clock:  clock.NewRealClock(),
	}
}

func (s *WebhookEvents) TryClaim(ctx context.Context, key commands.WebhookEventKey, orderID, requestHash string, lease time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, infra.WrapRepoErr("failed to try insert webhook event", err)
	}
	if s.ClaimErr != nil {
		return false, s.ClaimErr
	}

	now := s.Clock.Now()
	if rec, ok := s.events[key]; ok {
		if rec.Status != commands.WebhookEventProcessing || !rec.UpdatedAt.Before(now.Add(-lease)) {
			return false, nil
		}
		rec.RequestHash = requestHash
		rec.UpdatedAt = now
		return true, nil
	}

	s.events[key] = &commands.WebhookEventRecord{
		Provider:    key.Provider,
		EventID:     key.EventID,
		OrderID:     orderID,
		RequestHash: requestHash,
		Status:      commands.WebhookEventProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return true, nil
}

func (s *WebhookEvents) Get(_ context.Context, key commands.WebhookEventKey) (*commands.WebhookEventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.events[key]
	if !ok {
		return nil, infra.WrapRepoErr("webhook event not found", nil, infra.KindNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (s *WebhookEvents) Complete(ctx context.Context, key commands.WebhookEventKey, status string, summary []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("failed to complete webhook event", err)
	}
	if s.CompleteErr != nil {
		return s.CompleteErr
	}
	rec, ok := s.events[key]
	if !ok {
		return infra.WrapRepoErr("webhook event not found", nil, infra.KindNotFound)
	}
	now := s.Clock.Now()
	rec.Status = status
	rec.Summary = summary
	rec.UpdatedAt = now
	rec.CompletedAt = &now
	return nil
}

// Status returns the ledger status for key, or "" when nothing was claimed.
func (s *WebhookEvents) Status(key commands.WebhookEventKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.events[key]; ok {
		return rec.Status
	}
	return ""
}
