package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/pkg/config"
	"voucher-issuer/internal/pkg/errs"
)

// DefaultClaimLease applies when no positive lease is configured.
const DefaultClaimLease = 2 * time.Minute

// OutcomeSummary is the serializable form of a voucher.Outcome kept in the event ledger.
type OutcomeSummary struct {
	SuffixLabel string `json:"suffixLabel"`
	Status      string `json:"status"`
	Code        string `json:"code,omitempty"`
	CodeID      string `json:"codeId,omitempty"`
	Attempts    int    `json:"attempts"`
	Error       string `json:"error,omitempty"`
}

type WebhookResult struct {
	OrderID      string
	Ignored      bool
	Deduplicated bool
	Outcomes     []OutcomeSummary
}

type WebhookCommands interface {
	HandlePaymentWebhook(ctx context.Context, event PaymentEvent) (*WebhookResult, error)
}

type webhookCommandsImpl struct {
	events     WebhookEventRepository
	issuance   IssuanceCommands
	alerter    IssuanceAlerter
	claimLease time.Duration
	logger     *slog.Logger
}

func NewWebhookCommands(
	events WebhookEventRepository,
	issuance IssuanceCommands,
	alerter IssuanceAlerter,
	cfg config.Config,
	logger *slog.Logger,
) WebhookCommands {
	lease := cfg.Issuance.ClaimLease
	if lease <= 0 {
		lease = DefaultClaimLease
	}
	return &webhookCommandsImpl{
		events:     events,
		issuance:   issuance,
		alerter:    alerter,
		claimLease: lease,
		logger:     logger,
	}
}

// HandlePaymentWebhook runs issuance once per (provider, event id). Redeliveries replay the
// recorded summary; a redelivery arriving after the claim lease of a row left "processing"
// runs issuance again, which the (order_id, suffix_label) index keeps from minting twice.
func (u *webhookCommandsImpl) HandlePaymentWebhook(ctx context.Context, event PaymentEvent) (*WebhookResult, error) {
	if event.Status != PaymentStatusSuccess {
		u.logger.Info("ignoring non-success payment event",
			"provider", event.Provider,
			"event_id", event.EventID,
			"status", event.Status)
		return &WebhookResult{OrderID: event.OrderID, Ignored: true}, nil
	}

	key := WebhookEventKey{Provider: event.Provider, EventID: event.EventID}
	requestHash := calculateEventHash(event)

	claimed, err := u.events.TryClaim(ctx, key, event.OrderID, requestHash, u.claimLease)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrWebhookLedgerFailed)
	}
	if !claimed {
		return u.replay(ctx, key, requestHash)
	}

	// once claimed, inserts and the ledger update finish even if the gateway hangs up
	ctx = context.WithoutCancel(ctx)

	outcomes, err := u.issuance.OnPaymentSucceeded(ctx, event)
	if err != nil {
		u.complete(ctx, key, WebhookEventRejected, []OutcomeSummary{{Status: WebhookEventRejected, Error: err.Error()}})
		return nil, err
	}

	u.alertFailures(ctx, event.OrderID, outcomes)

	summaries := summarize(outcomes)
	u.complete(ctx, key, WebhookEventCompleted, summaries)

	return &WebhookResult{OrderID: event.OrderID, Outcomes: summaries}, nil
}

func (u *webhookCommandsImpl) replay(ctx context.Context, key WebhookEventKey, requestHash string) (*WebhookResult, error) {
	existing, err := u.events.Get(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrWebhookLedgerFailed)
	}

	if existing.RequestHash != requestHash {
		u.logger.Warn("webhook redelivery payload differs from recorded event",
			"provider", key.Provider,
			"event_id", key.EventID)
	}

	switch existing.Status {
	case WebhookEventProcessing:
		return nil, errs.ErrIssuanceInProgress
	case WebhookEventRejected:
		return nil, errs.Mark(errs.New("event was rejected on first delivery"), errs.ErrInvalidIssuanceRequest)
	}

	var summaries []OutcomeSummary
	if len(existing.Summary) > 0 {
		if err := json.Unmarshal(existing.Summary, &summaries); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "failed to decode recorded outcomes"), errs.ErrWebhookLedgerFailed)
		}
	}

	u.logger.Info("webhook redelivery deduplicated",
		"provider", key.Provider,
		"event_id", key.EventID,
		"order_id", existing.OrderID)

	return &WebhookResult{OrderID: existing.OrderID, Deduplicated: true, Outcomes: summaries}, nil
}

// complete failures are logged only: the codes are already persisted, and the row left
// "processing" is taken over by a redelivery once the claim lease runs out.
func (u *webhookCommandsImpl) complete(ctx context.Context, key WebhookEventKey, status string, summaries []OutcomeSummary) {
	payload, err := json.Marshal(summaries)
	if err != nil {
		u.logger.Error("failed to encode outcome summary", "event_id", key.EventID, "error", err.Error())
		return
	}
	if err := u.events.Complete(ctx, key, status, payload); err != nil {
		u.logger.Error("failed to complete webhook event",
			"provider", key.Provider,
			"event_id", key.EventID,
			"status", status,
			"error", err.Error())
	}
}

func (u *webhookCommandsImpl) alertFailures(ctx context.Context, orderID string, outcomes []voucher.Outcome) {
	for _, o := range outcomes {
		if o.IsIssued() {
			continue
		}
		if errs.Is(o.Cause, errs.ErrAlreadyIssued) {
			// the customer already holds this variant; nothing to issue by hand
			u.logger.Info("variant already issued for order, no alert raised",
				"order_id", orderID,
				"suffix_label", o.Variant.SuffixLabel)
			continue
		}
		if err := u.alerter.IssuanceFailed(ctx, orderID, o); err != nil {
			u.logger.Error("failed to raise issuance alert",
				"order_id", orderID,
				"suffix_label", o.Variant.SuffixLabel,
				"error", err.Error())
		}
	}
}

func summarize(outcomes []voucher.Outcome) []OutcomeSummary {
	summaries := make([]OutcomeSummary, len(outcomes))
	for i, o := range outcomes {
		s := OutcomeSummary{
			SuffixLabel: o.Variant.SuffixLabel,
			Status:      string(o.Status),
			Code:        o.Code,
			Attempts:    o.Attempts,
		}
		if o.IsIssued() {
			s.CodeID = o.CodeID.String()
		}
		if o.Cause != nil {
			s.Error = o.Cause.Error()
		}
		summaries[i] = s
	}
	return summaries
}

func calculateEventHash(event PaymentEvent) string {
	data, _ := json.Marshal(event)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
