package commands

import (
	"context"
	"log/slog"
	"strings"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/pkg/clock"
	"voucher-issuer/internal/pkg/config"
	"voucher-issuer/internal/pkg/errs"
)

const PaymentStatusSuccess = "success"

// PaymentEvent is an authenticated gateway notification, already parsed.
type PaymentEvent struct {
	Provider         string
	EventID          string
	OrderID          string
	ProductKind      string
	CustomerIdentity string
	Status           string
}

type IssuanceCommands interface {
	OnPaymentSucceeded(ctx context.Context, event PaymentEvent) ([]voucher.Outcome, error)
}

type issuanceCommandsImpl struct {
	issuer      CodeIssuer
	catalog     voucher.Catalog
	clock       clock.Clock
	maxAttempts int
	logger      *slog.Logger
}

func NewIssuanceCommands(
	issuer CodeIssuer,
	catalog voucher.Catalog,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) IssuanceCommands {
	return &issuanceCommandsImpl{
		issuer:      issuer,
		catalog:     catalog,
		clock:       clock,
		maxAttempts: cfg.Issuance.MaxAttempts,
		logger:      logger,
	}
}

// OnPaymentSucceeded returns exactly one outcome per owed variant, in catalog order.
// The only error is a rejected event, reported before any code is inserted.
func (u *issuanceCommandsImpl) OnPaymentSucceeded(ctx context.Context, event PaymentEvent) ([]voucher.Outcome, error) {
	req, err := u.buildRequest(event)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidIssuanceRequest)
	}

	variants := req.Variants()
	outcomes := make([]voucher.Outcome, 0, len(variants))
	for _, v := range variants {
		outcome := u.issuer.IssueUnique(ctx, req.BaseCode(), v.SuffixLabel, v.Attributes, u.maxAttempts)
		outcomes = append(outcomes, outcome)
	}

	u.logger.Info("payment issuance finished",
		"order_id", req.OrderID(),
		"product_kind", req.ProductKind(),
		"variants", len(variants),
		"issued", countIssued(outcomes))

	return outcomes, nil
}

func (u *issuanceCommandsImpl) buildRequest(event PaymentEvent) (*voucher.IssuanceRequest, error) {
	orderID := strings.TrimSpace(event.OrderID)
	productKind := strings.TrimSpace(event.ProductKind)
	identity := strings.TrimSpace(event.CustomerIdentity)

	if event.Status != PaymentStatusSuccess {
		return nil, errs.Newf("payment status %q is not %q", event.Status, PaymentStatusSuccess)
	}
	if orderID == "" || productKind == "" || identity == "" {
		return nil, errs.New("order id, product kind and customer identity are required")
	}

	baseCode, err := voucher.DeriveBaseCode(identity, orderID)
	if err != nil {
		return nil, err
	}

	variants, err := u.catalog.Variants(productKind, orderID, u.clock.Now())
	if err != nil {
		if errs.Is(err, voucher.ErrUnknownProductKind) {
			return nil, errs.Mark(err, errs.ErrUnknownProductKind)
		}
		return nil, err
	}

	return voucher.NewIssuanceRequest(orderID, productKind, baseCode, variants)
}

func countIssued(outcomes []voucher.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.IsIssued() {
			n++
		}
	}
	return n
}
