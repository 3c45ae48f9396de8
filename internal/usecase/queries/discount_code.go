package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"voucher-issuer/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNoCodesForOrder = errors.New("no discount codes issued for order")

// Read models (DTO for read side)
type DiscountCodeView struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	OrderID        string    `json:"order_id"`
	SuffixLabel    string    `json:"suffix_label"`
	AmountOffCents *int32    `json:"amount_off_cents,omitempty"`
	PercentOff     *float64  `json:"percent_off,omitempty"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidTo        time.Time `json:"valid_to"`
	MaxRedemptions int32     `json:"max_redemptions"`
	CreatedAt      time.Time `json:"created_at"`
}

type DiscountCodeReadStore interface {
	ListByOrder(ctx context.Context, orderID string) ([]*DiscountCodeView, error)
}

type DiscountCodeQueries interface {
	ListByOrder(ctx context.Context, orderID string) ([]*DiscountCodeView, error)
}

type discountCodeQueriesImpl struct {
	store DiscountCodeReadStore
}

func NewDiscountCodeQueries(store DiscountCodeReadStore) DiscountCodeQueries {
	return &discountCodeQueriesImpl{store: store}
}

// ListByOrder returns the codes of an order in suffix label order.
func (q *discountCodeQueriesImpl) ListByOrder(ctx context.Context, orderID string) ([]*DiscountCodeView, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrNoCodesForOrder
	}

	views, err := q.store.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(views) == 0 {
		return nil, ErrNoCodesForOrder
	}
	return views, nil
}
