package voucher

import (
	"errors"
	"time"

	"voucher-issuer/internal/domain/coupon"
)

var (
	ErrMissingOrderID        = errors.New("order id is required")
	ErrMissingDiscount       = errors.New("discount is required")
	ErrInvalidValidityWindow = errors.New("validity window must be positive")
	ErrInvalidMaxRedemptions = errors.New("max redemptions must be at least 1")
)

// Attributes are forwarded verbatim to every persisted code of a variant.
type Attributes struct {
	OrderID        string
	Discount       coupon.Discount
	ValidFrom      time.Time
	ValidFor       time.Duration
	MaxRedemptions int32
}

func NewAttributes(orderID string, discount coupon.Discount, validFrom time.Time, validFor time.Duration, maxRedemptions int32) (Attributes, error) {
	attrs := Attributes{
		OrderID:        orderID,
		Discount:       discount,
		ValidFrom:      validFrom,
		ValidFor:       validFor,
		MaxRedemptions: maxRedemptions,
	}
	if err := attrs.Validate(); err != nil {
		return Attributes{}, err
	}
	return attrs, nil
}

func (a Attributes) Validate() error {
	if a.OrderID == "" {
		return ErrMissingOrderID
	}
	if a.Discount.IsZero() {
		return ErrMissingDiscount
	}
	if a.ValidFor <= 0 {
		return ErrInvalidValidityWindow
	}
	if a.MaxRedemptions < 1 {
		return ErrInvalidMaxRedemptions
	}
	return nil
}

func (a Attributes) ValidTo() time.Time {
	return a.ValidFrom.Add(a.ValidFor)
}

// DiscountCode is the row written by a successful insert. Rows are never updated here.
type DiscountCode struct {
	Code           string
	OrderID        string
	SuffixLabel    string
	AmountOffCents *int32
	PercentOff     *float64
	ValidFrom      time.Time
	ValidTo        time.Time
	MaxRedemptions int32
}

func NewDiscountCode(candidate CandidateCode, suffixLabel string, attrs Attributes) *DiscountCode {
	return &DiscountCode{
		Code:           candidate.Text,
		OrderID:        attrs.OrderID,
		SuffixLabel:    suffixLabel,
		AmountOffCents: attrs.Discount.AmountOffCents(),
		PercentOff:     attrs.Discount.PercentOff(),
		ValidFrom:      attrs.ValidFrom,
		ValidTo:        attrs.ValidTo(),
		MaxRedemptions: attrs.MaxRedemptions,
	}
}
