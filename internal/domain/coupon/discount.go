package coupon

import (
	"errors"
)

var (
	ErrInvalidDiscountAmount  = errors.New("discount amount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be greater than 0 and at most 100")
	ErrAmbiguousDiscount      = errors.New("discount can only be either fixed amount or percentage, not both")
	ErrMissingDiscount        = errors.New("discount must have either fixed amount or percentage")
)

// Discount is either a fixed amount in cents or a percentage, never both.
type Discount struct {
	amountOffCents *int32
	percentOff     *float64
}

func NewFixedDiscount(amountOffCents int32) (Discount, error) {
	if amountOffCents <= 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOffCents: &amountOffCents}, nil
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff <= 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewDiscount(amountOffCents *int32, percentOff *float64) (Discount, error) {
	if amountOffCents != nil && percentOff != nil {
		return Discount{}, ErrAmbiguousDiscount
	}

	if amountOffCents == nil && percentOff == nil {
		return Discount{}, ErrMissingDiscount
	}

	if amountOffCents != nil {
		return NewFixedDiscount(*amountOffCents)
	}

	return NewPercentageDiscount(*percentOff)
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) IsFixed() bool {
	return d.amountOffCents != nil
}

func (d Discount) IsZero() bool {
	return d.amountOffCents == nil && d.percentOff == nil
}

// AmountOffCents returns a copy so callers cannot mutate the value object.
func (d Discount) AmountOffCents() *int32 {
	if d.amountOffCents == nil {
		return nil
	}
	v := *d.amountOffCents
	return &v
}

func (d Discount) PercentOff() *float64 {
	if d.percentOff == nil {
		return nil
	}
	v := *d.percentOff
	return &v
}
