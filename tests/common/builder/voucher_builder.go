//go:build unit || e2e

package builder

import (
	"time"

	"voucher-issuer/internal/domain/coupon"
	"voucher-issuer/internal/domain/voucher"
)

type VoucherBuilder struct {
	OrderID        string
	BaseCode       string
	SuffixLabel    string
	AmountOffCents *int32
	PercentOff     *float64
	ValidFrom      time.Time
	ValidFor       time.Duration
	MaxRedemptions int32
}

func NewVoucherBuilder() *VoucherBuilder {
	pct := 25.0
	return &VoucherBuilder{
		OrderID:        "ord_1001",
		BaseCode:       "X",
		SuffixLabel:    "25Y",
		PercentOff:     &pct,
		ValidFrom:      time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		ValidFor:       365 * 24 * time.Hour,
		MaxRedemptions: 1,
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

func (b *VoucherBuilder) WithFixedAmount(cents int32) *VoucherBuilder {
	b.AmountOffCents = &cents
	b.PercentOff = nil
	return b
}

func (b *VoucherBuilder) WithSuffix(label string) *VoucherBuilder {
	b.SuffixLabel = label
	return b
}

// Build methods
func (b *VoucherBuilder) BuildAttributes() (voucher.Attributes, error) {
	discount, err := coupon.NewDiscount(b.AmountOffCents, b.PercentOff)
	if err != nil {
		return voucher.Attributes{}, err
	}
	return voucher.NewAttributes(b.OrderID, discount, b.ValidFrom, b.ValidFor, b.MaxRedemptions)
}

// MustAttributes skips validation so tests can feed invalid attributes to the resolver.
func (b *VoucherBuilder) MustAttributes() voucher.Attributes {
	discount, _ := coupon.NewDiscount(b.AmountOffCents, b.PercentOff)
	return voucher.Attributes{
		OrderID:        b.OrderID,
		Discount:       discount,
		ValidFrom:      b.ValidFrom,
		ValidFor:       b.ValidFor,
		MaxRedemptions: b.MaxRedemptions,
	}
}

func (b *VoucherBuilder) BuildVariant() voucher.Variant {
	return voucher.Variant{SuffixLabel: b.SuffixLabel, Attributes: b.MustAttributes()}
}
