package voucher

import (
	"errors"
	"fmt"
	"time"

	"voucher-issuer/internal/domain/coupon"
)

var ErrUnknownProductKind = errors.New("unknown product kind")

const day = 24 * time.Hour

const (
	ProductMonthly = "monthly"
	ProductAnnual  = "annual"
	ProductBundle  = "bundle"
)

// VariantPlan describes one code entitlement owed by a product.
type VariantPlan struct {
	SuffixLabel    string
	AmountOffCents *int32
	PercentOff     *float64
	ValidFor       time.Duration
	MaxRedemptions int32
}

// Catalog maps a purchased product kind to the ordered variants it entitles.
type Catalog map[string][]VariantPlan

func DefaultCatalog() Catalog {
	monthly := VariantPlan{SuffixLabel: "10M", PercentOff: percent(10), ValidFor: 30 * day, MaxRedemptions: 1}
	annual := VariantPlan{SuffixLabel: "25Y", PercentOff: percent(25), ValidFor: 365 * day, MaxRedemptions: 1}

	return Catalog{
		ProductMonthly: {monthly},
		ProductAnnual:  {annual},
		ProductBundle:  {annual, monthly},
	}
}

// Variants materializes the plans for productKind with validity starting at validFrom.
func (c Catalog) Variants(productKind, orderID string, validFrom time.Time) ([]Variant, error) {
	plans, ok := c[productKind]
	if !ok || len(plans) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProductKind, productKind)
	}

	variants := make([]Variant, 0, len(plans))
	for _, p := range plans {
		discount, err := coupon.NewDiscount(p.AmountOffCents, p.PercentOff)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", p.SuffixLabel, err)
		}
		attrs, err := NewAttributes(orderID, discount, validFrom, p.ValidFor, p.MaxRedemptions)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", p.SuffixLabel, err)
		}
		variants = append(variants, Variant{SuffixLabel: p.SuffixLabel, Attributes: attrs})
	}
	return variants, nil
}

func percent(v float64) *float64 {
	return &v
}
