package voucher

import (
	"errors"
	"fmt"
)

var (
	ErrMissingProductKind = errors.New("product kind is required")
	ErrNoVariants         = errors.New("issuance request needs at least one variant")
	ErrDuplicateVariant   = errors.New("variant suffix labels must be unique")
)

type Variant struct {
	SuffixLabel string
	Attributes  Attributes
}

// IssuanceRequest is built once per verified webhook delivery and never modified.
type IssuanceRequest struct {
	orderID     string
	productKind string
	baseCode    string
	variants    []Variant
}

func NewIssuanceRequest(orderID, productKind, baseCode string, variants []Variant) (*IssuanceRequest, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	if productKind == "" {
		return nil, ErrMissingProductKind
	}
	if len(variants) == 0 {
		return nil, ErrNoVariants
	}

	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if err := ValidateLabels(baseCode, v.SuffixLabel); err != nil {
			return nil, err
		}
		if _, dup := seen[v.SuffixLabel]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVariant, v.SuffixLabel)
		}
		seen[v.SuffixLabel] = struct{}{}

		if err := v.Attributes.Validate(); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.SuffixLabel, err)
		}
	}

	return &IssuanceRequest{
		orderID:     orderID,
		productKind: productKind,
		baseCode:    baseCode,
		variants:    append([]Variant(nil), variants...),
	}, nil
}

func (r *IssuanceRequest) OrderID() string     { return r.orderID }
func (r *IssuanceRequest) ProductKind() string { return r.productKind }
func (r *IssuanceRequest) BaseCode() string    { return r.baseCode }

// Variants returns a copy in declared order.
func (r *IssuanceRequest) Variants() []Variant {
	return append([]Variant(nil), r.variants...)
}
