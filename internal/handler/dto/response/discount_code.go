package response

import (
	"voucher-issuer/internal/usecase/queries"
)

type DiscountCodeResponse struct {
	ID             string   `json:"id"`
	Code           string   `json:"code"`
	SuffixLabel    string   `json:"suffixLabel"`
	AmountOffCents *int32   `json:"amountOffCents,omitempty"`
	PercentOff     *float64 `json:"percentOff,omitempty"`
	ValidFrom      int64    `json:"validFrom"`
	ValidTo        int64    `json:"validTo"`
	MaxRedemptions int32    `json:"maxRedemptions"`
}

type OrderDiscountCodesResponse struct {
	OrderID string                  `json:"orderId"`
	Codes   []*DiscountCodeResponse `json:"codes"`
}

func FromDiscountCodeViews(orderID string, views []*queries.DiscountCodeView) *OrderDiscountCodesResponse {
	codes := make([]*DiscountCodeResponse, len(views))
	for i, v := range views {
		codes[i] = &DiscountCodeResponse{
			ID:             v.ID.String(),
			Code:           v.Code,
			SuffixLabel:    v.SuffixLabel,
			AmountOffCents: v.AmountOffCents,
			PercentOff:     v.PercentOff,
			ValidFrom:      v.ValidFrom.Unix(),
			ValidTo:        v.ValidTo.Unix(),
			MaxRedemptions: v.MaxRedemptions,
		}
	}
	return &OrderDiscountCodesResponse{OrderID: orderID, Codes: codes}
}
