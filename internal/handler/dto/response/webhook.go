package response

import (
	"voucher-issuer/internal/usecase/commands"
)

type OutcomeResponse struct {
	SuffixLabel string `json:"suffixLabel"`
	Status      string `json:"status"`
	Code        string `json:"code,omitempty"`
	Attempts    int    `json:"attempts"`
	Error       string `json:"error,omitempty"`
}

type PaymentWebhookResponse struct {
	OrderID      string            `json:"orderId"`
	Ignored      bool              `json:"ignored,omitempty"`
	Deduplicated bool              `json:"deduplicated"`
	Outcomes     []OutcomeResponse `json:"outcomes"`
}

func FromWebhookResult(r *commands.WebhookResult) *PaymentWebhookResponse {
	outcomes := make([]OutcomeResponse, len(r.Outcomes))
	for i, o := range r.Outcomes {
		outcomes[i] = OutcomeResponse{
			SuffixLabel: o.SuffixLabel,
			Status:      o.Status,
			Code:        o.Code,
			Attempts:    o.Attempts,
			Error:       o.Error,
		}
	}
	return &PaymentWebhookResponse{
		OrderID:      r.OrderID,
		Ignored:      r.Ignored,
		Deduplicated: r.Deduplicated,
		Outcomes:     outcomes,
	}
}
