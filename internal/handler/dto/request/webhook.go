package request

import (
	"voucher-issuer/internal/usecase/commands"
)

// PaymentWebhookRequest is the gateway notification after signature verification.
type PaymentWebhookRequest struct {
	Provider         string `json:"provider" binding:"required,max=64"`
	EventID          string `json:"eventId" binding:"required,max=255"`
	OrderID          string `json:"orderId" binding:"required,max=255"`
	ProductKind      string `json:"productKind" binding:"required,max=64"`
	CustomerIdentity string `json:"customerIdentity" binding:"required,max=320"`
	Status           string `json:"status" binding:"required,max=32"`
}

func (r *PaymentWebhookRequest) ToEvent() commands.PaymentEvent {
	return commands.PaymentEvent{
		Provider:         r.Provider,
		EventID:          r.EventID,
		OrderID:          r.OrderID,
		ProductKind:      r.ProductKind,
		CustomerIdentity: r.CustomerIdentity,
		Status:           r.Status,
	}
}
