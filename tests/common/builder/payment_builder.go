//go:build unit || e2e

package builder

import (
	reqdto "voucher-issuer/internal/handler/dto/request"
	"voucher-issuer/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentEventBuilder struct {
	Provider         string
	EventID          string
	OrderID          string
	ProductKind      string
	CustomerIdentity string
	Status           string
}

func NewPaymentEventBuilder() *PaymentEventBuilder {
	return &PaymentEventBuilder{
		Provider:         "stripe",
		EventID:          "evt_" + uuid.NewString(),
		OrderID:          "ord_1001",
		ProductKind:      "annual",
		CustomerIdentity: "x@example.com",
		Status:           commands.PaymentStatusSuccess,
	}
}

func (b *PaymentEventBuilder) With(mutate func(*PaymentEventBuilder)) *PaymentEventBuilder {
	mutate(b)
	return b
}

func (b *PaymentEventBuilder) WithProduct(kind string) *PaymentEventBuilder {
	b.ProductKind = kind
	return b
}

func (b *PaymentEventBuilder) BuildEvent() commands.PaymentEvent {
	return commands.PaymentEvent{
		Provider:         b.Provider,
		EventID:          b.EventID,
		OrderID:          b.OrderID,
		ProductKind:      b.ProductKind,
		CustomerIdentity: b.CustomerIdentity,
		Status:           b.Status,
	}
}

func (b *PaymentEventBuilder) BuildRequestDTO() reqdto.PaymentWebhookRequest {
	return reqdto.PaymentWebhookRequest{
		Provider:         b.Provider,
		EventID:          b.EventID,
		OrderID:          b.OrderID,
		ProductKind:      b.ProductKind,
		CustomerIdentity: b.CustomerIdentity,
		Status:           b.Status,
	}
}
