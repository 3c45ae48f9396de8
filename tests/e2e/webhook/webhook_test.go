//go:build e2e

package webhook_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	resdto "voucher-issuer/internal/handler/dto/response"
	"voucher-issuer/tests/common/builder"
	"voucher-issuer/tests/common/dbtest"
	"voucher-issuer/tests/common/httptest"
	"voucher-issuer/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
)

const webhookURL = "/api/webhooks/payments"

type WebhookE2ETestSuite struct {
	e2e.SharedSuite
}

func TestWebhookE2E(t *testing.T) {
	suite.Run(t, new(WebhookE2ETestSuite))
}

func (s *WebhookE2ETestSuite) post(body any) resdto.PaymentWebhookResponse {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, webhookURL, body,
		map[string]string{"X-Webhook-Id": "e2e"})
	httptest.AssertHeaderPresent(s.T(), rec, "X-Request-ID")
	var res resdto.PaymentWebhookResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	return res
}

func seedSequence(base, suffix string, n int) []string {
	codes := []string{base + suffix}
	for i := 2; i <= n; i++ {
		codes = append(codes, fmt.Sprintf("%s%s%d", base, suffix, i))
	}
	return codes
}

func (s *WebhookE2ETestSuite) TestPaymentWebhook() {
	s.Run("bundle purchase issues both variants", func() {
		b := builder.NewPaymentEventBuilder().WithProduct("bundle")

		res := s.post(b.BuildRequestDTO())

		s.False(res.Deduplicated)
		s.Require().Len(res.Outcomes, 2)
		want := map[string]string{"25Y": "X25Y", "10M": "X10M"}
		if diff := cmp.Diff(want, dbtest.IssuedCodes(s.T(), s.DB, b.OrderID)); diff != "" {
			s.T().Errorf("stored codes mismatch (-want +got):\n%s", diff)
		}
		s.Equal("completed", dbtest.WebhookEventStatus(s.T(), s.DB, b.Provider, b.EventID))
	})

	s.Run("nine pre-existing codes: the tenth candidate is issued", func() {
		dbtest.SeedDiscountCodes(s.T(), s.DB, seedSequence("X", "25Y", 9)...)
		b := builder.NewPaymentEventBuilder()

		res := s.post(b.BuildRequestDTO())

		s.Require().Len(res.Outcomes, 1)
		s.Equal("issued", res.Outcomes[0].Status)
		s.Equal("X25Y10", res.Outcomes[0].Code)
		s.Equal(10, res.Outcomes[0].Attempts)
	})

	s.Run("exhausted variant is reported and queued for operators", func() {
		dbtest.SeedDiscountCodes(s.T(), s.DB, seedSequence("X", "25Y", 10)...)
		b := builder.NewPaymentEventBuilder().WithProduct("bundle")

		res := s.post(b.BuildRequestDTO())

		s.Require().Len(res.Outcomes, 2)
		s.Equal("exhausted_retries", res.Outcomes[0].Status)
		s.Equal(10, res.Outcomes[0].Attempts)
		s.Equal("issued", res.Outcomes[1].Status)
		s.Equal("X10M", res.Outcomes[1].Code)
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "notification_jobs", "topic = $1", "voucher_issuance_failed"))
	})

	s.Run("redelivery replays without issuing again", func() {
		b := builder.NewPaymentEventBuilder()

		first := s.post(b.BuildRequestDTO())
		second := s.post(b.BuildRequestDTO())

		s.True(second.Deduplicated)
		if diff := cmp.Diff(first.Outcomes, second.Outcomes); diff != "" {
			s.T().Errorf("replayed outcomes mismatch (-want +got):\n%s", diff)
		}
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "discount_codes", "order_id = $1", b.OrderID))
	})

	s.Run("second transaction for the same order does not mint another code", func() {
		first := builder.NewPaymentEventBuilder()
		second := builder.NewPaymentEventBuilder().With(func(b *builder.PaymentEventBuilder) {
			b.OrderID = first.OrderID
		})

		s.post(first.BuildRequestDTO())
		res := s.post(second.BuildRequestDTO())

		s.Require().Len(res.Outcomes, 1)
		s.Equal("fatal", res.Outcomes[0].Status)
		// X25Y trips discount_codes_code_key first, X25Y2 then trips the order index
		s.Equal(2, res.Outcomes[0].Attempts)
		s.Contains(res.Outcomes[0].Error, "already issued")
		s.Zero(dbtest.CountRows(s.T(), s.DB, "notification_jobs", ""))
		s.Equal(1, dbtest.CountRows(s.T(), s.DB, "discount_codes", "order_id = $1", first.OrderID))
	})

	s.Run("concurrent orders with the same base code get distinct codes", func() {
		events := []*builder.PaymentEventBuilder{
			builder.NewPaymentEventBuilder().With(func(b *builder.PaymentEventBuilder) { b.OrderID = "ord_A" }),
			builder.NewPaymentEventBuilder().With(func(b *builder.PaymentEventBuilder) { b.OrderID = "ord_B" }),
		}

		var wg sync.WaitGroup
		results := make([]resdto.PaymentWebhookResponse, len(events))
		for i, b := range events {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = s.post(b.BuildRequestDTO())
			}()
		}
		wg.Wait()

		codes := map[string]bool{}
		for _, r := range results {
			s.Require().Len(r.Outcomes, 1)
			s.Equal("issued", r.Outcomes[0].Status)
			codes[r.Outcomes[0].Code] = true
		}
		s.Equal(map[string]bool{"X25Y": true, "X25Y2": true}, codes)
	})

	s.Run("unknown product is rejected on every delivery", func() {
		b := builder.NewPaymentEventBuilder().WithProduct("lifetime")

		for range 2 {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, webhookURL, b.BuildRequestDTO())
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid payment event")
		}
		s.Equal("rejected", dbtest.WebhookEventStatus(s.T(), s.DB, b.Provider, b.EventID))
		s.Equal(0, dbtest.CountRows(s.T(), s.DB, "discount_codes", ""))
	})

	s.Run("non-success status is acknowledged and ignored", func() {
		b := builder.NewPaymentEventBuilder().With(func(b *builder.PaymentEventBuilder) { b.Status = "refunded" })

		res := s.post(b.BuildRequestDTO())

		s.True(res.Ignored)
		s.Empty(res.Outcomes)
		s.Equal(0, dbtest.CountRows(s.T(), s.DB, "payment_webhook_events", ""))
	})
}

func (s *WebhookE2ETestSuite) TestListIssuedCodes() {
	s.Run("issued codes are listed for the order", func() {
		b := builder.NewPaymentEventBuilder().WithProduct("bundle")
		s.post(b.BuildRequestDTO())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/"+b.OrderID+"/discount-codes", nil)

		var res resdto.OrderDiscountCodesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res.Codes, 2)
		// ordered by suffix label
		s.Equal("10M", res.Codes[0].SuffixLabel)
		s.Equal("25Y", res.Codes[1].SuffixLabel)
		s.Require().NotNil(res.Codes[1].PercentOff)
		s.InDelta(25.0, *res.Codes[1].PercentOff, 0.001)
	})

	s.Run("order without codes is 404", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/ord_missing/discount-codes", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "No discount codes")
	})
}

func (s *WebhookE2ETestSuite) TestStaleClaimTakeover() {
	claim := func(b *builder.PaymentEventBuilder, age string) {
		_, err := s.DB.Exec(context.Background(), `
INSERT INTO payment_webhook_events (provider, event_id, order_id, request_hash, status, updated_at)
VALUES ($1, $2, $3, 'hash', 'processing', now() - $4::interval)`,
			b.Provider, b.EventID, b.OrderID, age)
		s.Require().NoError(err)
	}

	s.Run("fresh processing row answers 409", func() {
		b := builder.NewPaymentEventBuilder()
		claim(b, "1 second")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, webhookURL, b.BuildRequestDTO())

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "still being processed")
		s.Zero(dbtest.CountRows(s.T(), s.DB, "discount_codes", "order_id = $1", b.OrderID))
	})

	s.Run("processing row older than the lease is taken over and issued", func() {
		b := builder.NewPaymentEventBuilder()
		claim(b, "1 hour")

		res := s.post(b.BuildRequestDTO())

		s.False(res.Deduplicated)
		s.Require().Len(res.Outcomes, 1)
		s.Equal("issued", res.Outcomes[0].Status)
		s.Equal("completed", dbtest.WebhookEventStatus(s.T(), s.DB, b.Provider, b.EventID))
	})
}
