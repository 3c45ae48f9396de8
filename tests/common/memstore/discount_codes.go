//go:build unit || e2e

package memstore

import (
	"context"
	"sync"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DiscountCodes enforces the same two unique constraints as the discount_codes table,
// checked in the same order (code text first), and reports violations the way the pgx
// repository does.
type DiscountCodes struct {
	mu       sync.Mutex
	byCode   map[string]voucher.DiscountCode
	byOrder  map[string]string
	attempts []string

	// BeforeInsert runs outside the lock; tests use it to line up concurrent callers.
	BeforeInsert func(code string)
	// FailWith, when set, is returned for the matching code instead of inserting.
	FailWith map[string]error
}

func NewDiscountCodes(existing ...string) *DiscountCodes {
	s := &DiscountCodes{
		byCode:   make(map[string]voucher.DiscountCode),
		byOrder:  make(map[string]string),
		FailWith: make(map[string]error),
	}
	for _, code := range existing {
		s.byCode[code] = voucher.DiscountCode{Code: code, OrderID: "preexisting"}
	}
	return s
}

func (s *DiscountCodes) Insert(ctx context.Context, code *voucher.DiscountCode) (uuid.UUID, error) {
	if s.BeforeInsert != nil {
		s.BeforeInsert(code.Code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts = append(s.attempts, code.Code)

	// pgx aborts the statement when the context is done
	if err := ctx.Err(); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert discount code", err)
	}

	if err, ok := s.FailWith[code.Code]; ok {
		return uuid.Nil, err
	}
	if _, taken := s.byCode[code.Code]; taken {
		return uuid.Nil, infra.WrapRepoErr("discount code already exists",
			&pgconn.PgError{Code: "23505", ConstraintName: "discount_codes_code_key"})
	}
	orderKey := code.OrderID + "/" + code.SuffixLabel
	if _, issued := s.byOrder[orderKey]; issued {
		return uuid.Nil, infra.WrapRepoErr("discount code already issued for order variant",
			&pgconn.PgError{Code: "23505", ConstraintName: "discount_codes_order_variant_key"}, infra.KindConflict)
	}

	s.byCode[code.Code] = *code
	s.byOrder[orderKey] = code.Code
	return uuid.New(), nil
}

// Attempts lists every candidate text passed to Insert, in call order.
func (s *DiscountCodes) Attempts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.attempts...)
}

func (s *DiscountCodes) Get(code string) (voucher.DiscountCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byCode[code]
	return c, ok
}

// IssuedFor returns the codes stored for an order, keyed by suffix label.
func (s *DiscountCodes) IssuedFor(orderID string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string)
	for _, c := range s.byCode {
		if c.OrderID == orderID {
			out[c.SuffixLabel] = c.Code
		}
	}
	return out
}
