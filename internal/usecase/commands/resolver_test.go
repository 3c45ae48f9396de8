//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/pkg/errs"
	"voucher-issuer/internal/usecase/commands"
	"voucher-issuer/tests/common/builder"
	"voucher-issuer/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func takenCodes(base, suffix string, n int) []string {
	codes := make([]string, 0, n)
	for i := range n {
		codes = append(codes, voucher.Candidate(base, suffix, i).Text)
	}
	return codes
}

func TestCodeResolver_IssueUnique(t *testing.T) {
	ctx := context.Background()
	attrs, err := builder.NewVoucherBuilder().BuildAttributes()
	require.NoError(t, err)

	t.Run("no collision issues base+suffix on the first attempt", func(t *testing.T) {
		store := memstore.NewDiscountCodes()
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusIssued, outcome.Status)
		assert.Equal(t, "X25Y", outcome.Code)
		assert.Equal(t, 0, outcome.AttemptIndex)
		assert.Equal(t, 1, outcome.Attempts)
		assert.NotEqual(t, uuid.Nil, outcome.CodeID)
		assert.NoError(t, outcome.Cause)
		if diff := cmp.Diff([]string{"X25Y"}, store.Attempts()); diff != "" {
			t.Errorf("attempts mismatch (-want +got):\n%s", diff)
		}

		stored, ok := store.Get("X25Y")
		require.True(t, ok)
		assert.Equal(t, attrs.OrderID, stored.OrderID)
		assert.Equal(t, "25Y", stored.SuffixLabel)
		assert.Equal(t, attrs.ValidTo(), stored.ValidTo)
		require.NotNil(t, stored.PercentOff)
		assert.InDelta(t, 25.0, *stored.PercentOff, 0.0001)
	})

	t.Run("nine taken candidates: the tenth attempt X25Y10 succeeds", func(t *testing.T) {
		store := memstore.NewDiscountCodes(takenCodes("X", "25Y", 9)...)
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusIssued, outcome.Status)
		assert.Equal(t, "X25Y10", outcome.Code)
		assert.Equal(t, 9, outcome.AttemptIndex)
		assert.Equal(t, 10, outcome.Attempts)

		want := []string{"X25Y", "X25Y2", "X25Y3", "X25Y4", "X25Y5", "X25Y6", "X25Y7", "X25Y8", "X25Y9", "X25Y10"}
		if diff := cmp.Diff(want, store.Attempts()); diff != "" {
			t.Errorf("attempts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("all ten candidates taken: exhausted after exactly ten inserts", func(t *testing.T) {
		store := memstore.NewDiscountCodes(takenCodes("X", "25Y", 10)...)
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusExhaustedRetries, outcome.Status)
		assert.Empty(t, outcome.Code)
		assert.Equal(t, 9, outcome.AttemptIndex)
		assert.Equal(t, 10, outcome.Attempts)
		assert.Len(t, store.Attempts(), 10)
		assert.True(t, errs.Is(outcome.Cause, errs.ErrExhaustedRetries))
		assert.Empty(t, store.IssuedFor(attrs.OrderID))
	})

	t.Run("non-collision failure on the first attempt is fatal after one insert", func(t *testing.T) {
		store := memstore.NewDiscountCodes()
		store.FailWith["X25Y"] = infra.WrapRepoErr("failed to insert discount code", errors.New("connection reset by peer"))
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusFatal, outcome.Status)
		assert.Equal(t, 1, outcome.Attempts)
		assert.Len(t, store.Attempts(), 1)
		assert.True(t, errs.Is(outcome.Cause, errs.ErrFatalIssuance))
		assert.True(t, infra.IsKind(outcome.Cause, infra.KindDBFailure))
	})

	t.Run("fatal failure after a collision stops at that attempt", func(t *testing.T) {
		store := memstore.NewDiscountCodes("X25Y")
		store.FailWith["X25Y2"] = infra.WrapRepoErr("failed to insert discount code", errors.New("statement timeout"))
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusFatal, outcome.Status)
		assert.Equal(t, 1, outcome.AttemptIndex)
		assert.Equal(t, 2, outcome.Attempts)
		if diff := cmp.Diff([]string{"X25Y", "X25Y2"}, store.Attempts()); diff != "" {
			t.Errorf("attempts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("variant already issued for the order is fatal, not a collision", func(t *testing.T) {
		store := memstore.NewDiscountCodes()
		resolver := commands.NewCodeResolver(store, discardLogger())

		first := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)
		require.True(t, first.IsIssued())

		second := resolver.IssueUnique(ctx, "Y", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusFatal, second.Status)
		assert.Equal(t, 1, second.Attempts)
		assert.True(t, errs.Is(second.Cause, errs.ErrAlreadyIssued))
		assert.True(t, errs.Is(second.Cause, errs.ErrFatalIssuance))
		assert.Len(t, store.IssuedFor(attrs.OrderID), 1)
	})

	t.Run("same base for the same order collides on the code first, then fails on the order", func(t *testing.T) {
		store := memstore.NewDiscountCodes()
		resolver := commands.NewCodeResolver(store, discardLogger())

		first := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)
		require.True(t, first.IsIssued())

		second := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusFatal, second.Status)
		assert.Equal(t, 2, second.Attempts)
		assert.Equal(t, 1, second.AttemptIndex)
		assert.True(t, errs.Is(second.Cause, errs.ErrAlreadyIssued))
		if diff := cmp.Diff([]string{"X25Y", "X25Y", "X25Y2"}, store.Attempts()); diff != "" {
			t.Errorf("attempts mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, map[string]string{"25Y": "X25Y"}, store.IssuedFor(attrs.OrderID))
	})

	t.Run("repository reporting ErrCodeCollision is retried", func(t *testing.T) {
		store := memstore.NewDiscountCodes()
		store.FailWith["X25Y"] = errs.Mark(errs.New("code taken"), errs.ErrCodeCollision)
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)

		assert.Equal(t, voucher.StatusIssued, outcome.Status)
		assert.Equal(t, "X25Y2", outcome.Code)
	})

	t.Run("non-positive maxAttempts falls back to the default", func(t *testing.T) {
		store := memstore.NewDiscountCodes(takenCodes("X", "25Y", 20)...)
		resolver := commands.NewCodeResolver(store, discardLogger())

		outcome := resolver.IssueUnique(ctx, "X", "25Y", attrs, 0)

		assert.Equal(t, voucher.StatusExhaustedRetries, outcome.Status)
		assert.Len(t, store.Attempts(), voucher.DefaultMaxAttempts)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		invalidAttrs := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.MaxRedemptions = 0
		}).MustAttributes()

		cases := []struct {
			name   string
			base   string
			suffix string
			attrs  voucher.Attributes
			errIs  error
		}{
			{name: "empty base code", base: "", suffix: "25Y", attrs: attrs, errIs: voucher.ErrEmptyBaseCode},
			{name: "empty suffix label", base: "X", suffix: "", attrs: attrs, errIs: voucher.ErrEmptySuffixLabel},
			{name: "whitespace in base code", base: "X Y", suffix: "25Y", attrs: attrs, errIs: voucher.ErrNonPrintable},
			{name: "invalid attributes", base: "X", suffix: "25Y", attrs: invalidAttrs, errIs: voucher.ErrInvalidMaxRedemptions},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				store := memstore.NewDiscountCodes()
				resolver := commands.NewCodeResolver(store, discardLogger())

				outcome := resolver.IssueUnique(ctx, tc.base, tc.suffix, tc.attrs, 10)

				assert.Equal(t, voucher.StatusFatal, outcome.Status)
				assert.Equal(t, 0, outcome.Attempts)
				assert.Empty(t, store.Attempts())
				assert.True(t, errs.Is(outcome.Cause, tc.errIs))
			})
		}
	})
}

func TestCodeResolver_ConcurrentIssuance(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewDiscountCodes()

	// both callers must try X25Y before either one learns the result
	var arrived sync.WaitGroup
	arrived.Add(2)
	store.BeforeInsert = func(code string) {
		if code == "X25Y" {
			arrived.Done()
			arrived.Wait()
		}
	}

	resolver := commands.NewCodeResolver(store, discardLogger())
	orders := []string{"ord_A", "ord_B"}
	outcomes := make([]voucher.Outcome, len(orders))

	var wg sync.WaitGroup
	for i, orderID := range orders {
		attrs, err := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.OrderID = orderID
		}).BuildAttributes()
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = resolver.IssueUnique(ctx, "X", "25Y", attrs, 10)
		}()
	}
	wg.Wait()

	codes := map[string]int{}
	for _, o := range outcomes {
		require.Equal(t, voucher.StatusIssued, o.Status)
		codes[o.Code] = o.AttemptIndex
	}
	if diff := cmp.Diff(map[string]int{"X25Y": 0, "X25Y2": 1}, codes); diff != "" {
		t.Errorf("issued codes mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, store.Attempts(), 3)
}
