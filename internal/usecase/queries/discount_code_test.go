//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"voucher-issuer/internal/pkg/errs"
	"voucher-issuer/internal/usecase/queries"
	queriesmock "voucher-issuer/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDiscountCodeQueries_ListByOrder(t *testing.T) {
	ctx := context.Background()
	percent := 25.0
	view := &queries.DiscountCodeView{
		ID:             uuid.New(),
		Code:           "JANEDOE25Y",
		OrderID:        "ord_1",
		SuffixLabel:    "25Y",
		PercentOff:     &percent,
		ValidFrom:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxRedemptions: 1,
	}

	t.Run("returns the stored codes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountCodeReadStore(ctrl)
		store.EXPECT().ListByOrder(gomock.Any(), "ord_1").Return([]*queries.DiscountCodeView{view}, nil)

		got, err := queries.NewDiscountCodeQueries(store).ListByOrder(ctx, " ord_1 ")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "JANEDOE25Y", got[0].Code)
	})

	t.Run("blank order id never hits the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountCodeReadStore(ctrl)

		_, err := queries.NewDiscountCodeQueries(store).ListByOrder(ctx, "  ")

		assert.ErrorIs(t, err, queries.ErrNoCodesForOrder)
	})

	t.Run("empty result is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountCodeReadStore(ctrl)
		store.EXPECT().ListByOrder(gomock.Any(), "ord_2").Return(nil, nil)

		_, err := queries.NewDiscountCodeQueries(store).ListByOrder(ctx, "ord_2")

		assert.ErrorIs(t, err, queries.ErrNoCodesForOrder)
	})

	t.Run("store errors are marked as database failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountCodeReadStore(ctrl)
		boom := errs.New("connection reset")
		store.EXPECT().ListByOrder(gomock.Any(), "ord_3").Return(nil, boom)

		_, err := queries.NewDiscountCodeQueries(store).ListByOrder(ctx, "ord_3")

		assert.ErrorIs(t, err, boom)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
		assert.False(t, errs.Is(err, queries.ErrNoCodesForOrder))
	})
}
