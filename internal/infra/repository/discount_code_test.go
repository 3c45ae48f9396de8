//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/infra/repository"
	"voucher-issuer/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiscountCodeRepository_Insert(t *testing.T) {
	ctx := context.Background()
	attrs, err := builder.NewVoucherBuilder().BuildAttributes()
	require.NoError(t, err)
	code := voucher.NewDiscountCode(voucher.Candidate("X", "25Y", 1), "25Y", attrs)

	t.Run("success: returns the generated id", func(t *testing.T) {
		id := uuid.New()
		db := &mockDBTX{}
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(stubRow{values: []any{id}})

		got, err := repository.NewDiscountCodeRepository(db).Insert(ctx, code)

		require.NoError(t, err)
		assert.Equal(t, id, got)

		args := db.sqlArgs(0)
		require.Len(t, args, 8)
		assert.Equal(t, "X25Y2", args[0])
		assert.Equal(t, attrs.OrderID, args[1])
		assert.Equal(t, "25Y", args[2])
		assert.Equal(t, pgtype.Int4{}, args[3])
		assert.Equal(t, pgtype.Float8{Float64: 25, Valid: true}, args[4])
		assert.Equal(t, int32(1), args[7])
		db.AssertExpectations(t)
	})

	testCases := []struct {
		name       string
		scanErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:       "error: code text taken is a duplicate key",
			scanErr:    &pgconn.PgError{Code: "23505", ConstraintName: repository.CodeUniqueConstraint},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: order variant already issued is a conflict",
			scanErr:    &pgconn.PgError{Code: "23505", ConstraintName: repository.OrderVariantUniqueConstraint},
			expectKind: infra.KindConflict,
		},
		{
			name:       "error: check violation is invalid data",
			scanErr:    &pgconn.PgError{Code: "23514", ConstraintName: "discount_codes_one_discount_check"},
			expectKind: infra.KindInvalidData,
		},
		{
			name:       "error: connection failure",
			scanErr:    errors.New("database connection error"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &mockDBTX{}
			db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(stubRow{err: tc.scanErr})

			id, err := repository.NewDiscountCodeRepository(db).Insert(ctx, code)

			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, err, err)
			assert.Equal(t, uuid.Nil, id)
		})
	}
}
