//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"voucher-issuer/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind []infra.RepositoryErrorKind
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: infra.KindInvalidData},
		{name: "other error", err: errors.New("boom"), want: infra.KindDBFailure},
		{name: "explicit kind wins", err: &pgconn.PgError{Code: "23505"}, kind: []infra.RepositoryErrorKind{infra.KindConflict}, want: infra.KindConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op failed", tc.err, tc.kind...)

			assert.True(t, infra.IsKind(err, tc.want), "got %v", err)
			assert.ErrorIs(t, err, tc.err)
			assert.Contains(t, err.Error(), "op failed")
		})
	}

	t.Run("nil cause keeps the message", func(t *testing.T) {
		err := infra.WrapRepoErr("webhook event not found", nil, infra.KindNotFound)
		assert.EqualError(t, err, "NOT_FOUND: webhook event not found")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("IsKind is false for plain errors", func(t *testing.T) {
		assert.False(t, infra.IsKind(errors.New("boom"), infra.KindDBFailure))
	})
}
