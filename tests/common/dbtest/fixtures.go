//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"voucher-issuer/internal/infra/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedDiscountCodes inserts unrelated codes so issuance runs into real unique violations.
func SeedDiscountCodes(t *testing.T, dbtx db.DBTX, codes ...string) {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	for i, code := range codes {
		_, err := dbtx.Exec(ctx, `
			INSERT INTO discount_codes (code, order_id, suffix_label, percent_off, valid_from, valid_to, max_redemptions)
			VALUES ($1, $2, 'SEED', 5, $3, $4, 1)`,
			code, fmt.Sprintf("seed_%d_%s", i, code), now, now.Add(24*time.Hour))
		require.NoError(t, err)
	}
}

// IssuedCodes returns suffix label -> code for an order.
func IssuedCodes(t *testing.T, dbtx db.DBTX, orderID string) map[string]string {
	t.Helper()

	rows, err := dbtx.Query(context.Background(),
		"SELECT suffix_label, code FROM discount_codes WHERE order_id = $1", orderID)
	require.NoError(t, err)
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var label, code string
		require.NoError(t, rows.Scan(&label, &code))
		out[label] = code
	}
	require.NoError(t, rows.Err())
	return out
}

func CountRows(t *testing.T, dbtx db.DBTX, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, dbtx.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func WebhookEventStatus(t *testing.T, dbtx db.DBTX, provider, eventID string) string {
	t.Helper()

	var status string
	err := dbtx.QueryRow(context.Background(),
		"SELECT status FROM payment_webhook_events WHERE provider = $1 AND event_id = $2",
		provider, eventID).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
