package readstore

import (
	"context"

	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/infra/db"
	"voucher-issuer/internal/pkg/pgconv"
	"voucher-issuer/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listDiscountCodesByOrderSQL = `
SELECT id, code, order_id, suffix_label, amount_off_cents, percent_off::float8,
       valid_from, valid_to, max_redemptions, created_at
FROM discount_codes
WHERE order_id = $1
ORDER BY suffix_label, created_at`

type DiscountCodeReadStore struct {
	db db.DBTX
}

func NewDiscountCodeReadStore(dbtx db.DBTX) *DiscountCodeReadStore {
	return &DiscountCodeReadStore{
		db: dbtx,
	}
}

func (r *DiscountCodeReadStore) ListByOrder(ctx context.Context, orderID string) ([]*queries.DiscountCodeView, error) {
	rows, err := r.db.Query(ctx, listDiscountCodesByOrderSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list discount codes", err)
	}

	views, err := pgx.CollectRows(rows, scanDiscountCodeView)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan discount codes", err)
	}
	return views, nil
}

func scanDiscountCodeView(row pgx.CollectableRow) (*queries.DiscountCodeView, error) {
	var (
		v          queries.DiscountCodeView
		amountOff  pgtype.Int4
		percentOff pgtype.Float8
		validFrom  pgtype.Timestamptz
		validTo    pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.OrderID,
		&v.SuffixLabel,
		&amountOff,
		&percentOff,
		&validFrom,
		&validTo,
		&v.MaxRedemptions,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	v.AmountOffCents = pgconv.Int32PtrFromPgtype(amountOff)
	v.PercentOff = pgconv.Float64PtrFromPgtype(percentOff)
	v.ValidFrom = validFrom.Time
	v.ValidTo = validTo.Time
	v.CreatedAt = createdAt.Time
	return &v, nil
}
