package repository

import (
	"context"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/infra/db"
	"voucher-issuer/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// Unique constraints on discount_codes (see migrations/001_initial_schema.sql)
const (
	CodeUniqueConstraint         = "discount_codes_code_key"
	OrderVariantUniqueConstraint = "discount_codes_order_variant_key"
)

const insertDiscountCodeSQL = `
INSERT INTO discount_codes (
    code, order_id, suffix_label, amount_off_cents, percent_off,
    valid_from, valid_to, max_redemptions
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

type DiscountCodeRepository struct {
	db db.DBTX
}

func NewDiscountCodeRepository(dbtx db.DBTX) *DiscountCodeRepository {
	return &DiscountCodeRepository{
		db: dbtx,
	}
}

// Insert is a single atomic statement, so a failed attempt leaves nothing behind.
func (r *DiscountCodeRepository) Insert(ctx context.Context, code *voucher.DiscountCode) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, insertDiscountCodeSQL,
		code.Code,
		code.OrderID,
		code.SuffixLabel,
		pgconv.Int32PtrToPgtype(code.AmountOffCents),
		pgconv.Float64PtrToPgtype(code.PercentOff),
		pgconv.TimeToPgtype(code.ValidFrom),
		pgconv.TimeToPgtype(code.ValidTo),
		code.MaxRedemptions,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapInsertErr(err)
	}
	return id, nil
}

func wrapInsertErr(err error) error {
	if !pgconv.IsUniqueViolation(err) {
		return infra.WrapRepoErr("failed to insert discount code", err)
	}
	if pgconv.ConstraintName(err) == CodeUniqueConstraint {
		return infra.WrapRepoErr("discount code already exists", err, infra.KindDuplicateKey)
	}
	return infra.WrapRepoErr("discount code already issued for order variant", err, infra.KindConflict)
}
