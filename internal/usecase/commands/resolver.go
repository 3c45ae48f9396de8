package commands

import (
	"context"
	"log/slog"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/infra"
	"voucher-issuer/internal/pkg/errs"
)

type CodeIssuer interface {
	IssueUnique(ctx context.Context, baseCode, suffixLabel string, attrs voucher.Attributes, maxAttempts int) voucher.Outcome
}

// CodeResolver walks the candidate sequence of one variant until an insert succeeds.
// Uniqueness is only ever learned from insert failures; nothing is read beforehand.
type CodeResolver struct {
	codes  DiscountCodeRepository
	logger *slog.Logger
}

func NewCodeResolver(codes DiscountCodeRepository, logger *slog.Logger) *CodeResolver {
	return &CodeResolver{
		codes:  codes,
		logger: logger,
	}
}

func (r *CodeResolver) IssueUnique(
	ctx context.Context,
	baseCode, suffixLabel string,
	attrs voucher.Attributes,
	maxAttempts int,
) voucher.Outcome {
	variant := voucher.Variant{SuffixLabel: suffixLabel, Attributes: attrs}
	first := voucher.Candidate(baseCode, suffixLabel, 0)

	if err := voucher.ValidateLabels(baseCode, suffixLabel); err != nil {
		return voucher.Fatal(variant, first, 0, errs.Mark(err, errs.ErrFatalIssuance))
	}
	if err := attrs.Validate(); err != nil {
		return voucher.Fatal(variant, first, 0, errs.Mark(err, errs.ErrFatalIssuance))
	}
	if maxAttempts <= 0 {
		maxAttempts = voucher.DefaultMaxAttempts
	}

	last := first
	for attemptIndex := 0; attemptIndex < maxAttempts; attemptIndex++ {
		last = voucher.Candidate(baseCode, suffixLabel, attemptIndex)

		id, err := r.codes.Insert(ctx, voucher.NewDiscountCode(last, suffixLabel, attrs))
		if err == nil {
			r.logger.Info("discount code issued",
				"order_id", attrs.OrderID,
				"suffix_label", suffixLabel,
				"code", last.Text,
				"attempt_index", attemptIndex)
			return voucher.Issued(variant, last, id)
		}

		if isCodeCollision(err) {
			r.logger.Debug("discount code candidate already taken",
				"order_id", attrs.OrderID,
				"code", last.Text,
				"attempt_index", attemptIndex)
			continue
		}

		cause := fatalCause(err)
		r.logger.Error("discount code issuance failed",
			"order_id", attrs.OrderID,
			"suffix_label", suffixLabel,
			"code", last.Text,
			"attempt_index", attemptIndex,
			"error", cause.Error())
		return voucher.Fatal(variant, last, attemptIndex+1, cause)
	}

	cause := errs.Mark(
		errs.Newf("no free code among %d candidates starting at %s", maxAttempts, first.Text),
		errs.ErrExhaustedRetries,
	)
	r.logger.Warn("discount code candidates exhausted",
		"order_id", attrs.OrderID,
		"suffix_label", suffixLabel,
		"first_candidate", first.Text,
		"last_candidate", last.Text,
		"attempts", maxAttempts)
	return voucher.ExhaustedRetries(variant, last, cause)
}

// isCodeCollision is true only for a violation of the code text uniqueness; every other
// failure is terminal because repeating the same write cannot change its result.
func isCodeCollision(err error) bool {
	return infra.IsKind(err, infra.KindDuplicateKey) || errs.Is(err, errs.ErrCodeCollision)
}

func fatalCause(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		err = errs.Mark(err, errs.ErrAlreadyIssued)
	}
	return errs.Mark(err, errs.ErrFatalIssuance)
}
