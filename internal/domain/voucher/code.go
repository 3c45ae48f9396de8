package voucher

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrEmptyBaseCode    = errors.New("base code must not be empty")
	ErrEmptySuffixLabel = errors.New("suffix label must not be empty")
	ErrNonPrintable     = errors.New("code labels must be printable and contain no whitespace")
	ErrUnderivableCode  = errors.New("base code cannot be derived from customer identity or order id")
)

const (
	DefaultMaxAttempts = 10

	maxBaseCodeLen   = 12
	orderFallbackLen = 8
)

// CandidateCode is never persisted directly; it only names an insert attempt.
type CandidateCode struct {
	Text         string
	AttemptIndex int
}

// Candidate names attempt 0 baseCode+suffixLabel and attempt n>=1 baseCode+suffixLabel+(n+1),
// so the second candidate for "X"/"25Y" is "X25Y2".
func Candidate(baseCode, suffixLabel string, attemptIndex int) CandidateCode {
	text := baseCode + suffixLabel
	if attemptIndex >= 1 {
		text += strconv.Itoa(attemptIndex + 1)
	}
	return CandidateCode{Text: text, AttemptIndex: attemptIndex}
}

func ValidateLabels(baseCode, suffixLabel string) error {
	if baseCode == "" {
		return ErrEmptyBaseCode
	}
	if suffixLabel == "" {
		return ErrEmptySuffixLabel
	}
	if !isPrintableLabel(baseCode) || !isPrintableLabel(suffixLabel) {
		return ErrNonPrintable
	}
	return nil
}

func isPrintableLabel(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// DeriveBaseCode builds the human-readable stem from the customer identity: the email
// domain is dropped, only A-Z0-9 survive and the result is capped at 12 characters.
// An identity with no usable characters falls back to the first 8 alphanumerics of the order id.
func DeriveBaseCode(customerIdentity, orderID string) (string, error) {
	identity := strings.TrimSpace(customerIdentity)
	if at := strings.LastIndex(identity, "@"); at > 0 {
		identity = identity[:at]
	}

	if base := alnumUpper(identity, maxBaseCodeLen); base != "" {
		return base, nil
	}
	if base := alnumUpper(orderID, orderFallbackLen); base != "" {
		return base, nil
	}
	return "", ErrUnderivableCode
}

func alnumUpper(s string, limit int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if b.Len() >= limit {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
