package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase and handler layers
var (
	// Issuance errors
	ErrInvalidIssuanceRequest = errors.New("invalid issuance request")
	ErrUnknownProductKind     = errors.New("unknown product kind")
	ErrCodeCollision          = errors.New("discount code already exists")
	ErrAlreadyIssued          = errors.New("discount code already issued for order variant")
	ErrExhaustedRetries       = errors.New("discount code candidates exhausted")
	ErrFatalIssuance          = errors.New("discount code issuance failed")

	// Webhook ledger errors
	ErrWebhookLedgerFailed = errors.New("webhook event ledger failed")
	ErrIssuanceInProgress  = errors.New("webhook event issuance in progress")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
