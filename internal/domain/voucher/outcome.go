package voucher

import "github.com/google/uuid"

type Status string

const (
	StatusIssued           Status = "issued"
	StatusExhaustedRetries Status = "exhausted_retries"
	StatusFatal            Status = "fatal"
)

// Outcome is the terminal result of issuing one variant. It is reported, not persisted.
type Outcome struct {
	Variant Variant
	Status  Status
	// Code and CodeID are set only when Status is StatusIssued.
	Code   string
	CodeID uuid.UUID
	// AttemptIndex of the last candidate tried; Attempts is the number of inserts made.
	AttemptIndex int
	Attempts     int
	Cause        error
}

func Issued(variant Variant, candidate CandidateCode, id uuid.UUID) Outcome {
	return Outcome{
		Variant:      variant,
		Status:       StatusIssued,
		Code:         candidate.Text,
		CodeID:       id,
		AttemptIndex: candidate.AttemptIndex,
		Attempts:     candidate.AttemptIndex + 1,
	}
}

func ExhaustedRetries(variant Variant, last CandidateCode, cause error) Outcome {
	return Outcome{
		Variant:      variant,
		Status:       StatusExhaustedRetries,
		AttemptIndex: last.AttemptIndex,
		Attempts:     last.AttemptIndex + 1,
		Cause:        cause,
	}
}

func Fatal(variant Variant, last CandidateCode, attempts int, cause error) Outcome {
	return Outcome{
		Variant:      variant,
		Status:       StatusFatal,
		AttemptIndex: last.AttemptIndex,
		Attempts:     attempts,
		Cause:        cause,
	}
}

func (o Outcome) IsIssued() bool {
	return o.Status == StatusIssued
}
