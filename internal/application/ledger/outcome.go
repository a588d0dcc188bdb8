package ledger

import (
	"errors"

	"github.com/jhoicas/fims/internal/domain"
)

// Resultados registrados por Recorder.
const (
	OutcomeAccepted            = "accepted"
	OutcomeInvalidQuantity     = "invalid_quantity"
	OutcomeInvalidInput        = "invalid_input"
	OutcomeNotFound            = "not_found"
	OutcomeDuplicate           = "duplicate"
	OutcomeDuplicateInvoice    = "duplicate_invoice"
	OutcomeCapacityExceeded    = "capacity_exceeded"
	OutcomeInsufficientBalance = "insufficient_balance"
	OutcomeAlreadyReversed     = "already_reversed"
	OutcomeLockTimeout         = "lock_timeout"
	OutcomeError               = "error"
)

// Outcome clasifica el resultado de una operación del ledger.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeAccepted
	case errors.Is(err, domain.ErrInvalidQuantity):
		return OutcomeInvalidQuantity
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return OutcomeDuplicateInvoice
	case errors.Is(err, domain.ErrDuplicate):
		return OutcomeDuplicate
	case errors.Is(err, domain.ErrCapacityExceeded):
		return OutcomeCapacityExceeded
	case errors.Is(err, domain.ErrInsufficientBalance):
		return OutcomeInsufficientBalance
	case errors.Is(err, domain.ErrAlreadyReversed):
		return OutcomeAlreadyReversed
	case errors.Is(err, domain.ErrLockTimeout):
		return OutcomeLockTimeout
	default:
		return OutcomeError
	}
}

// IsBusinessRule indica si err es un rechazo de validación y no una falla de infraestructura.
func IsBusinessRule(err error) bool {
	switch Outcome(err) {
	case OutcomeAccepted, OutcomeError, OutcomeLockTimeout:
		return false
	}
	return true
}
