package apperrors

import (
	"errors"
	"net/http"
)

// ErrValidation indicates that input data failed validation checks,
// including idempotency-key reuse with a different request body.
var ErrValidation = errors.New("validation error")

// ErrInsufficientFunds indicates a charge larger than the customer's balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrTxNotFound indicates that a requested ledger transaction does not exist.
var ErrTxNotFound = errors.New("transaction not found")

// ErrReversalExists indicates the target transaction has already been reversed.
var ErrReversalExists = errors.New("transaction already reversed")

// ErrReversalForbiddenType indicates an attempt to reverse a reversal.
var ErrReversalForbiddenType = errors.New("transaction type cannot be reversed")

// ErrLedgerInvariantBroken indicates an internal consistency failure, e.g. a
// stored entry pair that does not balance. Never swallowed; operators page on it.
var ErrLedgerInvariantBroken = errors.New("ledger invariant broken")

// ErrForbiddenDevEndpoint indicates a dev-only operation invoked while the
// feature flag is off.
var ErrForbiddenDevEndpoint = errors.New("dev endpoint disabled in this environment")

// ErrDuplicate indicates that an attempt was made to create a resource that
// already exists (unique constraint violation).
var ErrDuplicate = errors.New("resource already exists")

// ErrNotFound indicates a requested non-transaction resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Code is the stable machine-readable identifier carried by every failure
// response. Callers branch on the code, not the message text.
type Code string

const (
	CodeValidationFailed      Code = "VALIDATION_FAILED"
	CodeInsufficientFunds     Code = "INSUFFICIENT_FUNDS"
	CodeTxNotFound            Code = "TX_NOT_FOUND"
	CodeReversalAlreadyExists Code = "REVERSAL_ALREADY_EXISTS"
	CodeReversalForbiddenType Code = "REVERSAL_FORBIDDEN_TYPE"
	CodeLedgerInvariantBroken Code = "LEDGER_INVARIANT_BROKEN"
	CodeForbiddenDevEndpoint  Code = "FORBIDDEN_DEV_ENDPOINT"
	CodeNotFound              Code = "NOT_FOUND"
	CodeInternal              Code = "INTERNAL"
)

// CodeOf maps an error chain to its taxonomy code. Unrecognized errors map to
// CodeInternal.
func CodeOf(err error) Code {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidationFailed
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrTxNotFound):
		return CodeTxNotFound
	case errors.Is(err, ErrReversalExists):
		return CodeReversalAlreadyExists
	case errors.Is(err, ErrReversalForbiddenType):
		return CodeReversalForbiddenType
	case errors.Is(err, ErrLedgerInvariantBroken):
		return CodeLedgerInvariantBroken
	case errors.Is(err, ErrForbiddenDevEndpoint):
		return CodeForbiddenDevEndpoint
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// HTTPStatus returns the HTTP status associated with a taxonomy code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case CodeTxNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeReversalAlreadyExists, CodeReversalForbiddenType:
		return http.StatusConflict
	case CodeForbiddenDevEndpoint:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
