package apperrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation was attempted on a resource whose
// current status does not allow it (e.g. posting an already posted transaction).
var ErrInvalidState = errors.New("invalid state transition")

// ErrConflict indicates the operation lost to a concurrent one and should be
// retried later (e.g. a reconciliation run already in progress).
var ErrConflict = errors.New("conflicting operation in progress")

// ErrRateNotFound indicates no applicable exchange rate exists for a currency
// pair, neither directly nor through the inverse pair.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrImbalanced indicates that the debit and credit sides of a transaction do
// not sum to the same base currency amount. Use NewImbalancedError to attach
// both totals.
var ErrImbalanced = errors.New("transaction entries are not balanced")

// ErrTimeout indicates the caller's deadline expired before the operation
// completed. The operation leaves no partial writes behind.
var ErrTimeout = errors.New("operation timed out")

// ErrInternal indicates an unexpected infrastructure failure. Callers may
// retry idempotent operations.
var ErrInternal = errors.New("internal error")

// ImbalancedError carries the mismatched debit and credit totals (in base
// currency) of a rejected transaction. It unwraps to ErrImbalanced.
type ImbalancedError struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func NewImbalancedError(totalDebits, totalCredits decimal.Decimal) *ImbalancedError {
	return &ImbalancedError{TotalDebits: totalDebits, TotalCredits: totalCredits}
}

func (e *ImbalancedError) Error() string {
	return fmt.Sprintf("%s: total debits %s, total credits %s", ErrImbalanced.Error(), e.TotalDebits.String(), e.TotalCredits.String())
}

func (e *ImbalancedError) Unwrap() error {
	return ErrImbalanced
}

// AppError wraps an underlying error with an HTTP-ish status code and message.
// Repository code uses it for infrastructure failures where no sentinel fits.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError wraps ErrNotFound with a descriptive message.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError wraps ErrValidation with a descriptive message.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// FromContextErr maps context cancellation errors onto ErrTimeout so service
// boundaries surface a single stable kind to callers. Other errors pass
// through unchanged.
func FromContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
