// Package errors provides custom error types for the fund ledger API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import (
	"net/http"

	"github.com/shopspring/decimal"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Organization errors.
var (
	ErrOrganizationNotFound = &AppError{Code: "ORGANIZATION_NOT_FOUND", Message: "Organization not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername    = &AppError{Code: "DUPLICATE_USERNAME", Message: "An organization with this username already exists", StatusCode: http.StatusConflict}
)

// Fund errors.
var (
	ErrPeriodRequired     = &AppError{Code: "PERIOD_REQUIRED", Message: "Semester and School Year are required.", StatusCode: http.StatusBadRequest}
	ErrFundRequired       = &AppError{Code: "FUND_REQUIRED", Message: "Please select a valid Fund Source.", StatusCode: http.StatusBadRequest}
	ErrFundNotFound       = &AppError{Code: "FUND_NOT_FOUND", Message: "Selected Fund not found.", StatusCode: http.StatusBadRequest}
	ErrFundPeriodMismatch = &AppError{Code: "FUND_PERIOD_MISMATCH", Message: "Fund mismatch", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrInvalidAmount             = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive number with at most two decimal places", StatusCode: http.StatusBadRequest}
	ErrInvalidTransactionType    = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type must be INFLOW or OUTFLOW", StatusCode: http.StatusBadRequest}
	ErrAttachmentTooLarge        = &AppError{Code: "ATTACHMENT_TOO_LARGE", Message: "File is too large. Max 5MB allowed.", StatusCode: http.StatusBadRequest}
	ErrDeficitConfirmationNeeded = &AppError{Code: "DEFICIT_CONFIRMATION_REQUIRED", Message: "Insufficient funds", StatusCode: http.StatusConflict}
	ErrIdempotencyKeyReused      = &AppError{Code: "IDEMPOTENCY_KEY_REUSED", Message: "Idempotency key was already used for a different transaction", StatusCode: http.StatusConflict}
)

// DeficitError reports an outflow that exceeds the fund's period balance and
// has not been confirmed by the caller. It is recoverable: re-submitting the
// same payload with the confirmation flag set posts the transaction.
type DeficitError struct {
	FundID         uint
	FundName       string
	CurrentBalance decimal.Decimal
	Amount         decimal.Decimal
	app            *AppError
}

// NewDeficitError builds a DeficitError whose message quotes the fund name,
// its current balance, and the attempted amount.
func NewDeficitError(fundID uint, fundName string, balance, amount decimal.Decimal) *DeficitError {
	msg := "Insufficient funds in " + fundName +
		". Current Balance: ₱" + FormatAmount(balance) +
		". Transaction: ₱" + FormatAmount(amount) + "."
	return &DeficitError{
		FundID:         fundID,
		FundName:       fundName,
		CurrentBalance: balance,
		Amount:         amount,
		app:            WithMessage(ErrDeficitConfirmationNeeded, msg),
	}
}

// Error implements the error interface.
func (e *DeficitError) Error() string { return e.app.Message }

// Unwrap exposes the underlying AppError so generic handlers can map the status code.
func (e *DeficitError) Unwrap() error { return e.app }
