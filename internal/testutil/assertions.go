package testutil

import (
	"errors"
	"testing"

	apperrors "fundledger/internal/errors"

	"github.com/shopspring/decimal"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAmount compares a decimal against a literal such as "-500.00".
func AssertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(Amount(t, want)) {
		t.Errorf("expected amount %s, got %s", want, got.StringFixed(2))
	}
}

// AssertDeficit checks that err asks for deficit confirmation and carries the
// given balance and amount. It returns the error for further checks.
func AssertDeficit(t *testing.T, err error, balance, amount string) *apperrors.DeficitError {
	t.Helper()

	var deficit *apperrors.DeficitError
	if !errors.As(err, &deficit) {
		t.Fatalf("expected *DeficitError, got %T: %v", err, err)
	}
	AssertAppError(t, err, "DEFICIT_CONFIRMATION_REQUIRED")
	AssertAmount(t, deficit.CurrentBalance, balance)
	AssertAmount(t, deficit.Amount, amount)
	return deficit
}
