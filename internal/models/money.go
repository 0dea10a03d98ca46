package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ParseAmount for non-numeric, non-positive,
// over-precise or oversized input.
var ErrInvalidAmount = errors.New("invalid amount")

// maxAmount is the first value a numeric(14,2) column cannot hold.
var maxAmount = decimal.New(1, 12)

// ParseAmount parses a user-entered amount such as "1,500.50". Grouping
// commas and surrounding spaces are ignored. The result is strictly positive
// and has at most two fractional digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(2)) || amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount.Truncate(2), nil
}

// ParseTransactionType accepts "inflow"/"outflow" in any case.
func ParseTransactionType(raw string) (TransactionType, bool) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case TransactionTypeInflow, TransactionTypeOutflow:
		return t, true
	}
	return "", false
}
