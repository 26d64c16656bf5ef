// Package core defines the domain model of the finance tracker:
// transactions, budgets, goals, users and the shared error kinds.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered monetary string into a decimal.
//
// It accepts both dot (12.34) and comma (12,34) separators and rejects
// negative values: transaction amounts, budget limits and goal targets
// are all non-negative by contract.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is empty", ErrInvalidArgument)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", ErrInvalidArgument, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", ErrInvalidArgument)
	}
	return d, nil
}

// FormatAmount renders a monetary value with exactly two decimal
// places, the format every report and listing uses.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
