package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire/display format for transaction dates.
const DateLayout = "2006-01-02"

// Transaction is a single dated income or expense entry in a user's
// ledger. Date and Income are fixed at creation; Amount, Category and
// Description may be changed afterwards.
type Transaction struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Description string
	Income      bool
	CreatedAt   time.Time
}

// Validate checks the transaction invariants: a non-negative amount and
// a non-empty category.
func (t Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidArgument)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is empty", ErrInvalidArgument)
	}
	return nil
}

// Signed returns the amount with its sign: positive for income,
// negative for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TypeLabel returns the display label for the income flag.
func (t Transaction) TypeLabel() string {
	if t.Income {
		return "Income"
	}
	return "Expense"
}

// DateOnly truncates a timestamp to a calendar date (midnight UTC).
// Transactions carry no time component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
