package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetRecord tracks a user's single active monthly budget. Setting a
// new budget replaces the old record entirely; Spent starts at zero and
// grows without an upper clamp, so it can exceed Limit.
type BudgetRecord struct {
	UserID string
	Month  Month
	Limit  decimal.Decimal
	Spent  decimal.Decimal
}

// NewBudgetRecord validates the month token and limit and returns a
// fresh record with nothing spent.
func NewBudgetRecord(userID string, month Month, limit decimal.Decimal) (BudgetRecord, error) {
	if month == "" {
		return BudgetRecord{}, fmt.Errorf("%w: budget month is empty", ErrInvalidArgument)
	}
	if limit.IsNegative() {
		return BudgetRecord{}, fmt.Errorf("%w: budget limit must not be negative", ErrInvalidArgument)
	}
	return BudgetRecord{
		UserID: userID,
		Month:  month,
		Limit:  limit,
		Spent:  decimal.Zero,
	}, nil
}

// Remaining returns Limit minus Spent. Negative means over budget.
func (b BudgetRecord) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}

// Exceeded reports whether accumulated spending is strictly above the
// limit.
func (b BudgetRecord) Exceeded() bool {
	return b.Spent.GreaterThan(b.Limit)
}
