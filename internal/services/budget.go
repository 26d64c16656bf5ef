package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/storage"
)

// BudgetService tracks one active monthly budget per user and the
// expenses accumulated against it.
type BudgetService struct {
	budgets storage.BudgetStore
}

func NewBudgetService(budgets storage.BudgetStore) *BudgetService {
	return &BudgetService{budgets: budgets}
}

// Set replaces any existing budget for the user with a fresh record.
// Accumulated spending is reset to zero; prior budgets are not kept.
func (s *BudgetService) Set(ctx context.Context, userID string, month core.Month, limit decimal.Decimal) error {
	b, err := core.NewBudgetRecord(userID, month, limit)
	if err != nil {
		return err
	}
	if err := s.budgets.Put(ctx, b); err != nil {
		return fmt.Errorf("put budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget set",
		"user_id", userID,
		"month", month.String(),
		"limit", core.FormatAmount(limit))
	return nil
}

// AddExpense adds the amount to the accumulated spending. The sign is
// not checked: callers pass positive expense amounts, and a negative
// input simply reduces the accumulation. Fails with core.ErrNotFound
// when no budget is set.
func (s *BudgetService) AddExpense(ctx context.Context, userID string, amount decimal.Decimal) error {
	b, err := s.budgets.Get(ctx, userID)
	if err != nil {
		return err
	}
	b.Spent = b.Spent.Add(amount)
	if err := s.budgets.Update(ctx, b); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

// IsSet reports whether the user has an active budget.
func (s *BudgetService) IsSet(ctx context.Context, userID string) (bool, error) {
	_, err := s.budgets.Get(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the active budget record, core.ErrNotFound when unset.
func (s *BudgetService) Get(ctx context.Context, userID string) (core.BudgetRecord, error) {
	return s.budgets.Get(ctx, userID)
}

// Remaining returns limit minus accumulated spending; negative means
// over budget.
func (s *BudgetService) Remaining(ctx context.Context, userID string) (decimal.Decimal, error) {
	b, err := s.budgets.Get(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Remaining(), nil
}

// View renders the budget as text: a "not set" message, or the
// limit/spent/remaining lines plus an overrun warning when spending
// exceeds the limit.
func (s *BudgetService) View(ctx context.Context, userID string) (string, error) {
	b, err := s.budgets.Get(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return "Budget is not set.\n", nil
	}
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Budget for %s: %s\n", b.Month, core.FormatAmount(b.Limit))
	fmt.Fprintf(&out, "Spent: %s\n", core.FormatAmount(b.Spent))
	fmt.Fprintf(&out, "Remaining: %s\n", core.FormatAmount(b.Remaining()))
	if remaining := b.Remaining(); remaining.IsNegative() {
		fmt.Fprintf(&out, "Warning: budget exceeded by %s\n", core.FormatAmount(remaining.Abs()))
	}
	return out.String(), nil
}
