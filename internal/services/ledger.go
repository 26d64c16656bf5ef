// Package services implements the business logic of the tracker: the
// transaction ledger, the budget and goal trackers, and the facade that
// coordinates them for a logged-in session.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/storage"
)

// LedgerService stores per-user dated income/expense entries and
// answers the aggregation queries: balance, period sums, category
// breakdowns and formatted listings.
type LedgerService struct {
	txns storage.TransactionStore
}

func NewLedgerService(txns storage.TransactionStore) *LedgerService {
	return &LedgerService{txns: txns}
}

// Add validates and stores a new transaction for the user.
func (s *LedgerService) Add(ctx context.Context, userID string, amount decimal.Decimal, category string, date time.Time, description string, income bool) (core.Transaction, error) {
	t := core.Transaction{
		UserID:      userID,
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Date:        core.DateOnly(date),
		Description: description,
		Income:      income,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.txns.Create(ctx, &t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"user_id", userID,
		"amount", core.FormatAmount(t.Amount),
		"category", t.Category,
		"income", t.Income)
	return t, nil
}

// Remove deletes the user's transaction by id. An unknown id, or one
// owned by another user, fails with core.ErrNotFound and leaves the
// ledger unchanged.
func (s *LedgerService) Remove(ctx context.Context, userID, id string) error {
	if err := s.txns.Delete(ctx, userID, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction removed", "id", id, "user_id", userID)
	return nil
}

// TransactionPatch carries the mutable transaction fields. Nil fields
// are left untouched; date and income flag are fixed at creation.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
}

// Update applies a patch to an existing transaction.
func (s *LedgerService) Update(ctx context.Context, userID, id string, patch TransactionPatch) (core.Transaction, error) {
	t, err := s.txns.Get(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Category != nil {
		t.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.txns.Update(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

// Balance sums all of the user's transactions, income positive and
// expenses negative, with no date filter. An empty ledger yields zero.
func (s *LedgerService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	list, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range list {
		total = total.Add(t.Signed())
	}
	return total, nil
}

// IncomeOfPeriod sums income amounts dated within [start, end], both
// ends inclusive. A reversed range matches nothing and yields zero.
func (s *LedgerService) IncomeOfPeriod(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	return s.sumOfPeriod(ctx, userID, start, end, true)
}

// ExpensesOfPeriod sums expense amounts dated within [start, end].
func (s *LedgerService) ExpensesOfPeriod(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	return s.sumOfPeriod(ctx, userID, start, end, false)
}

func (s *LedgerService) sumOfPeriod(ctx context.Context, userID string, start, end time.Time, income bool) (decimal.Decimal, error) {
	list, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range list {
		if t.Income == income && inPeriod(t.Date, start, end) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// ExpensesByCategory groups expense amounts within the inclusive date
// range by exact category string. Categories with no matching expenses
// are absent from the map.
func (s *LedgerService) ExpensesByCategory(ctx context.Context, userID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	list, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make(map[string]decimal.Decimal)
	for _, t := range list {
		if t.Income || !inPeriod(t.Date, start, end) {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out, nil
}

// MonthlyExpenses sums expense amounts whose date falls in the given
// yyyy-MM month token.
func (s *LedgerService) MonthlyExpenses(ctx context.Context, userID string, month core.Month) (decimal.Decimal, error) {
	list, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range list {
		if !t.Income && month.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// Report combines the all-time balance with the period's income,
// expenses and category breakdown into a fixed-structure text report.
// Categories are listed in sorted order so output is deterministic.
func (s *LedgerService) Report(ctx context.Context, userID string, start, end time.Time) (string, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return "", err
	}
	income, err := s.IncomeOfPeriod(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	expenses, err := s.ExpensesOfPeriod(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	byCategory, err := s.ExpensesByCategory(ctx, userID, start, end)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("===== Financial Report =====\n")
	fmt.Fprintf(&b, "Period: %s to %s\n", start.Format(core.DateLayout), end.Format(core.DateLayout))
	fmt.Fprintf(&b, "Balance: %s\n", core.FormatAmount(balance))
	fmt.Fprintf(&b, "Income for period: %s\n", core.FormatAmount(income))
	fmt.Fprintf(&b, "Expenses for period: %s\n", core.FormatAmount(expenses))
	b.WriteString("Expenses by category:\n")
	for _, cat := range sortedKeys(byCategory) {
		fmt.Fprintf(&b, "- %s: %s\n", cat, core.FormatAmount(byCategory[cat]))
	}
	return b.String(), nil
}

// inPeriod reports whether d lies within [start, end], inclusive on
// both ends. Comparison is on calendar dates.
func inPeriod(d, start, end time.Time) bool {
	d = core.DateOnly(d)
	return !d.Before(core.DateOnly(start)) && !d.After(core.DateOnly(end))
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
