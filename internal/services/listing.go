package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tally/internal/core"
)

// emptyListing is the text returned when a filter matches nothing.
const emptyListing = "No transactions found.\n"

// List renders every transaction in the user's ledger, in creation
// order.
func (s *LedgerService) List(ctx context.Context, userID string) (string, error) {
	return s.listWhere(ctx, userID, "Transactions:", func(core.Transaction) bool { return true })
}

// ListByDate renders transactions on the exact calendar date.
func (s *LedgerService) ListByDate(ctx context.Context, userID string, date time.Time) (string, error) {
	day := core.DateOnly(date)
	header := fmt.Sprintf("Transactions on %s:", day.Format(core.DateLayout))
	return s.listWhere(ctx, userID, header, func(t core.Transaction) bool {
		return t.Date.Equal(day)
	})
}

// ListByCategory renders transactions with the exact category string
// (case-sensitive).
func (s *LedgerService) ListByCategory(ctx context.Context, userID, category string) (string, error) {
	header := fmt.Sprintf("Transactions in category %s:", category)
	return s.listWhere(ctx, userID, header, func(t core.Transaction) bool {
		return t.Category == category
	})
}

// ListByType renders either income or expense transactions.
func (s *LedgerService) ListByType(ctx context.Context, userID string, income bool) (string, error) {
	kind := "Expense"
	if income {
		kind = "Income"
	}
	return s.listWhere(ctx, userID, kind+" transactions:", func(t core.Transaction) bool {
		return t.Income == income
	})
}

func (s *LedgerService) listWhere(ctx context.Context, userID, header string, match func(core.Transaction) bool) (string, error) {
	list, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list transactions: %w", err)
	}

	var b strings.Builder
	n := 0
	for _, t := range list {
		if !match(t) {
			continue
		}
		if n == 0 {
			b.WriteString(header + "\n")
		}
		b.WriteString(formatTransactionLine(t))
		n++
	}
	if n == 0 {
		return emptyListing, nil
	}
	return b.String(), nil
}

// formatTransactionLine renders the fixed single-line transaction
// format shared by all listings.
func formatTransactionLine(t core.Transaction) string {
	return fmt.Sprintf("ID: %s, Amount: %s, Category: %s, Date: %s, Description: %s, Type: %s\n",
		t.ID,
		core.FormatAmount(t.Amount),
		t.Category,
		t.Date.Format(core.DateLayout),
		t.Description,
		t.TypeLabel(),
	)
}
