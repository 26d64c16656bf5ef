package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

type budgetStore struct {
	db *sql.DB
}

// Put replaces the user's budget row; only one is kept per user.
func (s *budgetStore) Put(ctx context.Context, b core.BudgetRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, month, budget_limit, spent)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			month = excluded.month,
			budget_limit = excluded.budget_limit,
			spent = excluded.spent`,
		b.UserID, b.Month.String(), b.Limit.String(), b.Spent.String(),
	)
	if err != nil {
		return fmt.Errorf("put budget: %w", err)
	}
	return nil
}

func (s *budgetStore) Get(ctx context.Context, userID string) (core.BudgetRecord, error) {
	var (
		b            core.BudgetRecord
		month        string
		limit, spent string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, month, budget_limit, spent FROM budgets WHERE user_id = ?`, userID,
	).Scan(&b.UserID, &month, &limit, &spent)
	if err == sql.ErrNoRows {
		return core.BudgetRecord{}, fmt.Errorf("budget for user %s: %w", userID, core.ErrNotFound)
	}
	if err != nil {
		return core.BudgetRecord{}, fmt.Errorf("get budget: %w", err)
	}
	b.Month = core.Month(month)
	if b.Limit, err = decimal.NewFromString(limit); err != nil {
		return core.BudgetRecord{}, fmt.Errorf("parse stored limit %q: %w", limit, err)
	}
	if b.Spent, err = decimal.NewFromString(spent); err != nil {
		return core.BudgetRecord{}, fmt.Errorf("parse stored spent %q: %w", spent, err)
	}
	return b, nil
}

func (s *budgetStore) Update(ctx context.Context, b core.BudgetRecord) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET month = ?, budget_limit = ?, spent = ? WHERE user_id = ?`,
		b.Month.String(), b.Limit.String(), b.Spent.String(), b.UserID,
	)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res, fmt.Sprintf("budget for user %s", b.UserID))
}
