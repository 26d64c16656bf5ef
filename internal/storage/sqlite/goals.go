package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

type goalStore struct {
	db *sql.DB
}

func (s *goalStore) Put(ctx context.Context, g core.Goal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (user_id, name, target, current)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			target = excluded.target,
			current = excluded.current`,
		g.UserID, g.Name, g.Target.String(), g.Current.String(),
	)
	if err != nil {
		return fmt.Errorf("put goal: %w", err)
	}
	return nil
}

func (s *goalStore) Get(ctx context.Context, userID string) (core.Goal, error) {
	var (
		g               core.Goal
		target, current string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, target, current FROM goals WHERE user_id = ?`, userID,
	).Scan(&g.UserID, &g.Name, &target, &current)
	if err == sql.ErrNoRows {
		return core.Goal{}, fmt.Errorf("goal for user %s: %w", userID, core.ErrNotFound)
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	if g.Target, err = decimal.NewFromString(target); err != nil {
		return core.Goal{}, fmt.Errorf("parse stored target %q: %w", target, err)
	}
	if g.Current, err = decimal.NewFromString(current); err != nil {
		return core.Goal{}, fmt.Errorf("parse stored current %q: %w", current, err)
	}
	return g, nil
}

func (s *goalStore) Update(ctx context.Context, g core.Goal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goals SET name = ?, target = ?, current = ? WHERE user_id = ?`,
		g.Name, g.Target.String(), g.Current.String(), g.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, fmt.Sprintf("goal for user %s", g.UserID))
}
