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

// GoalService tracks one active savings goal per user.
type GoalService struct {
	goals storage.GoalStore
}

func NewGoalService(goals storage.GoalStore) *GoalService {
	return &GoalService{goals: goals}
}

// Set replaces any existing goal for the user; the accumulated amount
// is reset to zero.
func (s *GoalService) Set(ctx context.Context, userID, name string, target decimal.Decimal) error {
	g, err := core.NewGoal(userID, name, target)
	if err != nil {
		return err
	}
	if err := s.goals.Put(ctx, g); err != nil {
		return fmt.Errorf("put goal: %w", err)
	}
	slog.InfoContext(ctx, "Goal set",
		"user_id", userID,
		"name", name,
		"target", core.FormatAmount(target))
	return nil
}

// AddAmount accumulates a contribution. No sign restriction: negative
// amounts reduce the total. Fails with core.ErrNotFound when unset.
func (s *GoalService) AddAmount(ctx context.Context, userID string, amount decimal.Decimal) error {
	g, err := s.goals.Get(ctx, userID)
	if err != nil {
		return err
	}
	g.Current = g.Current.Add(amount)
	if err := s.goals.Update(ctx, g); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

// IsSet reports whether the user has an active goal.
func (s *GoalService) IsSet(ctx context.Context, userID string) (bool, error) {
	_, err := s.goals.Get(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the active goal, core.ErrNotFound when unset.
func (s *GoalService) Get(ctx context.Context, userID string) (core.Goal, error) {
	return s.goals.Get(ctx, userID)
}

// Progress returns the integer percentage of the goal reached. It has
// no side effects and is safe to call repeatedly.
func (s *GoalService) Progress(ctx context.Context, userID string) (int, error) {
	g, err := s.goals.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return g.Progress(), nil
}

// View renders the goal as text: a "not set" message, or the name,
// target and progress lines plus a reached marker at 100% or more.
func (s *GoalService) View(ctx context.Context, userID string) (string, error) {
	g, err := s.goals.Get(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return "Goal is not set.\n", nil
	}
	if err != nil {
		return "", err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Goal: %s\n", g.Name)
	fmt.Fprintf(&out, "Target: %s\n", core.FormatAmount(g.Target))
	fmt.Fprintf(&out, "Saved: %s\n", core.FormatAmount(g.Current))
	fmt.Fprintf(&out, "Progress: %d%%\n", g.Progress())
	if g.Reached() {
		out.WriteString("Goal reached!\n")
	}
	return out.String(), nil
}
