package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Goal tracks a user's single active savings goal. Setting a new goal
// replaces the old one; Current starts at zero and is unbounded in both
// directions.
type Goal struct {
	UserID  string
	Name    string
	Target  decimal.Decimal
	Current decimal.Decimal
}

// NewGoal validates the name and target and returns a fresh goal with
// no accumulated amount.
func NewGoal(userID, name string, target decimal.Decimal) (Goal, error) {
	if strings.TrimSpace(name) == "" {
		return Goal{}, fmt.Errorf("%w: goal name is empty", ErrInvalidArgument)
	}
	if target.IsNegative() {
		return Goal{}, fmt.Errorf("%w: goal target must not be negative", ErrInvalidArgument)
	}
	return Goal{
		UserID:  userID,
		Name:    name,
		Target:  target,
		Current: decimal.Zero,
	}, nil
}

// Progress returns floor(Current * 100 / Target) as an integer
// percentage. A zero target yields 0. The result can be negative when
// Current is negative and can exceed 100.
func (g Goal) Progress() int {
	if g.Target.IsZero() {
		return 0
	}
	pct := g.Current.Mul(decimal.NewFromInt(100)).Div(g.Target)
	return int(pct.Floor().IntPart())
}

// Reached reports whether progress has hit the target.
func (g Goal) Reached() bool {
	return g.Progress() >= 100
}
