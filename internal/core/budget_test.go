package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewBudgetRecord(t *testing.T) {
	b, err := NewBudgetRecord("u1", "2024-05", decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("NewBudgetRecord() unexpected error: %v", err)
	}
	if !b.Spent.IsZero() {
		t.Errorf("NewBudgetRecord() Spent = %s, want 0", b.Spent)
	}

	if _, err := NewBudgetRecord("u1", "", decimal.NewFromInt(500)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewBudgetRecord() with empty month error = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewBudgetRecord("u1", "2024-05", decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewBudgetRecord() with negative limit error = %v, want ErrInvalidArgument", err)
	}
}

func TestBudgetRecord_RemainingAndExceeded(t *testing.T) {
	b := BudgetRecord{Limit: decimal.NewFromInt(500), Spent: decimal.NewFromInt(200)}
	if got := b.Remaining(); !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Remaining() = %s, want 300", got)
	}
	if b.Exceeded() {
		t.Error("Exceeded() = true under the limit, want false")
	}

	// Spending exactly at the limit is not an overrun.
	b.Spent = decimal.NewFromInt(500)
	if b.Exceeded() {
		t.Error("Exceeded() = true at exactly the limit, want false")
	}

	b.Spent = decimal.NewFromInt(501)
	if !b.Exceeded() {
		t.Error("Exceeded() = false over the limit, want true")
	}
	if got := b.Remaining(); !got.Equal(decimal.NewFromInt(-1)) {
		t.Errorf("Remaining() = %s, want -1", got)
	}
}
