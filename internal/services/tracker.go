package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/auth"
	"tally/internal/core"
	"tally/internal/storage"
)

// Notifier is the fire-and-forget notification sink the facade uses
// for over-budget alerts. No delivery guarantee is assumed.
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}

// Tracker is the facade coordinating the ledger, budget and goal
// services for a logged-in session. It owns the one piece of
// cross-component logic: on every added transaction, expenses feed the
// active budget when the months match and income feeds the active goal
// unconditionally.
type Tracker struct {
	ledger   *LedgerService
	budgets  *BudgetService
	goals    *GoalService
	notifier Notifier
}

// NewTracker wires the facade over a backend store. notifier may be
// nil, in which case over-budget checks are silent no-ops.
func NewTracker(store storage.Store, notifier Notifier) *Tracker {
	return &Tracker{
		ledger:   NewLedgerService(store.Transactions()),
		budgets:  NewBudgetService(store.Budgets()),
		goals:    NewGoalService(store.Goals()),
		notifier: notifier,
	}
}

// Ledger exposes the underlying ledger service.
func (t *Tracker) Ledger() *LedgerService { return t.ledger }

// Budgets exposes the underlying budget service.
func (t *Tracker) Budgets() *BudgetService { return t.budgets }

// Goals exposes the underlying goal service.
func (t *Tracker) Goals() *GoalService { return t.goals }

func requireSession(sess *auth.Session) error {
	if sess == nil || sess.UserID == "" {
		return core.ErrNoSession
	}
	return nil
}

// AddTransaction records a transaction and propagates it to the
// trackers: an expense dated inside the budgeted month increases the
// budget's accumulated spending, and income increases the goal's
// current amount regardless of date. The storage writes are separate
// operations, not one atomic unit.
func (t *Tracker) AddTransaction(ctx context.Context, sess *auth.Session, amount decimal.Decimal, category string, date time.Time, description string, income bool) (core.Transaction, error) {
	if err := requireSession(sess); err != nil {
		return core.Transaction{}, err
	}

	txn, err := t.ledger.Add(ctx, sess.UserID, amount, category, date, description, income)
	if err != nil {
		return core.Transaction{}, err
	}

	if !income {
		if err := t.applyToBudget(ctx, sess.UserID, txn); err != nil {
			return core.Transaction{}, err
		}
	} else {
		if err := t.applyToGoal(ctx, sess.UserID, txn); err != nil {
			return core.Transaction{}, err
		}
	}
	return txn, nil
}

func (t *Tracker) applyToBudget(ctx context.Context, userID string, txn core.Transaction) error {
	b, err := t.budgets.Get(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get budget: %w", err)
	}
	if !b.Month.Contains(txn.Date) {
		return nil
	}
	if err := t.budgets.AddExpense(ctx, userID, txn.Amount); err != nil {
		return fmt.Errorf("track expense against budget: %w", err)
	}
	return nil
}

func (t *Tracker) applyToGoal(ctx context.Context, userID string, txn core.Transaction) error {
	set, err := t.goals.IsSet(ctx, userID)
	if err != nil {
		return fmt.Errorf("check goal: %w", err)
	}
	if !set {
		return nil
	}
	if err := t.goals.AddAmount(ctx, userID, txn.Amount); err != nil {
		return fmt.Errorf("track income against goal: %w", err)
	}
	return nil
}

// RemoveTransaction deletes a ledger entry. Budget and goal
// accumulations are not rolled back.
func (t *Tracker) RemoveTransaction(ctx context.Context, sess *auth.Session, id string) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return t.ledger.Remove(ctx, sess.UserID, id)
}

// UpdateTransaction patches the mutable fields of a ledger entry.
func (t *Tracker) UpdateTransaction(ctx context.Context, sess *auth.Session, id string, patch TransactionPatch) (core.Transaction, error) {
	if err := requireSession(sess); err != nil {
		return core.Transaction{}, err
	}
	return t.ledger.Update(ctx, sess.UserID, id, patch)
}

// SetBudget replaces the user's budget and backfills the accumulated
// spending from expense transactions already recorded in that month.
func (t *Tracker) SetBudget(ctx context.Context, sess *auth.Session, month core.Month, limit decimal.Decimal) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := t.budgets.Set(ctx, sess.UserID, month, limit); err != nil {
		return err
	}

	spent, err := t.ledger.MonthlyExpenses(ctx, sess.UserID, month)
	if err != nil {
		return fmt.Errorf("backfill monthly expenses: %w", err)
	}
	if spent.IsZero() {
		return nil
	}
	if err := t.budgets.AddExpense(ctx, sess.UserID, spent); err != nil {
		return fmt.Errorf("backfill budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget backfilled from existing expenses",
		"user_id", sess.UserID,
		"month", month.String(),
		"spent", core.FormatAmount(spent))
	return nil
}

// SetGoal replaces the user's savings goal.
func (t *Tracker) SetGoal(ctx context.Context, sess *auth.Session, name string, target decimal.Decimal) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return t.goals.Set(ctx, sess.UserID, name, target)
}

// CheckExpenseLimit sends one over-limit notification to the recipient
// when accumulated spending exceeds the budget. No budget set, or
// spending within the limit, is a silent no-op. There is no repeat
// suppression: each call while over budget sends again.
func (t *Tracker) CheckExpenseLimit(ctx context.Context, sess *auth.Session, recipient string) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	b, err := t.budgets.Get(ctx, sess.UserID)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !b.Exceeded() {
		return nil
	}
	if t.notifier == nil {
		return nil
	}

	msg := fmt.Sprintf("Expense limit exceeded for %s: spent %s of %s",
		b.Month, core.FormatAmount(b.Spent), core.FormatAmount(b.Limit))
	if err := t.notifier.Send(ctx, recipient, msg); err != nil {
		return fmt.Errorf("send over-limit notification: %w", err)
	}
	slog.InfoContext(ctx, "Over-limit notification sent",
		"user_id", sess.UserID,
		"recipient", recipient,
		"month", b.Month.String())
	return nil
}

// ListTransactions renders the full ledger listing for the session
// user.
func (t *Tracker) ListTransactions(ctx context.Context, sess *auth.Session) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.ledger.List(ctx, sess.UserID)
}

// ListTransactionsByDate renders the listing filtered to one calendar
// date.
func (t *Tracker) ListTransactionsByDate(ctx context.Context, sess *auth.Session, date time.Time) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.ledger.ListByDate(ctx, sess.UserID, date)
}

// ListTransactionsByCategory renders the listing filtered to one
// category.
func (t *Tracker) ListTransactionsByCategory(ctx context.Context, sess *auth.Session, category string) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.ledger.ListByCategory(ctx, sess.UserID, category)
}

// ListTransactionsByType renders either the income or the expense
// listing.
func (t *Tracker) ListTransactionsByType(ctx context.Context, sess *auth.Session, income bool) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.ledger.ListByType(ctx, sess.UserID, income)
}

// Balance returns the session user's all-time balance.
func (t *Tracker) Balance(ctx context.Context, sess *auth.Session) (decimal.Decimal, error) {
	if err := requireSession(sess); err != nil {
		return decimal.Zero, err
	}
	return t.ledger.Balance(ctx, sess.UserID)
}

// Report renders the period report for the session user.
func (t *Tracker) Report(ctx context.Context, sess *auth.Session, start, end time.Time) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.ledger.Report(ctx, sess.UserID, start, end)
}

// ViewBudget renders the session user's budget text.
func (t *Tracker) ViewBudget(ctx context.Context, sess *auth.Session) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.budgets.View(ctx, sess.UserID)
}

// ViewGoal renders the session user's goal text.
func (t *Tracker) ViewGoal(ctx context.Context, sess *auth.Session) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return t.goals.View(ctx, sess.UserID)
}
