package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tally/internal/auth"
	"tally/internal/core"
	"tally/internal/storage/memory"
)

// fakeNotifier records sent notifications.
type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Send(_ context.Context, recipient, message string) error {
	f.sent = append(f.sent, recipient+": "+message)
	return nil
}

func newTestTracker(t *testing.T) (*Tracker, *fakeNotifier) {
	t.Helper()
	n := &fakeNotifier{}
	return NewTracker(memory.New(), n), n
}

func testSession() *auth.Session {
	return &auth.Session{UserID: "u1", Email: "u1@example.com", Role: core.RoleUser}
}

func TestTracker_RequiresSession(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	if _, err := tr.AddTransaction(ctx, nil, amt("10"), "Food", date(2024, 5, 1), "", false); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("AddTransaction() without session error = %v, want ErrNoSession", err)
	}
	if _, err := tr.Balance(ctx, nil); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("Balance() without session error = %v, want ErrNoSession", err)
	}
	if err := tr.SetBudget(ctx, nil, "2024-05", amt("100")); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("SetBudget() without session error = %v, want ErrNoSession", err)
	}
	if _, err := tr.ListTransactions(ctx, nil); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("ListTransactions() without session error = %v, want ErrNoSession", err)
	}
	if _, err := tr.ListTransactions(ctx, &auth.Session{}); !errors.Is(err, core.ErrNoSession) {
		t.Errorf("ListTransactions() with empty session error = %v, want ErrNoSession", err)
	}
}

func TestTracker_ExpenseFeedsBudgetOnlyInMonth(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	sess := testSession()

	if err := tr.SetBudget(ctx, sess, "2024-05", amt("500")); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}

	// Inside the budgeted month.
	if _, err := tr.AddTransaction(ctx, sess, amt("100"), "Food", date(2024, 5, 10), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	// Outside the budgeted month.
	if _, err := tr.AddTransaction(ctx, sess, amt("40"), "Food", date(2024, 6, 10), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	// Income never touches the budget.
	if _, err := tr.AddTransaction(ctx, sess, amt("1000"), "Salary", date(2024, 5, 10), "", true); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	b, err := tr.Budgets().Get(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !b.Spent.Equal(amt("100")) {
		t.Errorf("Spent = %s, want 100", b.Spent)
	}
}

func TestTracker_IncomeFeedsGoalRegardlessOfDate(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	sess := testSession()

	if err := tr.SetGoal(ctx, sess, "Vacation", amt("2000")); err != nil {
		t.Fatalf("SetGoal() error: %v", err)
	}

	if _, err := tr.AddTransaction(ctx, sess, amt("300"), "Salary", date(2020, 1, 1), "", true); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, err := tr.AddTransaction(ctx, sess, amt("200"), "Bonus", date(2030, 12, 31), "", true); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	// Expenses never touch the goal.
	if _, err := tr.AddTransaction(ctx, sess, amt("150"), "Food", date(2024, 5, 10), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	g, err := tr.Goals().Get(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !g.Current.Equal(amt("500")) {
		t.Errorf("Current = %s, want 500", g.Current)
	}
}

func TestTracker_NoTrackersIsFine(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	sess := testSession()

	// With neither budget nor goal set, transactions still record.
	if _, err := tr.AddTransaction(ctx, sess, amt("100"), "Food", date(2024, 5, 10), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, err := tr.AddTransaction(ctx, sess, amt("500"), "Salary", date(2024, 5, 10), "", true); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	balance, err := tr.Balance(ctx, sess)
	if err != nil {
		t.Fatalf("Balance() error: %v", err)
	}
	if !balance.Equal(amt("400")) {
		t.Errorf("Balance() = %s, want 400", balance)
	}
}

func TestTracker_SetBudgetBackfillsExistingExpenses(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	sess := testSession()

	// Expenses recorded before any budget exists.
	if _, err := tr.AddTransaction(ctx, sess, amt("400"), "Rent", date(2024, 5, 1), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, err := tr.AddTransaction(ctx, sess, amt("70"), "Food", date(2024, 6, 1), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	if err := tr.SetBudget(ctx, sess, "2024-05", amt("1000")); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}

	b, err := tr.Budgets().Get(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !b.Spent.Equal(amt("400")) {
		t.Errorf("Spent after backfill = %s, want 400", b.Spent)
	}

	// New in-month expenses keep accumulating on top of the backfill.
	if _, err := tr.AddTransaction(ctx, sess, amt("300"), "Food", date(2024, 5, 20), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	b, err = tr.Budgets().Get(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !b.Spent.Equal(amt("700")) {
		t.Errorf("Spent = %s, want 700", b.Spent)
	}
}

func TestTracker_CheckExpenseLimit(t *testing.T) {
	tr, n := newTestTracker(t)
	ctx := context.Background()
	sess := testSession()

	// No budget set: silent no-op.
	if err := tr.CheckExpenseLimit(ctx, sess, sess.Email); err != nil {
		t.Fatalf("CheckExpenseLimit() error: %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("notification sent without a budget: %v", n.sent)
	}

	if err := tr.SetBudget(ctx, sess, "2024-05", amt("300")); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if _, err := tr.AddTransaction(ctx, sess, amt("250"), "Food", date(2024, 5, 10), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	// Within the limit: no notification.
	if err := tr.CheckExpenseLimit(ctx, sess, sess.Email); err != nil {
		t.Fatalf("CheckExpenseLimit() error: %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("notification sent within the limit: %v", n.sent)
	}

	if _, err := tr.AddTransaction(ctx, sess, amt("150"), "Food", date(2024, 5, 11), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	if err := tr.CheckExpenseLimit(ctx, sess, sess.Email); err != nil {
		t.Fatalf("CheckExpenseLimit() error: %v", err)
	}
	if len(n.sent) != 1 {
		t.Fatalf("got %d notifications, want 1", len(n.sent))
	}
	want := "u1@example.com: Expense limit exceeded for 2024-05: spent 400.00 of 300.00"
	if n.sent[0] != want {
		t.Errorf("notification = %q, want %q", n.sent[0], want)
	}

	// No suppression: every call while over budget sends again.
	if err := tr.CheckExpenseLimit(ctx, sess, sess.Email); err != nil {
		t.Fatalf("CheckExpenseLimit() error: %v", err)
	}
	if len(n.sent) != 2 {
		t.Fatalf("got %d notifications after repeat check, want 2", len(n.sent))
	}
}

func TestTracker_NilNotifierIsSilent(t *testing.T) {
	tr := NewTracker(memory.New(), nil)
	ctx := context.Background()
	sess := testSession()

	if err := tr.SetBudget(ctx, sess, "2024-05", amt("100")); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	if _, err := tr.AddTransaction(ctx, sess, amt("200"), "Food", date(2024, 5, 10), "", false); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if err := tr.CheckExpenseLimit(ctx, sess, sess.Email); err != nil {
		t.Errorf("CheckExpenseLimit() with nil notifier error: %v", err)
	}
}

func TestTracker_RemoveDoesNotRollBackTrackers(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	sess := testSession()

	if err := tr.SetBudget(ctx, sess, "2024-05", amt("500")); err != nil {
		t.Fatalf("SetBudget() error: %v", err)
	}
	txn, err := tr.AddTransaction(ctx, sess, amt("100"), "Food", date(2024, 5, 10), "", false)
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	if err := tr.RemoveTransaction(ctx, sess, txn.ID); err != nil {
		t.Fatalf("RemoveTransaction() error: %v", err)
	}

	b, err := tr.Budgets().Get(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !b.Spent.Equal(amt("100")) {
		t.Errorf("Spent after removal = %s, want 100 (no rollback)", b.Spent)
	}

	listing, err := tr.Ledger().List(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if !strings.Contains(listing, "No transactions found.") {
		t.Errorf("ledger still has entries: %q", listing)
	}
}
