// Package storage defines the repository ports the services depend on.
// Two implementations exist, memory and sqlite, differing only in
// persistence.
package storage

import (
	"context"

	"tally/internal/core"
)

type (
	// TransactionStore persists ledger entries. Create assigns the id
	// and creation timestamp; ListByUser returns entries in creation
	// order so listings are deterministic. Lookups and deletes for an
	// unknown or foreign id fail with core.ErrNotFound.
	TransactionStore interface {
		Create(ctx context.Context, t *core.Transaction) error
		Get(ctx context.Context, userID, id string) (core.Transaction, error)
		ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
		Update(ctx context.Context, t core.Transaction) error
		Delete(ctx context.Context, userID, id string) error
	}

	// BudgetStore holds at most one budget record per user. Put
	// replaces any existing record. Get and Update fail with
	// core.ErrNotFound when no budget is set.
	BudgetStore interface {
		Put(ctx context.Context, b core.BudgetRecord) error
		Get(ctx context.Context, userID string) (core.BudgetRecord, error)
		Update(ctx context.Context, b core.BudgetRecord) error
	}

	// GoalStore holds at most one savings goal per user, with the same
	// replace semantics as BudgetStore.
	GoalStore interface {
		Put(ctx context.Context, g core.Goal) error
		Get(ctx context.Context, userID string) (core.Goal, error)
		Update(ctx context.Context, g core.Goal) error
	}

	// UserStore is the user directory.
	UserStore interface {
		Create(ctx context.Context, u *core.User) error
		ByID(ctx context.Context, id string) (core.User, error)
		ByEmail(ctx context.Context, email string) (core.User, error)
	}
)

// Store bundles the four repositories a backend must provide.
type Store interface {
	Transactions() TransactionStore
	Budgets() BudgetStore
	Goals() GoalStore
	Users() UserStore
	Close() error
}
