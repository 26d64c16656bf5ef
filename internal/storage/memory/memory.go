// Package memory provides the in-memory storage variant. Records live
// in per-user, insertion-ordered slices behind a single mutex, which
// keeps listings deterministic and concurrent mutations safe.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store implements storage.Store without persistence.
type Store struct {
	mu      sync.RWMutex
	txns    map[string][]core.Transaction // keyed by user id, creation order
	budgets map[string]core.BudgetRecord
	goals   map[string]core.Goal
	users   map[string]core.User // keyed by user id
	byEmail map[string]string    // email -> user id
}

func New() *Store {
	return &Store{
		txns:    make(map[string][]core.Transaction),
		budgets: make(map[string]core.BudgetRecord),
		goals:   make(map[string]core.Goal),
		users:   make(map[string]core.User),
		byEmail: make(map[string]string),
	}
}

func (s *Store) Transactions() storage.TransactionStore { return (*txnStore)(s) }
func (s *Store) Budgets() storage.BudgetStore           { return (*budgetStore)(s) }
func (s *Store) Goals() storage.GoalStore               { return (*goalStore)(s) }
func (s *Store) Users() storage.UserStore               { return (*userStore)(s) }

func (s *Store) Close() error { return nil }

type txnStore Store

func (s *txnStore) Create(_ context.Context, t *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.txns[t.UserID] = append(s.txns[t.UserID], *t)
	return nil
}

func (s *txnStore) Get(_ context.Context, userID, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.txns[userID] {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
}

func (s *txnStore) ListByUser(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Copy so callers cannot mutate the stored slice.
	out := make([]core.Transaction, len(s.txns[userID]))
	copy(out, s.txns[userID])
	return out, nil
}

func (s *txnStore) Update(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.txns[t.UserID]
	for i := range list {
		if list[i].ID == t.ID {
			list[i] = t
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", t.ID, core.ErrNotFound)
}

func (s *txnStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.txns[userID]
	for i := range list {
		if list[i].ID == id {
			s.txns[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
}

type budgetStore Store

func (s *budgetStore) Put(_ context.Context, b core.BudgetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.UserID] = b
	return nil
}

func (s *budgetStore) Get(_ context.Context, userID string) (core.BudgetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[userID]
	if !ok {
		return core.BudgetRecord{}, fmt.Errorf("budget for user %s: %w", userID, core.ErrNotFound)
	}
	return b, nil
}

func (s *budgetStore) Update(_ context.Context, b core.BudgetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[b.UserID]; !ok {
		return fmt.Errorf("budget for user %s: %w", b.UserID, core.ErrNotFound)
	}
	s.budgets[b.UserID] = b
	return nil
}

type goalStore Store

func (s *goalStore) Put(_ context.Context, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.UserID] = g
	return nil
}

func (s *goalStore) Get(_ context.Context, userID string) (core.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[userID]
	if !ok {
		return core.Goal{}, fmt.Errorf("goal for user %s: %w", userID, core.ErrNotFound)
	}
	return g, nil
}

func (s *goalStore) Update(_ context.Context, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[g.UserID]; !ok {
		return fmt.Errorf("goal for user %s: %w", g.UserID, core.ErrNotFound)
	}
	s.goals[g.UserID] = g
	return nil
}

type userStore Store

func (s *userStore) Create(_ context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(u.Email)
	if _, exists := s.byEmail[email]; exists {
		return fmt.Errorf("%w: email %s already registered", core.ErrInvalidArgument, u.Email)
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = *u
	s.byEmail[email] = u.ID
	return nil
}

func (s *userStore) ByID(_ context.Context, id string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	}
	return u, nil
}

func (s *userStore) ByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return core.User{}, fmt.Errorf("user %s: %w", email, core.ErrNotFound)
	}
	return s.users[id], nil
}
