// Package sqlite provides the persistent storage variant backed by a
// SQLite database (pure Go driver, no CGO).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"tally/internal/storage"
)

var _ storage.Store = (*Repository)(nil)

// Repository implements storage.Store on a SQLite database.
type Repository struct {
	db *sql.DB
}

// Open creates the parent directory, opens the database, enables
// foreign keys and runs pending migrations.
func Open(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Transactions() storage.TransactionStore { return &txnStore{db: r.db} }
func (r *Repository) Budgets() storage.BudgetStore           { return &budgetStore{db: r.db} }
func (r *Repository) Goals() storage.GoalStore               { return &goalStore{db: r.db} }
func (r *Repository) Users() storage.UserStore               { return &userStore{db: r.db} }

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
