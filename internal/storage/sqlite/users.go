package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
)

type userStore struct {
	db *sql.DB
}

func (s *userStore) Create(ctx context.Context, u *core.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.Name, u.PasswordHash,
		string(u.Role), string(u.Status), u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: email %s already registered", core.ErrInvalidArgument, u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *userStore) ByID(ctx context.Context, id string) (core.User, error) {
	return s.get(ctx, `SELECT id, email, name, password_hash, role, status, created_at
		FROM users WHERE id = ?`, id)
}

func (s *userStore) ByEmail(ctx context.Context, email string) (core.User, error) {
	return s.get(ctx, `SELECT id, email, name, password_hash, role, status, created_at
		FROM users WHERE email = ?`, strings.ToLower(email))
}

func (s *userStore) get(ctx context.Context, query, arg string) (core.User, error) {
	var (
		u            core.User
		role, status string
	)
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &status, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return core.User{}, fmt.Errorf("user %s: %w", arg, core.ErrNotFound)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	u.Role = core.Role(role)
	u.Status = core.Status(status)
	return u, nil
}
