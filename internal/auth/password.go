package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tally/internal/core"
	"tally/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrBanned             = errors.New("account is banned")
)

// PasswordAuthenticator implements registration and login with bcrypt
// password hashes stored in the user directory.
type PasswordAuthenticator struct {
	users storage.UserStore
}

func NewPasswordAuthenticator(users storage.UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users}
}

// Register creates a new active user account with the user role.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, name, password string) (core.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return core.User{}, fmt.Errorf("%w: email %q is not valid", core.ErrInvalidArgument, email)
	}
	if len(password) < 8 {
		return core.User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := core.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         core.RoleUser,
		Status:       core.StatusActive,
	}
	if err := a.users.Create(ctx, &u); err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies email and password and returns the user.
// Unknown emails and wrong passwords both map to
// ErrInvalidCredentials; banned accounts are rejected after the
// password check so the error does not leak account state to guessers.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (core.User, error) {
	u, err := a.users.ByEmail(ctx, email)
	if err != nil {
		return core.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return core.User{}, ErrInvalidCredentials
	}
	if u.Banned() {
		return core.User{}, ErrBanned
	}
	return u, nil
}
