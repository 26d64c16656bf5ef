// Package auth provides user registration, password authentication and
// JWT-backed sessions over the user directory.
package auth

import "tally/internal/core"

// Session identifies the logged-in user for a single request. The
// facade requires one for every operation; there is no shared mutable
// "current user".
type Session struct {
	UserID string
	Email  string
	Role   core.Role
}

// NewSession builds a session for an authenticated user.
func NewSession(u core.User) *Session {
	return &Session{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == core.RoleAdmin
}
