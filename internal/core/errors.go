package core

import "errors"

// Error kinds shared by every service. Callers classify failures with
// errors.Is; wrapped messages carry the detail.
var (
	// ErrInvalidArgument marks bad input to a setter: a blank required
	// string or a negative amount, budget limit or goal target.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks operations that target a transaction, budget,
	// goal or user that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoSession marks facade operations invoked without a logged-in
	// user.
	ErrNoSession = errors.New("no active session")
)
