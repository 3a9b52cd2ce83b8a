package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map these to HTTP
// statuses with errors.Is.
var (
	// ErrInvalidCredentials is returned for every login failure, whether the
	// email is unknown, the account has no password, or the password is
	// wrong, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when registering with an email that is
	// already taken (exact, case-sensitive match as stored).
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound is returned by mutation paths targeting an entity that does
	// not exist. Read-model lookups never return it; absence there is a nil
	// result, not an error.
	ErrNotFound = errors.New("not found")
)
