package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Session errors. Every collaborator call that comes back with an
	// authentication failure is surfaced as ErrUnauthorized regardless of
	// which operation triggered it; the caller re-authenticates, we never
	// retry here.
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrAuthFailed   = fmt.Errorf("authentication failed")

	// Recoverable list errors: the operation aborts cleanly and the prior
	// view stays intact.
	ErrValidation     = fmt.Errorf("invalid input")
	ErrDuplicateEntry = fmt.Errorf("already in list")
	ErrNotFound       = fmt.Errorf("not found")
	ErrProtectedList  = fmt.Errorf("cannot delete default lists")

	// Transient errors (network, timeout, 5xx). The search session treats
	// these as non-fatal and keeps the last good result set.
	ErrTransient = fmt.Errorf("request failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
