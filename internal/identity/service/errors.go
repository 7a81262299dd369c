package service

import "errors"

// All of these are deterministic, caller-attributable failures. Retrying any
// of them with the same input cannot succeed, so the HTTP layer maps them
// straight to 4xx responses. Infrastructure failures are not classified here
// and propagate as opaque errors.
var (
	// ErrNotFound reports an absent identity or role-grant target.
	ErrNotFound = errors.New("identity: user not found")

	// ErrUserExists reports a CPF or email uniqueness violation at registration.
	ErrUserExists = errors.New("identity: user already exists")

	// ErrRoleAlreadyHeld reports a role grant for a role the user already holds.
	ErrRoleAlreadyHeld = errors.New("identity: role already held")

	// ErrInvalidCredentials reports a login password mismatch. Handlers must
	// present this and ErrNotFound identically so callers cannot probe which
	// CPFs exist; the distinct kinds exist for logging only.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrAccountNotActive reports a login attempt for a BLOCKED or
	// PENDING_APPROVAL account with otherwise correct credentials.
	ErrAccountNotActive = errors.New("identity: account not active")

	// ErrUnauthenticated reports a request with no verified subject attached.
	ErrUnauthenticated = errors.New("identity: no authenticated subject")

	// ErrInvalidState reports a verified subject that no longer resolves to a
	// user record. This is an internal-consistency failure, not a normal
	// authentication failure.
	ErrInvalidState = errors.New("identity: authenticated subject not resolvable")
)
