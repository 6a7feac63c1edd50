package domain

import "errors"

// Sentinel errors. Services return these (possibly wrapped); the HTTP layer
// maps them to status codes in exactly one place.
var (
	// ErrMissingFields is returned when a required input field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidRole is returned for a role outside {student, alumni, admin}.
	ErrInvalidRole = errors.New("invalid role")
	// ErrUserExists is returned when the username or email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound never leaves the auth service on the login path: it is
	// collapsed into ErrInvalidCredentials so callers cannot probe which
	// accounts exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown identifier and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleMismatch is returned when a caller asserts a role at login that
	// does not match the stored one. Distinct from bad credentials: the
	// password was right, the assertion was not.
	ErrRoleMismatch = errors.New("role mismatch")
	// ErrInvalidToken covers malformed, badly signed, and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrRecordNotFound is returned when an update or delete matches no row.
	ErrRecordNotFound = errors.New("record not found")
	// ErrForbidden is returned when a valid token's role does not satisfy the
	// route policy.
	ErrForbidden = errors.New("access forbidden")
)
