package domain

import "errors"

// Unauthenticated.
var (
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrUserNotFound = errors.New("user not found")
)

// Forbidden.
var (
	ErrRoleNotAllowed = errors.New("role not allowed")
	ErrNotOwner       = errors.New("not owner")
)

var (
	// ErrEmailAlreadyRegistered signals a duplicate email registration.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials covers every login mismatch, so callers cannot
	// tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Validation.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrReservedEmail      = errors.New("email address is reserved")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrPasswordAlreadySet = errors.New("password already set")
)

var (
	// ErrStoreUnavailable wraps infrastructure failures of the identity store.
	ErrStoreUnavailable = errors.New("identity store unavailable")
	// ErrFederationConflict means a provider profile could not be settled
	// onto a single user after repeated concurrent inserts.
	ErrFederationConflict = errors.New("could not resolve federated identity")
	ErrUnknownProvider    = errors.New("unknown identity provider")
)
