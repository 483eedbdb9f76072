// Package common defines shared constants and sentinel errors used across
// CredKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Transient infrastructure failures. Retryable by the caller.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// ErrInvalidCredentials is deliberately opaque: it covers both an
	// unknown username and a wrong password so callers cannot enumerate
	// registered accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Registration errors.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidUsername  = errors.New("invalid username")

	// Token lifecycle errors. All of them mean "unauthenticated" to an end
	// user; they stay distinct for telemetry.
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")

	// Login throttling.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
