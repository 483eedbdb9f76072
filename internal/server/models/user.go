// Package models holds server-side data structures shared between
// repositories and services.
package models

import "time"

// User is one registered principal.
//
// Username is unique case-insensitively and immutable after creation.
// PasswordHash is the opaque output of the password hasher; the plaintext
// is never stored, transmitted, or logged. Roles are maintained by an
// external role-management operation, not by the auth flows themselves.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}
