// Package users defines the credential store: persistence of user identity
// records and their role memberships.
package users

import (
	"context"

	"github.com/credkeeper/credkeeper/internal/server/models"
)

// Repository is the credential store abstraction. Implementations must
// enforce case-insensitive username uniqueness atomically: when two
// concurrent Create calls race on the same username, exactly one wins and
// the other receives common.ErrUsernameTaken.
type Repository interface {
	// Create persists a new user record and returns it with its assigned ID.
	// Returns common.ErrUsernameTaken when the username already exists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername looks up a record by username, matched
	// case-insensitively. Returns common.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// SetRoles replaces the role set of an existing user. This is the hook
	// for the external role-management collaborator; the auth flows
	// themselves never mutate roles.
	SetRoles(ctx context.Context, username string, roles []string) error
}
