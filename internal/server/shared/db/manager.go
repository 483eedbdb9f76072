// Package db wires repositories to a concrete storage backend.
package db

import (
	"context"
	"database/sql"

	"github.com/credkeeper/credkeeper/internal/server/repositories/users"
)

// RepositoryManager provides the repositories backed by one storage engine
// plus lifecycle operations for that engine.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
}
