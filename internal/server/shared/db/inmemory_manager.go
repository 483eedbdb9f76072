package db

import (
	"context"
	"database/sql"

	"github.com/credkeeper/credkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the repositories with process-local maps.
// Used by tests and for running the server without a database.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}
