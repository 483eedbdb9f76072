package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/credkeeper/credkeeper/internal/common"
	"github.com/credkeeper/credkeeper/internal/server/models"
)

// InMemoryRepository keeps users in a map guarded by a mutex. It backs tests
// and local development; the mutex gives the same exactly-one-wins guarantee
// on concurrent Create that the Postgres unique index provides.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by lowercased username
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, exists := r.users[key]; exists {
		return nil, common.ErrUsernameTaken
	}

	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	r.users[key] = stored
	return cloneUser(stored), nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[strings.ToLower(username)]
	if !ok {
		return nil, common.ErrNotFound
	}

	return cloneUser(user), nil
}

func (r *InMemoryRepository) SetRoles(ctx context.Context, username string, roles []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[strings.ToLower(username)]
	if !ok {
		return common.ErrNotFound
	}

	user.Roles = append([]string(nil), roles...)
	return nil
}

// cloneUser copies the record so callers cannot mutate stored state.
func cloneUser(u *models.User) *models.User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}
