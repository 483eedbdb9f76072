package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"

	"github.com/credkeeper/credkeeper/internal/common"
	"github.com/credkeeper/credkeeper/internal/dbx"
	"github.com/credkeeper/credkeeper/internal/server/models"
)

// PostgresRepository stores users in PostgreSQL. Username uniqueness is
// enforced by a unique index on LOWER(username), so concurrent registration
// races are resolved by the database.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO users (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query,
			user.ID, user.Username, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE LOWER(username) = LOWER($1)
		 `

	user := &models.User{}
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, username).
			Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	roles, err := r.rolesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return user, nil
}

func (r *PostgresRepository) SetRoles(ctx context.Context, username string, roles []string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var userID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE LOWER(username) = LOWER($1)`, username).Scan(&userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error performing sql request: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("error performing sql request: %w", err)
		}

		for _, role := range roles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role); err != nil {
				return fmt.Errorf("error performing sql request: %w", err)
			}
		}

		return nil
	})
}

func (r *PostgresRepository) rolesForUser(ctx context.Context, userID string) ([]string, error) {
	var roles []string

	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		roles = roles[:0]
		for rows.Next() {
			var role string
			if err := rows.Scan(&role); err != nil {
				return err
			}
			roles = append(roles, role)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return roles, nil
}

// withRetry runs fn with a short fibonacci backoff for transient failures.
// Errors the database itself reported (no rows, constraint violations) are
// returned as-is; anything else is assumed to be a connectivity problem and
// surfaces as common.ErrStoreUnavailable after the retries are exhausted.
func withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(50*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err == nil || errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}

	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
