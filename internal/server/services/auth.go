// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, credential verification, and
// issuing/validating bearer tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/credkeeper/credkeeper/internal/common"
	"github.com/credkeeper/credkeeper/internal/logging"
	"github.com/credkeeper/credkeeper/internal/server/auth"
	"github.com/credkeeper/credkeeper/internal/server/config"
	"github.com/credkeeper/credkeeper/internal/server/models"
	"github.com/credkeeper/credkeeper/internal/server/passwd"
	"github.com/credkeeper/credkeeper/internal/server/ratelimit"
	"github.com/credkeeper/credkeeper/internal/server/shared/db"
)

// AuthService provides authentication-related operations:
//   - Register: validate and create users
//   - Login: verify credentials and mint a bearer token
//   - VerifyToken: validate a presented token and recover its claims
type AuthService struct {
	repomanager   db.RepositoryManager
	hasher        passwd.Hasher
	policy        passwd.Policy
	limiter       ratelimit.Limiter
	logger        logging.Logger
	secretKey     []byte
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService from repositories and server
// config. The signing secret is passed in explicitly via cfg; there is no
// ambient global.
func NewAuthService(m db.RepositoryManager, hasher passwd.Hasher, limiter ratelimit.Limiter, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		repomanager:   m,
		hasher:        hasher,
		policy:        cfg.Policy(),
		limiter:       limiter,
		logger:        logger.With("module", "auth_service"),
		secretKey:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with an empty role set.
//
// The candidate is rejected with common.ErrUsernameTaken when the username
// exists (checked up front and again by the store's uniqueness constraint,
// so a concurrent race still ends with exactly one winner), with
// common.ErrPasswordMismatch when the confirmation differs, and with a
// passwd.Violations error listing every failed policy rule. Neither the
// plaintext nor the hash is ever returned.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return common.ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return common.ErrInvalidEmail
	}

	repo := s.repomanager.Users()
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return s.storeError(ctx, err)
	}

	if password != confirmPassword {
		return common.ErrPasswordMismatch
	}

	if violations := s.policy.Validate(password); violations != nil {
		return violations
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return common.ErrUsernameTaken
		}
		return s.storeError(ctx, err)
	}

	s.logger.Info(ctx, "user registered", "username", username)
	return nil
}

// Login verifies the credentials and, on success, returns a signed bearer
// token carrying the user's current roles.
//
// An unknown username and a wrong password both produce
// common.ErrInvalidCredentials. When the lookup misses, the candidate is
// still compared against a dummy record so both paths cost one hash
// verification and account enumeration through timing stays closed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	allowed, err := s.limiter.Allow(ctx, strings.ToLower(username))
	if err != nil {
		// A broken limiter backend must not lock everyone out.
		s.logger.Warn(ctx, "rate limiter unavailable", "error", err.Error())
	} else if !allowed {
		return "", common.ErrTooManyAttempts
	}

	repo := s.repomanager.Users()
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = s.hasher.Verify(ctx, password, s.hasher.DummyRecord())
			return "", common.ErrInvalidCredentials
		}
		return "", s.storeError(ctx, err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.Username, user.Roles, s.secretKey, s.tokenValidity)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "error", err.Error())
		return "", common.ErrInternal
	}

	return token, nil
}

// VerifyToken validates a presented bearer token against the signing secret
// and returns its claims. Verification failures surface as the token
// sentinels in internal/common.
func (s *AuthService) VerifyToken(tokenString string) (*auth.Claims, error) {
	return auth.VerifyToken(tokenString, s.secretKey)
}

func (s *AuthService) storeError(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrStoreUnavailable) {
		s.logger.Error(ctx, "credential store unavailable", "error", err.Error())
		return common.ErrStoreUnavailable
	}
	s.logger.Error(ctx, "credential store failure", "error", err.Error())
	return common.ErrInternal
}
