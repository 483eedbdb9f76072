// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"time"

	"github.com/credkeeper/credkeeper/internal/server/passwd"
)

// minSecretKeyBytes is the minimum signing secret length. 32 bytes gives the
// 256 bits of entropy HS256 expects.
const minSecretKeyBytes = 32

// Config holds runtime settings for the CredKeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - RedisURL: Redis URL for login throttling. Empty disables throttling.
//   - SecretKey: HMAC secret for signing tokens (HS256). Required, no
//     default; Validate rejects secrets shorter than 256 bits.
//   - TokenValidityDuration: bearer token lifetime.
//   - PasswordMinLength / PasswordSpecialChars: password policy knobs.
//   - BcryptCost: work factor for password hashing (0 = library default).
//   - LoginAttemptLimit / LoginAttemptWindow: throttling window per username.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	RedisURL              string
	SecretKey             string
	TokenValidityDuration time.Duration
	PasswordMinLength     int
	PasswordSpecialChars  string
	BcryptCost            int
	LoginAttemptLimit     int64
	LoginAttemptWindow    time.Duration
}

// LoadDefaults populates Config with development defaults. The signing
// secret deliberately has no default: startup fails unless one is supplied.
func (c *Config) LoadDefaults() {
	policy := passwd.DefaultPolicy()

	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.RedisURL = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 1 * time.Hour
	c.PasswordMinLength = policy.MinLength
	c.PasswordSpecialChars = policy.SpecialChars
	c.BcryptCost = 0
	c.LoginAttemptLimit = 10
	c.LoginAttemptWindow = 1 * time.Minute
}

// Validate checks invariants that must hold before the server starts.
// Violations here are configuration errors and abort startup; they are never
// surfaced per request.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("signing secret is required (set -s or secret_key)")
	}
	if len(c.SecretKey) < minSecretKeyBytes {
		return errors.New("signing secret must be at least 32 bytes")
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("token validity duration must be positive")
	}
	if c.PasswordMinLength < 1 {
		return errors.New("password min length must be at least 1")
	}
	if c.PasswordSpecialChars == "" {
		return errors.New("password special character set must not be empty")
	}
	return nil
}

// Policy returns the password policy assembled from configuration.
func (c *Config) Policy() passwd.Policy {
	return passwd.Policy{
		MinLength:    c.PasswordMinLength,
		SpecialChars: c.PasswordSpecialChars,
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
