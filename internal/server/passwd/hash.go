package passwd

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher is a salted, adaptive one-way password hash primitive.
type Hasher interface {
	// Hash derives an opaque record from the plaintext. Each call uses a
	// fresh random salt embedded in the record.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored record.
	// A malformed record is a non-match, not an error; the error return is
	// reserved for context cancellation.
	Verify(ctx context.Context, plaintext, encoded string) (bool, error)

	// DummyRecord returns a well-formed record for a password nobody knows.
	// Callers compare against it when no real record exists so that lookup
	// misses cost the same as a wrong password.
	DummyRecord() string
}

// BcryptHasher implements Hasher on top of bcrypt. Hashing is deliberately
// slow, so concurrent work is capped with a semaphore sized to the number of
// CPUs; excess callers queue instead of starving I/O-bound requests.
type BcryptHasher struct {
	cost  int
	sem   *semaphore.Weighted
	dummy string
}

// NewBcryptHasher constructs a hasher with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	h := &BcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}

	// Precompute the record used to equalize verification timing for
	// unknown usernames.
	dummy, err := bcrypt.GenerateFromPassword([]byte("credkeeper-dummy-verification"), cost)
	if err != nil {
		return nil, err
	}
	h.dummy = string(dummy)

	return h, nil
}

func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	record, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(record), nil
}

func (h *BcryptHasher) Verify(ctx context.Context, plaintext, encoded string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		// Malformed or truncated record: treat as non-match.
		return false, nil
	}
	return true, nil
}

func (h *BcryptHasher) DummyRecord() string {
	return h.dummy
}
