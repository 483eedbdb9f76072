package passwd

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher error: %v", err)
	}
	return h
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	record, err := h.Hash(ctx, "Abcdef1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if record == "Abcdef1!" {
		t.Fatal("record must not equal the plaintext")
	}

	ok, err := h.Verify(ctx, "Abcdef1!", record)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected match for correct password")
	}

	ok, err = h.Verify(ctx, "wrongpass", record)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected non-match for wrong password")
	}
}

func TestBcryptHasher_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	r1, err := h.Hash(ctx, "Abcdef1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	r2, err := h.Hash(ctx, "Abcdef1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if r1 == r2 {
		t.Fatal("two hashes of the same password must differ (per-call salt)")
	}
}

func TestBcryptHasher_MalformedRecordIsNonMatch(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	for _, record := range []string{"", "not-a-bcrypt-record", "$2a$xx$garbage"} {
		ok, err := h.Verify(ctx, "Abcdef1!", record)
		if err != nil {
			t.Fatalf("Verify(%q) error: %v", record, err)
		}
		if ok {
			t.Fatalf("Verify(%q) = true, want false", record)
		}
	}
}

func TestBcryptHasher_DummyRecordVerifies(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	// The dummy record exists so unknown-user logins still pay for one
	// comparison; it must be well formed and never match a real candidate.
	ok, err := h.Verify(ctx, "any-candidate", h.DummyRecord())
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("dummy record must not match")
	}
}
