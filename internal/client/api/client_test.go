package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_LoginAndMe(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var req map[string]string
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode error: %v", err)
			}
			if req["username"] != "alice" {
				t.Errorf("unexpected username %q", req["username"])
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok123"})
		case "/api/v1/auth/me":
			if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
				t.Errorf("unexpected auth header %q", got)
			}
			_ = json.NewEncoder(w).Encode(Identity{Subject: "alice", Roles: []string{"admin"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	token, err := c.Login(ctx, "alice", "Abcdef1!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token != "tok123" {
		t.Fatalf("token mismatch: %q", token)
	}

	identity, err := c.Me(ctx, token)
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if identity.Subject != "alice" || len(identity.Roles) != 1 {
		t.Fatalf("identity mismatch: %+v", identity)
	}
}

func TestClient_StructuredError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":   "INVALID_CREDENTIALS",
			"message": "invalid username or password",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Login(context.Background(), "alice", "wrong")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("code mismatch: %q", apiErr.Code)
	}
}

func TestClient_UnstructuredError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)

	if err := c.Register(context.Background(), "a", "a@x.com", "p", "p"); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
