package services

import (
	"errors"
	"testing"
	"time"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected id 42, got %d", id)
	}
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	issued := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatal(err)
	}

	// Still inside the window.
	issuer.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// Past the window.
	issuer.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer([]byte("secret-a"), time.Hour).Issue(7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenIssuer([]byte("secret-b"), time.Hour).Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("cross-secret token accepted: %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := issuer.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Verify(%q) = %v, want ErrUnauthorized", tok, err)
		}
	}
}
