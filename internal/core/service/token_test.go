package service

import (
	"testing"
	"time"
)

func TestTokenManager_IssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue("user-1", "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("user-1", "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, err := tm.Issue("user-1", "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	verifier := NewTokenManager("secret", time.Minute)
	if _, err := verifier.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_RejectsMalformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Verify(bad); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", bad, err)
		}
	}
}

func TestTokenManager_RejectsTampered(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	token, err := tm.Issue("user-1", "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := tm.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}
