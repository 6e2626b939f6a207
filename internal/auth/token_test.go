package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("account-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	accountID, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if accountID != "account-123" {
		t.Errorf("Parse returned %s, want account-123", accountID)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue("account-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse of expired token = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("secret-a", time.Hour).Issue("account-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse of garbage = %v, want ErrInvalidToken", err)
	}
}
