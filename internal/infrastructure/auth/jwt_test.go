package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/usecase"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager("test-secret", "gridbet", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager error: %v", err)
	}

	principal := user.Principal{UserID: "u1", Username: "ayrton", Role: user.RoleOperator}
	token, expiresIn, err := manager.Issue(principal)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", expiresIn)
	}

	verified, err := manager.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if verified != principal {
		t.Fatalf("verified principal = %+v, want %+v", verified, principal)
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager("test-secret", "gridbet", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager error: %v", err)
	}

	issuedAt := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issuedAt }
	token, _, err := manager.Issue(user.Principal{UserID: "u1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	manager.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := manager.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("VerifyAccessToken error = %v, want ErrUnauthorized", err)
	}
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTManager("secret-a", "gridbet", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager error: %v", err)
	}
	verifier, err := NewJWTManager("secret-b", "gridbet", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager error: %v", err)
	}

	token, _, err := issuer.Issue(user.Principal{UserID: "u1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("VerifyAccessToken error = %v, want ErrUnauthorized", err)
	}
}
