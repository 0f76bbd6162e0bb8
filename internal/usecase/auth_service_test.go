package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
)

type staticIssuer struct{}

func (staticIssuer) Issue(principal user.Principal) (string, int64, error) {
	return "token-for-" + principal.UserID, 3600, nil
}

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := []user.User{{
		ID:           "u1",
		Username:     "ayrton",
		Role:         user.RolePlayer,
		PasswordHash: string(hash),
	}}
	return NewAuthService(memory.NewUserRepository(users), staticIssuer{})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	result, err := newAuthFixture(t).Login(context.Background(), "ayrton", "correct-horse")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.Token != "token-for-u1" || result.Role != user.RolePlayer {
		t.Fatalf("result = %+v", result)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	if _, err := newAuthFixture(t).Login(context.Background(), "ayrton", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Login error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	if _, err := newAuthFixture(t).Login(context.Background(), "ghost", "correct-horse"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Login error = %v, want ErrUnauthorized", err)
	}
}
