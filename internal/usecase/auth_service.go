package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pitwall/gridbet/internal/domain/user"
)

// TokenIssuer mints access tokens for authenticated principals. The JWT
// implementation lives in infrastructure/auth.
type TokenIssuer interface {
	Issue(principal user.Principal) (token string, expiresIn int64, err error)
}

type AuthService struct {
	userRepo user.Repository
	issuer   TokenIssuer
}

func NewAuthService(userRepo user.Repository, issuer TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Login verifies credentials and returns a bearer token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	if username == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	account, found, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("look up user for login: %w", err)
	}
	if !found {
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	principal := user.Principal{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
	}
	token, expiresIn, err := s.issuer.Issue(principal)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{
		Token:     token,
		ExpiresIn: expiresIn,
		UserID:    account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}, nil
}
