package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/usecase"
)

const defaultTokenTTL = 24 * time.Hour

// JWTManager issues and verifies HS256 bearer tokens. It backs both the login
// flow (usecase.TokenIssuer) and the request middleware (httpapi.TokenVerifier).
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewJWTManager(secret, issuer string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *JWTManager) Issue(principal user.Principal) (string, int64, error) {
	now := m.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: principal.Username,
		Role:     principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, int64(m.ttl.Seconds()), nil
}

func (m *JWTManager) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}

	parsedClaims, ok := parsed.Claims.(*claims)
	if !ok || parsedClaims.Subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token carries no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID:   parsedClaims.Subject,
		Username: parsedClaims.Username,
		Role:     parsedClaims.Role,
	}, nil
}
