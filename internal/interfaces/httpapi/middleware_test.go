package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/usecase"
)

type staticVerifier struct {
	principal user.Principal
	err       error
}

func (v staticVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(staticVerifier{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bets", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_PropagatesPrincipal(t *testing.T) {
	verifier := staticVerifier{principal: user.Principal{UserID: "u1", Username: "ayrton", Role: user.RolePlayer}}

	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/bets", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if seen.UserID != "u1" {
		t.Fatalf("principal not propagated: %+v", seen)
	}
}

func TestRequireAuth_RejectsBadToken(t *testing.T) {
	verifier := staticVerifier{err: fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)}
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/bets", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireOperator(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	playerReq := httptest.NewRequest(http.MethodPost, "/v1/races", nil)
	playerCtx := withPrincipal(playerReq.Context(), user.Principal{UserID: "u1", Role: user.RolePlayer})
	rec := httptest.NewRecorder()
	RequireOperator(next).ServeHTTP(rec, playerReq.WithContext(playerCtx))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for player, got %d", rec.Code)
	}

	operatorReq := httptest.NewRequest(http.MethodPost, "/v1/races", nil)
	operatorCtx := withPrincipal(operatorReq.Context(), user.Principal{UserID: "u2", Role: user.RoleOperator})
	rec = httptest.NewRecorder()
	RequireOperator(next).ServeHTTP(rec, operatorReq.WithContext(operatorCtx))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for operator, got %d", rec.Code)
	}
}
