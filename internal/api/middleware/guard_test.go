package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
	"github.com/shoplane/commerce-api/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) FindAll(context.Context) ([]*domain.User, error) { return nil, nil }
func (s *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (s *stubUserRepo) Save(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (s *stubUserRepo) Delete(context.Context, string) error                         { return nil }

func guardFixture(t *testing.T) (*service.TokenManager, *stubUserRepo, string) {
	t.Helper()
	tokens := service.NewTokenManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleUser},
		"a1": {ID: "a1", Role: domain.RoleAdmin},
	}}
	token, err := tokens.Issue("u1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tokens, repo, token
}

func invokeGuard(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/current-user", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestGuard_EmptyRoleListDeniesEveryone(t *testing.T) {
	tokens, repo, token := guardFixture(t)
	mw := Guard(tokens, repo)

	_, err := invokeGuard(t, mw, "Bearer "+token)
	if got := httpStatus(t, err); got != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", got)
	}
}

func TestGuard_MissingHeader(t *testing.T) {
	tokens, repo, _ := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleUser)

	_, err := invokeGuard(t, mw, "")
	if got := httpStatus(t, err); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}

func TestGuard_MalformedHeader(t *testing.T) {
	tokens, repo, token := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleUser)

	for _, header := range []string{"Token " + token, "Bearer", "Bearer "} {
		_, err := invokeGuard(t, mw, header)
		if got := httpStatus(t, err); got != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, got)
		}
	}
}

func TestGuard_BadToken(t *testing.T) {
	tokens, repo, _ := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleUser)

	_, err := invokeGuard(t, mw, "Bearer not-a-token")
	if got := httpStatus(t, err); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}

func TestGuard_DeletedIdentityRejected(t *testing.T) {
	tokens, repo, token := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleUser)

	delete(repo.users, "u1")

	_, err := invokeGuard(t, mw, "Bearer "+token)
	if got := httpStatus(t, err); got != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a deleted account, got %d", got)
	}
}

func TestGuard_RoleMismatch(t *testing.T) {
	tokens, repo, token := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleAdmin)

	_, err := invokeGuard(t, mw, "Bearer "+token)
	if got := httpStatus(t, err); got != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", got)
	}
}

func TestGuard_CurrentRoleDecides(t *testing.T) {
	// Role checks use the stored role, not the one baked into the token.
	tokens, repo, token := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleAdmin)

	repo.users["u1"].Role = domain.RoleAdmin

	_, err := invokeGuard(t, mw, "Bearer "+token)
	if err != nil {
		t.Fatalf("promoted account must pass: %v", err)
	}
}

func TestGuard_InjectsActor(t *testing.T) {
	tokens, repo, token := guardFixture(t)
	mw := Guard(tokens, repo, domain.RoleUser, domain.RoleAdmin)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got ports.Actor
	handler := mw(func(c echo.Context) error {
		actor, ok := ActorFrom(c)
		if !ok {
			t.Fatal("actor missing from context")
		}
		got = actor
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard failed: %v", err)
	}
	if got.ID != "u1" || got.Role != domain.RoleUser {
		t.Fatalf("unexpected actor: %+v", got)
	}
}
