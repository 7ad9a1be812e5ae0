package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shoplane/commerce-api/internal/api/middleware"
	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

type stubUserService struct {
	currentFn     func(ctx context.Context, id string) (*domain.User, error)
	listFn        func(ctx context.Context) ([]*domain.User, error)
	updateFn      func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn      func(ctx context.Context, targetID string, actor ports.Actor) error
	setPhotoFn    func(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error)
	removePhotoFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubUserService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return s.currentFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) UpdateCurrentUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) DeleteUser(ctx context.Context, targetID string, actor ports.Actor) error {
	return s.deleteFn(ctx, targetID, actor)
}

func (s *stubUserService) SetProfilePhoto(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error) {
	return s.setPhotoFn(ctx, userID, filename, content)
}

func (s *stubUserService) RemoveProfilePhoto(ctx context.Context, userID string) (*domain.User, error) {
	return s.removePhotoFn(ctx, userID)
}

func newUserTestContext(t *testing.T, actor *ports.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		middleware.SetActor(c, *actor)
	}
	return c, rec
}

func TestUserHandler_CurrentUser_StripsSecrets(t *testing.T) {
	stub := &stubUserService{
		currentFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{
				ID:                 id,
				Username:           "alice",
				Email:              "alice@example.com",
				Role:               domain.RoleUser,
				IsVerified:         true,
				PasswordHash:       "$2a$10$secret",
				ResetPasswordToken: "deadbeef",
				CreatedAt:          time.Now().UTC(),
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserTestContext(t, &ports.Actor{ID: "u1", Role: domain.RoleUser})
	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	for _, forbidden := range []string{"password_hash", "reset_password_token", "verification_token"} {
		if _, ok := resp[forbidden]; ok {
			t.Fatalf("%s must never be serialised: %+v", forbidden, resp)
		}
	}
}

func TestUserHandler_CurrentUser_NoActor(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newUserTestContext(t, nil)
	err := h.CurrentUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without an actor, got %v", err)
	}
}

func TestUserHandler_Delete_PassesActorAndTarget(t *testing.T) {
	var gotTarget string
	var gotActor ports.Actor
	stub := &stubUserService{
		deleteFn: func(_ context.Context, targetID string, actor ports.Actor) error {
			gotTarget = targetID
			gotActor = actor
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserTestContext(t, &ports.Actor{ID: "a1", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("u2")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotTarget != "u2" || gotActor.ID != "a1" || gotActor.Role != domain.RoleAdmin {
		t.Fatalf("unexpected call: target=%s actor=%+v", gotTarget, gotActor)
	}
}

func TestUserHandler_Update_EmptyFieldsAllowed(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
			if in.Username != "" || in.Password != "" {
				t.Fatalf("expected empty input, got %+v", in)
			}
			return &domain.User{ID: id, Username: "alice"}, nil
		},
	}
	h := NewUserHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPut, "/api/users", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetActor(c, ports.Actor{ID: "u1", Role: domain.RoleUser})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
