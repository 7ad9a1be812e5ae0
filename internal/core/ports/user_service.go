package ports

import (
	"context"
	"io"

	"github.com/shoplane/commerce-api/internal/core/domain"
)

// Actor is the verified identity attached to a request by the guard.
type Actor struct {
	ID   string
	Role string
}

// UpdateUserInput carries the fields a user may change on their own
// account. Empty fields are left unchanged. Role is deliberately absent:
// no user-facing operation can change it.
type UpdateUserInput struct {
	Username string
	Password string
}

// UserService covers the account surface behind the guard.
type UserService interface {
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateCurrentUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, targetID string, actor Actor) error
	SetProfilePhoto(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error)
	RemoveProfilePhoto(ctx context.Context, userID string) (*domain.User, error)
}
