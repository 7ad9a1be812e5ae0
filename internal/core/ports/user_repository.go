package ports

import (
	"context"

	"github.com/shoplane/commerce-api/internal/core/domain"
)

// UserRepository is the only component that touches identity persistence.
// Reads return the full internal record (password hash and one-time token
// fields included); the API layer strips those before anything reaches a
// client. Role changes must be written explicitly through the entity field;
// implementations never merge role from partial input.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
