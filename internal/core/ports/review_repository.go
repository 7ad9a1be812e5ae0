package ports

import (
	"context"

	"github.com/shoplane/commerce-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	// List returns a page of reviews ordered by creation time, newest first.
	List(ctx context.Context, page, limit int) ([]*domain.Review, error)
	Save(ctx context.Context, r *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}
