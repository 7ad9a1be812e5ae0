package ports

import (
	"context"

	"github.com/shoplane/commerce-api/internal/core/domain"
)

type CreateReviewInput struct {
	Rating  int
	Comment string
}

// UpdateReviewInput uses pointers so absent fields stay untouched.
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

type ReviewService interface {
	Create(ctx context.Context, userID, productID string, in CreateReviewInput) (*domain.Review, error)
	List(ctx context.Context, page, limit int) ([]*domain.Review, error)
	Update(ctx context.Context, reviewID, userID string, in UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, reviewID string, actor Actor) error
}
