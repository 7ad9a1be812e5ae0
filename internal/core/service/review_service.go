package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

const defaultReviewsPerPage = 3

type reviewService struct {
	reviews  ports.ReviewRepository
	products ports.ProductRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewReviewService returns a ReviewService implementation.
func NewReviewService(reviews ports.ReviewRepository, products ports.ProductRepository, users ports.UserRepository, log zerolog.Logger) ports.ReviewService {
	return &reviewService{reviews: reviews, products: products, users: users, log: log}
}

func (s *reviewService) Create(ctx context.Context, userID, productID string, in ports.CreateReviewInput) (*domain.Review, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	now := time.Now().UTC()
	review := &domain.Review{
		Rating:    in.Rating,
		Comment:   in.Comment,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info().Str("review_id", created.ID).Str("product_id", productID).Str("user_id", userID).Msg("review created")
	return created, nil
}

func (s *reviewService) List(ctx context.Context, page, limit int) ([]*domain.Review, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultReviewsPerPage
	}
	return s.reviews.List(ctx, page, limit)
}

// Update is restricted to the review's owner.
func (s *reviewService) Update(ctx context.Context, reviewID, userID string, in ports.UpdateReviewInput) (*domain.Review, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if in.Rating != nil {
		review.Rating = *in.Rating
	}
	if in.Comment != nil {
		review.Comment = *in.Comment
	}
	review.UpdatedAt = time.Now().UTC()

	return s.reviews.Save(ctx, review)
}

// Delete is allowed for the review's owner or an admin.
func (s *reviewService) Delete(ctx context.Context, reviewID string, actor ports.Actor) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info().Str("review_id", reviewID).Str("actor_id", actor.ID).Msg("review deleted")
	return nil
}
