package ports

import (
	"context"

	"github.com/shoplane/commerce-api/internal/core/domain"
)

type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
}

// UpdateProductInput uses pointers so absent fields stay untouched.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
}

type ProductService interface {
	Create(ctx context.Context, in CreateProductInput, userID string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
