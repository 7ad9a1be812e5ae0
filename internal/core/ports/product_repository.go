package ports

import (
	"context"

	"github.com/shoplane/commerce-api/internal/core/domain"
)

// ListProductsFilter carries the catalog query parameters.
type ListProductsFilter struct {
	Title    string  // optional: case-insensitive substring match
	MinPrice float64 // optional: price >= MinPrice
	MaxPrice float64 // optional: price <= MaxPrice (0 = unset)
}

// ProductRepository defines persistence operations for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
	Save(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
