package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

// ProductCache abstracts the catalog read cache (Redis). A nil-product,
// nil-error Get is a miss. Cache failures are never fatal: the service logs
// and falls through to the repository.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

type productService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	cache    ProductCache
	log      zerolog.Logger
}

// NewProductService returns a ProductService implementation. cache may be
// nil, in which case every read goes to the repository.
func NewProductService(products ports.ProductRepository, users ports.UserRepository, cache ProductCache, log zerolog.Logger) ports.ProductService {
	return &productService{products: products, users: users, cache: cache, log: log}
}

func (s *productService) Create(ctx context.Context, in ports.CreateProductInput, userID string) (*domain.Product, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Title:       strings.ToLower(in.Title),
		Description: in.Description,
		Price:       in.Price,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cacheSet(ctx, created)
	s.log.Info().Str("product_id", created.ID).Str("user_id", userID).Msg("product created")
	return created, nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, product)
	return product, nil
}

func (s *productService) List(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *productService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		product.Title = strings.ToLower(*in.Title)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.cacheSet(ctx, updated)
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
		}
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *productService) cacheSet(ctx context.Context, p *domain.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Warn().Err(err).Str("product_id", p.ID).Msg("product cache write failed")
	}
}
