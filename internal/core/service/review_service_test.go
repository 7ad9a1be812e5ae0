package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

type stubReviewRepo struct {
	reviews map[string]*domain.Review
	nextID  int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func cloneReview(r *domain.Review) *domain.Review {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (s *stubReviewRepo) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	copy := cloneReview(r)
	s.nextID++
	copy.ID = fmt.Sprintf("r%d", s.nextID)
	s.reviews[copy.ID] = cloneReview(copy)
	return cloneReview(copy), nil
}

func (s *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	if r, ok := s.reviews[id]; ok {
		return cloneReview(r), nil
	}
	return nil, domain.ErrReviewNotFound
}

func (s *stubReviewRepo) List(_ context.Context, page, limit int) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, cloneReview(r))
	}
	return out, nil
}

func (s *stubReviewRepo) Save(_ context.Context, r *domain.Review) (*domain.Review, error) {
	if _, ok := s.reviews[r.ID]; !ok {
		return nil, domain.ErrReviewNotFound
	}
	s.reviews[r.ID] = cloneReview(r)
	return cloneReview(r), nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

type reviewFixture struct {
	svc     ports.ReviewService
	users   *stubUserRepo
	owner   *domain.User
	admin   *domain.User
	product *domain.Product
	reviews *stubReviewRepo
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	users := newStubUserRepo()
	owner := seedUser(users, "owner@example.com", domain.RoleUser)
	admin := seedUser(users, "admin@example.com", domain.RoleAdmin)

	products := newStubProductRepo()
	product, err := products.Create(context.Background(), &domain.Product{Title: "widget", Price: 10, UserID: admin.ID})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	reviews := newStubReviewRepo()
	return &reviewFixture{
		svc:     NewReviewService(reviews, products, users, zerolog.Nop()),
		users:   users,
		owner:   owner,
		admin:   admin,
		product: product,
		reviews: reviews,
	}
}

func TestReviewService_Create(t *testing.T) {
	f := newReviewFixture(t)

	r, err := f.svc.Create(context.Background(), f.owner.ID, f.product.ID, ports.CreateReviewInput{Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if r.UserID != f.owner.ID || r.ProductID != f.product.ID {
		t.Fatalf("review must record owner and product: %+v", r)
	}
}

func TestReviewService_Create_MissingProduct(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner.ID, "missing", ports.CreateReviewInput{Rating: 3})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReviewService_Update_OwnerOnly(t *testing.T) {
	f := newReviewFixture(t)

	r, err := f.svc.Create(context.Background(), f.owner.ID, f.product.ID, ports.CreateReviewInput{Rating: 4, Comment: "ok"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.svc.Update(context.Background(), r.ID, f.admin.ID, ports.UpdateReviewInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner update: expected ErrForbidden, got %v", err)
	}

	rating := 2
	updated, err := f.svc.Update(context.Background(), r.ID, f.owner.ID, ports.UpdateReviewInput{Rating: &rating})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Rating != 2 || updated.Comment != "ok" {
		t.Fatalf("partial update wrong: %+v", updated)
	}
}

func TestReviewService_Delete_OwnerOrAdmin(t *testing.T) {
	f := newReviewFixture(t)

	r, err := f.svc.Create(context.Background(), f.owner.ID, f.product.ID, ports.CreateReviewInput{Rating: 4})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stranger := ports.Actor{ID: "someone-else", Role: domain.RoleUser}
	if err := f.svc.Delete(context.Background(), r.ID, stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger delete: expected ErrForbidden, got %v", err)
	}

	if err := f.svc.Delete(context.Background(), r.ID, ports.Actor{ID: f.admin.ID, Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	r2, err := f.svc.Create(context.Background(), f.owner.ID, f.product.ID, ports.CreateReviewInput{Rating: 1})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := f.svc.Delete(context.Background(), r2.ID, ports.Actor{ID: f.owner.ID, Role: domain.RoleUser}); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
