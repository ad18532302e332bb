package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/shopora/shopora/internal/domain/product"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	copied := *p
	copied.CategoryIDs = append([]string(nil), p.CategoryIDs...)
	return &copied
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			WithHint("Product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("product not found").
			WithHint("Product not found").
			WithReportableDetails(map[string]any{"product_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) GetBatch(ctx context.Context, ids []string) ([]*product.Product, error) {
	items, err := s.InMemoryStore.List(ctx, ids, func(_ context.Context, p *product.Product, filter interface{}) bool {
		wanted, _ := filter.([]string)
		return lo.Contains(wanted, p.ID)
	}, sortProductsByID)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *product.Product, _ int) *product.Product { return copyProduct(p) }), nil
}

func (s *InMemoryProductStore) List(ctx context.Context) ([]*product.Product, error) {
	items, err := s.InMemoryStore.List(ctx, nil, nil, sortProductsByID)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *product.Product, _ int) *product.Product { return copyProduct(p) }), nil
}

func (s *InMemoryProductStore) ListByCategories(ctx context.Context, categoryIDs []string) ([]*product.Product, error) {
	items, err := s.InMemoryStore.List(ctx, categoryIDs, func(_ context.Context, p *product.Product, filter interface{}) bool {
		if p.Status != types.StatusPublished {
			return false
		}
		wanted, _ := filter.([]string)
		return len(lo.Intersect(wanted, p.CategoryIDs)) > 0
	}, sortProductsByID)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *product.Product, _ int) *product.Product { return copyProduct(p) }), nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			WithHint("Product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyProduct(p))
}

func sortProductsByID(i, j *product.Product) bool {
	return i.ID < j.ID
}
