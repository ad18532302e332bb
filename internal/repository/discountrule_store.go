package repository

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/shopora/shopora/internal/domain/discountrule"
	ierr "github.com/shopora/shopora/internal/errors"
)

// InMemoryDiscountRuleStore implements discountrule.Repository
type InMemoryDiscountRuleStore struct {
	*InMemoryStore[*discountrule.ProductDiscountRule]
}

// NewInMemoryDiscountRuleStore creates a new in-memory discount rule store
func NewInMemoryDiscountRuleStore() *InMemoryDiscountRuleStore {
	return &InMemoryDiscountRuleStore{
		InMemoryStore: NewInMemoryStore[*discountrule.ProductDiscountRule](),
	}
}

func copyDiscountRule(r *discountrule.ProductDiscountRule) *discountrule.ProductDiscountRule {
	if r == nil {
		return nil
	}
	copied := *r
	copied.Scope.ProductIDs = append([]string(nil), r.Scope.ProductIDs...)
	copied.Scope.CategoryIDs = append([]string(nil), r.Scope.CategoryIDs...)
	return &copied
}

func (s *InMemoryDiscountRuleStore) Create(ctx context.Context, r *discountrule.ProductDiscountRule) error {
	if r == nil {
		return ierr.NewError("discount rule cannot be nil").
			WithHint("Discount rule cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, r.ID, copyDiscountRule(r))
}

func (s *InMemoryDiscountRuleStore) Get(ctx context.Context, id string) (*discountrule.ProductDiscountRule, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("discount rule not found").
			WithHint("Discount rule not found").
			WithReportableDetails(map[string]any{"rule_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyDiscountRule(r), nil
}

func (s *InMemoryDiscountRuleStore) ActiveRules(ctx context.Context, now time.Time) ([]*discountrule.ProductDiscountRule, error) {
	items, err := s.InMemoryStore.List(ctx, now, func(_ context.Context, r *discountrule.ProductDiscountRule, filter interface{}) bool {
		at, _ := filter.(time.Time)
		return r.IsActiveAt(at)
	}, func(i, j *discountrule.ProductDiscountRule) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(r *discountrule.ProductDiscountRule, _ int) *discountrule.ProductDiscountRule {
		return copyDiscountRule(r)
	}), nil
}

func (s *InMemoryDiscountRuleStore) Update(ctx context.Context, r *discountrule.ProductDiscountRule) error {
	if r == nil {
		return ierr.NewError("discount rule cannot be nil").
			WithHint("Discount rule cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, r.ID, copyDiscountRule(r))
}

func (s *InMemoryDiscountRuleStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
