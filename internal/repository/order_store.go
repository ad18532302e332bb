package repository

import (
	"context"

	"github.com/samber/lo"

	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/order"
	ierr "github.com/shopora/shopora/internal/errors"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
}

// NewInMemoryOrderStore creates a new in-memory order store
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
	}
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	copied := *o
	copied.Items = append([]cart.CartLineItem(nil), o.Items...)
	if o.PaidAt != nil {
		paid := *o.PaidAt
		copied.PaidAt = &paid
	}
	return &copied
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			WithHint("Order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("order not found").
			WithHint("Order not found").
			WithReportableDetails(map[string]any{"order_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) Update(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			WithHint("Order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	items, err := s.InMemoryStore.List(ctx, userID, func(_ context.Context, o *order.Order, filter interface{}) bool {
		wanted, _ := filter.(string)
		return o.UserID == wanted
	}, func(i, j *order.Order) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(o *order.Order, _ int) *order.Order { return copyOrder(o) }), nil
}
