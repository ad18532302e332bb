package repository

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/shopora/shopora/internal/domain/voucher"
	ierr "github.com/shopora/shopora/internal/errors"
)

// InMemoryVoucherStore implements voucher.Repository
type InMemoryVoucherStore struct {
	*InMemoryStore[*voucher.UserVoucher]
}

// NewInMemoryVoucherStore creates a new in-memory user voucher store
func NewInMemoryVoucherStore() *InMemoryVoucherStore {
	return &InMemoryVoucherStore{
		InMemoryStore: NewInMemoryStore[*voucher.UserVoucher](),
	}
}

func copyUserVoucher(v *voucher.UserVoucher) *voucher.UserVoucher {
	if v == nil {
		return nil
	}
	copied := *v
	if v.ExpiresAt != nil {
		expires := *v.ExpiresAt
		copied.ExpiresAt = &expires
	}
	if v.UsedAt != nil {
		used := *v.UsedAt
		copied.UsedAt = &used
	}
	return &copied
}

func (s *InMemoryVoucherStore) Create(ctx context.Context, v *voucher.UserVoucher) error {
	if v == nil {
		return ierr.NewError("voucher cannot be nil").
			WithHint("Voucher cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, v.ID, copyUserVoucher(v))
}

func (s *InMemoryVoucherStore) Get(ctx context.Context, id string) (*voucher.UserVoucher, error) {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("voucher not found").
			WithHint("Voucher not found").
			WithReportableDetails(map[string]any{"voucher_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyUserVoucher(v), nil
}

type voucherAvailableFilter struct {
	userID string
	now    time.Time
}

func (s *InMemoryVoucherStore) Available(ctx context.Context, userID string, now time.Time) ([]*voucher.UserVoucher, error) {
	items, err := s.InMemoryStore.List(ctx, voucherAvailableFilter{userID: userID, now: now},
		func(_ context.Context, v *voucher.UserVoucher, filter interface{}) bool {
			f, _ := filter.(voucherAvailableFilter)
			return v.UserID == f.userID && v.IsAvailableAt(f.now)
		},
		func(i, j *voucher.UserVoucher) bool {
			return i.CollectedAt.Before(j.CollectedAt)
		})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(v *voucher.UserVoucher, _ int) *voucher.UserVoucher { return copyUserVoucher(v) }), nil
}

type voucherSourceFilter struct {
	userID string
	source string
}

func (s *InMemoryVoucherStore) CountByUserAndSource(ctx context.Context, userID string, source string) (int, error) {
	return s.InMemoryStore.Count(ctx, voucherSourceFilter{userID: userID, source: source},
		func(_ context.Context, v *voucher.UserVoucher, filter interface{}) bool {
			f, _ := filter.(voucherSourceFilter)
			return v.UserID == f.userID && string(v.Source) == f.source
		})
}

// MarkUsed binds the voucher to an order. The check and the write run
// under the store's write lock so a voucher can never be bound twice.
func (s *InMemoryVoucherStore) MarkUsed(ctx context.Context, id string, orderID string) error {
	return s.WithLock(func(items map[string]*voucher.UserVoucher) error {
		v, exists := items[id]
		if !exists {
			return ierr.NewError("voucher not found").
				WithHint("Voucher not found").
				WithReportableDetails(map[string]any{"voucher_id": id}).
				Mark(ierr.ErrNotFound)
		}
		if v.IsUsed {
			return ierr.NewError("voucher already used").
				WithHint("This voucher has already been redeemed").
				WithReportableDetails(map[string]any{
					"voucher_id": id,
					"order_id":   v.OrderID,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		now := time.Now().UTC()
		v.IsUsed = true
		v.UsedAt = &now
		v.OrderID = orderID
		return nil
	})
}
