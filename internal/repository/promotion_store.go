package repository

import (
	"context"

	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
)

// InMemoryPromotionStore implements promotion.Repository
type InMemoryPromotionStore struct {
	*InMemoryStore[*promotion.Promotion]
}

// NewInMemoryPromotionStore creates a new in-memory promotion store
func NewInMemoryPromotionStore() *InMemoryPromotionStore {
	return &InMemoryPromotionStore{
		InMemoryStore: NewInMemoryStore[*promotion.Promotion](),
	}
}

func copyPromotion(p *promotion.Promotion) *promotion.Promotion {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Districts = append([]string(nil), p.Districts...)
	return &copied
}

func (s *InMemoryPromotionStore) Create(ctx context.Context, p *promotion.Promotion) error {
	if p == nil {
		return ierr.NewError("promotion cannot be nil").
			WithHint("Promotion cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyPromotion(p))
}

func (s *InMemoryPromotionStore) Get(ctx context.Context, id string) (*promotion.Promotion, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("promotion not found").
			WithHint("Promotion not found").
			WithReportableDetails(map[string]any{"promotion_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyPromotion(p), nil
}

func (s *InMemoryPromotionStore) Update(ctx context.Context, p *promotion.Promotion) error {
	if p == nil {
		return ierr.NewError("promotion cannot be nil").
			WithHint("Promotion cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyPromotion(p))
}

func (s *InMemoryPromotionStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

// InMemoryPromotionCodeStore implements promotion.CodeRepository
type InMemoryPromotionCodeStore struct {
	*InMemoryStore[*promotion.PromotionCode]
}

// NewInMemoryPromotionCodeStore creates a new in-memory promotion code store
func NewInMemoryPromotionCodeStore() *InMemoryPromotionCodeStore {
	return &InMemoryPromotionCodeStore{
		InMemoryStore: NewInMemoryStore[*promotion.PromotionCode](),
	}
}

func copyPromotionCode(c *promotion.PromotionCode) *promotion.PromotionCode {
	if c == nil {
		return nil
	}
	copied := *c
	if c.UsageLimit != nil {
		limit := *c.UsageLimit
		copied.UsageLimit = &limit
	}
	if c.ExpiresAt != nil {
		expires := *c.ExpiresAt
		copied.ExpiresAt = &expires
	}
	return &copied
}

func (s *InMemoryPromotionCodeStore) Create(ctx context.Context, c *promotion.PromotionCode) error {
	if c == nil {
		return ierr.NewError("promotion code cannot be nil").
			WithHint("Promotion code cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyPromotionCode(c))
}

func (s *InMemoryPromotionCodeStore) Get(ctx context.Context, id string) (*promotion.PromotionCode, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("promotion code not found").
			WithHint("Promotion code not found").
			WithReportableDetails(map[string]any{"code_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyPromotionCode(c), nil
}

func (s *InMemoryPromotionCodeStore) ByCode(ctx context.Context, code string) (*promotion.PromotionCode, error) {
	matches, err := s.InMemoryStore.List(ctx, code, func(_ context.Context, c *promotion.PromotionCode, filter interface{}) bool {
		wanted, _ := filter.(string)
		return c.Code == wanted && c.Status == types.StatusPublished
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("promotion code not found").
			WithHint("This code does not exist").
			WithReportableDetails(map[string]any{"code": code}).
			Mark(ierr.ErrInvalidCode)
	}
	return copyPromotionCode(matches[0]), nil
}

func (s *InMemoryPromotionCodeStore) Update(ctx context.Context, c *promotion.PromotionCode) error {
	if c == nil {
		return ierr.NewError("promotion code cannot be nil").
			WithHint("Promotion code cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyPromotionCode(c))
}

// IncrementUsage consumes one use under the store's write lock. The
// limit check and the increment are a single critical section so
// concurrent checkouts cannot both consume the last use.
func (s *InMemoryPromotionCodeStore) IncrementUsage(ctx context.Context, id string) error {
	return s.WithLock(func(items map[string]*promotion.PromotionCode) error {
		c, exists := items[id]
		if !exists {
			return ierr.NewError("promotion code not found").
				WithHint("Promotion code not found").
				WithReportableDetails(map[string]any{"code_id": id}).
				Mark(ierr.ErrNotFound)
		}
		if c.IsExhausted() {
			return ierr.NewError("promotion code usage limit reached").
				WithHint("This code has no uses left").
				WithReportableDetails(map[string]any{"code": c.Code}).
				Mark(ierr.ErrUsageLimitExceeded)
		}
		c.UsedCount++
		return nil
	})
}

// InMemoryPromotionGiftStore implements promotion.GiftRepository
type InMemoryPromotionGiftStore struct {
	*InMemoryStore[*promotion.PromotionGift]
}

// NewInMemoryPromotionGiftStore creates a new in-memory gift config store
func NewInMemoryPromotionGiftStore() *InMemoryPromotionGiftStore {
	return &InMemoryPromotionGiftStore{
		InMemoryStore: NewInMemoryStore[*promotion.PromotionGift](),
	}
}

func copyPromotionGift(g *promotion.PromotionGift) *promotion.PromotionGift {
	if g == nil {
		return nil
	}
	copied := *g
	copied.BuyProductIDs = append([]string(nil), g.BuyProductIDs...)
	copied.BuyCategoryIDs = append([]string(nil), g.BuyCategoryIDs...)
	copied.GiftProductIDs = append([]string(nil), g.GiftProductIDs...)
	copied.GiftCategoryIDs = append([]string(nil), g.GiftCategoryIDs...)
	return &copied
}

func (s *InMemoryPromotionGiftStore) Create(ctx context.Context, g *promotion.PromotionGift) error {
	if g == nil {
		return ierr.NewError("gift config cannot be nil").
			WithHint("Gift config cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, g.ID, copyPromotionGift(g))
}

func (s *InMemoryPromotionGiftStore) GiftConfig(ctx context.Context, promotionID string) (*promotion.PromotionGift, error) {
	matches, err := s.InMemoryStore.List(ctx, promotionID, func(_ context.Context, g *promotion.PromotionGift, filter interface{}) bool {
		wanted, _ := filter.(string)
		return g.PromotionID == wanted && g.Status == types.StatusPublished
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("gift config not found").
			WithHint("This promotion has no gift configuration").
			WithReportableDetails(map[string]any{"promotion_id": promotionID}).
			Mark(ierr.ErrNotFound)
	}
	return copyPromotionGift(matches[0]), nil
}

func (s *InMemoryPromotionGiftStore) Update(ctx context.Context, g *promotion.PromotionGift) error {
	if g == nil {
		return ierr.NewError("gift config cannot be nil").
			WithHint("Gift config cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, g.ID, copyPromotionGift(g))
}
