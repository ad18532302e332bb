package service

import (
	"context"
	"time"

	"github.com/shopora/shopora/internal/cache"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopspring/decimal"
)

// DiscountService resolves the best automatic per-product discount
// from the active time-bounded rules. The resolved amount is the
// baseline every voucher computation starts from.
type DiscountService interface {
	// BestDiscount returns the maximum applicable per-unit discount
	// for the product across all active rules. Rules are never
	// stacked; the customer gets the single best price.
	BestDiscount(ctx context.Context, p *product.Product, now time.Time) (decimal.Decimal, error)

	// AnnotateCart resets every non-gift line's discount to the
	// baseline automatic discount, undoing any prior voucher-specific
	// adjustment. This is the idempotence anchor: it is called before
	// every voucher application and recomputation.
	AnnotateCart(ctx context.Context, state cart.CartState, now time.Time) (cart.CartState, error)
}

type discountService struct {
	ServiceParams
}

// NewDiscountService creates a new discount catalog service
func NewDiscountService(params ServiceParams) DiscountService {
	return &discountService{ServiceParams: params}
}

func (s *discountService) BestDiscount(ctx context.Context, p *product.Product, now time.Time) (decimal.Decimal, error) {
	rules, err := s.activeRules(ctx, now)
	if err != nil {
		return decimal.Zero, err
	}

	best := decimal.Zero
	for _, rule := range rules {
		if !rule.Scope.Matches(p.ID, p.CategoryIDs) {
			continue
		}
		candidate := rule.CandidateAmount(p.Price)
		if candidate.GreaterThan(best) {
			best = candidate
		}
	}

	return best, nil
}

func (s *discountService) AnnotateCart(ctx context.Context, state cart.CartState, now time.Time) (cart.CartState, error) {
	out := state.Clone()

	for i := range out.Items {
		if out.Items[i].IsGift {
			continue
		}

		p, err := s.ProductRepo.Get(ctx, out.Items[i].ProductID)
		if err != nil {
			return state, err
		}

		discount, err := s.BestDiscount(ctx, p, now)
		if err != nil {
			return state, err
		}

		// Unit price is re-snapshotted alongside the discount so a
		// stale session can never carry an outdated price.
		out.Items[i].Price = p.Price
		out.Items[i].Discount = discount
	}

	return out, nil
}

// activeRules reads the active rule set through the cache; rule churn
// is low and recomputation happens on every cart mutation.
func (s *discountService) activeRules(ctx context.Context, now time.Time) ([]*discountrule.ProductDiscountRule, error) {
	cacheKey := cache.BuildCacheKey(cache.PrefixDiscountRule, "active")
	c := cache.GetInMemoryCache()

	if cached, found := c.Get(ctx, cacheKey); found {
		if rules, ok := cached.([]*discountrule.ProductDiscountRule); ok {
			return rules, nil
		}
	}

	rules, err := s.DiscountRuleRepo.ActiveRules(ctx, now)
	if err != nil {
		return nil, err
	}

	c.Set(ctx, cacheKey, rules, time.Minute)
	return rules, nil
}
