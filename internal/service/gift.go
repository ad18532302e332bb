package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
)

// GiftService evaluates buy-X-get-Y promotions and synthesizes the
// ephemeral gift line items. Gift lines are derived state: every
// application strips the previous ones and regenerates from scratch.
type GiftService interface {
	// Apply runs the gift state machine against the cart and returns
	// the new cart state carrying the synthesized gift lines. On a
	// taxonomy error the returned state has no gift lines.
	Apply(ctx context.Context, state cart.CartState, giftCfg *promotion.PromotionGift, now time.Time) (cart.CartState, error)
}

type giftService struct {
	ServiceParams
	discountService DiscountService
}

// NewGiftService creates a new gift resolver
func NewGiftService(params ServiceParams) GiftService {
	return &giftService{
		ServiceParams:   params,
		discountService: NewDiscountService(params),
	}
}

func (s *giftService) Apply(ctx context.Context, state cart.CartState, giftCfg *promotion.PromotionGift, now time.Time) (cart.CartState, error) {
	// Step 1: all existing gift lines go, unconditionally
	out := state.StripGifts()

	// Step 2: the eligible buy-set
	eligible, err := s.eligibleBuyItems(ctx, out, giftCfg)
	if err != nil {
		return out, err
	}

	// Steps 3-4: accumulate the condition and count threshold multiples
	accumulated := s.accumulate(eligible, giftCfg.ConditionKind)
	timesMet := timesConditionMet(accumulated, giftCfg.ConditionThreshold, len(eligible) > 0)
	if timesMet == 0 {
		shortfall := giftCfg.ConditionThreshold.Sub(accumulated)
		return out, ierr.NewError("gift condition not met").
			WithHintf("Add %s more to qualify for this gift", shortfall.String()).
			WithReportableDetails(map[string]any{
				"condition":   string(giftCfg.ConditionKind),
				"threshold":   giftCfg.ConditionThreshold.String(),
				"accumulated": accumulated.String(),
				"shortfall":   shortfall.String(),
			}).
			Mark(ierr.ErrConditionNotMet)
	}

	// Step 5: a limited promotion triggers at most once per order
	if giftCfg.LimitPerOrder && timesMet > 1 {
		timesMet = 1
	}

	// Step 6
	totalGiftQty := giftCfg.GiftQuantity * timesMet

	// Step 7: resolve gift products in listing order and distribute
	// greedily, capped by stock
	giftProducts, err := s.resolveGiftProducts(ctx, giftCfg)
	if err != nil {
		return out, err
	}
	if len(giftProducts) == 0 {
		return out, ierr.NewError("no gift product configured").
			WithHint("This promotion has no gift products available").
			Mark(ierr.ErrNoGiftProductAvailable)
	}

	delivery := firstDelivery(eligible)

	remaining := totalGiftQty
	distributed := 0
	for _, gp := range giftProducts {
		if remaining <= 0 {
			break
		}
		qty := remaining
		if gp.Stock < qty {
			qty = gp.Stock
		}
		if qty <= 0 {
			continue
		}

		line, err := s.synthesizeGiftLine(ctx, gp, qty, giftCfg, delivery, now)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, line)
		remaining -= qty
		distributed += qty
	}

	if distributed == 0 {
		return state.StripGifts(), ierr.NewError("gift products out of stock").
			WithHint("The gift products for this promotion are out of stock").
			WithReportableDetails(map[string]any{
				"requested": totalGiftQty,
			}).
			Mark(ierr.ErrInsufficientGiftStock)
	}

	s.Logger.Debugw("gift promotion applied",
		"promotion_id", giftCfg.PromotionID,
		"times_met", timesMet,
		"gift_quantity", totalGiftQty,
		"distributed", distributed)

	return out, nil
}

// eligibleBuyItems returns the non-gift lines matching the buy
// eligibility set (explicit product ids union category membership).
func (s *giftService) eligibleBuyItems(ctx context.Context, state cart.CartState, giftCfg *promotion.PromotionGift) ([]cart.CartLineItem, error) {
	var eligible []cart.CartLineItem
	for _, li := range state.NonGiftItems() {
		if lo.Contains(giftCfg.BuyProductIDs, li.ProductID) {
			eligible = append(eligible, li)
			continue
		}
		if len(giftCfg.BuyCategoryIDs) == 0 {
			continue
		}
		p, err := s.ProductRepo.Get(ctx, li.ProductID)
		if err != nil {
			return nil, err
		}
		if len(lo.Intersect(giftCfg.BuyCategoryIDs, p.CategoryIDs)) > 0 {
			eligible = append(eligible, li)
		}
	}
	return eligible, nil
}

// accumulate sums the condition metric over the eligible lines:
// quantities for min_quantity, (price - baselineDiscount) * quantity
// for min_value.
func (s *giftService) accumulate(eligible []cart.CartLineItem, kind types.GiftConditionKind) decimal.Decimal {
	total := decimal.Zero
	for _, li := range eligible {
		qty := decimal.NewFromInt(int64(li.Quantity))
		switch kind {
		case types.GiftConditionMinQuantity:
			total = total.Add(qty)
		case types.GiftConditionMinValue:
			total = total.Add(li.NetUnitPrice().Mul(qty))
		}
	}
	return total
}

// timesConditionMet floors accumulated/threshold. A non-positive
// threshold degenerates to one multiple when any eligible item exists.
// Partial multiples round down; rounding policy is not configurable.
func timesConditionMet(accumulated, threshold decimal.Decimal, hasEligible bool) int {
	if threshold.LessThanOrEqual(decimal.Zero) {
		if hasEligible {
			return 1
		}
		return 0
	}
	return int(accumulated.Div(threshold).IntPart())
}

// resolveGiftProducts returns the gift eligibility set in listing
// order: explicit gift products first, then category members not
// already listed.
func (s *giftService) resolveGiftProducts(ctx context.Context, giftCfg *promotion.PromotionGift) ([]*product.Product, error) {
	var result []*product.Product
	seen := make(map[string]bool)

	for _, id := range giftCfg.GiftProductIDs {
		p, err := s.ProductRepo.Get(ctx, id)
		if err != nil {
			if ierr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		result = append(result, p)
		seen[p.ID] = true
	}

	if len(giftCfg.GiftCategoryIDs) > 0 {
		byCategory, err := s.ProductRepo.ListByCategories(ctx, giftCfg.GiftCategoryIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range byCategory {
			if !seen[p.ID] {
				result = append(result, p)
				seen[p.ID] = true
			}
		}
	}

	return result, nil
}

// synthesizeGiftLine prices one gift line. The automatic product
// discount is applied first and baked into the line's Price; the gift
// discount is computed against that reduced price and stored alone in
// Discount. Summing (Price - Discount) * Quantity therefore yields the
// payable amount, while voucher reporting reads Discount only.
func (s *giftService) synthesizeGiftLine(ctx context.Context, gp *product.Product, qty int, giftCfg *promotion.PromotionGift, delivery *cart.CartLineItem, now time.Time) (cart.CartLineItem, error) {
	productDiscount, err := s.discountService.BestDiscount(ctx, gp, now)
	if err != nil {
		return cart.CartLineItem{}, err
	}

	afterProduct := types.NewRawPrice(gp.Price).ApplyProductDiscount(productDiscount)

	var giftDiscount decimal.Decimal
	switch giftCfg.GiftDiscountKind {
	case types.GiftDiscountFree:
		giftDiscount = afterProduct.Amount
	case types.GiftDiscountPercent:
		giftDiscount = afterProduct.Amount.Mul(giftCfg.GiftDiscountValue).Div(decimal.NewFromInt(100))
	case types.GiftDiscountMoney:
		giftDiscount = decimal.Min(giftCfg.GiftDiscountValue, afterProduct.Amount)
	}
	final := afterProduct.ApplyVoucherDiscount(giftDiscount)

	line := cart.CartLineItem{
		ProductID:   gp.ID,
		ProductName: gp.Name,
		Quantity:    qty,
		Price:       afterProduct.Amount,
		Discount:    final.VoucherDiscount,
		IsGift:      true,
	}

	// Gifts ship with the qualifying purchase
	if delivery != nil {
		line.DeliveryDate = delivery.DeliveryDate
		line.DeliveryTime = delivery.DeliveryTime
	}

	return line, nil
}

// firstDelivery picks the delivery metadata of the first eligible buy
// line, if any.
func firstDelivery(eligible []cart.CartLineItem) *cart.CartLineItem {
	for i := range eligible {
		if eligible[i].DeliveryDate != nil || eligible[i].DeliveryTime != "" {
			return &eligible[i]
		}
	}
	if len(eligible) > 0 {
		return &eligible[0]
	}
	return nil
}
