package service

import (
	"context"
	"time"

	"github.com/shopora/shopora/internal/cache"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/domain/voucher"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
)

// VoucherService validates promotion codes and dispatches them by
// promotion type onto the cart. Every application starts from the
// baseline state so reapplying after any cart mutation is idempotent.
type VoucherService interface {
	// ResolveCode validates a raw code string and returns the backing
	// promotion and code record
	ResolveCode(ctx context.Context, rawCode string, now time.Time) (*promotion.Promotion, *promotion.PromotionCode, error)

	// ApplyPromotionCode applies a discount-family or shipping code to
	// the cart and returns the new state. On a taxonomy error the
	// returned state is the neutral state for that voucher family.
	ApplyPromotionCode(ctx context.Context, state cart.CartState, rawCode string, now time.Time) (cart.CartState, error)

	// RemovePromotionCode clears the discount-family selection and its
	// derived gift lines
	RemovePromotionCode(ctx context.Context, state cart.CartState, now time.Time) (cart.CartState, error)

	// Available lists a user's usable wallet vouchers
	Available(ctx context.Context, userID string, now time.Time) ([]*voucher.UserVoucher, error)

	// Collect adds a promotion code to the user's wallet
	Collect(ctx context.Context, userID string, rawCode string, source types.VoucherSource, now time.Time) (*voucher.UserVoucher, error)
}

type voucherService struct {
	ServiceParams
	discountService DiscountService
	giftService     GiftService
}

// NewVoucherService creates a new voucher validation service
func NewVoucherService(params ServiceParams) VoucherService {
	return &voucherService{
		ServiceParams:   params,
		discountService: NewDiscountService(params),
		giftService:     NewGiftService(params),
	}
}

func (s *voucherService) ResolveCode(ctx context.Context, rawCode string, now time.Time) (*promotion.Promotion, *promotion.PromotionCode, error) {
	code, err := s.codeByString(ctx, rawCode)
	if err != nil {
		return nil, nil, err
	}

	if code.Status != types.StatusPublished {
		return nil, nil, invalidCodeError(rawCode)
	}
	if code.IsExpiredAt(now) {
		return nil, nil, ierr.NewError("promotion code expired").
			WithHint("This promotion code has expired").
			WithReportableDetails(map[string]any{"code": rawCode}).
			Mark(ierr.ErrExpiredCode)
	}
	if code.IsExhausted() {
		return nil, nil, ierr.NewError("promotion code usage limit reached").
			WithHint("This promotion code has been fully redeemed").
			WithReportableDetails(map[string]any{"code": rawCode}).
			Mark(ierr.ErrUsageLimitExceeded)
	}

	promo, err := s.PromotionRepo.Get(ctx, code.PromotionID)
	if err != nil || promo.Status != types.StatusPublished {
		return nil, nil, invalidCodeError(rawCode)
	}

	return promo, code, nil
}

func (s *voucherService) ApplyPromotionCode(ctx context.Context, state cart.CartState, rawCode string, now time.Time) (cart.CartState, error) {
	promo, code, err := s.ResolveCode(ctx, rawCode, now)
	if err != nil {
		return s.neutralDiscountState(ctx, state, now), err
	}

	// Reset every non-gift line to the catalog baseline before
	// dispatch; without this, switching codes or changing quantities
	// would compound voucher adjustments.
	annotated, err := s.discountService.AnnotateCart(ctx, state, now)
	if err != nil {
		return state, err
	}

	switch promo.Type {
	case types.PromotionTypeOrder, types.PromotionTypeProduct:
		return s.applyDiscountCode(annotated, promo, code)
	case types.PromotionTypeGift:
		return s.applyGiftCode(ctx, annotated, promo, code, now)
	case types.PromotionTypeShipping:
		return s.applyShippingCode(ctx, annotated, promo, code, now)
	}

	return s.neutralDiscountState(ctx, state, now), invalidCodeError(rawCode)
}

func (s *voucherService) RemovePromotionCode(ctx context.Context, state cart.CartState, now time.Time) (cart.CartState, error) {
	out := state.StripGifts()
	out.PromotionCode = ""
	return s.discountService.AnnotateCart(ctx, out, now)
}

func (s *voucherService) Available(ctx context.Context, userID string, now time.Time) ([]*voucher.UserVoucher, error) {
	return s.VoucherRepo.Available(ctx, userID, now)
}

func (s *voucherService) Collect(ctx context.Context, userID string, rawCode string, source types.VoucherSource, now time.Time) (*voucher.UserVoucher, error) {
	_, code, err := s.ResolveCode(ctx, rawCode, now)
	if err != nil {
		return nil, err
	}

	uv := &voucher.UserVoucher{
		ID:          types.GenerateUUIDWithPrefix("uvch"),
		Code:        types.GenerateVoucherCode("VC"),
		UserID:      userID,
		CodeID:      code.ID,
		CollectedAt: now,
		ExpiresAt:   code.ExpiresAt,
		Source:      source,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := s.VoucherRepo.Create(ctx, uv); err != nil {
		return nil, err
	}

	s.Logger.Infow("voucher collected",
		"user_id", userID,
		"code", rawCode,
		"source", string(source))

	return uv, nil
}

// applyDiscountCode handles order- and product-type codes. The actual
// discount amount is derived at checkout; here only the entry
// conditions are gated.
func (s *voucherService) applyDiscountCode(state cart.CartState, promo *promotion.Promotion, code *promotion.PromotionCode) (cart.CartState, error) {
	out := state.StripGifts()
	subtotal := out.Subtotal()

	minOrder := decimal.Max(promo.MinOrderValue, code.MinOrderValue)
	if minOrder.IsPositive() && subtotal.LessThan(minOrder) {
		shortfall := minOrder.Sub(subtotal)
		return clearDiscountSelection(out), conditionNotMetError("minimum order value not reached", map[string]any{
			"min_order_value": minOrder.String(),
			"subtotal":        subtotal.String(),
			"shortfall":       shortfall.String(),
		})
	}

	if promo.Type == types.PromotionTypeProduct {
		totalQty := 0
		for _, li := range out.NonGiftItems() {
			totalQty += li.Quantity
		}
		if promo.MinProductQuantity > 0 && totalQty < promo.MinProductQuantity {
			return clearDiscountSelection(out), conditionNotMetError("minimum product quantity not reached", map[string]any{
				"min_product_quantity": promo.MinProductQuantity,
				"quantity":             totalQty,
			})
		}
		if promo.MinProductValue.IsPositive() && subtotal.LessThan(promo.MinProductValue) {
			return clearDiscountSelection(out), conditionNotMetError("minimum product value not reached", map[string]any{
				"min_product_value": promo.MinProductValue.String(),
				"subtotal":          subtotal.String(),
			})
		}
	}

	out.PromotionCode = code.Code
	return out, nil
}

func (s *voucherService) applyGiftCode(ctx context.Context, state cart.CartState, promo *promotion.Promotion, code *promotion.PromotionCode, now time.Time) (cart.CartState, error) {
	giftCfg, err := s.GiftRepo.GiftConfig(ctx, promo.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return state.StripGifts(), ierr.NewError("gift promotion misconfigured").
				WithHint("This promotion has no gift products available").
				Mark(ierr.ErrNoGiftProductAvailable)
		}
		return state, err
	}

	out, err := s.giftService.Apply(ctx, state, giftCfg, now)
	if err != nil {
		out.PromotionCode = ""
		return out, err
	}

	out.PromotionCode = code.Code
	return out, nil
}

// applyShippingCode records the shipping voucher selection after the
// combination and district gates pass. The fee discount itself is
// computed at checkout.
func (s *voucherService) applyShippingCode(ctx context.Context, state cart.CartState, promo *promotion.Promotion, code *promotion.PromotionCode, now time.Time) (cart.CartState, error) {
	out := state

	if out.PromotionCode != "" {
		discountPromo, _, err := s.ResolveCode(ctx, out.PromotionCode, now)
		if err == nil {
			if err := CheckCombination(discountPromo.Type, promo); err != nil {
				out.ShippingVoucherCode = ""
				return out, err
			}
		}
	}

	if err := CheckDistrict(promo, out.Address); err != nil {
		out.ShippingVoucherCode = ""
		return out, err
	}

	out.ShippingVoucherCode = code.Code
	return out, nil
}

// neutralDiscountState strips the discount-family selection, leaving
// only baseline product discounts so the cart is never inconsistent
// after a failed application.
func (s *voucherService) neutralDiscountState(ctx context.Context, state cart.CartState, now time.Time) cart.CartState {
	out := state.StripGifts()
	out.PromotionCode = ""
	annotated, err := s.discountService.AnnotateCart(ctx, out, now)
	if err != nil {
		return out
	}
	return annotated
}

// codeByString resolves a code through the cache
func (s *voucherService) codeByString(ctx context.Context, rawCode string) (*promotion.PromotionCode, error) {
	cacheKey := cache.BuildCacheKey(cache.PrefixPromotionCode, rawCode)
	c := cache.GetInMemoryCache()

	if cached, found := c.Get(ctx, cacheKey); found {
		if code, ok := cached.(*promotion.PromotionCode); ok {
			return code, nil
		}
	}

	code, err := s.CodeRepo.ByCode(ctx, rawCode)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCodeError(rawCode)
		}
		return nil, err
	}

	c.Set(ctx, cacheKey, code, time.Minute)
	return code, nil
}

func invalidCodeError(rawCode string) error {
	return ierr.NewError("promotion code not valid").
		WithHint("This promotion code is not valid").
		WithReportableDetails(map[string]any{"code": rawCode}).
		Mark(ierr.ErrInvalidCode)
}

func conditionNotMetError(msg string, details map[string]any) error {
	return ierr.NewError(msg).
		WithHint("Your cart does not meet the promotion conditions yet").
		WithReportableDetails(details).
		Mark(ierr.ErrConditionNotMet)
}

// clearDiscountSelection drops the discount-family code while leaving
// the shipping selection and baseline discounts in place.
func clearDiscountSelection(state cart.CartState) cart.CartState {
	out := state.StripGifts()
	out.PromotionCode = ""
	return out
}
