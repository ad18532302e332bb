package service

import (
	"context"
	"time"

	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
)

// CheckoutService orchestrates the totals pipeline: subtotal, voucher
// discount, shipping, points. Each stage consumes the previous stage's
// output; the whole pipeline is recomputed from scratch on every call.
type CheckoutService interface {
	// ComputeTotals derives the full checkout breakdown for the cart.
	// The cart is expected to carry baseline-annotated lines and any
	// validated voucher selections. A non-empty message reports a
	// stage that degraded instead of failing, such as a points request
	// above the balance.
	ComputeTotals(ctx context.Context, state cart.CartState, userID string, now time.Time) (cart.CheckoutTotals, string, error)
}

type checkoutService struct {
	ServiceParams
	voucherService VoucherService
}

// NewCheckoutService creates a new checkout calculator
func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{
		ServiceParams:  params,
		voucherService: NewVoucherService(params),
	}
}

func (s *checkoutService) ComputeTotals(ctx context.Context, state cart.CartState, userID string, now time.Time) (cart.CheckoutTotals, string, error) {
	totals := cart.CheckoutTotals{}

	// Stage 1: subtotal. Gift lines contribute their full Price (the
	// product discount is already baked in); their voucher Discount is
	// reported separately in stage 2.
	totals.Subtotal = state.Subtotal()
	totals.PromotionDiscount = s.automaticDiscount(state)

	// Stage 2: discount-family voucher amount
	discountPromo, err := s.discountVoucherAmount(ctx, state, totals.Subtotal, now, &totals)
	if err != nil {
		return cart.CheckoutTotals{}, "", err
	}

	// Stage 3: base shipping fee
	fee, err := s.shippingFeeBase(ctx, state)
	if err != nil {
		return cart.CheckoutTotals{}, "", err
	}
	totals.ShippingFee = fee

	// Stage 4: shipping voucher, gated by the combination rules
	if err := s.shippingVoucherAmount(ctx, state, discountPromo, now, &totals); err != nil {
		return cart.CheckoutTotals{}, "", err
	}

	// Stage 5: points redemption, capped so the total can never go
	// negative
	msg, err := s.pointsDiscount(ctx, state, userID, &totals)
	if err != nil {
		return cart.CheckoutTotals{}, "", err
	}

	// Stage 6
	grand := totals.Subtotal.
		Sub(totals.VoucherDiscount).
		Sub(totals.PointsDiscount).
		Add(totals.ShippingFee.Sub(totals.ShippingDiscount))
	if grand.IsNegative() {
		grand = decimal.Zero
	}
	totals.GrandTotal = grand

	s.Logger.Debugw("checkout totals computed",
		"subtotal", totals.Subtotal.String(),
		"voucher_discount", totals.VoucherDiscount.String(),
		"shipping_fee", totals.ShippingFee.String(),
		"shipping_discount", totals.ShippingDiscount.String(),
		"points_discount", totals.PointsDiscount.String(),
		"grand_total", totals.GrandTotal.String())

	return totals, msg, nil
}

// automaticDiscount totals the baseline per-product savings on
// non-gift lines, reported so product-level and voucher-level savings
// are never conflated.
func (s *checkoutService) automaticDiscount(state cart.CartState) decimal.Decimal {
	total := decimal.Zero
	for _, li := range state.NonGiftItems() {
		total = total.Add(li.Discount.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return total
}

func (s *checkoutService) discountVoucherAmount(ctx context.Context, state cart.CartState, subtotal decimal.Decimal, now time.Time, totals *cart.CheckoutTotals) (*promotion.Promotion, error) {
	if state.PromotionCode == "" {
		return nil, nil
	}

	promo, code, err := s.voucherService.ResolveCode(ctx, state.PromotionCode, now)
	if err != nil {
		return nil, err
	}

	switch promo.Type {
	case types.PromotionTypeOrder, types.PromotionTypeProduct:
		totals.VoucherDiscount = code.DiscountFor(subtotal)
	case types.PromotionTypeGift:
		totals.VoucherDiscount = state.GiftVoucherDiscount()
	}

	return promo, nil
}

func (s *checkoutService) shippingFeeBase(ctx context.Context, state cart.CartState) (decimal.Decimal, error) {
	if state.FreeShipping {
		return decimal.Zero, nil
	}
	if state.WardCode == "" {
		return decimal.Zero, nil
	}

	fee, err := s.FeeProvider.FeeFor(ctx, state.WardCode)
	if err != nil {
		return decimal.Zero, err
	}
	if fee == nil {
		return decimal.Zero, ierr.NewError("no shipping fee for ward").
			WithHint("Delivery is not available for the selected area").
			WithReportableDetails(map[string]any{"ward_code": state.WardCode}).
			Mark(ierr.ErrShippingUnavailable)
	}
	return *fee, nil
}

func (s *checkoutService) shippingVoucherAmount(ctx context.Context, state cart.CartState, discountPromo *promotion.Promotion, now time.Time, totals *cart.CheckoutTotals) error {
	if state.ShippingVoucherCode == "" {
		return nil
	}

	shippingPromo, code, err := s.voucherService.ResolveCode(ctx, state.ShippingVoucherCode, now)
	if err != nil {
		return err
	}

	// Both families selected: the pairing must be explicitly allowed
	if discountPromo != nil {
		if err := CheckCombination(discountPromo.Type, shippingPromo); err != nil {
			return err
		}
	}
	if err := CheckDistrict(shippingPromo, state.Address); err != nil {
		return err
	}

	var amount decimal.Decimal
	switch shippingPromo.ShippingDiscountKind {
	case types.DiscountKindPercent:
		amount = totals.ShippingFee.Mul(shippingPromo.ShippingDiscountValue).Div(decimal.NewFromInt(100))
	case types.DiscountKindFixed:
		amount = shippingPromo.ShippingDiscountValue
	}
	if code.MaxDiscount.IsPositive() && amount.GreaterThan(code.MaxDiscount) {
		amount = code.MaxDiscount
	}
	if amount.GreaterThan(totals.ShippingFee) {
		amount = totals.ShippingFee
	}

	totals.ShippingDiscount = amount
	return nil
}

func (s *checkoutService) pointsDiscount(ctx context.Context, state cart.CartState, userID string, totals *cart.CheckoutTotals) (string, error) {
	if state.PointsToUse <= 0 {
		return "", nil
	}

	balance, err := s.PointsRepo.Balance(ctx, userID)
	if err != nil {
		return "", err
	}

	// A request above the balance trims to the balance and prices the
	// rest of the cart anyway; order placement re-checks it as a hard
	// failure.
	msg := ""
	requested := state.PointsToUse
	if requested > balance.TotalPoints {
		msg = ierr.DisplayMessage(ierr.NewError("points exceed balance").
			WithHint("You do not have enough points, so only your available balance was applied").
			Mark(ierr.ErrInsufficientPoints))
		requested = balance.TotalPoints
		s.Logger.Warnw("points request trimmed to balance",
			"user_id", userID,
			"requested", state.PointsToUse,
			"balance", balance.TotalPoints)
	}
	if requested <= 0 {
		return msg, nil
	}

	rate := s.Config.Checkout.PointsRate()
	requestedValue := decimal.NewFromInt(requested).Mul(rate)

	// The discount can consume at most the payable remainder
	remainder := totals.Subtotal.
		Sub(totals.VoucherDiscount).
		Add(totals.ShippingFee.Sub(totals.ShippingDiscount))
	if remainder.IsNegative() {
		remainder = decimal.Zero
	}

	discount := decimal.Min(requestedValue, remainder)

	// The actual deduction is a whole number of points, so the capped
	// discount rounds down to the nearest point multiple
	pointsUsed := discount.Div(rate).IntPart()
	totals.PointsUsed = pointsUsed
	totals.PointsDiscount = decimal.NewFromInt(pointsUsed).Mul(rate)

	return msg, nil
}
