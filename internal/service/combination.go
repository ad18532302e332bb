package service

import (
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
)

// combinationFlag maps the discount voucher's promotion type to the
// flag that must be set on the shipping promotion for the pair to
// coexist. Gift vouchers count as order-level for combination purposes.
var combinationFlag = map[types.PromotionType]func(*promotion.Promotion) bool{
	types.PromotionTypeOrder:   func(p *promotion.Promotion) bool { return p.AllowCombineOrder },
	types.PromotionTypeProduct: func(p *promotion.Promotion) bool { return p.AllowCombineProduct },
	types.PromotionTypeGift:    func(p *promotion.Promotion) bool { return p.AllowCombineOrder },
}

// CheckCombination validates that a discount voucher and a shipping
// voucher may be applied to the same order. It only applies when both
// sides are selected; a failure aborts the checkout rather than
// silently dropping one of the vouchers.
func CheckCombination(discountType types.PromotionType, shippingPromo *promotion.Promotion) error {
	allowed, ok := combinationFlag[discountType]
	if !ok {
		return ierr.NewError("unsupported discount voucher type").
			WithHint("This voucher cannot be combined with a shipping voucher").
			WithReportableDetails(map[string]any{
				"discount_type": string(discountType),
			}).
			Mark(ierr.ErrCombinationNotAllowed)
	}

	if !allowed(shippingPromo) {
		return ierr.NewError("voucher combination not allowed").
			WithHint("This shipping voucher cannot be combined with your discount voucher").
			WithReportableDetails(map[string]any{
				"discount_type":      string(discountType),
				"shipping_promotion": shippingPromo.ID,
			}).
			Mark(ierr.ErrCombinationNotAllowed)
	}

	return nil
}

// CheckDistrict validates the promotion's geographic allow-list
// against the shipping address. Matching is plain substring
// containment on district names.
func CheckDistrict(promo *promotion.Promotion, address string) error {
	if promo.CoversDistrict(address) {
		return nil
	}
	return ierr.NewError("address outside promotion districts").
		WithHint("This promotion is not available in your delivery area").
		WithReportableDetails(map[string]any{
			"promotion_id": promo.ID,
			"districts":    promo.Districts,
		}).
		Mark(ierr.ErrDistrictNotAllowed)
}
