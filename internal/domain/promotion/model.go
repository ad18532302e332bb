package promotion

import (
	"strings"
	"time"

	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
)

// Promotion is the campaign definition a promotion code belongs to.
// The combination flags are read when this promotion is the shipping
// side of a discount-voucher/shipping-voucher pairing.
type Promotion struct {
	ID   string              `json:"id" db:"id"`
	Name string              `json:"name" db:"name"`
	Type types.PromotionType `json:"type" db:"type"`

	AllowCombineOrder    bool `json:"allow_combine_order" db:"allow_combine_order"`
	AllowCombineProduct  bool `json:"allow_combine_product" db:"allow_combine_product"`
	AllowCombineShipping bool `json:"allow_combine_shipping" db:"allow_combine_shipping"`

	MinOrderValue      decimal.Decimal `json:"min_order_value" db:"min_order_value"`
	MinProductQuantity int             `json:"min_product_quantity" db:"min_product_quantity"`
	MinProductValue    decimal.Decimal `json:"min_product_value" db:"min_product_value"`

	// Districts is an allow-list of district names; empty means no
	// geographic restriction. Matching is substring containment on the
	// shipping address, not geospatial.
	Districts []string `json:"districts" db:"districts"`

	ShippingDiscountKind  types.DiscountKind `json:"shipping_discount_kind" db:"shipping_discount_kind"`
	ShippingDiscountValue decimal.Decimal    `json:"shipping_discount_value" db:"shipping_discount_value"`

	types.BaseModel
}

// CoversDistrict reports whether the shipping address falls inside the
// promotion's district allow-list. An empty list covers everywhere.
func (p *Promotion) CoversDistrict(address string) bool {
	if len(p.Districts) == 0 {
		return true
	}
	for _, district := range p.Districts {
		if district != "" && strings.Contains(address, district) {
			return true
		}
	}
	return false
}

// PromotionCode is a redeemable code attached to a promotion
type PromotionCode struct {
	ID          string `json:"id" db:"id"`
	Code        string `json:"code" db:"code"`
	PromotionID string `json:"promotion_id" db:"promotion_id"`

	Value     decimal.Decimal `json:"value" db:"value"`
	IsPercent bool            `json:"is_percent" db:"is_percent"`
	// MaxDiscount caps the computed discount; zero means uncapped
	MaxDiscount decimal.Decimal `json:"max_discount" db:"max_discount"`

	UsageLimit *int `json:"usage_limit" db:"usage_limit"`
	UsedCount  int  `json:"used_count" db:"used_count"`

	ExpiresAt     *time.Time      `json:"expires_at" db:"expires_at"`
	MinOrderValue decimal.Decimal `json:"min_order_value" db:"min_order_value"`

	types.BaseModel
}

// IsExpiredAt reports whether the code has passed its expiry
func (c *PromotionCode) IsExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// IsExhausted reports whether the usage limit has been consumed
func (c *PromotionCode) IsExhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// DiscountFor computes the code's discount against a base amount,
// applying the percent/fixed interpretation, the MaxDiscount cap and
// the base amount itself as a ceiling.
func (c *PromotionCode) DiscountFor(base decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	if c.IsPercent {
		amount = base.Mul(c.Value).Div(decimal.NewFromInt(100))
	} else {
		amount = c.Value
	}
	if c.MaxDiscount.IsPositive() && amount.GreaterThan(c.MaxDiscount) {
		amount = c.MaxDiscount
	}
	if amount.GreaterThan(base) {
		amount = base
	}
	return amount
}

// PromotionGift is the buy-X-get-Y configuration of a gift promotion,
// one-to-one with a Promotion of type gift.
type PromotionGift struct {
	ID          string `json:"id" db:"id"`
	PromotionID string `json:"promotion_id" db:"promotion_id"`

	ConditionKind      types.GiftConditionKind `json:"condition_kind" db:"condition_kind"`
	ConditionThreshold decimal.Decimal         `json:"condition_threshold" db:"condition_threshold"`

	// The buy eligibility set: explicit product ids union category
	// membership
	BuyProductIDs  []string `json:"buy_product_ids" db:"buy_product_ids"`
	BuyCategoryIDs []string `json:"buy_category_ids" db:"buy_category_ids"`

	// GiftQuantity is granted per condition-met multiple
	GiftQuantity int `json:"gift_quantity" db:"gift_quantity"`

	GiftProductIDs  []string `json:"gift_product_ids" db:"gift_product_ids"`
	GiftCategoryIDs []string `json:"gift_category_ids" db:"gift_category_ids"`

	GiftDiscountKind  types.GiftDiscountKind `json:"gift_discount_kind" db:"gift_discount_kind"`
	GiftDiscountValue decimal.Decimal        `json:"gift_discount_value" db:"gift_discount_value"`

	// LimitPerOrder clamps the promotion to trigger at most once per
	// order regardless of how many threshold multiples the cart holds
	LimitPerOrder bool `json:"limit_per_order" db:"limit_per_order"`

	types.BaseModel
}
