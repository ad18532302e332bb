package types

// PromotionType represents the family a promotion belongs to. The type
// decides which handler a promotion code is dispatched to when applied
// to a cart.
type PromotionType string

const (
	// PromotionTypeOrder discounts the order subtotal
	PromotionTypeOrder PromotionType = "order"
	// PromotionTypeProduct discounts eligible line items
	PromotionTypeProduct PromotionType = "product"
	// PromotionTypeGift grants gift-with-purchase line items
	PromotionTypeGift PromotionType = "gift"
	// PromotionTypeShipping discounts the shipping fee
	PromotionTypeShipping PromotionType = "shipping"
)

// IsDiscountFamily reports whether the promotion type belongs to the
// discount-voucher family. At most one voucher of this family and one
// shipping voucher may be active on a cart at a time.
func (t PromotionType) IsDiscountFamily() bool {
	return t == PromotionTypeOrder || t == PromotionTypeProduct || t == PromotionTypeGift
}

func (t PromotionType) Validate() bool {
	switch t {
	case PromotionTypeOrder, PromotionTypeProduct, PromotionTypeGift, PromotionTypeShipping:
		return true
	}
	return false
}

// DiscountKind represents how a discount value is interpreted
type DiscountKind string

const (
	// DiscountKindPercent interprets the value as a percentage of the price
	DiscountKindPercent DiscountKind = "percent"
	// DiscountKindFixed interprets the value as a fixed currency amount
	DiscountKindFixed DiscountKind = "fixed"
)

// GiftDiscountKind represents how a synthesized gift line is priced
// relative to its price after the automatic product discount.
type GiftDiscountKind string

const (
	GiftDiscountFree    GiftDiscountKind = "free"
	GiftDiscountPercent GiftDiscountKind = "percent"
	GiftDiscountMoney   GiftDiscountKind = "money"
)

// GiftConditionKind represents how a gift promotion's buy-condition is
// accumulated over the eligible lines of a cart.
type GiftConditionKind string

const (
	// GiftConditionMinQuantity sums eligible quantities
	GiftConditionMinQuantity GiftConditionKind = "min_quantity"
	// GiftConditionMinValue sums eligible (price - discount) * quantity
	GiftConditionMinValue GiftConditionKind = "min_value"
)

// VoucherSource tags how a user obtained a voucher
type VoucherSource string

const (
	VoucherSourceCollected  VoucherSource = "collected"
	VoucherSourceFlashSale  VoucherSource = "flash_sale"
	VoucherSourceLuckyWheel VoucherSource = "lucky_wheel"
	VoucherSourceReward     VoucherSource = "reward"
)
