package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem is one line of a cart. For non-gift lines Discount is
// the per-unit automatic product discount (later overwritten by a
// product-type voucher). For gift lines Price already has the product
// discount baked in and Discount holds only the voucher-attributable
// portion; the two must never be mixed when reporting savings.
type CartLineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	IsGift      bool            `json:"is_gift"`

	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	DeliveryTime string     `json:"delivery_time,omitempty"`
}

// NetUnitPrice is the payable per-unit price of the line
func (li CartLineItem) NetUnitPrice() decimal.Decimal {
	net := li.Price.Sub(li.Discount)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// LineTotal is the payable amount the line contributes
func (li CartLineItem) LineTotal() decimal.Decimal {
	return li.NetUnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartState is the session-scoped cart document. Engine operations
// treat it as immutable-in/mutable-out: they copy, transform and
// return a new state so repeated recomputation stays idempotent.
type CartState struct {
	Items []CartLineItem `json:"items"`

	// At most one active code of the discount-voucher family
	PromotionCode string `json:"promotion_code,omitempty"`
	// At most one active shipping voucher selection
	ShippingVoucherCode string `json:"shipping_voucher_code,omitempty"`

	FreeShipping bool  `json:"free_shipping"`
	PointsToUse  int64 `json:"points_to_use"`

	WardCode string `json:"ward_code,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Clone returns a deep copy of the cart state
func (c CartState) Clone() CartState {
	out := c
	out.Items = make([]CartLineItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// NonGiftItems returns the user-editable lines
func (c CartState) NonGiftItems() []CartLineItem {
	var items []CartLineItem
	for _, li := range c.Items {
		if !li.IsGift {
			items = append(items, li)
		}
	}
	return items
}

// GiftItems returns the synthesized gift lines
func (c CartState) GiftItems() []CartLineItem {
	var items []CartLineItem
	for _, li := range c.Items {
		if li.IsGift {
			items = append(items, li)
		}
	}
	return items
}

// StripGifts returns a copy of the cart with every gift line removed.
// Gift lines are derived and must be fully regenerated whenever the
// buy-eligible quantities change.
func (c CartState) StripGifts() CartState {
	out := c.Clone()
	items := out.Items[:0]
	for _, li := range out.Items {
		if !li.IsGift {
			items = append(items, li)
		}
	}
	out.Items = items
	return out
}

// HasNonGiftItems reports whether any user-added line remains
func (c CartState) HasNonGiftItems() bool {
	for _, li := range c.Items {
		if !li.IsGift {
			return true
		}
	}
	return false
}

// FindItem returns the index of the non-gift line for a product, or -1
func (c CartState) FindItem(productID string) int {
	for i, li := range c.Items {
		if !li.IsGift && li.ProductID == productID {
			return i
		}
	}
	return -1
}

// Subtotal sums the payable contribution of every line: non-gift lines
// contribute (price - discount) * quantity, gift lines contribute their
// full price (the voucher portion is reported separately).
func (c CartState) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		qty := decimal.NewFromInt(int64(li.Quantity))
		if li.IsGift {
			total = total.Add(li.Price.Mul(qty))
		} else {
			total = total.Add(li.NetUnitPrice().Mul(qty))
		}
	}
	return total
}

// GiftVoucherDiscount sums the voucher-attributable discount carried on
// gift lines.
func (c CartState) GiftVoucherDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.GiftItems() {
		total = total.Add(li.Discount.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return total
}

// ResetVoucherState returns the cart's neutral state: no promotion
// code, no gift lines and no shipping voucher. Baseline product
// discounts on the remaining lines are left untouched.
func (c CartState) ResetVoucherState() CartState {
	out := c.StripGifts()
	out.PromotionCode = ""
	out.ShippingVoucherCode = ""
	return out
}

// CheckoutTotals is the final breakdown consumed by order creation
type CheckoutTotals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	PromotionDiscount decimal.Decimal `json:"promotion_discount"`
	VoucherDiscount   decimal.Decimal `json:"voucher_discount"`
	ShippingDiscount  decimal.Decimal `json:"shipping_discount"`
	PointsDiscount    decimal.Decimal `json:"points_discount"`
	PointsUsed        int64           `json:"points_used"`
	ShippingFee       decimal.Decimal `json:"shipping_fee"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
}
