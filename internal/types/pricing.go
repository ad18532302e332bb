package types

import "github.com/shopspring/decimal"

// The pricing pipeline moves a unit price through two mandatory stages:
//
//	RawPrice -> AfterProductDiscount -> AfterVoucherDiscount
//
// Gift synthesis and voucher math only accept AfterProductDiscount
// values, so a voucher discount can never be computed against a price
// that skipped the automatic product discount.

// RawPrice is a product's unit price before any discount
type RawPrice struct {
	Amount decimal.Decimal
}

// AfterProductDiscount is a unit price with the best automatic product
// discount already subtracted (floored at zero).
type AfterProductDiscount struct {
	Amount decimal.Decimal
	// ProductDiscount is the per-unit amount the automatic rule removed
	ProductDiscount decimal.Decimal
}

// AfterVoucherDiscount is the final per-unit price stage. VoucherDiscount
// holds only the voucher-attributable portion, never the product
// discount already folded into the ingoing stage.
type AfterVoucherDiscount struct {
	Amount          decimal.Decimal
	VoucherDiscount decimal.Decimal
}

// NewRawPrice wraps a raw unit price
func NewRawPrice(amount decimal.Decimal) RawPrice {
	return RawPrice{Amount: amount}
}

// ApplyProductDiscount subtracts the automatic discount, flooring the
// resulting unit price at zero.
func (p RawPrice) ApplyProductDiscount(discount decimal.Decimal) AfterProductDiscount {
	amount := p.Amount.Sub(discount)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return AfterProductDiscount{Amount: amount, ProductDiscount: discount}
}

// ApplyVoucherDiscount subtracts a voucher discount capped at the
// remaining unit price.
func (p AfterProductDiscount) ApplyVoucherDiscount(discount decimal.Decimal) AfterVoucherDiscount {
	if discount.GreaterThan(p.Amount) {
		discount = p.Amount
	}
	return AfterVoucherDiscount{Amount: p.Amount.Sub(discount), VoucherDiscount: discount}
}
