package order

import (
	"time"

	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/types"
)

// Order is the minimal order record the engine writes at checkout. It
// exists to host the settlement asymmetry: the voucher is consumed
// optimistically at creation, the points reservation settles only on
// payment success (for online payments).
type Order struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	Items  []cart.CartLineItem `json:"items"`
	Totals cart.CheckoutTotals `json:"totals"`

	VoucherID         string `json:"voucher_id,omitempty" db:"voucher_id"`
	ShippingVoucherID string `json:"shipping_voucher_id,omitempty" db:"shipping_voucher_id"`

	// PointsReserved is deducted immediately for COD, on the payment
	// callback for online payments
	PointsReserved int64 `json:"points_reserved" db:"points_reserved"`
	PointsSettled  bool  `json:"points_settled" db:"points_settled"`

	PaymentMethod types.PaymentMethod `json:"payment_method" db:"payment_method"`
	OrderStatus   types.OrderStatus   `json:"order_status" db:"order_status"`

	PaidAt *time.Time `json:"paid_at,omitempty" db:"paid_at"`

	types.BaseModel
}
