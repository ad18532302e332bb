package types

// PaymentMethod decides the points-deduction timing at order creation.
// Cash on delivery deducts reserved points immediately; gateway methods
// defer the deduction to the payment-success callback.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

func (m PaymentMethod) Validate() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// OrderStatus tracks the order lifecycle relevant to promotion and
// points settlement.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)
