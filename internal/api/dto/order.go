package dto

import (
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/order"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopora/shopora/internal/validator"
)

// CheckoutQuoteResponse is the priced view of the cart before
// ordering. Message is set when a pricing stage degraded, such as a
// points request trimmed to the balance.
type CheckoutQuoteResponse struct {
	Cart    cart.CartState      `json:"cart"`
	Totals  cart.CheckoutTotals `json:"totals"`
	Message string              `json:"message,omitempty"`
}

// CreateOrderRequest places an order from the session's cart
type CreateOrderRequest struct {
	PaymentMethod types.PaymentMethod `json:"payment_method" validate:"required,oneof=cod online"`
}

func (r *CreateOrderRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	*order.Order
}

// NewOrderResponse builds an order response
func NewOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{Order: o}
}

// ListOrdersResponse lists a user's orders
type ListOrdersResponse struct {
	Items []*OrderResponse `json:"items"`
	Total int              `json:"total"`
}
