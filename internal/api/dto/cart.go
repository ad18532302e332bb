package dto

import (
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/validator"
)

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

func (r *AddItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateQuantityRequest sets the quantity of a cart line. Zero or a
// negative quantity removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCodeRequest applies a promotion code to the cart
type ApplyCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

func (r *ApplyCodeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// SetPointsRequest sets the points the user wants to redeem at checkout
type SetPointsRequest struct {
	Points int64 `json:"points" validate:"gte=0"`
}

func (r *SetPointsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// SetDeliveryRequest sets the shipping destination for the cart
type SetDeliveryRequest struct {
	WardCode string `json:"ward_code" validate:"required"`
	Address  string `json:"address"`
}

func (r *SetDeliveryRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CartResponse returns the cart after a mutation. Message carries the
// degradation notice when a previously applied code stopped applying.
type CartResponse struct {
	Cart    cart.CartState `json:"cart"`
	Message string         `json:"message,omitempty"`
}

// NewCartResponse builds a cart response
func NewCartResponse(state cart.CartState, message string) *CartResponse {
	return &CartResponse{Cart: state, Message: message}
}
