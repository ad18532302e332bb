package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopora/shopora/internal/api/dto"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/service"
	"github.com/shopora/shopora/internal/types"
)

type CartHandler struct {
	cartService service.CartService
	logger      *logger.Logger
}

func NewCartHandler(cartService service.CartService, logger *logger.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// sessionKey pulls the cart session from the request context. Every
// cart route requires one.
func sessionKey(c *gin.Context) (string, error) {
	key := types.GetSessionID(c.Request.Context())
	if key == "" {
		return "", ierr.NewError("session key is required").
			WithHint("Provide the X-Session-ID header").
			Mark(ierr.ErrValidation)
	}
	return key, nil
}

// @Summary Get the cart
// @Description Retrieves the session's cart
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	state, err := h.cartService.Get(c.Request.Context(), key)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, ""))
}

// @Summary Add an item to the cart
// @Description Adds a product to the session's cart and reprices it
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body dto.AddItemRequest true "Item to add"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	state, message, err := h.cartService.AddItem(c.Request.Context(), key, req.ProductID, req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Update a cart line quantity
// @Description Sets the quantity of a cart line; zero removes it
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param item body dto.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	productID := c.Param("id")
	if productID == "" {
		c.Error(ierr.NewError("product ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	state, message, err := h.cartService.UpdateQuantity(c.Request.Context(), key, productID, req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Remove an item from the cart
// @Description Removes a product from the session's cart and reprices it
// @Tags Cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	productID := c.Param("id")
	if productID == "" {
		c.Error(ierr.NewError("product ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	state, message, err := h.cartService.RemoveItem(c.Request.Context(), key, productID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Apply a promotion code
// @Description Applies a promotion code to the session's cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param code body dto.ApplyCodeRequest true "Code to apply"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/code [post]
func (h *CartHandler) ApplyCode(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.ApplyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	state, message, err := h.cartService.ApplyCode(c.Request.Context(), key, req.Code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Remove the promotion code
// @Description Removes the applied promotion code from the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/code [delete]
func (h *CartHandler) RemoveCode(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	state, message, err := h.cartService.RemoveCode(c.Request.Context(), key)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Remove the shipping voucher
// @Description Removes the selected shipping voucher from the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/shipping-voucher [delete]
func (h *CartHandler) RemoveShippingVoucher(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	state, message, err := h.cartService.RemoveShippingVoucher(c.Request.Context(), key)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Set points to redeem
// @Description Sets how many loyalty points to redeem at checkout
// @Tags Cart
// @Accept json
// @Produce json
// @Param points body dto.SetPointsRequest true "Points to redeem"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/points [put]
func (h *CartHandler) SetPoints(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.SetPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	state, message, err := h.cartService.SetPoints(c.Request.Context(), key, req.Points)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}

// @Summary Set the delivery destination
// @Description Sets the shipping ward and address for the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param delivery body dto.SetDeliveryRequest true "Delivery destination"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /cart/delivery [put]
func (h *CartHandler) SetDelivery(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.SetDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	state, message, err := h.cartService.SetDelivery(c.Request.Context(), key, req.WardCode, req.Address)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(state, message))
}
