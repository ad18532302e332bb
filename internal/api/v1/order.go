package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/shopora/shopora/internal/api/dto"
	"github.com/shopora/shopora/internal/domain/order"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/service"
	"github.com/shopora/shopora/internal/types"
)

type OrderHandler struct {
	orderService    service.OrderService
	checkoutService service.CheckoutService
	cartService     service.CartService
	logger          *logger.Logger
}

func NewOrderHandler(
	orderService service.OrderService,
	checkoutService service.CheckoutService,
	cartService service.CartService,
	logger *logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
		cartService:     cartService,
		logger:          logger,
	}
}

// @Summary Preview checkout totals
// @Description Prices the session's cart without placing an order
// @Tags Checkout
// @Produce json
// @Success 200 {object} dto.CheckoutQuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /checkout/quote [get]
func (h *OrderHandler) Quote(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	state, err := h.cartService.Get(ctx, key)
	if err != nil {
		c.Error(err)
		return
	}

	totals, msg, err := h.checkoutService.ComputeTotals(ctx, state, types.GetUserID(ctx), time.Now().UTC())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutQuoteResponse{Cart: state, Totals: totals, Message: msg})
}

// @Summary Create an order
// @Description Places an order from the session's cart
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order request"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	key, err := sessionKey(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateOrderRequest
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

	ctx := c.Request.Context()
	o, err := h.orderService.CreateOrder(ctx, key, types.GetUserID(ctx), req.PaymentMethod)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewOrderResponse(o))
}

// @Summary Get an order
// @Description Retrieves an order by ID
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("order ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// @Summary Confirm payment
// @Description Payment-success callback; settles reserved points
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id}/payment/confirm [post]
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("order ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	o, err := h.orderService.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// @Summary Cancel payment
// @Description Payment-failure callback; cancels the pending order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id}/payment/cancel [post]
func (h *OrderHandler) CancelPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("order ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	o, err := h.orderService.CancelPayment(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(o))
}

// @Summary List the user's orders
// @Description Lists orders placed by the requesting user
// @Tags Orders
// @Produce json
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	userID := types.GetUserID(ctx)
	if userID == "" {
		c.Error(ierr.NewError("user ID is required").
			WithHint("Provide the X-User-ID header").
			Mark(ierr.ErrValidation))
		return
	}

	orders, err := h.orderService.ListByUser(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	items := lo.Map(orders, func(o *order.Order, _ int) *dto.OrderResponse {
		return dto.NewOrderResponse(o)
	})
	c.JSON(http.StatusOK, dto.ListOrdersResponse{Items: items, Total: len(items)})
}
