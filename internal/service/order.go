package service

import (
	"context"
	"time"

	"github.com/shopora/shopora/internal/domain/order"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
)

// OrderService turns a computed cart into an order and settles the
// promotion side effects. Voucher consumption is optimistic: the code
// use and the wallet voucher binding happen at creation and are never
// rolled back. Points deduction is deferred-and-confirmed: COD deducts
// immediately, online payment deducts only when the gateway callback
// confirms success. A payment that never confirms needs no
// compensation because nothing was taken.
type OrderService interface {
	CreateOrder(ctx context.Context, sessionKey string, userID string, method types.PaymentMethod) (*order.Order, error)
	ConfirmPayment(ctx context.Context, orderID string) (*order.Order, error)
	CancelPayment(ctx context.Context, orderID string) (*order.Order, error)
	Get(ctx context.Context, orderID string) (*order.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*order.Order, error)
}

type orderService struct {
	ServiceParams
	cartService     CartService
	checkoutService CheckoutService
	voucherService  VoucherService
}

// NewOrderService creates a new order service
func NewOrderService(params ServiceParams) OrderService {
	return &orderService{
		ServiceParams:   params,
		cartService:     NewCartService(params),
		checkoutService: NewCheckoutService(params),
		voucherService:  NewVoucherService(params),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, sessionKey string, userID string, method types.PaymentMethod) (*order.Order, error) {
	if !method.Validate() {
		return nil, ierr.NewError("unknown payment method").
			WithHint("Payment method must be cod or online").
			Mark(ierr.ErrValidation)
	}

	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if !state.HasNonGiftItems() {
		return nil, ierr.NewError("cart is empty").
			WithHint("Add products to your cart before checking out").
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()

	// One final recomputation so the order snapshots a consistent cart
	state, _, err = s.cartService.Recompute(ctx, state)
	if err != nil {
		return nil, err
	}

	// Quotes trim an over-balance points request; placing the order
	// does not.
	if state.PointsToUse > 0 {
		balance, err := s.PointsRepo.Balance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if state.PointsToUse > balance.TotalPoints {
			return nil, ierr.NewError("points exceed balance").
				WithHint("You do not have enough points").
				WithReportableDetails(map[string]any{
					"requested": state.PointsToUse,
					"balance":   balance.TotalPoints,
				}).
				Mark(ierr.ErrInsufficientPoints)
		}
	}

	totals, _, err := s.checkoutService.ComputeTotals(ctx, state, userID, now)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:             types.GenerateUUIDWithPrefix("ord"),
		UserID:         userID,
		Items:          state.Items,
		Totals:         totals,
		PointsReserved: totals.PointsUsed,
		PaymentMethod:  method,
		OrderStatus:    types.OrderStatusPending,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	// Consume the vouchers optimistically. The usage increment is the
	// serialization point: two checkouts racing on the last use of a
	// shared code cannot both pass.
	if state.PromotionCode != "" {
		voucherID, err := s.consumeCode(ctx, state.PromotionCode, userID, o.ID, now)
		if err != nil {
			return nil, err
		}
		o.VoucherID = voucherID
	}
	if state.ShippingVoucherCode != "" {
		voucherID, err := s.consumeCode(ctx, state.ShippingVoucherCode, userID, o.ID, now)
		if err != nil {
			return nil, err
		}
		o.ShippingVoucherID = voucherID
	}

	// COD settles points at creation; online payments only reserve
	if o.PointsReserved > 0 && method == types.PaymentMethodCOD {
		if err := s.PointsRepo.Deduct(ctx, userID, o.PointsReserved, "order redemption", o.ID); err != nil {
			return nil, err
		}
		o.PointsSettled = true
	}

	if err := s.OrderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.CartStore.Delete(ctx, sessionKey); err != nil {
		return nil, err
	}

	s.Logger.Infow("order created",
		"order_id", o.ID,
		"user_id", userID,
		"payment_method", string(method),
		"grand_total", totals.GrandTotal.String(),
		"points_reserved", o.PointsReserved)

	return o, nil
}

func (s *orderService) ConfirmPayment(ctx context.Context, orderID string) (*order.Order, error) {
	o, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OrderStatus != types.OrderStatusPending {
		return nil, ierr.NewError("order is not pending").
			WithHint("This order can no longer be paid").
			WithReportableDetails(map[string]any{"order_status": string(o.OrderStatus)}).
			Mark(ierr.ErrInvalidOperation)
	}

	// The deferred points reservation settles exactly once, on the
	// payment-success callback
	if o.PointsReserved > 0 && !o.PointsSettled {
		if err := s.PointsRepo.Deduct(ctx, o.UserID, o.PointsReserved, "order redemption", o.ID); err != nil {
			return nil, err
		}
		o.PointsSettled = true
	}

	now := time.Now().UTC()
	o.OrderStatus = types.OrderStatusPaid
	o.PaidAt = &now
	if err := s.OrderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	s.Logger.Infow("payment confirmed", "order_id", o.ID, "points_settled", o.PointsReserved)
	return o, nil
}

func (s *orderService) CancelPayment(ctx context.Context, orderID string) (*order.Order, error) {
	o, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OrderStatus != types.OrderStatusPending {
		return nil, ierr.NewError("order is not pending").
			WithHint("This order can no longer be cancelled").
			WithReportableDetails(map[string]any{"order_status": string(o.OrderStatus)}).
			Mark(ierr.ErrInvalidOperation)
	}

	// No points compensation: unsettled reservations were never taken.
	// A voucher consumed at order creation stays bound to the order.
	o.OrderStatus = types.OrderStatusCancelled
	if err := s.OrderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	s.Logger.Infow("payment cancelled", "order_id", o.ID)
	return o, nil
}

func (s *orderService) Get(ctx context.Context, orderID string) (*order.Order, error) {
	return s.OrderRepo.Get(ctx, orderID)
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return s.OrderRepo.ListByUser(ctx, userID)
}

// consumeCode increments the code usage and, when the user holds a
// wallet voucher for the code, binds it to the order.
func (s *orderService) consumeCode(ctx context.Context, rawCode string, userID string, orderID string, now time.Time) (string, error) {
	_, code, err := s.voucherService.ResolveCode(ctx, rawCode, now)
	if err != nil {
		return "", err
	}

	if err := s.CodeRepo.IncrementUsage(ctx, code.ID); err != nil {
		return "", err
	}

	available, err := s.VoucherRepo.Available(ctx, userID, now)
	if err != nil {
		return "", err
	}
	for _, uv := range available {
		if uv.CodeID == code.ID {
			if err := s.VoucherRepo.MarkUsed(ctx, uv.ID, orderID); err != nil {
				return "", err
			}
			return uv.ID, nil
		}
	}

	return "", nil
}
