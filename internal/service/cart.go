package service

import (
	"context"
	"time"

	"github.com/shopora/shopora/internal/domain/cart"
	ierr "github.com/shopora/shopora/internal/errors"
)

// CartService owns the session cart mutations. Every mutation ends in
// one full recomputation: baselines are re-derived, the active codes
// are re-validated and gift lines are regenerated, so two consecutive
// recomputes of an unchanged cart always agree.
type CartService interface {
	Get(ctx context.Context, sessionKey string) (cart.CartState, error)

	AddItem(ctx context.Context, sessionKey string, productID string, quantity int) (cart.CartState, string, error)
	UpdateQuantity(ctx context.Context, sessionKey string, productID string, quantity int) (cart.CartState, string, error)
	RemoveItem(ctx context.Context, sessionKey string, productID string) (cart.CartState, string, error)

	ApplyCode(ctx context.Context, sessionKey string, rawCode string) (cart.CartState, string, error)
	RemoveCode(ctx context.Context, sessionKey string) (cart.CartState, string, error)
	RemoveShippingVoucher(ctx context.Context, sessionKey string) (cart.CartState, string, error)

	SetPoints(ctx context.Context, sessionKey string, points int64) (cart.CartState, string, error)
	SetDelivery(ctx context.Context, sessionKey string, wardCode string, address string) (cart.CartState, string, error)

	// Recompute re-derives the whole cart from scratch. The returned
	// message explains any degradation (e.g. a voucher that no longer
	// applies); it is empty when everything still holds.
	Recompute(ctx context.Context, state cart.CartState) (cart.CartState, string, error)
}

type cartService struct {
	ServiceParams
	discountService DiscountService
	voucherService  VoucherService
}

// NewCartService creates a new cart service
func NewCartService(params ServiceParams) CartService {
	return &cartService{
		ServiceParams:   params,
		discountService: NewDiscountService(params),
		voucherService:  NewVoucherService(params),
	}
}

func (s *cartService) Get(ctx context.Context, sessionKey string) (cart.CartState, error) {
	return s.CartStore.Get(ctx, sessionKey)
}

func (s *cartService) AddItem(ctx context.Context, sessionKey string, productID string, quantity int) (cart.CartState, string, error) {
	if quantity <= 0 {
		return cart.CartState{}, "", ierr.NewError("quantity must be positive").
			WithHint("Quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}

	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	p, err := s.ProductRepo.Get(ctx, productID)
	if err != nil {
		return state, "", err
	}

	if idx := state.FindItem(productID); idx >= 0 {
		state.Items[idx].Quantity += quantity
	} else {
		state.Items = append(state.Items, cart.CartLineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    quantity,
			Price:       p.Price,
		})
	}

	return s.recomputeAndSave(ctx, sessionKey, state)
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionKey string, productID string, quantity int) (cart.CartState, string, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionKey, productID)
	}

	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	idx := state.FindItem(productID)
	if idx < 0 {
		return state, "", ierr.NewError("product not in cart").
			WithHint("This product is not in your cart").
			WithReportableDetails(map[string]any{"product_id": productID}).
			Mark(ierr.ErrNotFound)
	}
	state.Items[idx].Quantity = quantity

	return s.recomputeAndSave(ctx, sessionKey, state)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionKey string, productID string) (cart.CartState, string, error) {
	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	items := make([]cart.CartLineItem, 0, len(state.Items))
	for _, li := range state.Items {
		if !li.IsGift && li.ProductID == productID {
			continue
		}
		items = append(items, li)
	}
	state.Items = items

	return s.recomputeAndSave(ctx, sessionKey, state)
}

func (s *cartService) ApplyCode(ctx context.Context, sessionKey string, rawCode string) (cart.CartState, string, error) {
	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	now := time.Now().UTC()
	next, err := s.voucherService.ApplyPromotionCode(ctx, state, rawCode, now)
	if err != nil {
		if !ierr.IsPromotionError(err) {
			return state, "", err
		}
		// Degrade: persist the neutral state and surface the reason
		if setErr := s.CartStore.Set(ctx, sessionKey, next); setErr != nil {
			return state, "", setErr
		}
		return next, ierr.DisplayMessage(err), err
	}

	if err := s.CartStore.Set(ctx, sessionKey, next); err != nil {
		return state, "", err
	}
	return next, "", nil
}

func (s *cartService) RemoveCode(ctx context.Context, sessionKey string) (cart.CartState, string, error) {
	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	next, err := s.voucherService.RemovePromotionCode(ctx, state, time.Now().UTC())
	if err != nil {
		return state, "", err
	}

	if err := s.CartStore.Set(ctx, sessionKey, next); err != nil {
		return state, "", err
	}
	return next, "", nil
}

func (s *cartService) RemoveShippingVoucher(ctx context.Context, sessionKey string) (cart.CartState, string, error) {
	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	state.ShippingVoucherCode = ""
	return s.recomputeAndSave(ctx, sessionKey, state)
}

func (s *cartService) SetPoints(ctx context.Context, sessionKey string, pointsToUse int64) (cart.CartState, string, error) {
	if pointsToUse < 0 {
		return cart.CartState{}, "", ierr.NewError("points must not be negative").
			WithHint("Points must not be negative").
			Mark(ierr.ErrValidation)
	}

	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	state.PointsToUse = pointsToUse
	return s.recomputeAndSave(ctx, sessionKey, state)
}

func (s *cartService) SetDelivery(ctx context.Context, sessionKey string, wardCode string, address string) (cart.CartState, string, error) {
	state, err := s.CartStore.Get(ctx, sessionKey)
	if err != nil {
		return cart.CartState{}, "", err
	}

	state.WardCode = wardCode
	state.Address = address
	return s.recomputeAndSave(ctx, sessionKey, state)
}

func (s *cartService) Recompute(ctx context.Context, state cart.CartState) (cart.CartState, string, error) {
	now := time.Now().UTC()

	// An emptied cart drops every derived selection: codes, gift
	// lines and points requests are all meaningless without purchases.
	if !state.HasNonGiftItems() {
		out := state.ResetVoucherState()
		out.Items = nil
		out.PointsToUse = 0
		return out, "", nil
	}

	annotated, err := s.discountService.AnnotateCart(ctx, state, now)
	if err != nil {
		return state, "", err
	}

	if annotated.PromotionCode == "" {
		return annotated.StripGifts(), "", nil
	}

	// Re-validate the active code against the mutated cart; gift
	// lines are regenerated, thresholds re-checked. A code that no
	// longer applies degrades with a message instead of failing.
	next, err := s.voucherService.ApplyPromotionCode(ctx, annotated, annotated.PromotionCode, now)
	if err != nil {
		if !ierr.IsPromotionError(err) {
			return state, "", err
		}
		return next, ierr.DisplayMessage(err), nil
	}
	return next, "", nil
}

func (s *cartService) recomputeAndSave(ctx context.Context, sessionKey string, state cart.CartState) (cart.CartState, string, error) {
	next, message, err := s.Recompute(ctx, state)
	if err != nil {
		return state, "", err
	}

	if err := s.CartStore.Set(ctx, sessionKey, next); err != nil {
		return state, "", err
	}
	return next, message, nil
}
