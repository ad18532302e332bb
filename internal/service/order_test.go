package service

import (
	"testing"

	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/testutil"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	orderService   OrderService
	cartService    CartService
	voucherService VoucherService
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := s.serviceParams()
	s.orderService = NewOrderService(params)
	s.cartService = NewCartService(params)
	s.voucherService = NewVoucherService(params)
	s.setupData()
}

func (s *OrderServiceSuite) serviceParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		ProductRepo:      stores.ProductRepo,
		DiscountRuleRepo: stores.DiscountRuleRepo,
		PromotionRepo:    stores.PromotionRepo,
		CodeRepo:         stores.CodeRepo,
		GiftRepo:         stores.GiftRepo,
		VoucherRepo:      stores.VoucherRepo,
		PointsRepo:       stores.PointsRepo,
		CampaignRepo:     stores.CampaignRepo,
		OrderRepo:        stores.OrderRepo,
		CartStore:        stores.CartStore,
		FeeProvider:      s.GetFeeProvider(),
	}
}

func (s *OrderServiceSuite) setupData() {
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), &product.Product{
		ID:        "prod_hamper",
		Name:      "Tet Hamper",
		Price:     decimal.NewFromInt(1000000),
		Stock:     20,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().PromotionRepo.Create(s.GetContext(), &promotion.Promotion{
		ID:        "promo_order",
		Name:      "Order Discount",
		Type:      types.PromotionTypeOrder,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().CodeRepo.Create(s.GetContext(), &promotion.PromotionCode{
		ID:          "code_save50",
		Code:        "SAVE50",
		PromotionID: "promo_order",
		Value:       decimal.NewFromInt(50000),
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.GetFeeProvider().SetFee("ward_01", decimal.NewFromInt(30000))
}

func (s *OrderServiceSuite) fillCart(pointsToUse int64) {
	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_hamper", 1)
	s.NoError(err)
	if pointsToUse > 0 {
		_, _, err = s.cartService.SetPoints(s.GetContext(), testSessionKey, pointsToUse)
		s.NoError(err)
	}
}

func (s *OrderServiceSuite) TestCreateOrderEmptyCart() {
	_, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodCOD)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestCreateOrderInvalidPaymentMethod() {
	s.fillCart(0)
	_, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethod("wire"))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestCreateOrderRejectsPointsAboveBalance() {
	// A quote trims an over-balance points request; placing the order
	// refuses it outright
	s.NoError(s.GetStores().PointsRepo.Credit(s.GetContext(), "user_1", 100, "signup"))
	s.fillCart(200)

	_, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodCOD)
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrInsufficientPoints))

	// The cart survives the rejection
	state, err := s.cartService.Get(s.GetContext(), testSessionKey)
	s.NoError(err)
	s.Len(state.Items, 1)
}

func (s *OrderServiceSuite) TestCreateOrderClearsCart() {
	s.fillCart(0)

	o, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodCOD)
	s.NoError(err)
	s.Equal(types.OrderStatusPending, o.OrderStatus)
	s.True(o.Totals.GrandTotal.Equal(decimal.NewFromInt(1000000)))

	state, err := s.cartService.Get(s.GetContext(), testSessionKey)
	s.NoError(err)
	s.Empty(state.Items)
}

func (s *OrderServiceSuite) TestCODDeductsPointsImmediately() {
	s.NoError(s.GetStores().PointsRepo.Credit(s.GetContext(), "user_1", 500, "signup"))
	s.fillCart(200)

	o, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodCOD)
	s.NoError(err)
	s.Equal(int64(200), o.PointsReserved)
	s.True(o.PointsSettled)

	balance, err := s.GetStores().PointsRepo.Balance(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(300), balance.TotalPoints)

	ledger, err := s.GetStores().PointsRepo.Ledger(s.GetContext(), "user_1")
	s.NoError(err)
	s.Len(ledger, 2)
}

func (s *OrderServiceSuite) TestOnlinePaymentDefersPoints() {
	s.NoError(s.GetStores().PointsRepo.Credit(s.GetContext(), "user_1", 500, "signup"))
	s.fillCart(200)

	o, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodOnline)
	s.NoError(err)
	s.Equal(int64(200), o.PointsReserved)
	s.False(o.PointsSettled)

	// Nothing is deducted until the payment callback arrives
	balance, err := s.GetStores().PointsRepo.Balance(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(500), balance.TotalPoints)

	confirmed, err := s.orderService.ConfirmPayment(s.GetContext(), o.ID)
	s.NoError(err)
	s.Equal(types.OrderStatusPaid, confirmed.OrderStatus)
	s.True(confirmed.PointsSettled)
	s.NotNil(confirmed.PaidAt)

	balance, err = s.GetStores().PointsRepo.Balance(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(300), balance.TotalPoints)
}

func (s *OrderServiceSuite) TestCancelPaymentKeepsConsumedVoucher() {
	uv, err := s.voucherService.Collect(s.GetContext(), "user_1", "SAVE50", types.VoucherSourceCollected, s.GetNow())
	s.NoError(err)
	s.NoError(s.GetStores().PointsRepo.Credit(s.GetContext(), "user_1", 500, "signup"))

	s.fillCart(200)
	_, _, err = s.cartService.ApplyCode(s.GetContext(), testSessionKey, "SAVE50")
	s.NoError(err)

	o, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodOnline)
	s.NoError(err)
	s.Equal(uv.ID, o.VoucherID)

	cancelled, err := s.orderService.CancelPayment(s.GetContext(), o.ID)
	s.NoError(err)
	s.Equal(types.OrderStatusCancelled, cancelled.OrderStatus)

	// The voucher stays bound to the failed order and the points
	// reservation is simply dropped
	stored, err := s.GetStores().VoucherRepo.Get(s.GetContext(), uv.ID)
	s.NoError(err)
	s.True(stored.IsUsed)
	s.Equal(o.ID, stored.OrderID)

	balance, err := s.GetStores().PointsRepo.Balance(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(500), balance.TotalPoints)
}

func (s *OrderServiceSuite) TestCreateOrderConsumesCodeUsage() {
	s.fillCart(0)
	_, _, err := s.cartService.ApplyCode(s.GetContext(), testSessionKey, "SAVE50")
	s.NoError(err)

	o, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodCOD)
	s.NoError(err)
	s.True(o.Totals.VoucherDiscount.Equal(decimal.NewFromInt(50000)))

	code, err := s.GetStores().CodeRepo.Get(s.GetContext(), "code_save50")
	s.NoError(err)
	s.Equal(1, code.UsedCount)
}

func (s *OrderServiceSuite) TestConfirmPaymentRequiresPendingOrder() {
	s.fillCart(0)
	o, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodOnline)
	s.NoError(err)

	_, err = s.orderService.ConfirmPayment(s.GetContext(), o.ID)
	s.NoError(err)

	_, err = s.orderService.ConfirmPayment(s.GetContext(), o.ID)
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrInvalidOperation))

	_, err = s.orderService.CancelPayment(s.GetContext(), o.ID)
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrInvalidOperation))
}

func (s *OrderServiceSuite) TestListByUser() {
	s.fillCart(0)
	first, err := s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_1", types.PaymentMethodCOD)
	s.NoError(err)

	s.fillCart(0)
	_, err = s.orderService.CreateOrder(s.GetContext(), testSessionKey, "user_2", types.PaymentMethodCOD)
	s.NoError(err)

	orders, err := s.orderService.ListByUser(s.GetContext(), "user_1")
	s.NoError(err)
	s.Len(orders, 1)
	s.Equal(first.ID, orders[0].ID)
}
