package service

import (
	"testing"
	"time"

	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/testutil"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type GiftServiceSuite struct {
	testutil.BaseServiceTestSuite
	giftService GiftService
}

func TestGiftService(t *testing.T) {
	suite.Run(t, new(GiftServiceSuite))
}

func (s *GiftServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.giftService = NewGiftService(s.serviceParams())
	s.setupProducts()
}

func (s *GiftServiceSuite) serviceParams() ServiceParams {
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

func (s *GiftServiceSuite) setupProducts() {
	products := []*product.Product{
		{
			ID:          "prod_cake",
			Name:        "Mooncake",
			Price:       decimal.NewFromInt(300000),
			Stock:       100,
			CategoryIDs: []string{"cat_cake"},
			BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
		},
		{
			ID:          "prod_box",
			Name:        "Gift Box",
			Price:       decimal.NewFromInt(500000),
			Stock:       10,
			CategoryIDs: []string{"cat_gift"},
			BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
		},
		{
			ID:          "prod_sampler",
			Name:        "Tea Sampler",
			Price:       decimal.NewFromInt(120000),
			Stock:       10,
			CategoryIDs: []string{"cat_gift"},
			BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
		},
	}
	for _, p := range products {
		s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), p))
	}
}

func (s *GiftServiceSuite) giftConfig() *promotion.PromotionGift {
	return &promotion.PromotionGift{
		ID:                 "gift_cfg_1",
		PromotionID:        "promo_gift",
		ConditionKind:      types.GiftConditionMinQuantity,
		ConditionThreshold: decimal.NewFromInt(3),
		BuyProductIDs:      []string{"prod_cake"},
		GiftQuantity:       1,
		GiftProductIDs:     []string{"prod_box"},
		GiftDiscountKind:   types.GiftDiscountFree,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
}

func (s *GiftServiceSuite) cartWithCakes(quantity int) cart.CartState {
	return cart.CartState{
		Items: []cart.CartLineItem{
			{
				ProductID:   "prod_cake",
				ProductName: "Mooncake",
				Quantity:    quantity,
				Price:       decimal.NewFromInt(300000),
			},
		},
	}
}

func (s *GiftServiceSuite) TestMultiplicityFloorsPartialMultiples() {
	// 7 units against a threshold of 3 qualifies twice, not three times
	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(7), s.giftConfig(), s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.Equal("prod_box", gifts[0].ProductID)
	s.Equal(2, gifts[0].Quantity)
}

func (s *GiftServiceSuite) TestLimitPerOrderClampsToOne() {
	cfg := s.giftConfig()
	cfg.LimitPerOrder = true

	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(9), cfg, s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.Equal(1, gifts[0].Quantity)
}

func (s *GiftServiceSuite) TestConditionNotMet() {
	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(2), s.giftConfig(), s.GetNow())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrConditionNotMet))
	s.Empty(out.GiftItems())
}

func (s *GiftServiceSuite) TestMinValueCondition() {
	cfg := s.giftConfig()
	cfg.ConditionKind = types.GiftConditionMinValue
	cfg.ConditionThreshold = decimal.NewFromInt(500000)

	// Net value counts: (300000 - 50000) * 2 = 500000, exactly one multiple
	state := s.cartWithCakes(2)
	state.Items[0].Discount = decimal.NewFromInt(50000)

	out, err := s.giftService.Apply(s.GetContext(), state, cfg, s.GetNow())
	s.NoError(err)
	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.Equal(1, gifts[0].Quantity)
}

func (s *GiftServiceSuite) TestBuyEligibilityByCategory() {
	cfg := s.giftConfig()
	cfg.BuyProductIDs = nil
	cfg.BuyCategoryIDs = []string{"cat_cake"}

	state := s.cartWithCakes(3)
	state.Items = append(state.Items, cart.CartLineItem{
		ProductID: "prod_sampler",
		Quantity:  5,
		Price:     decimal.NewFromInt(120000),
	})

	out, err := s.giftService.Apply(s.GetContext(), state, cfg, s.GetNow())
	s.NoError(err)

	// Only the cake line counts toward the threshold
	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.Equal(1, gifts[0].Quantity)
}

func (s *GiftServiceSuite) TestFreeGiftPriceSplit() {
	// The automatic product discount is baked into the gift line price
	// and the voucher portion is reported alone in Discount
	rule := &discountrule.ProductDiscountRule{
		ID:        "rule_gift_box",
		Name:      "gift box promo",
		Scope:     types.NewScopeProducts("prod_box"),
		Kind:      types.DiscountKindFixed,
		Value:     decimal.NewFromInt(10000),
		StartAt:   s.GetNow().Add(-time.Hour),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().DiscountRuleRepo.Create(s.GetContext(), rule))

	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(3), s.giftConfig(), s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.True(gifts[0].Price.Equal(decimal.NewFromInt(490000)), "got %s", gifts[0].Price)
	s.True(gifts[0].Discount.Equal(decimal.NewFromInt(490000)), "got %s", gifts[0].Discount)
	s.True(gifts[0].LineTotal().IsZero())
}

func (s *GiftServiceSuite) TestPercentGiftDiscount() {
	cfg := s.giftConfig()
	cfg.GiftDiscountKind = types.GiftDiscountPercent
	cfg.GiftDiscountValue = decimal.NewFromInt(50)

	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(3), cfg, s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.True(gifts[0].Price.Equal(decimal.NewFromInt(500000)))
	s.True(gifts[0].Discount.Equal(decimal.NewFromInt(250000)), "got %s", gifts[0].Discount)
}

func (s *GiftServiceSuite) TestMoneyGiftDiscountCapped() {
	cfg := s.giftConfig()
	cfg.GiftDiscountKind = types.GiftDiscountMoney
	cfg.GiftDiscountValue = decimal.NewFromInt(600000)

	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(3), cfg, s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 1)
	// A money discount never exceeds the gift line price
	s.True(gifts[0].Discount.Equal(decimal.NewFromInt(500000)), "got %s", gifts[0].Discount)
}

func (s *GiftServiceSuite) TestStockCappedDistribution() {
	box, err := s.GetStores().ProductRepo.Get(s.GetContext(), "prod_box")
	s.NoError(err)
	box.Stock = 2
	s.NoError(s.GetStores().ProductRepo.Update(s.GetContext(), box))

	cfg := s.giftConfig()
	cfg.GiftProductIDs = []string{"prod_box", "prod_sampler"}

	// 9 cakes earn 3 gifts; the box covers 2, the sampler the rest
	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(9), cfg, s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 2)
	s.Equal("prod_box", gifts[0].ProductID)
	s.Equal(2, gifts[0].Quantity)
	s.Equal("prod_sampler", gifts[1].ProductID)
	s.Equal(1, gifts[1].Quantity)
}

func (s *GiftServiceSuite) TestOutOfStock() {
	box, err := s.GetStores().ProductRepo.Get(s.GetContext(), "prod_box")
	s.NoError(err)
	box.Stock = 0
	s.NoError(s.GetStores().ProductRepo.Update(s.GetContext(), box))

	out, err := s.giftService.Apply(s.GetContext(), s.cartWithCakes(3), s.giftConfig(), s.GetNow())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrInsufficientGiftStock))
	s.Empty(out.GiftItems())
}

func (s *GiftServiceSuite) TestStripsExistingGiftLines() {
	state := s.cartWithCakes(3)
	state.Items = append(state.Items, cart.CartLineItem{
		ProductID: "prod_sampler",
		Quantity:  4,
		Price:     decimal.NewFromInt(120000),
		IsGift:    true,
	})

	out, err := s.giftService.Apply(s.GetContext(), state, s.giftConfig(), s.GetNow())
	s.NoError(err)

	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.Equal("prod_box", gifts[0].ProductID)
	s.Equal(1, gifts[0].Quantity)
}
