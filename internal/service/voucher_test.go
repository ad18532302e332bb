package service

import (
	"testing"
	"time"

	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/testutil"
	"github.com/shopora/shopora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type VoucherServiceSuite struct {
	testutil.BaseServiceTestSuite
	voucherService VoucherService
}

func TestVoucherService(t *testing.T) {
	suite.Run(t, new(VoucherServiceSuite))
}

func (s *VoucherServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.voucherService = NewVoucherService(s.serviceParams())
	s.setupProducts()
}

func (s *VoucherServiceSuite) serviceParams() ServiceParams {
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

func (s *VoucherServiceSuite) setupProducts() {
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), &product.Product{
		ID:          "prod_tea",
		Name:        "Oolong Tea",
		Price:       decimal.NewFromInt(250000),
		Stock:       100,
		CategoryIDs: []string{"cat_tea"},
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), &product.Product{
		ID:          "prod_box",
		Name:        "Gift Box",
		Price:       decimal.NewFromInt(100000),
		Stock:       10,
		CategoryIDs: []string{"cat_gift"},
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *VoucherServiceSuite) createPromotion(p *promotion.Promotion) *promotion.Promotion {
	p.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	s.NoError(s.GetStores().PromotionRepo.Create(s.GetContext(), p))
	return p
}

func (s *VoucherServiceSuite) createCode(c *promotion.PromotionCode) *promotion.PromotionCode {
	c.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	s.NoError(s.GetStores().CodeRepo.Create(s.GetContext(), c))
	return c
}

func (s *VoucherServiceSuite) setupOrderPromo(minOrder int64) {
	s.createPromotion(&promotion.Promotion{
		ID:            "promo_order",
		Name:          "Order Discount",
		Type:          types.PromotionTypeOrder,
		MinOrderValue: decimal.NewFromInt(minOrder),
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_save50",
		Code:        "SAVE50",
		PromotionID: "promo_order",
		Value:       decimal.NewFromInt(50000),
	})
}

func (s *VoucherServiceSuite) teaCart(quantity int) cart.CartState {
	return cart.CartState{
		Items: []cart.CartLineItem{
			{
				ProductID: "prod_tea",
				Quantity:  quantity,
				Price:     decimal.NewFromInt(250000),
			},
		},
	}
}

func (s *VoucherServiceSuite) TestResolveCodeTaxonomy() {
	expired := s.GetNow().Add(-time.Hour)

	s.createPromotion(&promotion.Promotion{
		ID:   "promo_ok",
		Name: "OK",
		Type: types.PromotionTypeOrder,
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_expired",
		Code:        "EXPIRED",
		PromotionID: "promo_ok",
		Value:       decimal.NewFromInt(10000),
		ExpiresAt:   &expired,
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_spent",
		Code:        "SPENT",
		PromotionID: "promo_ok",
		Value:       decimal.NewFromInt(10000),
		UsageLimit:  lo.ToPtr(5),
		UsedCount:   5,
	})

	archivedPromo := s.createPromotion(&promotion.Promotion{
		ID:   "promo_archived",
		Name: "Archived",
		Type: types.PromotionTypeOrder,
	})
	archivedPromo.Status = types.StatusArchived
	s.NoError(s.GetStores().PromotionRepo.Update(s.GetContext(), archivedPromo))
	s.createCode(&promotion.PromotionCode{
		ID:          "code_orphan",
		Code:        "ORPHAN",
		PromotionID: "promo_archived",
		Value:       decimal.NewFromInt(10000),
	})

	testCases := []struct {
		name     string
		code     string
		expected error
	}{
		{name: "unknown_code", code: "NOPE", expected: ierr.ErrInvalidCode},
		{name: "expired_code", code: "EXPIRED", expected: ierr.ErrExpiredCode},
		{name: "exhausted_code", code: "SPENT", expected: ierr.ErrUsageLimitExceeded},
		{name: "archived_promotion", code: "ORPHAN", expected: ierr.ErrInvalidCode},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, _, err := s.voucherService.ResolveCode(s.GetContext(), tc.code, s.GetNow())
			s.Error(err)
			s.True(ierr.Is(err, tc.expected), "got %v", err)
		})
	}
}

func (s *VoucherServiceSuite) TestApplyOrderCode() {
	s.setupOrderPromo(500000)

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(2), "SAVE50", s.GetNow())
	s.NoError(err)
	s.Equal("SAVE50", out.PromotionCode)
}

func (s *VoucherServiceSuite) TestApplyOrderCodeBelowMinimum() {
	s.setupOrderPromo(500000)

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(1), "SAVE50", s.GetNow())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrConditionNotMet))
	s.Empty(out.PromotionCode)
}

func (s *VoucherServiceSuite) TestApplyCodeReplacesPrevious() {
	s.setupOrderPromo(0)
	s.createPromotion(&promotion.Promotion{
		ID:   "promo_percent",
		Name: "Percent Off",
		Type: types.PromotionTypeOrder,
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_ten",
		Code:        "TEN",
		PromotionID: "promo_percent",
		Value:       decimal.NewFromInt(10),
		IsPercent:   true,
	})

	state := s.teaCart(2)
	state, err := s.voucherService.ApplyPromotionCode(s.GetContext(), state, "SAVE50", s.GetNow())
	s.NoError(err)
	s.Equal("SAVE50", state.PromotionCode)

	// Only one discount-family code can be active
	state, err = s.voucherService.ApplyPromotionCode(s.GetContext(), state, "TEN", s.GetNow())
	s.NoError(err)
	s.Equal("TEN", state.PromotionCode)
}

func (s *VoucherServiceSuite) TestApplyProductCodeQuantityGate() {
	s.createPromotion(&promotion.Promotion{
		ID:                 "promo_product",
		Name:               "Bulk Discount",
		Type:               types.PromotionTypeProduct,
		MinProductQuantity: 3,
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_bulk",
		Code:        "BULK",
		PromotionID: "promo_product",
		Value:       decimal.NewFromInt(20000),
	})

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(2), "BULK", s.GetNow())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrConditionNotMet))
	s.Empty(out.PromotionCode)

	out, err = s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(3), "BULK", s.GetNow())
	s.NoError(err)
	s.Equal("BULK", out.PromotionCode)
}

func (s *VoucherServiceSuite) setupGiftPromo(threshold int64) {
	s.createPromotion(&promotion.Promotion{
		ID:   "promo_gift",
		Name: "Buy Tea Get Box",
		Type: types.PromotionTypeGift,
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_gift",
		Code:        "TEABOX",
		PromotionID: "promo_gift",
	})
	gift := &promotion.PromotionGift{
		ID:                 "gift_cfg",
		PromotionID:        "promo_gift",
		ConditionKind:      types.GiftConditionMinQuantity,
		ConditionThreshold: decimal.NewFromInt(threshold),
		BuyProductIDs:      []string{"prod_tea"},
		GiftQuantity:       1,
		GiftProductIDs:     []string{"prod_box"},
		GiftDiscountKind:   types.GiftDiscountFree,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().GiftRepo.Create(s.GetContext(), gift))
}

func (s *VoucherServiceSuite) TestApplyGiftCode() {
	s.setupGiftPromo(3)

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(3), "TEABOX", s.GetNow())
	s.NoError(err)
	s.Equal("TEABOX", out.PromotionCode)
	gifts := out.GiftItems()
	s.Len(gifts, 1)
	s.Equal("prod_box", gifts[0].ProductID)
}

func (s *VoucherServiceSuite) TestApplyGiftCodeConditionNotMet() {
	s.setupGiftPromo(3)

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(2), "TEABOX", s.GetNow())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrConditionNotMet))
	s.Empty(out.PromotionCode)
	s.Empty(out.GiftItems())
}

func (s *VoucherServiceSuite) setupShippingPromo(allowCombineOrder bool, districts []string) {
	s.createPromotion(&promotion.Promotion{
		ID:                    "promo_ship",
		Name:                  "Shipping Relief",
		Type:                  types.PromotionTypeShipping,
		AllowCombineOrder:     allowCombineOrder,
		Districts:             districts,
		ShippingDiscountKind:  types.DiscountKindFixed,
		ShippingDiscountValue: decimal.NewFromInt(15000),
	})
	s.createCode(&promotion.PromotionCode{
		ID:          "code_ship",
		Code:        "FREESHIP",
		PromotionID: "promo_ship",
	})
}

func (s *VoucherServiceSuite) TestApplyShippingCode() {
	s.setupShippingPromo(false, nil)

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(1), "FREESHIP", s.GetNow())
	s.NoError(err)
	s.Equal("FREESHIP", out.ShippingVoucherCode)
	s.Empty(out.PromotionCode)
}

func (s *VoucherServiceSuite) TestApplyShippingCodeCombination() {
	s.setupOrderPromo(0)

	s.Run("pairing_denied", func() {
		s.setupShippingPromo(false, nil)

		state := s.teaCart(2)
		state, err := s.voucherService.ApplyPromotionCode(s.GetContext(), state, "SAVE50", s.GetNow())
		s.NoError(err)

		out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), state, "FREESHIP", s.GetNow())
		s.Error(err)
		s.True(ierr.Is(err, ierr.ErrCombinationNotAllowed))
		s.Empty(out.ShippingVoucherCode)
		// The discount code survives the failed pairing
		s.Equal("SAVE50", out.PromotionCode)
	})

	s.Run("pairing_allowed", func() {
		promo, err := s.GetStores().PromotionRepo.Get(s.GetContext(), "promo_ship")
		s.NoError(err)
		promo.AllowCombineOrder = true
		s.NoError(s.GetStores().PromotionRepo.Update(s.GetContext(), promo))

		state := s.teaCart(2)
		state, err = s.voucherService.ApplyPromotionCode(s.GetContext(), state, "SAVE50", s.GetNow())
		s.NoError(err)

		out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), state, "FREESHIP", s.GetNow())
		s.NoError(err)
		s.Equal("SAVE50", out.PromotionCode)
		s.Equal("FREESHIP", out.ShippingVoucherCode)
	})
}

func (s *VoucherServiceSuite) TestApplyShippingCodeDistrictGate() {
	s.setupShippingPromo(false, []string{"District 3"})

	state := s.teaCart(1)
	state.Address = "12 Le Loi, District 1, HCMC"

	out, err := s.voucherService.ApplyPromotionCode(s.GetContext(), state, "FREESHIP", s.GetNow())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrDistrictNotAllowed))
	s.Empty(out.ShippingVoucherCode)

	state.Address = "45 Vo Van Tan, District 3, HCMC"
	out, err = s.voucherService.ApplyPromotionCode(s.GetContext(), state, "FREESHIP", s.GetNow())
	s.NoError(err)
	s.Equal("FREESHIP", out.ShippingVoucherCode)
}

func (s *VoucherServiceSuite) TestRemovePromotionCode() {
	s.setupGiftPromo(3)

	state, err := s.voucherService.ApplyPromotionCode(s.GetContext(), s.teaCart(3), "TEABOX", s.GetNow())
	s.NoError(err)
	s.NotEmpty(state.GiftItems())

	out, err := s.voucherService.RemovePromotionCode(s.GetContext(), state, s.GetNow())
	s.NoError(err)
	s.Empty(out.PromotionCode)
	s.Empty(out.GiftItems())
	s.Len(out.Items, 1)
}

func (s *VoucherServiceSuite) TestCollectAndAvailable() {
	s.setupOrderPromo(0)

	uv, err := s.voucherService.Collect(s.GetContext(), "user_1", "SAVE50", types.VoucherSourceCollected, s.GetNow())
	s.NoError(err)
	s.Equal("code_save50", uv.CodeID)
	s.NotEmpty(uv.Code)
	s.Equal(types.VoucherSourceCollected, uv.Source)
	s.False(uv.IsUsed)

	available, err := s.voucherService.Available(s.GetContext(), "user_1", s.GetNow())
	s.NoError(err)
	s.Len(available, 1)
	s.Equal(uv.ID, available[0].ID)
}
