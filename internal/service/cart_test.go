package service

import (
	"testing"
	"time"

	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/testutil"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testSessionKey = "sess_test"

type CartServiceSuite struct {
	testutil.BaseServiceTestSuite
	cartService CartService
}

func TestCartService(t *testing.T) {
	suite.Run(t, new(CartServiceSuite))
}

func (s *CartServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.cartService = NewCartService(s.serviceParams())
	s.setupCatalog()
}

func (s *CartServiceSuite) serviceParams() ServiceParams {
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

func (s *CartServiceSuite) setupCatalog() {
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

func (s *CartServiceSuite) setupGiftPromo() {
	s.NoError(s.GetStores().PromotionRepo.Create(s.GetContext(), &promotion.Promotion{
		ID:        "promo_gift",
		Name:      "Buy Tea Get Box",
		Type:      types.PromotionTypeGift,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().CodeRepo.Create(s.GetContext(), &promotion.PromotionCode{
		ID:          "code_gift",
		Code:        "TEABOX",
		PromotionID: "promo_gift",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.GetStores().GiftRepo.Create(s.GetContext(), &promotion.PromotionGift{
		ID:                 "gift_cfg",
		PromotionID:        "promo_gift",
		ConditionKind:      types.GiftConditionMinQuantity,
		ConditionThreshold: decimal.NewFromInt(3),
		BuyProductIDs:      []string{"prod_tea"},
		GiftQuantity:       1,
		GiftProductIDs:     []string{"prod_box"},
		GiftDiscountKind:   types.GiftDiscountFree,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *CartServiceSuite) TestAddItemAnnotatesBaseline() {
	s.NoError(s.GetStores().DiscountRuleRepo.Create(s.GetContext(), &discountrule.ProductDiscountRule{
		ID:        "rule_tea",
		Name:      "tea promo",
		Scope:     types.NewScopeCategories("cat_tea"),
		Kind:      types.DiscountKindPercent,
		Value:     decimal.NewFromInt(10),
		StartAt:   s.GetNow().Add(-time.Hour),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	state, msg, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 2)
	s.NoError(err)
	s.Empty(msg)
	s.Len(state.Items, 1)
	s.True(state.Items[0].Price.Equal(decimal.NewFromInt(250000)))
	s.True(state.Items[0].Discount.Equal(decimal.NewFromInt(25000)))

	// Adding the same product merges into the existing line
	state, _, err = s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 1)
	s.NoError(err)
	s.Len(state.Items, 1)
	s.Equal(3, state.Items[0].Quantity)
	s.True(state.Items[0].Discount.Equal(decimal.NewFromInt(25000)))
}

func (s *CartServiceSuite) TestAddItemValidation() {
	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 0)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, _, err = s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_missing", 1)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CartServiceSuite) TestApplyCodeAndPersist() {
	s.setupGiftPromo()

	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 3)
	s.NoError(err)

	state, msg, err := s.cartService.ApplyCode(s.GetContext(), testSessionKey, "TEABOX")
	s.NoError(err)
	s.Empty(msg)
	s.Equal("TEABOX", state.PromotionCode)
	s.Len(state.GiftItems(), 1)

	stored, err := s.cartService.Get(s.GetContext(), testSessionKey)
	s.NoError(err)
	s.Equal(state, stored)
}

func (s *CartServiceSuite) TestApplyCodeDegradesOnTaxonomyError() {
	s.setupGiftPromo()

	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 2)
	s.NoError(err)

	state, msg, err := s.cartService.ApplyCode(s.GetContext(), testSessionKey, "TEABOX")
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrConditionNotMet))
	s.NotEmpty(msg)
	s.Empty(state.PromotionCode)
	s.Empty(state.GiftItems())

	// The neutral state is persisted, not the failed application
	stored, err := s.cartService.Get(s.GetContext(), testSessionKey)
	s.NoError(err)
	s.Empty(stored.PromotionCode)
}

func (s *CartServiceSuite) TestQuantityDropDegradesGiftCode() {
	s.setupGiftPromo()

	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 3)
	s.NoError(err)
	state, _, err := s.cartService.ApplyCode(s.GetContext(), testSessionKey, "TEABOX")
	s.NoError(err)
	s.Len(state.GiftItems(), 1)

	// Dropping below the threshold degrades the code with a message
	// instead of failing the mutation
	state, msg, err := s.cartService.UpdateQuantity(s.GetContext(), testSessionKey, "prod_tea", 2)
	s.NoError(err)
	s.NotEmpty(msg)
	s.Empty(state.PromotionCode)
	s.Empty(state.GiftItems())
	s.Equal(2, state.Items[0].Quantity)
}

func (s *CartServiceSuite) TestRemoveLastItemResetsCart() {
	s.setupGiftPromo()

	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 3)
	s.NoError(err)
	_, _, err = s.cartService.ApplyCode(s.GetContext(), testSessionKey, "TEABOX")
	s.NoError(err)
	_, _, err = s.cartService.SetPoints(s.GetContext(), testSessionKey, 100)
	s.NoError(err)

	// Removing the last purchase drops the derived gift line, the code
	// and the points request with it
	state, _, err := s.cartService.RemoveItem(s.GetContext(), testSessionKey, "prod_tea")
	s.NoError(err)
	s.Empty(state.Items)
	s.Empty(state.PromotionCode)
	s.Empty(state.ShippingVoucherCode)
	s.Zero(state.PointsToUse)
}

func (s *CartServiceSuite) TestUpdateQuantityZeroRemoves() {
	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 2)
	s.NoError(err)

	state, _, err := s.cartService.UpdateQuantity(s.GetContext(), testSessionKey, "prod_tea", 0)
	s.NoError(err)
	s.Empty(state.Items)
}

func (s *CartServiceSuite) TestUpdateQuantityUnknownProduct() {
	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 2)
	s.NoError(err)

	_, _, err = s.cartService.UpdateQuantity(s.GetContext(), testSessionKey, "prod_box", 5)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CartServiceSuite) TestSetDelivery() {
	_, _, err := s.cartService.AddItem(s.GetContext(), testSessionKey, "prod_tea", 1)
	s.NoError(err)

	state, _, err := s.cartService.SetDelivery(s.GetContext(), testSessionKey, "ward_01", "12 Le Loi, District 1")
	s.NoError(err)
	s.Equal("ward_01", state.WardCode)
	s.Equal("12 Le Loi, District 1", state.Address)
}

func (s *CartServiceSuite) TestSetPointsValidation() {
	_, _, err := s.cartService.SetPoints(s.GetContext(), testSessionKey, -5)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CartServiceSuite) TestGetMissingSessionReturnsEmptyCart() {
	state, err := s.cartService.Get(s.GetContext(), "sess_never_seen")
	s.NoError(err)
	s.Empty(state.Items)
}
