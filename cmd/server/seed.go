package main

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/shopora/shopora/internal/config"
	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/service"
	"github.com/shopora/shopora/internal/types"
)

// seedDemoData preloads a small demo catalog so a fresh deployment can
// be exercised without an admin surface.
func seedDemoData(cfg *config.Configuration, params service.ServiceParams, log *logger.Logger) error {
	if !cfg.Server.SeedDemo {
		return nil
	}

	ctx := types.SetUserID(context.Background(), types.DefaultUserID)
	now := time.Now().UTC()

	products := []*product.Product{
		{
			ID:          "prod_tea_001",
			Name:        "Oolong Tea 500g",
			Price:       decimal.NewFromInt(250_000),
			Stock:       120,
			CategoryIDs: []string{"cat_tea"},
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
		{
			ID:          "prod_tea_002",
			Name:        "Jasmine Green Tea 250g",
			Price:       decimal.NewFromInt(150_000),
			Stock:       200,
			CategoryIDs: []string{"cat_tea"},
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
		{
			ID:          "prod_cup_001",
			Name:        "Ceramic Tea Cup",
			Price:       decimal.NewFromInt(80_000),
			Stock:       500,
			CategoryIDs: []string{"cat_accessories"},
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
	}
	for _, p := range products {
		if err := params.ProductRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	rule := &discountrule.ProductDiscountRule{
		ID:        "rule_tea_10pct",
		Name:      "Tea happy hour",
		Scope:     types.NewScopeCategories("cat_tea"),
		Kind:      types.DiscountKindPercent,
		Value:     decimal.NewFromInt(10),
		StartAt:   now.AddDate(0, 0, -1),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := params.DiscountRuleRepo.Create(ctx, rule); err != nil {
		return err
	}

	promo := &promotion.Promotion{
		ID:                   "promo_order_50k",
		Name:                 "50k off orders over 500k",
		Type:                 types.PromotionTypeOrder,
		AllowCombineShipping: true,
		MinOrderValue:        decimal.NewFromInt(500_000),
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}
	if err := params.PromotionRepo.Create(ctx, promo); err != nil {
		return err
	}

	code := &promotion.PromotionCode{
		ID:          "code_welcome50",
		Code:        "WELCOME50",
		PromotionID: promo.ID,
		Value:       decimal.NewFromInt(50_000),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := params.CodeRepo.Create(ctx, code); err != nil {
		return err
	}

	flashCode := &promotion.PromotionCode{
		ID:          "code_flash20",
		Code:        types.GenerateVoucherCode("FS"),
		PromotionID: promo.ID,
		Value:       decimal.NewFromInt(20_000),
		UsageLimit:  lo.ToPtr(100),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := params.CodeRepo.Create(ctx, flashCode); err != nil {
		return err
	}

	flashSale := &campaign.VoucherCampaign{
		ID:      "camp_tet_flash",
		Name:    "Tet flash sale",
		Type:    types.CampaignTypeFlashSale,
		StartAt: now,
		Config: &types.CampaignConfig{
			FlashSale: &types.FlashSaleConfig{
				TotalVouchers: 100,
				MaxPerUser:    1,
				CodeID:        flashCode.ID,
			},
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := params.CampaignRepo.Create(ctx, flashSale); err != nil {
		return err
	}

	log.Infow("demo catalog seeded",
		"products", len(products),
		"discount_rules", 1,
		"promotion_codes", 2,
		"campaigns", 1)
	return nil
}
