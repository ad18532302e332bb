package service

import (
	"github.com/shopora/shopora/internal/config"
	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/order"
	"github.com/shopora/shopora/internal/domain/points"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/domain/shipping"
	"github.com/shopora/shopora/internal/domain/voucher"
	"github.com/shopora/shopora/internal/logger"
)

// ServiceParams holds common dependencies for all services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	ProductRepo      product.Repository
	DiscountRuleRepo discountrule.Repository
	PromotionRepo    promotion.Repository
	CodeRepo         promotion.CodeRepository
	GiftRepo         promotion.GiftRepository
	VoucherRepo      voucher.Repository
	PointsRepo       points.Repository
	CampaignRepo     campaign.Repository
	OrderRepo        order.Repository
	CartStore        cart.Store

	// External collaborators
	FeeProvider shipping.FeeProvider
}

// NewServiceParams assembles the common service params for fx
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	productRepo product.Repository,
	discountRuleRepo discountrule.Repository,
	promotionRepo promotion.Repository,
	codeRepo promotion.CodeRepository,
	giftRepo promotion.GiftRepository,
	voucherRepo voucher.Repository,
	pointsRepo points.Repository,
	campaignRepo campaign.Repository,
	orderRepo order.Repository,
	cartStore cart.Store,
	feeProvider shipping.FeeProvider,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		ProductRepo:      productRepo,
		DiscountRuleRepo: discountRuleRepo,
		PromotionRepo:    promotionRepo,
		CodeRepo:         codeRepo,
		GiftRepo:         giftRepo,
		VoucherRepo:      voucherRepo,
		PointsRepo:       pointsRepo,
		CampaignRepo:     campaignRepo,
		OrderRepo:        orderRepo,
		CartStore:        cartStore,
		FeeProvider:      feeProvider,
	}
}
