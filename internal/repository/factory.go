package repository

import (
	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/order"
	"github.com/shopora/shopora/internal/domain/points"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/domain/voucher"
)

// Constructors returning the domain interfaces, for fx wiring

func NewProductRepository() product.Repository {
	return NewInMemoryProductStore()
}

func NewDiscountRuleRepository() discountrule.Repository {
	return NewInMemoryDiscountRuleStore()
}

func NewPromotionRepository() promotion.Repository {
	return NewInMemoryPromotionStore()
}

func NewPromotionCodeRepository() promotion.CodeRepository {
	return NewInMemoryPromotionCodeStore()
}

func NewPromotionGiftRepository() promotion.GiftRepository {
	return NewInMemoryPromotionGiftStore()
}

func NewVoucherRepository() voucher.Repository {
	return NewInMemoryVoucherStore()
}

func NewPointsRepository() points.Repository {
	return NewInMemoryPointsStore()
}

func NewCampaignRepository() campaign.Repository {
	return NewInMemoryCampaignStore()
}

func NewOrderRepository() order.Repository {
	return NewInMemoryOrderStore()
}

func NewCartStore() cart.Store {
	return NewInMemoryCartStore()
}
