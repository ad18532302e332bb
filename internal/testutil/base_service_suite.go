package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shopora/shopora/internal/cache"
	"github.com/shopora/shopora/internal/config"
	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/discountrule"
	"github.com/shopora/shopora/internal/domain/order"
	"github.com/shopora/shopora/internal/domain/points"
	"github.com/shopora/shopora/internal/domain/product"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/domain/voucher"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/repository"
	"github.com/shopora/shopora/internal/shipping"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopora/shopora/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
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
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	stores      Stores
	feeProvider *shipping.StaticFeeProvider
	logger      *logger.Logger
	config      *config.Configuration
	now         time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	cache.Initialize(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		ProductRepo:      repository.NewInMemoryProductStore(),
		DiscountRuleRepo: repository.NewInMemoryDiscountRuleStore(),
		PromotionRepo:    repository.NewInMemoryPromotionStore(),
		CodeRepo:         repository.NewInMemoryPromotionCodeStore(),
		GiftRepo:         repository.NewInMemoryPromotionGiftStore(),
		VoucherRepo:      repository.NewInMemoryVoucherStore(),
		PointsRepo:       repository.NewInMemoryPointsStore(),
		CampaignRepo:     repository.NewInMemoryCampaignStore(),
		OrderRepo:        repository.NewInMemoryOrderStore(),
		CartStore:        repository.NewInMemoryCartStore(),
	}
	s.feeProvider = shipping.NewStaticFeeProvider()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ProductRepo.(*repository.InMemoryProductStore).Clear()
	s.stores.DiscountRuleRepo.(*repository.InMemoryDiscountRuleStore).Clear()
	s.stores.PromotionRepo.(*repository.InMemoryPromotionStore).Clear()
	s.stores.CodeRepo.(*repository.InMemoryPromotionCodeStore).Clear()
	s.stores.GiftRepo.(*repository.InMemoryPromotionGiftStore).Clear()
	s.stores.VoucherRepo.(*repository.InMemoryVoucherStore).Clear()
	s.stores.PointsRepo.(*repository.InMemoryPointsStore).Clear()
	s.stores.CampaignRepo.(*repository.InMemoryCampaignStore).Clear()
	s.stores.OrderRepo.(*repository.InMemoryOrderStore).Clear()
	s.stores.CartStore.(*repository.InMemoryCartStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetFeeProvider returns the static shipping fee provider
func (s *BaseServiceTestSuite) GetFeeProvider() *shipping.StaticFeeProvider {
	return s.feeProvider
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
