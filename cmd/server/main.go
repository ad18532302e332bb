package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/shopora/shopora/internal/api"
	v1 "github.com/shopora/shopora/internal/api/v1"
	"github.com/shopora/shopora/internal/cache"
	"github.com/shopora/shopora/internal/config"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/repository"
	"github.com/shopora/shopora/internal/service"
	"github.com/shopora/shopora/internal/shipping"
	"github.com/shopora/shopora/internal/validator"
)

// @title Shopora Checkout API
// @version 1.0
// @description Checkout pricing and promotion resolution service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	validator.NewValidator()

	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Repositories
			repository.NewProductRepository,
			repository.NewDiscountRuleRepository,
			repository.NewPromotionRepository,
			repository.NewPromotionCodeRepository,
			repository.NewPromotionGiftRepository,
			repository.NewVoucherRepository,
			repository.NewPointsRepository,
			repository.NewCampaignRepository,
			repository.NewOrderRepository,
			repository.NewCartStore,

			// Shipping fee source
			shipping.NewFeeProvider,

			// Services
			service.NewServiceParams,
			service.NewCartService,
			service.NewCheckoutService,
			service.NewVoucherService,
			service.NewDiscountService,
			service.NewGiftService,
			service.NewOrderService,
			service.NewPointsService,
			provideCampaignService,

			// Handlers and router
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(seedDemoData),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideCampaignService(params service.ServiceParams) service.CampaignService {
	return service.NewCampaignService(params)
}

func provideHandlers(
	log *logger.Logger,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	voucherService service.VoucherService,
	campaignService service.CampaignService,
	pointsService service.PointsService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(),
		Cart:     v1.NewCartHandler(cartService, log),
		Order:    v1.NewOrderHandler(orderService, checkoutService, cartService, log),
		Voucher:  v1.NewVoucherHandler(voucherService, log),
		Campaign: v1.NewCampaignHandler(campaignService, log),
		Points:   v1.NewPointsHandler(pointsService, log),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
