package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/shopora/shopora/internal/api/v1"
	"github.com/shopora/shopora/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Cart     *v1.CartHandler
	Order    *v1.OrderHandler
	Voucher  *v1.VoucherHandler
	Campaign *v1.CampaignHandler
	Points   *v1.PointsHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Cart routes
	cart := router.Group("/cart")
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.POST("/items", handlers.Cart.AddItem)
		cart.PUT("/items/:id", handlers.Cart.UpdateQuantity)
		cart.DELETE("/items/:id", handlers.Cart.RemoveItem)
		cart.POST("/code", handlers.Cart.ApplyCode)
		cart.DELETE("/code", handlers.Cart.RemoveCode)
		cart.DELETE("/shipping-voucher", handlers.Cart.RemoveShippingVoucher)
		cart.PUT("/points", handlers.Cart.SetPoints)
		cart.PUT("/delivery", handlers.Cart.SetDelivery)
	}

	// Checkout routes
	router.GET("/checkout/quote", handlers.Order.Quote)

	// Order routes
	orders := router.Group("/orders")
	{
		orders.POST("", handlers.Order.CreateOrder)
		orders.GET("", handlers.Order.ListOrders)
		orders.GET("/:id", handlers.Order.GetOrder)
		orders.POST("/:id/payment/confirm", handlers.Order.ConfirmPayment)
		orders.POST("/:id/payment/cancel", handlers.Order.CancelPayment)
	}

	// Voucher wallet routes
	vouchers := router.Group("/vouchers")
	{
		vouchers.GET("", handlers.Voucher.ListVouchers)
		vouchers.POST("", handlers.Voucher.CollectVoucher)
	}

	// Campaign routes
	campaigns := router.Group("/campaigns")
	{
		campaigns.POST("", handlers.Campaign.CreateCampaign)
		campaigns.GET("/:id", handlers.Campaign.GetCampaign)
		campaigns.POST("/:id/grant", handlers.Campaign.Grant)
		campaigns.POST("/:id/spin", handlers.Campaign.Spin)
	}

	// Points routes
	points := router.Group("/points")
	{
		points.GET("/balance", handlers.Points.GetBalance)
		points.GET("/ledger", handlers.Points.GetLedger)
		points.POST("/credit", handlers.Points.CreditPoints)
	}
}
