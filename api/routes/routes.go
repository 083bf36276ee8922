package routes

import (
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/config"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/handlers"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the wired-up handlers the router mounts
type Handlers struct {
	Auth          *handlers.AuthHandler
	Tenant        *handlers.TenantHandler
	Raffle        *handlers.RaffleHandler
	TicketPackage *handlers.TicketPackageHandler
	Pool          *handlers.PoolHandler
	Assignment    *handlers.AssignmentHandler
	Referral      *handlers.ReferralHandler
	Checkout      *handlers.CheckoutHandler
	Payphone      *handlers.PayphoneHandler
	Webhook       *handlers.WebhookHandler
	Invoice       *handlers.InvoiceHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// Storefront bootstrap
		public.GET("/tenants/resolve", h.Tenant.ResolveByDomain)
		public.GET("/raffles/:id", h.Raffle.GetRaffle)
		public.GET("/raffles/:id/offers", h.TicketPackage.GetOffers)

		// Checkout flow
		public.POST("/purchase-token", h.Checkout.IssuePurchaseToken)
		public.POST("/validate-purchase", h.Checkout.ValidatePurchase)
		public.POST("/checkout", h.Checkout.Checkout)
		public.POST("/payphone/confirm", h.Payphone.Confirm)

		// Asynchronous payment notifications
		webhooks := public.Group("/webhooks")
		{
			webhooks.POST("/stripe", h.Webhook.Stripe)
			webhooks.POST("/invoice-status", h.Webhook.InvoiceStatus)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		tenants := protected.Group("/tenants")
		{
			tenants.GET("", h.Tenant.GetTenants)
			tenants.POST("", h.Tenant.CreateTenant)
			tenants.GET("/:id/payment-config", h.Tenant.GetPaymentConfig)
			tenants.PUT("/:id/payment-config", h.Tenant.UpsertPaymentConfig)
		}
		protected.GET("/features", h.Tenant.GetFeatures)

		raffles := protected.Group("/raffles")
		{
			raffles.GET("", h.Raffle.GetRafflesByTenant)
			raffles.POST("", h.Raffle.CreateRaffle)
			raffles.PUT("/:id", h.Raffle.UpdateRaffle)
			raffles.PATCH("/:id/status", h.Raffle.UpdateStatus)
			raffles.DELETE("/:id", h.Raffle.DeleteRaffle)
		}

		packages := protected.Group("/packages")
		{
			packages.GET("", h.TicketPackage.GetPackages)
			packages.POST("", h.TicketPackage.CreatePackage)
			packages.PUT("/:id", h.TicketPackage.UpdatePackage)
			packages.DELETE("/:id", h.TicketPackage.DeletePackage)
		}

		pools := protected.Group("/pools")
		{
			pools.GET("", h.Pool.GetPoolsByTenant)
			pools.POST("", h.Pool.CreatePool)
			pools.GET("/:id", h.Pool.GetPool)
			pools.PATCH("/:id/status", h.Pool.UpdateStatus)
			pools.DELETE("/:id", h.Pool.DeletePool)
			pools.POST("/:id/import", h.Pool.ImportNumbers)
		}

		assignments := protected.Group("/assignments")
		{
			assignments.GET("", h.Assignment.ListByReferral)
			assignments.POST("", h.Assignment.Assign)
			assignments.POST("/:id/return", h.Assignment.Return)
		}

		referrals := protected.Group("/referrals")
		{
			referrals.GET("", h.Referral.GetReferralsByTenant)
			referrals.POST("", h.Referral.CreateReferral)
			referrals.PUT("/:id", h.Referral.UpdateReferral)
			referrals.DELETE("/:id", h.Referral.DeleteReferral)
			referrals.GET("/:id/stats", h.Referral.GetStats)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", h.Invoice.ListByTenant)
			invoices.GET("/:orderNumber", h.Invoice.GetByOrderNumber)
			invoices.POST("/:orderNumber/complete", h.Invoice.Complete)
		}
	}

	return router
}
