package routes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ArowuTest/conomy-backend/internal/config"
	"github.com/ArowuTest/conomy-backend/internal/handlers"
	"github.com/ArowuTest/conomy-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies holds everything the router wires into routes
type HandlerDependencies struct {
	Authenticator middleware.Authenticator
	AuthHandler   *handlers.AuthHandler
	LedgerHandler *handlers.LedgerHandler
	TeamHandler   *handlers.TeamHandler
	AdminHandler  *handlers.AdminHandler
	// Ping reports store health for GET /health; nil skips the check
	Ping func(ctx context.Context) error
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		slog.Error("Invalid trusted proxies, trusting none", "error", err, "trustedProxies", cfg.Server.TrustedProxies)
		_ = router.SetTrustedProxies(nil)
	}

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			if deps.Ping != nil {
				if err := deps.Ping(c.Request.Context()); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
					return
				}
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		auth.Use(middleware.RateLimitMiddleware(cfg.RateLimit))
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		public.GET("/products", deps.LedgerHandler.ListProducts)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.Authenticator))
	{
		protected.GET("/me", deps.AuthHandler.Me)
		protected.GET("/balance", deps.LedgerHandler.GetBalance)
		protected.POST("/recharges", deps.LedgerHandler.RequestDeposit)
		protected.POST("/withdrawals", deps.LedgerHandler.RequestWithdrawal)
		protected.POST("/investments", deps.LedgerHandler.Invest)
		protected.GET("/investments", deps.LedgerHandler.ListInvestments)
		protected.GET("/team", deps.TeamHandler.ListTeam)
		protected.GET("/activity", deps.TeamHandler.GetActivity)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/recharges/pending", deps.AdminHandler.PendingRecharges)
			admin.POST("/recharges/:id/approve", deps.AdminHandler.ApproveRecharge)
			admin.POST("/recharges/:id/reject", deps.AdminHandler.RejectRecharge)
			admin.GET("/withdrawals/pending", deps.AdminHandler.PendingWithdrawals)
			admin.POST("/withdrawals/:id/approve", deps.AdminHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", deps.AdminHandler.RejectWithdrawal)
		}
	}

	return router
}
