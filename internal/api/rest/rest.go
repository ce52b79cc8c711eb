package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authMiddleware gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ledger writes (called by the mini app and the bot backend)
		v1.POST("/register", handler.Register)
		v1.POST("/check-subscription", handler.CheckSubscription)
		v1.POST("/add-ticket-for-referral", handler.CreditReferral)

		// Read models (public read access)
		v1.GET("/user/:id/tickets", handler.GetTickets)
		v1.GET("/user/:id/stats", handler.GetUserStats)
		v1.GET("/referral/:id", handler.GetReferral)
		v1.GET("/giveaway/prizes", handler.ListPrizes)

		// Activity log
		v1.POST("/log-task-completion", handler.LogTaskCompletion)
		v1.POST("/log-folder-subscription", handler.LogFolderSubscription)
		v1.POST("/log-referral-stats", handler.LogReferralStats)

		// Admin endpoints (requires authentication)
		admin := v1.Group("/admin", authMiddleware)
		admin.GET("/stats", handler.GetAdminStats)
	}
}
