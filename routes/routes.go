package routes

import (
	"net/http"

	"pos-sync-service/handlers"
	"pos-sync-service/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, jwtSecret []byte) {
	// Health check for the terminal app's connectivity probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "POS Order Sync Service",
		})
	})

	// ── Staff routes (terminal UI) ─────────────────────────────────
	api := r.Group("/api")
	api.Use(middleware.AuthRequired(jwtSecret))
	{
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/today", h.GetTodayOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id/extra", h.AddExtraItems)
		api.PUT("/orders/:id/status", h.UpdateOrderStatus)
		api.PUT("/orders/:id/cancel", h.CancelOrder)
		api.POST("/orders/merge", h.MergeVendorOrders)

		api.GET("/dashboard/stats", h.GetDashboardStats)

		api.GET("/menu", h.GetMenu)
		api.POST("/menu", h.CacheMenu)

		api.POST("/sync", h.TriggerSync)
	}
}
