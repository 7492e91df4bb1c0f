package handlers

import (
	"net/http"

	"pos-sync-service/middleware"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns today's aggregates for the caller's vendor/staff
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.Orders.GetDashboardStats(c.Request.Context(),
		middleware.GetVendorID(c), middleware.GetStaffID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
