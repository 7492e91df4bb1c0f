package handlers

import (
	"net/http"

	"pos-sync-service/models"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the locally cached catalog
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.Store.MenuItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

type CacheMenuRequest struct {
	Items []models.MenuItem `json:"items" binding:"required,min=1"`
}

// CacheMenu mirrors a catalog payload fetched from the backoffice into the
// local cache; existing entries are kept as-is
func (h *Handler) CacheMenu(c *gin.Context) {
	var req CacheMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inserted, err := h.Store.UpsertMenuItems(c.Request.Context(), req.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"received": len(req.Items),
		"inserted": inserted,
	})
}
