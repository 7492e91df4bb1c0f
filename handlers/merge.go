package handlers

import (
	"net/http"

	"pos-sync-service/middleware"

	"github.com/gin-gonic/gin"
)

// MergeVendorOrders pulls the vendor's orders from the backoffice and folds
// the ones this terminal has not seen into the local store. Screens use it
// to show orders placed on other terminals; it is not part of the outbound
// sync cycle.
func (h *Handler) MergeVendorOrders(c *gin.Context) {
	vendorID := middleware.GetVendorID(c)

	orders, err := h.Remote.FetchVendorOrders(c.Request.Context(), vendorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	imported, err := h.Store.ImportOrders(c.Request.Context(), orders)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fetched":  len(orders),
		"imported": imported,
	})
}
