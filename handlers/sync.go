package handlers

import (
	"net/http"

	"pos-sync-service/apperrors"

	"github.com/gin-gonic/gin"
)

// TriggerSync runs a sync cycle on demand (pull-to-refresh). A cycle that
// exhausts its retries still answers OK: rows stay queued for the next
// trigger and eventual consistency is the contract.
func (h *Handler) TriggerSync(c *gin.Context) {
	err := h.Sync.SyncDataWithRetry(c.Request.Context())
	if apperrors.Is(err, apperrors.CodeSyncInProgress) {
		c.JSON(http.StatusAccepted, gin.H{"status": "already_running"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
