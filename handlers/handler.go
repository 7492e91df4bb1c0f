package handlers

import (
	"net/http"

	"pos-sync-service/apperrors"
	"pos-sync-service/remote"
	"pos-sync-service/repository"
	"pos-sync-service/storage"
	"pos-sync-service/sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries the injected services the routes need.
type Handler struct {
	Orders *repository.Orders
	Store  *storage.Store
	Sync   *sync.Manager
	Remote *remote.Client
	Log    *zap.Logger
}

func New(orders *repository.Orders, store *storage.Store, syncManager *sync.Manager, remoteClient *remote.Client, log *zap.Logger) *Handler {
	return &Handler{Orders: orders, Store: store, Sync: syncManager, Remote: remoteClient, Log: log}
}

// respondError maps the error taxonomy onto HTTP statuses. Local failures
// surface to the operator; only sync deferral stays invisible.
func (h *Handler) respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeValidation:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeInvalidState:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeRemoteSync:
		status = http.StatusBadGateway
	case apperrors.CodeSyncInProgress:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.Log.Error("request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": string(code)})
}
