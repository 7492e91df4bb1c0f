package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pos-sync-service/handlers"
	"pos-sync-service/middleware"
	"pos-sync-service/remote"
	"pos-sync-service/repository"
	"pos-sync-service/routes"
	"pos-sync-service/storage"
	"pos-sync-service/sync"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRemote struct{}

func (stubRemote) SyncOrders(ctx context.Context, batch remote.SyncBatch) error { return nil }

var testSecret = []byte("test-secret")

func setupServer(t *testing.T, remoteBaseURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	log := zap.NewNop()

	orders := repository.NewOrders(store, log)
	manager := sync.NewManager(store, stubRemote{}, log, 1, time.Millisecond)
	remoteClient := remote.NewClient(remoteBaseURL, time.Second, log)
	h := handlers.New(orders, store, manager, remoteClient, log)

	r := gin.New()
	routes.SetupRoutes(r, h, testSecret)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateStaffToken(testSecret, "staff-1", "vendor-1")
	require.NoError(t, err)
	return token
}

func createBody() map[string]any {
	return map[string]any{
		"order_type": "TakeAway",
		"items": []map[string]any{
			{"item_id": "item-a", "item_name": "Burger", "count": 2, "original_price": 5.0},
		},
		"takeaway_fee": 0.5,
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := setupServer(t, "http://localhost:0")
	token := staffToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token, createBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		OrderID      string  `json:"order_id"`
		OrderLocalID string  `json:"order_local_id"`
		VendorID     string  `json:"vendor_id"`
		TotalAmount  float64 `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "#001", created.OrderLocalID)
	assert.Equal(t, "vendor-1", created.VendorID, "vendor comes from the token, not the body")
	assert.InDelta(t, 10.5, created.TotalAmount, 1e-9)

	w = doJSON(t, r, http.MethodGet, "/api/orders/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 1, listing.Count)
}

func TestCreateOrderRejectsBadPayload(t *testing.T) {
	r := setupServer(t, "http://localhost:0")
	token := staffToken(t)

	body := createBody()
	body["items"] = []map[string]any{}
	w := doJSON(t, r, http.MethodPost, "/api/orders", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = createBody()
	body["order_type"] = "DriveThrough"
	w = doJSON(t, r, http.MethodPost, "/api/orders", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusTransitionEndpoint(t *testing.T) {
	r := setupServer(t, "http://localhost:0")
	token := staffToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token, createBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Skipping straight to Completed violates the state machine
	w = doJSON(t, r, http.MethodPut, "/api/orders/"+created.OrderID+"/status", token,
		map[string]any{"status": "Completed"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/orders/"+created.OrderID+"/status", token,
		map[string]any{"status": "InProgress"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/orders/"+created.OrderID+"/cancel", token,
		map[string]any{"reason": "customer_request"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Terminal now; cancelling again must fail
	w = doJSON(t, r, http.MethodPut, "/api/orders/"+created.OrderID+"/cancel", token,
		map[string]any{"reason": "again"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMissingOrderReturns404(t *testing.T) {
	r := setupServer(t, "http://localhost:0")
	token := staffToken(t)

	w := doJSON(t, r, http.MethodGet, "/api/orders/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthIsRequired(t *testing.T) {
	r := setupServer(t, "http://localhost:0")

	w := doJSON(t, r, http.MethodGet, "/api/orders/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders/today", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestManualSyncTrigger(t *testing.T) {
	r := setupServer(t, "http://localhost:0")
	token := staffToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token, createBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/sync", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Orders []struct {
			Synced bool `json:"synced"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Orders, 1)
	assert.True(t, listing.Orders[0].Synced)
}
