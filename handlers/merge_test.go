package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pos-sync-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeVendorOrders(t *testing.T) {
	backoffice := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/orders/vendor/vendor-1", req.URL.Path)
		orders := []models.Order{
			{
				OrderID:      "aaaaaaaa-0000-0000-0000-000000000001",
				OrderLocalID: "#004",
				VendorID:     "vendor-1",
				OrderType:    models.TypeDelivery,
				Status:       models.StatusPending,
				OrderAt:      time.Now(),
				Items: []models.OrderItem{
					{OrderID: "aaaaaaaa-0000-0000-0000-000000000001", ItemID: "x", ItemName: "Pizza", Count: 1, OriginalPrice: 12},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(orders)
	}))
	defer backoffice.Close()

	r := setupServer(t, backoffice.URL)
	token := staffToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders/merge", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Fetched  int `json:"fetched"`
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Imported)

	// Running the merge again finds nothing new
	w = doJSON(t, r, http.MethodPost, "/api/orders/merge", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Imported)

	// The merged order shows up in the day view, already acknowledged
	w = doJSON(t, r, http.MethodGet, "/api/orders/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Orders, 1)
	assert.True(t, listing.Orders[0].Synced)
	assert.Len(t, listing.Orders[0].Items, 1)
}

func TestMergeRemoteDown(t *testing.T) {
	backoffice := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer backoffice.Close()

	r := setupServer(t, backoffice.URL)
	w := doJSON(t, r, http.MethodPost, "/api/orders/merge", staffToken(t), nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
