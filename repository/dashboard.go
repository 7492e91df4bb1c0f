package repository

import (
	"context"
	"time"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"
)

type DashboardStats struct {
	TodayOrders     int64         `json:"today_orders"`
	TodayRevenue    float64       `json:"today_revenue"`
	PendingOrders   int64         `json:"pending_orders"`
	ActiveOrders    int64         `json:"active_orders"`
	CancelledOrders int64         `json:"cancelled_orders"`
	PopularItems    []PopularItem `json:"popular_items"`
	RecentOrders    []RecentOrder `json:"recent_orders"`
}

type PopularItem struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type RecentOrder struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

// Each aggregate query scans into its own row struct; no loosely typed rows.
type orderTotalsRow struct {
	TodayOrders     int64
	TodayRevenue    float64
	PendingOrders   int64
	ActiveOrders    int64
	CancelledOrders int64
}

type popularItemRow struct {
	ItemName string
	Total    int64
}

type recentOrderRow struct {
	OrderID   string
	OrderType string
	Status    string
	OrderAt   time.Time
}

// GetDashboardStats aggregates today's numbers for one vendor/staff pair:
// order count, revenue over completed orders, pending/active/cancelled
// counts, the top five items by quantity, and the ten most recent orders.
// Read-only; no side effects.
func (r *Orders) GetDashboardStats(ctx context.Context, vendorID, staffID string) (*DashboardStats, error) {
	start, end := dayRange(r.now())
	db := r.store.DB().WithContext(ctx)

	var totals orderTotalsRow
	err := db.Raw(`
		SELECT
			COUNT(*) AS today_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN total_price ELSE 0 END), 0) AS today_revenue,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_orders,
			COALESCE(SUM(CASE WHEN status IN (?, ?) THEN 1 ELSE 0 END), 0) AS active_orders,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled_orders
		FROM orders
		WHERE vendor_id = ? AND staff_id = ? AND order_at >= ? AND order_at < ?`,
		models.StatusCompleted, models.StatusPending,
		models.StatusReady, models.StatusInProgress, models.StatusCancelled,
		vendorID, staffID, start, end,
	).Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to aggregate order totals", err)
	}

	var popular []popularItemRow
	err = db.Raw(`
		SELECT oi.item_name AS item_name, SUM(oi.count) AS total
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		WHERE o.vendor_id = ? AND o.order_at >= ? AND o.order_at < ?
		GROUP BY oi.item_name
		ORDER BY total DESC
		LIMIT 5`,
		vendorID, start, end,
	).Scan(&popular).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to aggregate popular items", err)
	}

	var recent []recentOrderRow
	err = db.Model(&models.Order{}).
		Select("order_id", "order_type", "status", "order_at").
		Where("vendor_id = ? AND staff_id = ? AND order_at >= ? AND order_at < ?",
			vendorID, staffID, start, end).
		Order("order_at DESC").
		Limit(10).
		Scan(&recent).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to fetch recent orders", err)
	}

	stats := &DashboardStats{
		TodayOrders:     totals.TodayOrders,
		TodayRevenue:    totals.TodayRevenue,
		PendingOrders:   totals.PendingOrders,
		ActiveOrders:    totals.ActiveOrders,
		CancelledOrders: totals.CancelledOrders,
		PopularItems:    make([]PopularItem, 0, len(popular)),
		RecentOrders:    make([]RecentOrder, 0, len(recent)),
	}
	for _, row := range popular {
		stats.PopularItems = append(stats.PopularItems, PopularItem{Name: row.ItemName, Count: row.Total})
	}
	for _, row := range recent {
		stats.RecentOrders = append(stats.RecentOrders, RecentOrder{
			OrderID: row.OrderID,
			Type:    row.OrderType,
			Time:    row.OrderAt.Format("15:04"),
			Status:  row.Status,
		})
	}
	return stats, nil
}
