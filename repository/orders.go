package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"
	"pos-sync-service/statemachine"
	"pos-sync-service/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Orders enforces the order lifecycle over the local store. All multi-row
// mutations run inside a single store transaction, so no partial order is
// ever visible.
type Orders struct {
	store       *storage.Store
	log         *zap.Logger
	now         func() time.Time
	onCompleted func()
}

func NewOrders(store *storage.Store, log *zap.Logger) *Orders {
	return &Orders{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// OnCompleted registers the best-effort sync trigger fired after an order
// reaches Completed. The callback must not block; the status write commits
// regardless of what the callback does.
func (r *Orders) OnCompleted(fn func()) {
	r.onCompleted = fn
}

type OrderItemInput struct {
	ItemID        string  `json:"item_id"`
	ItemName      string  `json:"item_name"`
	Count         int     `json:"count"`
	OriginalPrice float64 `json:"original_price"`
	Options       string  `json:"options"`
}

type CreateOrderInput struct {
	VendorID        string
	StaffID         string
	OrderType       models.OrderType
	Items           []OrderItemInput
	TableNum        *string
	DeliveryInfo    *string
	DiscountPercent float64
	Tax             float64
	DeliveryFee     float64
	TakeawayFee     float64
}

// CreateOrder inserts a new Pending, unsynced order with its items in one
// transaction and returns it with the generated IDs.
func (r *Orders) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.VendorID == "" || len(in.Items) == 0 {
		return nil, apperrors.Validation("vendor_id and a non-empty items array are required")
	}

	localID, err := r.nextLocalID(ctx, in.VendorID)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, item := range in.Items {
		subtotal += float64(item.Count) * item.OriginalPrice
	}
	discountAmount := subtotal * in.DiscountPercent / 100
	totalAmount := subtotal - discountAmount + in.Tax + in.DeliveryFee + in.TakeawayFee

	order := models.Order{
		OrderID:         uuid.NewString(),
		OrderLocalID:    localID,
		VendorID:        in.VendorID,
		OrderType:       in.OrderType,
		CountItem:       len(in.Items),
		StaffID:         in.StaffID,
		TableNum:        in.TableNum,
		DeliveryInfo:    in.DeliveryInfo,
		TotalPrice:      subtotal,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  discountAmount,
		Tax:             in.Tax,
		DeliveryFee:     in.DeliveryFee,
		TakeawayFee:     in.TakeawayFee,
		TotalAmount:     totalAmount,
		Status:          models.StatusPending,
		Synced:          false,
		OrderAt:         r.now(),
	}

	err = r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return err
		}
		for _, item := range in.Items {
			row := models.OrderItem{
				OrderID:       order.OrderID,
				VendorID:      in.VendorID,
				ItemID:        item.ItemID,
				ItemName:      item.ItemName,
				Count:         item.Count,
				OriginalPrice: item.OriginalPrice,
				Options:       item.Options,
				Synced:        false,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Persistence("failed to create order", err)
	}

	r.log.Info("order created",
		zap.String("orderId", order.OrderID),
		zap.String("localId", order.OrderLocalID),
		zap.String("vendorId", order.VendorID))
	return &order, nil
}

// nextLocalID computes the next #NNN label for (vendor, today), starting at
// #001 when the vendor has no orders yet for the day. Reading outside the
// insert transaction is fine here: writes are single-threaded per terminal.
func (r *Orders) nextLocalID(ctx context.Context, vendorID string) (string, error) {
	start, end := dayRange(r.now())

	var last models.Order
	err := r.store.DB().WithContext(ctx).
		Where("vendor_id = ? AND order_at >= ? AND order_at < ?", vendorID, start, end).
		Order("order_at DESC, order_local_id DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "#001", nil
	}
	if err != nil {
		return "", apperrors.Persistence("failed to read last local order id", err)
	}

	n, err := strconv.Atoi(strings.TrimPrefix(last.OrderLocalID, "#"))
	if err != nil {
		return "", apperrors.Persistence("malformed local order id "+last.OrderLocalID, err)
	}
	return fmt.Sprintf("#%03d", n+1), nil
}

// AddExtraItems replaces the order's item set (delete-all, insert-new) and
// updates the totals atomically. Precondition: the order is not in a
// terminal state; the UI enforces this before offering the edit flow.
func (r *Orders) AddExtraItems(ctx context.Context, orderID string, items []OrderItemInput, newTotalPrice float64, newCountItems int) error {
	if len(items) == 0 {
		return apperrors.Validation("a non-empty items array is required")
	}

	order, err := r.GetOrderDetails(ctx, orderID)
	if err != nil {
		return err
	}

	discountAmount := newTotalPrice * order.DiscountPercent / 100
	totalAmount := newTotalPrice - discountAmount + order.Tax + order.DeliveryFee + order.TakeawayFee

	err = r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"total_price":     newTotalPrice,
			"count_item":      newCountItems,
			"discount_amount": discountAmount,
			"total_amount":    totalAmount,
			"synced":          false,
		}
		if err := tx.Model(&models.Order{}).Where("order_id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}
		for _, item := range items {
			row := models.OrderItem{
				OrderID:       orderID,
				VendorID:      order.VendorID,
				ItemID:        item.ItemID,
				ItemName:      item.ItemName,
				Count:         item.Count,
				OriginalPrice: item.OriginalPrice,
				Options:       item.Options,
				Synced:        false,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Persistence("failed to replace order items", err)
	}

	r.log.Info("order items replaced",
		zap.String("orderId", orderID),
		zap.Int("items", len(items)))
	return nil
}

// UpdateOrderStatus applies a state-machine-validated transition. Reaching
// Completed stamps completed_at and fires the registered sync trigger after
// the write has committed.
func (r *Orders) UpdateOrderStatus(ctx context.Context, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := r.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !statemachine.CanTransition(order.Status, newStatus) {
		return nil, apperrors.InvalidState(
			"cannot move order from " + string(order.Status) + " to " + string(newStatus) +
				"; valid next states: " + statemachine.DescribeValidFrom(order.Status))
	}

	updates := map[string]any{
		"status": newStatus,
		"synced": false,
	}
	var completedAt *time.Time
	if newStatus == models.StatusCompleted {
		now := r.now()
		completedAt = &now
		updates["completed_at"] = completedAt
	}

	err = r.store.DB().WithContext(ctx).
		Model(&models.Order{}).Where("order_id = ?", orderID).Updates(updates).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to update order status", err)
	}

	order.Status = newStatus
	order.CompletedAt = completedAt
	order.Synced = false

	r.log.Info("order status updated",
		zap.String("orderId", orderID),
		zap.String("status", string(newStatus)))

	if newStatus == models.StatusCompleted && r.onCompleted != nil {
		r.onCompleted()
	}
	return order, nil
}

// CancelOrder moves the order to Cancelled with a reason. Allowed from any
// non-terminal state; cancelling a terminal order is an error.
func (r *Orders) CancelOrder(ctx context.Context, orderID, reason string) error {
	order, err := r.getOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return apperrors.InvalidState("order " + orderID + " is already " + string(order.Status))
	}

	now := r.now()
	err = r.store.DB().WithContext(ctx).
		Model(&models.Order{}).Where("order_id = ?", orderID).
		Updates(map[string]any{
			"status":        models.StatusCancelled,
			"cancel_reason": reason,
			"cancel_at":     &now,
			"synced":        false,
		}).Error
	if err != nil {
		return apperrors.Persistence("failed to cancel order", err)
	}

	r.log.Info("order cancelled",
		zap.String("orderId", orderID),
		zap.String("reason", reason))
	return nil
}

// GetOrdersForDay returns the current calendar day's orders with their items
// grouped under each order, most recent first. An empty vendorID returns all
// vendors on this terminal.
func (r *Orders) GetOrdersForDay(ctx context.Context, vendorID string) ([]models.Order, error) {
	start, end := dayRange(r.now())

	query := r.store.DB().WithContext(ctx).
		Preload("Items").
		Where("order_at >= ? AND order_at < ?", start, end)
	if vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var orders []models.Order
	if err := query.Order("order_at DESC").Find(&orders).Error; err != nil {
		return nil, apperrors.Persistence("failed to fetch orders for the day", err)
	}
	return orders, nil
}

// GetOrderDetails returns one order with its items.
func (r *Orders) GetOrderDetails(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.store.DB().WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order " + orderID + " not found")
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to fetch order", err)
	}
	return &order, nil
}

func (r *Orders) getOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.store.DB().WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order " + orderID + " not found")
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to fetch order", err)
	}
	return &order, nil
}

// dayRange returns [midnight, next midnight) for t in its own location.
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
