package handlers

import (
	"net/http"

	"pos-sync-service/middleware"
	"pos-sync-service/models"
	"pos-sync-service/repository"

	"github.com/gin-gonic/gin"
)

type orderItemRequest struct {
	ItemID        string  `json:"item_id" binding:"required"`
	ItemName      string  `json:"item_name" binding:"required"`
	Count         int     `json:"count" binding:"required,min=1"`
	OriginalPrice float64 `json:"original_price" binding:"required,gt=0"`
	Options       string  `json:"options"`
}

type CreateOrderRequest struct {
	OrderType       models.OrderType   `json:"order_type" binding:"required,oneof=DineIn TakeAway Delivery"`
	Items           []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	TableNum        *string            `json:"table_num"`
	DeliveryInfo    *string            `json:"delivery_info"`
	DiscountPercent float64            `json:"discount_percent" binding:"min=0,max=100"`
	Tax             float64            `json:"tax" binding:"min=0"`
	DeliveryFee     float64            `json:"delivery_fee" binding:"min=0"`
	TakeawayFee     float64            `json:"takeaway_fee" binding:"min=0"`
}

// CreateOrder places a new order at checkout
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := repository.CreateOrderInput{
		VendorID:        middleware.GetVendorID(c),
		StaffID:         middleware.GetStaffID(c),
		OrderType:       req.OrderType,
		Items:           toItemInputs(req.Items),
		TableNum:        req.TableNum,
		DeliveryInfo:    req.DeliveryInfo,
		DiscountPercent: req.DiscountPercent,
		Tax:             req.Tax,
		DeliveryFee:     req.DeliveryFee,
		TakeawayFee:     req.TakeawayFee,
	}

	order, err := h.Orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type ExtraItemsRequest struct {
	Items      []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price" binding:"required,gt=0"`
	CountItem  int                `json:"count_item" binding:"required,min=1"`
}

// AddExtraItems replaces the order's item set with the edited one
func (h *Handler) AddExtraItems(c *gin.Context) {
	var req ExtraItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	err := h.Orders.AddExtraItems(c.Request.Context(), orderID, toItemInputs(req.Items), req.TotalPrice, req.CountItem)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order items updated", "order_id": orderID})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=Pending InProgress Ready Completed Cancelled"`
}

// UpdateOrderStatus applies a status transition
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.OrderID,
		"current_status": order.Status,
	})
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelOrder cancels a non-terminal order with a reason
func (h *Handler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	if err := h.Orders.CancelOrder(c.Request.Context(), orderID, req.Reason); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": orderID})
}

// GetTodayOrders returns the day's orders for the caller's vendor,
// items grouped under each order, most recent first
func (h *Handler) GetTodayOrders(c *gin.Context) {
	orders, err := h.Orders.GetOrdersForDay(c.Request.Context(), middleware.GetVendorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order with its items
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.GetOrderDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func toItemInputs(items []orderItemRequest) []repository.OrderItemInput {
	out := make([]repository.OrderItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, repository.OrderItemInput{
			ItemID:        item.ItemID,
			ItemName:      item.ItemName,
			Count:         item.Count,
			OriginalPrice: item.OriginalPrice,
			Options:       item.Options,
		})
	}
	return out
}
