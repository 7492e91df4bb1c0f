package models

import "time"

// OrderStatus represents all possible states of a POS order
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "InProgress"
	StatusReady      OrderStatus = "Ready"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderType is how the customer receives the order
type OrderType string

const (
	TypeDineIn   OrderType = "DineIn"
	TypeTakeAway OrderType = "TakeAway"
	TypeDelivery OrderType = "Delivery"
)

type Order struct {
	ID              uint        `json:"-" gorm:"primaryKey"`
	OrderID         string      `json:"order_id" gorm:"column:order_id;size:36;uniqueIndex;not null"`
	OrderLocalID    string      `json:"order_local_id" gorm:"column:order_local_id"`
	VendorID        string      `json:"vendor_id" gorm:"size:36;index;not null"`
	OrderType       OrderType   `json:"order_type"`
	CountItem       int         `json:"count_item"`
	StaffID         string      `json:"staff_id" gorm:"size:36"`
	TableNum        *string     `json:"table_num"`     // DineIn only
	DeliveryInfo    *string     `json:"delivery_info"` // Delivery only, serialized by the caller
	TotalPrice      float64     `json:"total_price"`
	DiscountPercent float64     `json:"discount_percent"`
	DiscountAmount  float64     `json:"discount_amount"`
	Tax             float64     `json:"tax"`
	DeliveryFee     float64     `json:"delivery_fee"`
	TakeawayFee     float64     `json:"takeaway_fee"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'Pending'"`
	CancelReason    string      `json:"cancel_reason"`
	CancelAt        *time.Time  `json:"cancel_at"`
	Synced          bool        `json:"synced" gorm:"not null;default:false"`
	OrderAt         time.Time   `json:"order_at" gorm:"column:order_at;index"`
	CompletedAt     *time.Time  `json:"completed_at"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;references:OrderID"`
}

type OrderItem struct {
	ID            uint    `json:"-" gorm:"column:order_item_id;primaryKey"`
	OrderID       string  `json:"order_id" gorm:"size:36;index;not null"`
	VendorID      string  `json:"vendor_id" gorm:"size:36"`
	ItemID        string  `json:"item_id" gorm:"size:36"`
	ItemName      string  `json:"item_name"`
	Count         int     `json:"count" gorm:"not null;check:count > 0"`
	OriginalPrice float64 `json:"original_price" gorm:"not null"` // snapshot price at time of order
	Options       string  `json:"options,omitempty"`
	Synced        bool    `json:"synced" gorm:"not null;default:false"`
}
