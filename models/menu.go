package models

import "time"

// MenuItem is a read-mostly local mirror of the remote menu catalog.
// Entries are upserted from periodic catalog fetches; staleness is tolerated.
type MenuItem struct {
	ItemID               string    `json:"item_id" gorm:"column:item_id;size:36;primaryKey"`
	CategoryID           string    `json:"category_id" gorm:"size:36"`
	VendorID             string    `json:"vendor_id" gorm:"size:36;index"`
	ItemName             string    `json:"item_name" gorm:"not null"`
	Description          string    `json:"description"`
	OriginalPrice        float64   `json:"original_price"`
	Price                float64   `json:"price" gorm:"not null"`
	ImageURL             string    `json:"image_url"`
	NutritionalInfo      string    `json:"nutritional_info"`
	Allergens            string    `json:"allergens"`
	AvailabilitySchedule string    `json:"availability_schedule"`
	Available            bool      `json:"available" gorm:"default:true"`
	Rating               float64   `json:"rating" gorm:"default:0"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
