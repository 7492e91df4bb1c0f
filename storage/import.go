package storage

import (
	"context"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"

	"gorm.io/gorm"
)

// ImportOrders merges server-originated orders into the local cache.
// Insert-if-absent keyed by order_id: locally known orders win, so a local
// edit is never clobbered by a merge. Imported rows arrive already synced.
func (s *Store) ImportOrders(ctx context.Context, orders []models.Order) (int, error) {
	imported := 0
	err := s.Transaction(ctx, func(tx *gorm.DB) error {
		for _, order := range orders {
			var count int64
			if err := tx.Model(&models.Order{}).
				Where("order_id = ?", order.OrderID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			order.ID = 0
			order.Synced = true
			for i := range order.Items {
				order.Items[i].ID = 0
				order.Items[i].Synced = true
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.Persistence("failed to import remote orders", err)
	}
	return imported, nil
}
