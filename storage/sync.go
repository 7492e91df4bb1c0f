package storage

import (
	"context"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"

	"gorm.io/gorm"
)

// UnsyncedOrders returns every order whose current state has not been
// acknowledged by the remote collaborator.
func (s *Store) UnsyncedOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Where("synced = ?", false).Find(&orders).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to scan unsynced orders", err)
	}
	return orders, nil
}

// UnsyncedItems returns every order item not yet acknowledged remotely.
func (s *Store) UnsyncedItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).Where("synced = ?", false).Find(&items).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to scan unsynced order items", err)
	}
	return items, nil
}

// MarkSynced flips the synced flag for the given rows in one transaction.
// Called only after the remote has acknowledged the whole batch.
func (s *Store) MarkSynced(ctx context.Context, orderIDs []string, itemIDs []uint) error {
	if len(orderIDs) == 0 && len(itemIDs) == 0 {
		return nil
	}
	err := s.Transaction(ctx, func(tx *gorm.DB) error {
		if len(orderIDs) > 0 {
			if err := tx.Model(&models.Order{}).
				Where("order_id IN ?", orderIDs).
				Update("synced", true).Error; err != nil {
				return err
			}
		}
		if len(itemIDs) > 0 {
			if err := tx.Model(&models.OrderItem{}).
				Where("order_item_id IN ?", itemIDs).
				Update("synced", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Persistence("failed to mark batch synced", err)
	}
	return nil
}
