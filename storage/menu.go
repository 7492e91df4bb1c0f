package storage

import (
	"context"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"

	"gorm.io/gorm/clause"
)

// UpsertMenuItems mirrors a remote catalog payload into the local cache.
// Insert-if-absent keyed by item_id: existing rows are left untouched, the
// cache is never invalidated by business logic.
func (s *Store) UpsertMenuItems(ctx context.Context, items []models.MenuItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoNothing: true,
		}).
		Create(&items)
	if res.Error != nil {
		return 0, apperrors.Persistence("failed to upsert menu items", res.Error)
	}
	return int(res.RowsAffected), nil
}

// MenuItems returns the cached catalog, newest entries first.
func (s *Store) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, apperrors.Persistence("failed to fetch menu items", err)
	}
	return items, nil
}
