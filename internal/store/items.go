package store

import (
	"context"

	"inventory-backend/internal/models"
)

func (s *Store) ListItems(ctx context.Context, branchID string) ([]models.Item, error) {
	var items []models.Item
	err := s.conn(ctx).
		Where("branch_id = ?", branchID).
		Order("date_added ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate("list items", err)
	}
	return items, nil
}

// GetItem looks the item up within its branch; an item of another branch is not found.
func (s *Store) GetItem(ctx context.Context, branchID, itemID string) (*models.Item, error) {
	var item models.Item
	err := s.conn(ctx).
		Where("id = ? AND branch_id = ?", itemID, branchID).
		First(&item).Error
	if err != nil {
		return nil, translate("get item", err)
	}
	return &item, nil
}

func (s *Store) ItemsByIDs(ctx context.Context, ids []string) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.Item
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, translate("items by ids", err)
	}
	return items, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	return translate("create item", s.conn(ctx).Create(item).Error)
}

func (s *Store) UpdateItem(ctx context.Context, item *models.Item) error {
	res := s.conn(ctx).
		Model(item).
		Where("branch_id = ?", item.BranchID).
		Select("name", "description", "quantity", "price", "updated_at").
		Updates(item)
	if res.Error != nil {
		return translate("update item", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, branchID, itemID string) error {
	res := s.conn(ctx).
		Where("id = ? AND branch_id = ?", itemID, branchID).
		Delete(&models.Item{})
	if res.Error != nil {
		return translate("delete item", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
