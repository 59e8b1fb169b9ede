package store

import (
	"context"

	"inventory-backend/internal/models"
)

// ListBranches returns every branch, newest first.
func (s *Store) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := s.conn(ctx).Order("created_at DESC").Find(&branches).Error; err != nil {
		return nil, translate("list branches", err)
	}
	return branches, nil
}

func (s *Store) GetBranch(ctx context.Context, id string) (*models.Branch, error) {
	var branch models.Branch
	if err := s.conn(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, translate("get branch", err)
	}
	return &branch, nil
}

func (s *Store) CreateBranch(ctx context.Context, branch *models.Branch) error {
	return translate("create branch", s.conn(ctx).Create(branch).Error)
}

func (s *Store) UpdateBranch(ctx context.Context, branch *models.Branch) error {
	res := s.conn(ctx).Model(branch).Select("name", "address", "updated_at").Updates(branch)
	if res.Error != nil {
		return translate("update branch", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
