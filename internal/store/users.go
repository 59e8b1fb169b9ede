package store

import (
	"context"

	"inventory-backend/internal/models"

	"gorm.io/gorm/clause"
)

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

// UpsertUser creates the user or, when the username exists, replaces its password
// hash and role.
func (s *Store) UpsertUser(ctx context.Context, user *models.User) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "updated_at"}),
	}).Create(user).Error
	return translate("upsert user", err)
}
