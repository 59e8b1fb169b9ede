package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is a physical store location owning its own item inventory.
type Branch struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
