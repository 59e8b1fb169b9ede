package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices go out as JSON numbers, the way clients already read them.
	decimal.MarshalJSONWithoutQuotes = true
}

type Item struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"size:1000"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	DateAdded   time.Time       `json:"dateAdded"`
	BranchID    string          `json:"branch" gorm:"type:uuid;index;not null"`
	Branch      *Branch         `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.DateAdded.IsZero() {
		i.DateAdded = time.Now().UTC()
	}
	return nil
}
