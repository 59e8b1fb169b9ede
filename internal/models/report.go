package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is one stock reconciliation submission. It is written once and never updated.
type Report struct {
	ID          string       `json:"id" gorm:"type:uuid;primaryKey"`
	BranchID    string       `json:"branchId" gorm:"type:uuid;index;not null"`
	Branch      *Branch      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	StockReport []ReportLine `json:"stockReport" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	Notes       string       `json:"notes" gorm:"type:text"`
	DateSent    time.Time    `json:"dateSent" gorm:"index;not null"`
}

// ReportLine stores the delta (stored quantity minus observed count) for one item,
// not the observed count itself. ItemID has no foreign key: unknown ids are kept
// with a zero delta and items may be deleted after the report was filed.
type ReportLine struct {
	ID           uint   `json:"-" gorm:"primaryKey"`
	ReportID     string `json:"-" gorm:"type:uuid;index;not null"`
	ItemID       string `json:"itemId" gorm:"type:uuid;not null"`
	CurrentStock int    `json:"currentStock" gorm:"not null"`
	Position     int    `json:"-" gorm:"not null"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.DateSent.IsZero() {
		r.DateSent = time.Now().UTC()
	}
	return nil
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Branch{},
		&User{},
		&Item{},
		&Report{},
		&ReportLine{},
	}
}
