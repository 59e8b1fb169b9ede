package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;default:'employee'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleEmployee
	}
	return nil
}
