package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the guest who owns a booking. Read-only in the booking workflow.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"size:255" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;size:150" json:"email"`
	Phone        string         `gorm:"size:50" json:"phone,omitempty"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
