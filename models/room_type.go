package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string         `gorm:"size:100;uniqueIndex" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PricePerNight float64        `gorm:"column:price_per_night;type:decimal(10,2)" json:"price_per_night"`
	Capacity      uint           `gorm:"column:capacity" json:"capacity"`
	Amenities     datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
