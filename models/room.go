package models

import (
	"time"

	"gorm.io/gorm"
)

// Room is one physical, bookable unit of a RoomType.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomTypeID uint   `gorm:"column:room_type_id;index;not null" json:"room_type_id"`
	RoomNumber string `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"room_number"`
	Floor      string `gorm:"column:floor;type:varchar(10)" json:"floor,omitempty"`
	IsActive   bool   `gorm:"column:is_active;default:true" json:"is_active"`

	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

// TypeName is the room type name when the relation is loaded.
func (r Room) TypeName() string {
	if r.RoomType != nil {
		return r.RoomType.Name
	}
	return ""
}
