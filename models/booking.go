package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID     uint  `gorm:"index;column:user_id" json:"user_id"`
	RoomTypeID uint  `gorm:"index;column:room_type_id" json:"room_type_id"`
	RoomID     *uint `gorm:"index;column:room_id" json:"room_id"`

	// [check_in_date, check_out_date) in calendar days
	CheckInDate  datatypes.Date `gorm:"column:check_in_date;index" json:"check_in_date"`
	CheckOutDate datatypes.Date `gorm:"column:check_out_date;index" json:"check_out_date"`

	Status     BookingStatus `gorm:"column:status;size:32;index" json:"status"`
	TotalPrice float64       `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`
	IsPaid     bool          `gorm:"column:is_paid;default:false" json:"is_paid"`

	User     User     `gorm:"foreignKey:UserID;references:ID" json:"user"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID;references:ID" json:"room_type"`
	Room     *Room    `gorm:"foreignKey:RoomID;references:ID" json:"room"`
}

func (b Booking) CheckIn() time.Time  { return time.Time(b.CheckInDate) }
func (b Booking) CheckOut() time.Time { return time.Time(b.CheckOutDate) }

// CurrentRoomID prefers the embedded room, falling back to the raw foreign key.
func (b Booking) CurrentRoomID() *uint {
	if b.Room != nil && b.Room.ID != 0 {
		id := b.Room.ID
		return &id
	}
	if b.RoomID != nil && *b.RoomID != 0 {
		id := *b.RoomID
		return &id
	}
	return nil
}

// CurrentRoomNumber returns the display number of the assigned room, or "".
func (b Booking) CurrentRoomNumber() string {
	if b.Room != nil {
		return b.Room.RoomNumber
	}
	return ""
}

// Nights counts calendar nights between check-in and check-out.
func (b Booking) Nights() int {
	n := int(b.CheckOut().Sub(b.CheckIn()).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// BookingPage is one page of the booking list.
type BookingPage struct {
	Data  []Booking `json:"data"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}
