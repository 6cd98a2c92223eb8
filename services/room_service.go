package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-booking/models"
)

// RoomService serves the read-only room catalog the admin screens filter on.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// List returns rooms ordered by number, optionally narrowed to one room type.
func (s *RoomService) List(ctx context.Context, roomTypeID *uint) ([]models.Room, error) {
	rooms := []models.Room{}
	q := s.DB.WithContext(ctx).Preload("RoomType").Order("room_number")
	if roomTypeID != nil {
		q = q.Where("room_type_id = ?", *roomTypeID)
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) ListTypes(ctx context.Context) ([]models.RoomType, error) {
	types := []models.RoomType{}
	if err := s.DB.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve room types: %w", err)
	}
	return types, nil
}
