package bookingadmin_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"hotel-booking/models"
	"hotel-booking/policy"
)

type MockUpdater struct {
	mock.Mock
}

func (m *MockUpdater) UpdateBooking(ctx context.Context, id uint, fields map[string]interface{}) (*models.Booking, error) {
	args := m.Called(ctx, id, fields)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

type MockRoomSource struct {
	mock.Mock
}

func (m *MockRoomSource) AvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error) {
	args := m.Called(ctx, roomTypeID, checkIn, checkOut, excludeBookingID)
	rooms, _ := args.Get(0).([]models.Room)
	return rooms, args.Error(1)
}

// memorySource answers availability from fixed rooms and bookings.
type memorySource struct {
	rooms    []models.Room
	bookings []models.Booking
}

func (s memorySource) AvailableRooms(_ context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error) {
	rng, err := policy.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	var ofType []models.Room
	for _, r := range s.rooms {
		if r.RoomTypeID == roomTypeID {
			ofType = append(ofType, r)
		}
	}
	return policy.FilterAvailable(ofType, s.bookings, rng, excludeBookingID), nil
}

func uintPtr(v uint) *uint { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func room(id uint, number string) models.Room {
	return models.Room{ID: id, RoomNumber: number, RoomTypeID: 2, IsActive: true}
}

// booking42 is pending with no room, type 2, staying 2024-06-01 to 2024-06-05.
func booking42() models.Booking {
	return models.Booking{
		ID:           42,
		RoomTypeID:   2,
		Status:       models.StatusPending,
		CheckInDate:  datatypes.Date(day("2024-06-01")),
		CheckOutDate: datatypes.Date(day("2024-06-05")),
		TotalPrice:   480,
	}
}

func withRoom(b models.Booking, r models.Room) models.Booking {
	b.RoomID = uintPtr(r.ID)
	b.Room = &r
	return b
}
