package bookingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"
)

type ListQuery struct {
	Status   string
	Search   string
	FromDate *time.Time
	Page     int
	Limit    int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.FromDate != nil {
		v.Set("from_date", q.FromDate.Format(utils.DateLayout))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ListBookings: GET /bookings
func (c *Client) ListBookings(ctx context.Context, q ListQuery) (models.BookingPage, error) {
	var page models.BookingPage
	err := c.do(ctx, http.MethodGet, "/bookings", q.values(), nil, &page)
	return page, err
}

// GetBooking: GET /bookings/{id}
func (c *Client) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBooking sends fields as one PUT /bookings/{id}. A nil value clears
// the field on the server.
func (c *Client) UpdateBooking(ctx context.Context, id uint, fields map[string]interface{}) (*models.Booking, error) {
	var b models.Booking
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), nil, fields, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBooking: DELETE /bookings/{id}
func (c *Client) DeleteBooking(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil, nil)
}

// AvailableRooms: GET /bookings/available-rooms
func (c *Client) AvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error) {
	v := url.Values{}
	v.Set("room_type_id", strconv.FormatUint(uint64(roomTypeID), 10))
	v.Set("check_in_date", checkIn.Format(utils.DateLayout))
	v.Set("check_out_date", checkOut.Format(utils.DateLayout))
	if excludeBookingID != nil {
		v.Set("exclude_booking_id", strconv.FormatUint(uint64(*excludeBookingID), 10))
	}

	var resp struct {
		AvailableRooms []models.Room `json:"available_rooms"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings/available-rooms", v, nil, &resp); err != nil {
		return nil, err
	}
	if resp.AvailableRooms == nil {
		resp.AvailableRooms = []models.Room{}
	}
	return resp.AvailableRooms, nil
}

// ListRoomTypes: GET /room-types
func (c *Client) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	err := c.do(ctx, http.MethodGet, "/room-types", nil, nil, &types)
	return types, err
}
