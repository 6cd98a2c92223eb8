// Package bookingadmin holds the admin edit workflow for one booking: room
// availability, the assignment form and the combined update submit.
package bookingadmin

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"hotel-booking/models"
	"hotel-booking/policy"
	"hotel-booking/utils"
)

// RoomSource answers the available-rooms query. bookingapi.Client and
// services.BookingService both satisfy it.
type RoomSource interface {
	AvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error)
}

type Resolver struct {
	source RoomSource
	log    logrus.FieldLogger
}

func NewResolver(source RoomSource, log logrus.FieldLogger) *Resolver {
	if log == nil {
		log = utils.DiscardLogger()
	}
	return &Resolver{source: source, log: log}
}

// FindAvailable returns the active rooms of roomTypeID free for
// [checkIn, checkOut). The slice is never nil; on failure it is empty and the
// error is a *policy.Error.
func (r *Resolver) FindAvailable(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID *uint) ([]models.Room, error) {
	rng, err := policy.NewDateRange(checkIn, checkOut)
	if err != nil {
		return []models.Room{}, err
	}
	if roomTypeID == 0 {
		return []models.Room{}, policy.NewError(policy.KindFetchError, "room type is required", nil)
	}

	rooms, err := r.source.AvailableRooms(ctx, roomTypeID, rng.Start, rng.End, excludeBookingID)
	if err != nil {
		r.log.WithError(err).WithField("room_type_id", roomTypeID).Warn("available rooms query failed")
		return []models.Room{}, policy.NewError(policy.KindFetchError, "could not load rooms", err)
	}

	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsActive && room.RoomTypeID == roomTypeID {
			out = append(out, room)
		}
	}
	return out, nil
}

// ForBooking lists candidates for b, excluding b's own reservation.
func (r *Resolver) ForBooking(ctx context.Context, b models.Booking) ([]models.Room, error) {
	id := b.ID
	return r.FindAvailable(ctx, b.RoomTypeID, b.CheckIn(), b.CheckOut(), &id)
}
