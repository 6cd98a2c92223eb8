package policy

import (
	"time"

	"hotel-booking/models"
)

// CalendarDate drops the time of day, keeping t's own year/month/day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open [Start, End) span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{Start: CalendarDate(checkIn), End: CalendarDate(checkOut)}
	if !r.Start.Before(r.End) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// Overlaps reports whether the two ranges share at least one night. A stay
// ending on day X does not overlap one starting on day X.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// RangeOf returns the stay of b, without validating it.
func RangeOf(b models.Booking) DateRange {
	return DateRange{Start: CalendarDate(b.CheckIn()), End: CalendarDate(b.CheckOut())}
}

// Blocks reports whether b occupies its room during r. excludeID is the
// booking being edited and never blocks.
func Blocks(b models.Booking, r DateRange, excludeID *uint) bool {
	if b.Status == models.StatusCancelled || b.RoomID == nil {
		return false
	}
	if excludeID != nil && b.ID == *excludeID {
		return false
	}
	return RangeOf(b).Overlaps(r)
}

// FilterAvailable keeps the active rooms that no blocking booking holds in r.
func FilterAvailable(rooms []models.Room, bookings []models.Booking, r DateRange, excludeID *uint) []models.Room {
	taken := make(map[uint]struct{})
	for _, b := range bookings {
		if Blocks(b, r, excludeID) {
			taken[*b.RoomID] = struct{}{}
		}
	}

	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !room.IsActive {
			continue
		}
		if _, busy := taken[room.ID]; busy {
			continue
		}
		out = append(out, room)
	}
	return out
}
