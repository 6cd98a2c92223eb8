package policy

import "hotel-booking/models"

// RequiresRoom reports whether a booking in status s must hold a physical room.
func RequiresRoom(s models.BookingStatus) bool {
	return s == models.StatusConfirmed || s == models.StatusCheckedIn
}

var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusCheckedIn, models.StatusCancelled, models.StatusPending},
	models.StatusCheckedIn:  {models.StatusCheckedOut},
	models.StatusCheckedOut: {models.StatusCompleted},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to another.
// Keeping the current status is always allowed.
func CanTransition(from, to models.BookingStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the current status followed by every reachable one.
func NextStatuses(from models.BookingStatus) []models.BookingStatus {
	out := []models.BookingStatus{from}
	return append(out, transitions[from]...)
}

// IsTerminal reports whether no further status change is possible.
func IsTerminal(s models.BookingStatus) bool {
	next, ok := transitions[s]
	return !ok || len(next) == 0
}
