package policy

import "hotel-booking/models"

// State is the proposed next value of the editable booking fields.
type State struct {
	Status models.BookingStatus
	RoomID *uint
	IsPaid bool

	// RoomNumber labels RoomID in change summaries. Never sent to the store.
	RoomNumber string
}

// StateOf captures the current editable fields of b.
func StateOf(b models.Booking) State {
	return State{
		Status:     b.Status,
		RoomID:     b.CurrentRoomID(),
		IsPaid:     b.IsPaid,
		RoomNumber: b.CurrentRoomNumber(),
	}
}

// Validate checks desired against the room rules. candidates are the rooms
// currently offered for the booking; the booking's own room is always accepted.
// The result is advisory: the booking store repeats these checks.
func Validate(current models.Booking, desired State, candidates []models.Room) error {
	if RequiresRoom(desired.Status) && desired.RoomID == nil {
		return ErrMissingRoomAssignment
	}
	if desired.RoomID == nil {
		return nil
	}
	if cur := current.CurrentRoomID(); cur != nil && *cur == *desired.RoomID {
		return nil
	}
	if !containsRoom(candidates, *desired.RoomID) {
		return ErrInvalidRoomSelection
	}
	return nil
}

func containsRoom(rooms []models.Room, id uint) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}

func sameRoom(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
