package policy

import (
	"fmt"

	"hotel-booking/models"
)

type ChangeField string

const (
	FieldStatus  ChangeField = "status"
	FieldRoom    ChangeField = "room_id"
	FieldPayment ChangeField = "is_paid"
)

// Change describes one field that differs between the stored booking and the
// desired state.
type Change struct {
	Field       ChangeField `json:"field"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Description string      `json:"description"`
}

func (c Change) String() string { return c.Description }

// Diff lists the changed fields in a fixed order: status, room, payment.
func Diff(current models.Booking, desired State) []Change {
	var changes []Change

	if desired.Status != current.Status {
		from, to := current.Status.Label(), desired.Status.Label()
		changes = append(changes, Change{
			Field:       FieldStatus,
			From:        from,
			To:          to,
			Description: fmt.Sprintf("Status: %s → %s", from, to),
		})
	}

	curRoom := current.CurrentRoomID()
	if !sameRoom(curRoom, desired.RoomID) {
		from := roomLabel(curRoom, current.CurrentRoomNumber())
		to := roomLabel(desired.RoomID, desired.RoomNumber)
		var desc string
		switch {
		case curRoom == nil:
			desc = "Room assigned: " + to
		case desired.RoomID == nil:
			desc = fmt.Sprintf("Room unassigned (was %s)", from)
		default:
			desc = fmt.Sprintf("Room changed: %s → %s", from, to)
		}
		changes = append(changes, Change{Field: FieldRoom, From: from, To: to, Description: desc})
	}

	if desired.IsPaid != current.IsPaid {
		from, to := paidLabel(current.IsPaid), paidLabel(desired.IsPaid)
		changes = append(changes, Change{
			Field:       FieldPayment,
			From:        from,
			To:          to,
			Description: fmt.Sprintf("Payment: %s → %s", from, to),
		})
	}

	return changes
}

func roomLabel(id *uint, number string) string {
	if id == nil {
		return ""
	}
	if number != "" {
		return number
	}
	return fmt.Sprintf("#%d", *id)
}

func paidLabel(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Unpaid"
}
