package models

import "strings"

// BookingStatus is the lifecycle state of a reservation.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked-in"
	StatusCheckedOut BookingStatus = "checked-out"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusCompleted,
	StatusCancelled,
}

var statusLabels = map[BookingStatus]string{
	StatusPending:    "Pending",
	StatusConfirmed:  "Confirmed",
	StatusCheckedIn:  "Checked-In",
	StatusCheckedOut: "Checked-Out",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

func (s BookingStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the display form used in change summaries.
func (s BookingStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseBookingStatus accepts the wire value as well as the spellings older
// clients send ("Checked-In", "checked in", "CheckedIn").
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case "checkedin":
		norm = string(StatusCheckedIn)
	case "checkedout":
		norm = string(StatusCheckedOut)
	case "canceled":
		norm = string(StatusCancelled)
	}
	s := BookingStatus(norm)
	return s, s.Valid()
}
