package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"hotel-booking/models"
	"hotel-booking/policy"
)

// BookingPatch is the partial body of PUT /bookings/:id. RoomSet
// distinguishes "room_id": null (clear) from an absent key.
type BookingPatch struct {
	Status  *models.BookingStatus
	RoomSet bool
	RoomID  *uint
	IsPaid  *bool
}

// ParseBookingPatch reads the editable keys from a decoded JSON body.
// Unknown keys are ignored.
func ParseBookingPatch(body map[string]interface{}) (BookingPatch, error) {
	var p BookingPatch

	if raw, ok := body["status"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return p, fmt.Errorf("validation: status must be a string")
		}
		status, valid := models.ParseBookingStatus(s)
		if !valid {
			return p, fmt.Errorf("validation: unknown status %q", s)
		}
		p.Status = &status
	}

	if raw, ok := body["room_id"]; ok {
		p.RoomSet = true
		if raw != nil {
			id, err := toUint(raw)
			if err != nil {
				return p, fmt.Errorf("validation: room_id: %w", err)
			}
			if id != 0 {
				p.RoomID = &id
			}
		}
	}

	if raw, ok := body["is_paid"]; ok && raw != nil {
		b, ok := raw.(bool)
		if !ok {
			return p, fmt.Errorf("validation: is_paid must be a boolean")
		}
		p.IsPaid = &b
	}

	return p, nil
}

func toUint(v interface{}) (uint, error) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, fmt.Errorf("invalid id %v", n)
		}
		return uint(n), nil
	case json.Number:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		return uint(u), err
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(n), 10, 64)
		return uint(u), err
	case uint:
		return n, nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("invalid id %d", n)
		}
		return uint(n), nil
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}

// PlanUpdate applies patch to current under the booking rules and returns
// the column updates plus the resulting state. An empty map means nothing changes.
func PlanUpdate(current models.Booking, patch BookingPatch) (map[string]interface{}, policy.State, error) {
	next := policy.StateOf(current)
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.RoomSet {
		next.RoomID = patch.RoomID
		next.RoomNumber = ""
	}
	if patch.IsPaid != nil {
		next.IsPaid = *patch.IsPaid
	}

	if !policy.CanTransition(current.Status, next.Status) {
		return nil, next, policy.NewError(policy.KindInvalidTransition,
			fmt.Sprintf("cannot change status from %s to %s", current.Status, next.Status), nil)
	}
	if policy.RequiresRoom(next.Status) && next.RoomID == nil {
		return nil, next, policy.ErrMissingRoomAssignment
	}

	updates := make(map[string]interface{})
	for _, ch := range policy.Diff(current, next) {
		switch ch.Field {
		case policy.FieldStatus:
			updates["status"] = next.Status
		case policy.FieldRoom:
			if next.RoomID == nil {
				updates["room_id"] = nil
			} else {
				updates["room_id"] = *next.RoomID
			}
		case policy.FieldPayment:
			updates["is_paid"] = next.IsPaid
		}
	}
	return updates, next, nil
}
