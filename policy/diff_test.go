package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking/models"
	"hotel-booking/policy"
)

func TestDiff_NoChanges(t *testing.T) {
	bookings := []models.Booking{
		pendingBooking(),
		{ID: 1, Status: models.StatusConfirmed, RoomID: uintPtr(5), Room: &models.Room{ID: 5, RoomNumber: "205"}, IsPaid: true},
		{ID: 2, Status: models.StatusCancelled, RoomID: uintPtr(5)},
	}
	for _, b := range bookings {
		assert.Empty(t, policy.Diff(b, policy.StateOf(b)))
	}
}

func TestDiff_PendingToConfirmedWithRoom(t *testing.T) {
	changes := policy.Diff(pendingBooking(), policy.State{
		Status:     models.StatusConfirmed,
		RoomID:     uintPtr(101),
		RoomNumber: "101",
	})

	require.Len(t, changes, 2)
	assert.Equal(t, policy.FieldStatus, changes[0].Field)
	assert.Equal(t, "Status: Pending → Confirmed", changes[0].Description)
	assert.Equal(t, policy.FieldRoom, changes[1].Field)
	assert.Equal(t, "Room assigned: 101", changes[1].Description)
}

func TestDiff_OrderAndDescriptions(t *testing.T) {
	current := models.Booking{
		ID:     9,
		Status: models.StatusConfirmed,
		RoomID: uintPtr(5),
		Room:   &models.Room{ID: 5, RoomNumber: "205"},
	}

	changes := policy.Diff(current, policy.State{Status: models.StatusCancelled, IsPaid: true})
	require.Len(t, changes, 3)
	assert.Equal(t, "Status: Confirmed → Cancelled", changes[0].String())
	assert.Equal(t, "Room unassigned (was 205)", changes[1].String())
	assert.Equal(t, "Payment: Unpaid → Paid", changes[2].String())

	changes = policy.Diff(current, policy.State{Status: models.StatusConfirmed, RoomID: uintPtr(6)})
	require.Len(t, changes, 1)
	assert.Equal(t, "Room changed: 205 → #6", changes[0].Description)
}
