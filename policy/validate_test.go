package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel-booking/models"
	"hotel-booking/policy"
)

func uintPtr(v uint) *uint { return &v }

func pendingBooking() models.Booking {
	return models.Booking{ID: 42, RoomTypeID: 3, Status: models.StatusPending}
}

func TestRequiresRoom(t *testing.T) {
	want := map[models.BookingStatus]bool{
		models.StatusPending:    false,
		models.StatusConfirmed:  true,
		models.StatusCheckedIn:  true,
		models.StatusCheckedOut: false,
		models.StatusCompleted:  false,
		models.StatusCancelled:  false,
	}
	for _, s := range models.AllStatuses {
		assert.Equal(t, want[s], policy.RequiresRoom(s), string(s))
	}
}

func TestValidate_MissingRoomAssignment(t *testing.T) {
	for _, s := range []models.BookingStatus{models.StatusConfirmed, models.StatusCheckedIn} {
		t.Run(string(s), func(t *testing.T) {
			err := policy.Validate(pendingBooking(), policy.State{Status: s}, []models.Room{{ID: 101}})
			assert.ErrorIs(t, err, policy.ErrMissingRoomAssignment)
			assert.Equal(t, policy.KindMissingRoomAssignment, policy.KindOf(err))
		})
	}
}

func TestValidate_RoomOptionalStatuses(t *testing.T) {
	candidates := []models.Room{{ID: 101}}
	for _, s := range []models.BookingStatus{
		models.StatusPending, models.StatusCheckedOut, models.StatusCompleted, models.StatusCancelled,
	} {
		t.Run(string(s), func(t *testing.T) {
			assert.NoError(t, policy.Validate(pendingBooking(), policy.State{Status: s}, candidates))
			assert.NoError(t, policy.Validate(pendingBooking(), policy.State{Status: s, RoomID: uintPtr(101)}, candidates))
		})
	}
}

func TestValidate_InvalidRoomSelection(t *testing.T) {
	current := pendingBooking()
	desired := policy.State{Status: models.StatusConfirmed, RoomID: uintPtr(999)}

	err := policy.Validate(current, desired, []models.Room{{ID: 101}, {ID: 102}})
	assert.ErrorIs(t, err, policy.ErrInvalidRoomSelection)

	err = policy.Validate(current, desired, nil)
	assert.ErrorIs(t, err, policy.ErrInvalidRoomSelection)
}

func TestValidate_KeepsCurrentRoomEvenWhenNotCandidate(t *testing.T) {
	current := models.Booking{
		ID:     42,
		Status: models.StatusConfirmed,
		RoomID: uintPtr(7),
		Room:   &models.Room{ID: 7, RoomNumber: "007"},
	}
	desired := policy.State{Status: models.StatusCheckedIn, RoomID: uintPtr(7)}

	assert.NoError(t, policy.Validate(current, desired, nil))
}

func TestValidate_AcceptsCandidate(t *testing.T) {
	desired := policy.State{Status: models.StatusConfirmed, RoomID: uintPtr(101), IsPaid: true}
	assert.NoError(t, policy.Validate(pendingBooking(), desired, []models.Room{{ID: 101}}))
}

func TestErrorKindCode(t *testing.T) {
	assert.Equal(t, "error.missingRoomAssignment", policy.KindMissingRoomAssignment.Code())
	assert.Equal(t, "error.conflictingAssignment", policy.KindConflictingAssignment.Code())
	assert.Equal(t, policy.KindConflictingAssignment, policy.KindFromCode("error.conflictingAssignment"))
	assert.Equal(t, policy.ErrorKind(""), policy.KindFromCode("error.somethingElse"))
}
