package bookingadmin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"hotel-booking/models"
	"hotel-booking/policy"
	"hotel-booking/utils"
)

// FormState is the proposed next value of a booking being edited.
type FormState = policy.State

// BookingUpdater sends one partial update to the booking store.
type BookingUpdater interface {
	UpdateBooking(ctx context.Context, id uint, fields map[string]interface{}) (*models.Booking, error)
}

// Outcome is the result of one Submit. Submit never returns an error; failures
// are reported through Kind, Message and Err.
type Outcome struct {
	OK       bool
	Changes  []policy.Change
	Message  string
	Kind     policy.ErrorKind
	Rejected bool // the store answered and refused the update
	Err      error
	Booking  *models.Booking
}

func failed(err error) Outcome {
	var pe *policy.Error
	if errors.As(err, &pe) {
		return Outcome{Kind: pe.Kind, Message: pe.Message, Err: err}
	}
	return Outcome{Kind: policy.KindUpdateFailed, Message: err.Error(), Err: err}
}

type Coordinator struct {
	store    BookingUpdater
	resolver *Resolver
	log      logrus.FieldLogger

	mu       sync.Mutex
	inFlight map[uint]struct{}
}

type CoordinatorOption func(*Coordinator)

// WithRevalidation re-queries availability before submitting a room change.
func WithRevalidation(r *Resolver) CoordinatorOption {
	return func(c *Coordinator) { c.resolver = r }
}

// WithCoordinatorLogger sets the logger; nil keeps the discard logger.
func WithCoordinatorLogger(log logrus.FieldLogger) CoordinatorOption {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

func NewCoordinator(store BookingUpdater, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:    store,
		log:      utils.DiscardLogger(),
		inFlight: make(map[uint]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates desired against current, then sends the changed fields as
// one update. Invalid input and empty diffs never reach the store.
func (c *Coordinator) Submit(ctx context.Context, current models.Booking, desired FormState, candidates []models.Room) Outcome {
	if err := policy.Validate(current, desired, candidates); err != nil {
		return failed(err)
	}
	if !policy.CanTransition(current.Status, desired.Status) {
		return failed(policy.NewError(policy.KindInvalidTransition,
			fmt.Sprintf("cannot move booking from %s to %s", current.Status.Label(), desired.Status.Label()), nil))
	}

	changes := policy.Diff(current, desired)
	if len(changes) == 0 {
		return Outcome{OK: true, Changes: []policy.Change{}, Message: "No changes"}
	}

	if !c.acquire(current.ID) {
		return failed(policy.ErrSubmitInProgress)
	}
	defer c.release(current.ID)

	entry := c.log.WithField("booking_id", current.ID)

	if err := c.revalidate(ctx, current, desired, changes); err != nil {
		entry.WithError(err).Info("room no longer available")
		out := failed(err)
		out.Changes = changes
		return out
	}

	updated, err := c.store.UpdateBooking(ctx, current.ID, UpdateFields(changes, desired))
	if err != nil {
		out := classifyUpdateError(err)
		out.Changes = changes
		entry.WithError(err).WithField("kind", out.Kind).Warn("booking update failed")
		return out
	}

	entry.WithField("changes", len(changes)).Info("booking updated")
	return Outcome{OK: true, Changes: changes, Message: "Booking updated", Booking: updated}
}

// UpdateFields builds the request body from the changed fields only. A
// cleared room is sent as null.
func UpdateFields(changes []policy.Change, desired FormState) map[string]interface{} {
	fields := make(map[string]interface{}, len(changes))
	for _, ch := range changes {
		switch ch.Field {
		case policy.FieldStatus:
			fields["status"] = string(desired.Status)
		case policy.FieldRoom:
			if desired.RoomID == nil {
				fields["room_id"] = nil
			} else {
				fields["room_id"] = *desired.RoomID
			}
		case policy.FieldPayment:
			fields["is_paid"] = desired.IsPaid
		}
	}
	return fields
}

func (c *Coordinator) revalidate(ctx context.Context, current models.Booking, desired FormState, changes []policy.Change) error {
	if c.resolver == nil || desired.RoomID == nil {
		return nil
	}
	roomChanged := false
	for _, ch := range changes {
		if ch.Field == policy.FieldRoom {
			roomChanged = true
		}
	}
	if !roomChanged {
		return nil
	}

	fresh, err := c.resolver.ForBooking(ctx, current)
	if err != nil {
		return err
	}
	for _, r := range fresh {
		if r.ID == *desired.RoomID {
			return nil
		}
	}
	return policy.ErrInvalidRoomSelection
}

func classifyUpdateError(err error) Outcome {
	if errors.Is(err, policy.ErrConflictingAssignment) {
		return Outcome{
			Kind:     policy.KindConflictingAssignment,
			Message:  messageOf(err, policy.ErrConflictingAssignment.Message),
			Rejected: true,
			Err:      err,
		}
	}

	var rejection interface{ Rejected() bool }
	if errors.As(err, &rejection) && rejection.Rejected() {
		return Outcome{Kind: policy.KindUpdateFailed, Message: messageOf(err, err.Error()), Rejected: true, Err: err}
	}
	return Outcome{Kind: policy.KindUpdateFailed, Message: policy.ErrUpdateFailed.Message, Err: err}
}

// messageOf prefers the message the store attached to a classified error.
func messageOf(err error, fallback string) string {
	var pe *policy.Error
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return fallback
}

func (c *Coordinator) acquire(id uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[id]; busy {
		return false
	}
	c.inFlight[id] = struct{}{}
	return true
}

func (c *Coordinator) release(id uint) {
	c.mu.Lock()
	delete(c.inFlight, id)
	c.mu.Unlock()
}
