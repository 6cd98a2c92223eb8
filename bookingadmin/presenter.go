package bookingadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotel-booking/models"
	"hotel-booking/policy"
)

const DefaultSearchDelay = 300 * time.Millisecond

var ErrNoRoomToClear = errors.New("booking has no room to unassign")

// VisibleFor reports whether the room picker is shown for status.
func VisibleFor(status models.BookingStatus) bool {
	return policy.RequiresRoom(status)
}

// FilterCandidates keeps rooms whose number or type name contains term,
// ignoring case. An empty term keeps everything.
func FilterCandidates(rooms []models.Room, term string) []models.Room {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if term == "" ||
			strings.Contains(strings.ToLower(r.RoomNumber), term) ||
			strings.Contains(strings.ToLower(r.TypeName()), term) {
			out = append(out, r)
		}
	}
	return out
}

// Presenter holds the room assignment form for one booking. It only ever
// mutates its FormState; the booking itself is read-only.
type Presenter struct {
	mu         sync.Mutex
	booking    models.Booking
	candidates []models.Room
	state      FormState
	term       string
	debounce   *Debouncer
}

type PresenterOption func(*Presenter)

func WithSearchDelay(d time.Duration) PresenterOption {
	return func(p *Presenter) { p.debounce = NewDebouncer(d) }
}

// NewPresenter opens an edit session seeded from b.
func NewPresenter(b models.Booking, candidates []models.Room, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		booking:    b,
		candidates: candidates,
		state:      policy.StateOf(b),
		debounce:   NewDebouncer(DefaultSearchDelay),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Presenter) Booking() models.Booking {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.booking
}

func (p *Presenter) State() FormState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Presenter) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return VisibleFor(p.state.Status)
}

// StatusOptions lists the statuses the booking may be moved to, current first.
func (p *Presenter) StatusOptions() []models.BookingStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return policy.NextStatuses(p.booking.Status)
}

func (p *Presenter) SetStatus(s models.BookingStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !policy.CanTransition(p.booking.Status, s) {
		return policy.NewError(policy.KindInvalidTransition,
			fmt.Sprintf("cannot move booking from %s to %s", p.booking.Status.Label(), s.Label()), nil)
	}
	p.state.Status = s
	return nil
}

func (p *Presenter) SetPaid(paid bool) {
	p.mu.Lock()
	p.state.IsPaid = paid
	p.mu.Unlock()
}

// SetCandidates replaces the offered rooms, e.g. after a resolver refresh.
func (p *Presenter) SetCandidates(rooms []models.Room) {
	p.mu.Lock()
	p.candidates = rooms
	p.mu.Unlock()
}

// Candidates returns the offered rooms narrowed by the current search term.
func (p *Presenter) Candidates() []models.Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FilterCandidates(p.candidates, p.term)
}

// AllCandidates returns the unfiltered offered rooms, as Validate expects them.
func (p *Presenter) AllCandidates() []models.Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Room, len(p.candidates))
	copy(out, p.candidates)
	return out
}

// PickRoom selects room id, which must be the booking's own room or one of
// the offered candidates.
func (p *Presenter) PickRoom(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur := p.booking.CurrentRoomID(); cur != nil && *cur == id {
		p.keepCurrentLocked()
		return nil
	}
	for _, r := range p.candidates {
		if r.ID == id {
			roomID := r.ID
			p.state.RoomID = &roomID
			p.state.RoomNumber = r.RoomNumber
			return nil
		}
	}
	return policy.ErrInvalidRoomSelection
}

// PickRoomNumber selects a room by its display number.
func (p *Presenter) PickRoomNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return policy.ErrInvalidRoomSelection
	}

	p.mu.Lock()
	var id uint
	if cur := p.booking.CurrentRoomID(); cur != nil && strings.EqualFold(p.booking.CurrentRoomNumber(), number) {
		id = *cur
	}
	for _, r := range p.candidates {
		if id == 0 && strings.EqualFold(r.RoomNumber, number) {
			id = r.ID
		}
	}
	p.mu.Unlock()

	if id == 0 {
		return policy.ErrInvalidRoomSelection
	}
	return p.PickRoom(id)
}

// CanClear reports whether unassigning is offered, which is only when the
// booking already holds a room.
func (p *Presenter) CanClear() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.booking.CurrentRoomID() != nil
}

func (p *Presenter) ClearRoom() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.booking.CurrentRoomID() == nil {
		return ErrNoRoomToClear
	}
	p.state.RoomID = nil
	p.state.RoomNumber = ""
	return nil
}

// KeepCurrent restores the booking's own room selection.
func (p *Presenter) KeepCurrent() {
	p.mu.Lock()
	p.keepCurrentLocked()
	p.mu.Unlock()
}

func (p *Presenter) keepCurrentLocked() {
	p.state.RoomID = p.booking.CurrentRoomID()
	p.state.RoomNumber = p.booking.CurrentRoomNumber()
}

// Search applies term after the typing pause and hands the filtered rooms to
// onResult. Each call supersedes the previous pending one.
func (p *Presenter) Search(ctx context.Context, term string, onResult func([]models.Room)) {
	p.debounce.Call(ctx, func() {
		p.mu.Lock()
		p.term = term
		p.mu.Unlock()
		if onResult != nil {
			onResult(p.Candidates())
		}
	})
}

// Close drops any pending search.
func (p *Presenter) Close() {
	p.debounce.Stop()
}
