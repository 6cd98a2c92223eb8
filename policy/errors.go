package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the booking workflow can surface.
type ErrorKind string

const (
	KindMissingRoomAssignment ErrorKind = "MissingRoomAssignment"
	KindInvalidRoomSelection  ErrorKind = "InvalidRoomSelection"
	KindInvalidTransition     ErrorKind = "InvalidTransition"
	KindInvalidDateRange      ErrorKind = "InvalidDateRange"
	KindFetchError            ErrorKind = "FetchError"
	KindUpdateFailed          ErrorKind = "UpdateFailed"
	KindConflictingAssignment ErrorKind = "ConflictingAssignment"
	KindSubmitInProgress      ErrorKind = "SubmitInProgress"
)

// Code is the "error.<kind>" key used in JSON error envelopes.
func (k ErrorKind) Code() string {
	if k == "" {
		return "error.internal"
	}
	s := string(k)
	return "error." + strings.ToLower(s[:1]) + s[1:]
}

// KindFromCode reverses Code. Unknown codes yield "".
func KindFromCode(code string) ErrorKind {
	for _, k := range []ErrorKind{
		KindMissingRoomAssignment,
		KindInvalidRoomSelection,
		KindInvalidTransition,
		KindInvalidDateRange,
		KindFetchError,
		KindUpdateFailed,
		KindConflictingAssignment,
		KindSubmitInProgress,
	} {
		if k.Code() == code {
			return k
		}
	}
	return ""
}

// Error is a classified workflow failure. Two Errors match under errors.Is
// when their kinds are equal.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingRoomAssignment = &Error{Kind: KindMissingRoomAssignment, Message: "a room must be assigned for this status"}
	ErrInvalidRoomSelection  = &Error{Kind: KindInvalidRoomSelection, Message: "selected room is not available for this booking"}
	ErrInvalidTransition     = &Error{Kind: KindInvalidTransition, Message: "status change is not allowed"}
	ErrInvalidDateRange      = &Error{Kind: KindInvalidDateRange, Message: "check-in must be before check-out"}
	ErrFetchFailed           = &Error{Kind: KindFetchError, Message: "could not load rooms"}
	ErrUpdateFailed          = &Error{Kind: KindUpdateFailed, Message: "could not update booking"}
	ErrConflictingAssignment = &Error{Kind: KindConflictingAssignment, Message: "room is already assigned to an overlapping booking"}
	ErrSubmitInProgress      = &Error{Kind: KindSubmitInProgress, Message: "an update for this booking is already in progress"}
)

// KindOf extracts the kind of err, or "" when err is not classified.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
