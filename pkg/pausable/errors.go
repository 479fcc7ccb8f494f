package pausable

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when a registry mutator is not called by the owner.
	ErrUnauthorized = errors.New("pausable: method must be called from owner")
	// ErrCorrupted indicates the persisted registry could not be decoded.
	ErrCorrupted = errors.New("pausable: invalid format for paused keys")
	// ErrMethodPaused is matched by a GuardError of ForbidWhilePaused polarity.
	ErrMethodPaused = errors.New("pausable: method is paused")
	// ErrMethodNotPaused is matched by a GuardError of RequireWhilePaused polarity.
	ErrMethodNotPaused = errors.New("pausable: method must be paused")
	// ErrMissingLabel is returned by Check when GuardOptions carries no label.
	ErrMissingLabel = errors.New("pausable: guard label is required")
)

// GuardError is the abort raised by a guarded operation whose pause condition does not hold.
type GuardError struct {
	Label    string
	Polarity Polarity
}

func (e *GuardError) Error() string {
	return "Pausable: " + e.Polarity.Message()
}

func (e *GuardError) Is(target error) bool {
	if e.Polarity == RequireWhilePaused {
		return target == ErrMethodNotPaused
	}
	return target == ErrMethodPaused
}

type UnauthorizedError struct {
	Caller Identity
	Owner  Identity // empty when no owner is recorded
}

func (e *UnauthorizedError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("%s: caller %q, no owner recorded", ErrUnauthorized, e.Caller)
	}
	return fmt.Sprintf("%s: caller %q", ErrUnauthorized, e.Caller)
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

type CorruptedError struct {
	Key   string
	Cause error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("%s at %q: %v", ErrCorrupted, e.Key, e.Cause)
}

func (e *CorruptedError) Unwrap() []error { return []error{ErrCorrupted, e.Cause} }

// Abort panics with err when it is not nil. The host turns the panic into a
// failed call and discards every effect of that call.
func Abort(err error) {
	if err != nil {
		panic(err)
	}
}
