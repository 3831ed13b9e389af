package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEvent is matched by every *NoEventError.
	ErrNoEvent = errors.New("sun does not rise or set on this date")

	// ErrNonConvergence is matched by every *NonConvergenceError.
	ErrNonConvergence = errors.New("sunrise/sunset iteration did not converge")

	// ErrOffDay is matched by every *OffDayError.
	ErrOffDay = errors.New("event does not occur on this UT day")
)

// NoEventError reports that the Sun stays on one side of the target
// altitude for the whole day.
type NoEventError struct {
	AlwaysAbove bool
}

func (e *NoEventError) Error() string {
	if e.AlwaysAbove {
		return "sun is always above the horizon"
	}
	return "sun is always below the horizon"
}

// Is reports whether target is ErrNoEvent.
func (e *NoEventError) Is(target error) bool {
	return target == ErrNoEvent
}

// NonConvergenceError reports that the correction for an event did not fall
// below the tolerance within the iteration limit, or became non-finite.
type NonConvergenceError struct {
	Event      Event
	Iterations int
	Delta      float64 // last correction, fraction of a day
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v did not converge after %d iterations (last correction %g)",
		e.Event, e.Iterations, e.Delta)
}

// Is reports whether target is ErrNonConvergence.
func (e *NonConvergenceError) Is(target error) bool {
	return target == ErrNonConvergence
}

// OffDayError reports that the UT day has no event of a kind: the nearest
// one, at Fraction, lies on the previous (Fraction < 0) or next day.
type OffDayError struct {
	Event    Event
	Fraction float64
}

func (e *OffDayError) Error() string {
	day := "next"
	if e.Fraction < 0 {
		day = "previous"
	}
	return fmt.Sprintf("no %v on this UT day, nearest is on the %s day (m = %.5f)", e.Event, day, e.Fraction)
}

// Is reports whether target is ErrOffDay.
func (e *OffDayError) Is(target error) bool {
	return target == ErrOffDay
}
