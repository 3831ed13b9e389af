package sunglide

import (
	"errors"

	"github.com/thurmanmarka/sunglide/internal/solver"
)

var (
	// ErrNoRiseNoSet is matched by errors.Is when the Sun does not rise or
	// set on that date at that location. The concrete error is a
	// *NoEventError.
	ErrNoRiseNoSet = solver.ErrNoEvent

	// ErrNonConvergence is matched by errors.Is when the iteration for an
	// event fails. The concrete error is a *NonConvergenceError.
	ErrNonConvergence = solver.ErrNonConvergence

	// ErrEventOffDay is matched by errors.Is when the UT day has no
	// rise, transit or set because the nearest one falls on the adjacent
	// day. The concrete error is an *OffDayError.
	ErrEventOffDay = solver.ErrOffDay

	// ErrInvalidLocation is returned for non-finite or out of range
	// coordinates.
	ErrInvalidLocation = errors.New("invalid location")
)

type (
	// NoEventError reports polar day (AlwaysAbove) or polar night.
	NoEventError = solver.NoEventError

	// NonConvergenceError reports which event failed to converge.
	NonConvergenceError = solver.NonConvergenceError

	// OffDayError reports an event that falls on the adjacent UT day.
	OffDayError = solver.OffDayError

	// Event identifies rise, transit or set.
	Event = solver.Event
)

const (
	Rise    = solver.Rise
	Transit = solver.Transit
	Set     = solver.Set
)
