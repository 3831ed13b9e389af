package sunglide

import (
	"context"
	"fmt"
	"time"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	}
	return fmt.Sprintf("TwilightKind(%d)", int(k))
}

// Altitude returns the Sun's altitude in degrees that bounds the twilight.
func (k TwilightKind) Altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6, nil
	case TwilightNautical:
		return -12, nil
	case TwilightAstronomical:
		return -18, nil
	}
	return 0, fmt.Errorf("unknown TwilightKind: %d", k)
}

// ParseTwilightKind maps "civil", "nautical" or "astronomical" to a
// TwilightKind.
func ParseTwilightKind(s string) (TwilightKind, error) {
	for _, k := range []TwilightKind{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown twilight kind %q", s)
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location.
	HasMorning bool
	HasEvening bool
}

// TwilightFor computes twilight times (dawn and dusk) of the given kind for
// a location and local calendar date. The returned RiseSet uses Rise as the
// "dawn" time (upward crossing of the twilight altitude) and Set as the
// "dusk" time (downward crossing).
//
// For example, TwilightCivil returns civil dawn (Rise) and civil dusk (Set)
// where the Sun's altitude crosses -6 degrees.
func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	alt, err := kind.Altitude()
	if err != nil {
		return RiseSet{}, err
	}
	return RiseSetFor(loc, date, WithAltitude(alt))
}

// GoldenHourFor computes the golden hour intervals for the given local
// calendar date and location: the periods when the Sun's center altitude is
// between -4° and +6°.
//
// Morning is the Sun climbing from -4° up to +6°, Evening the Sun descending
// from +6° down to -4°. If the Sun does not cross both altitudes the error
// matches ErrNoRiseNoSet.
func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return phasesBetween(loc, date, -4, 6)
}

// BlueHourFor computes the blue hour intervals for the given local calendar
// date and location: the periods when the Sun's center altitude is between
// -6° and -4°.
func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return phasesBetween(loc, date, -6, -4)
}

func phasesBetween(loc Coordinates, date time.Time, lowAlt, highAlt float64) (DaylightPhases, error) {
	ctx := context.Background()
	low, err := localEvents(ctx, loc, date, newConfig([]Option{WithAltitude(lowAlt)}))
	if err != nil {
		return DaylightPhases{}, err
	}
	high, err := localEvents(ctx, loc, date, newConfig([]Option{WithAltitude(highAlt)}))
	if err != nil {
		return DaylightPhases{}, err
	}

	var phases DaylightPhases
	if high.rise.After(low.rise) {
		phases.Morning = PhaseWindow{Start: low.rise, End: high.rise}
		phases.HasMorning = true
	}
	if low.set.After(high.set) {
		phases.Evening = PhaseWindow{Start: high.set, End: low.set}
		phases.HasEvening = true
	}
	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, fmt.Errorf("%w: no window between %v° and %v°", ErrNoRiseNoSet, lowAlt, highAlt)
	}
	return phases, nil
}
