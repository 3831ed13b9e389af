// Package sunglide computes sunrise, solar transit and sunset for a given
// location and date from a rigorous solar ephemeris: the VSOP87 Earth
// series, IAU 1980 nutation, FK5 and aberration corrections, and the
// interpolate-and-iterate method of Meeus, Astronomical Algorithms, ch. 15.
//
// Two flavours of API are provided:
//   - Fractions and SunriseSet return event times as fractions of the UT day.
//   - RiseSetFor, SlideIntoSunset, TwilightFor, GoldenHourFor and
//     BlueHourFor return wall-clock times in the location of the date passed
//     in, for that local calendar date.
package sunglide

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/soniakeys/unit"
	"github.com/thurmanmarka/sunglide/internal/solver"
	"github.com/thurmanmarka/sunglide/internal/sun"
	"github.com/thurmanmarka/sunglide/internal/timeutil"
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Validate reports ErrInvalidLocation for non-finite or out of range
// coordinates.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.Abs(c.Lat) > 90:
		return fmt.Errorf("%w: latitude %v", ErrInvalidLocation, c.Lat)
	case math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || math.Abs(c.Lon) > 180:
		return fmt.Errorf("%w: longitude %v", ErrInvalidLocation, c.Lon)
	}
	return nil
}

// RiseSet holds rise and set times of the Sun on a given date.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// DayFractions holds event times as fractions of the UT day, in [0, 1).
type DayFractions struct {
	Rise    float64
	Transit float64
	Set     float64
}

// Equatorial holds apparent geocentric coordinates in degrees.
type Equatorial struct {
	RA  float64 // right ascension, [0, 360)
	Dec float64 // declination, [-90, 90]
}

// SunriseSet returns sunrise and sunset on the UT calendar date of date, for
// an observer at lat, lon (degrees, east positive), as fractions of the day.
func SunriseSet(lat, lon float64, date time.Time) (rise, set float64, err error) {
	f, err := Fractions(context.Background(), Coordinates{Lat: lat, Lon: lon}, date)
	if err != nil {
		return 0, 0, err
	}
	return f.Rise, f.Set, nil
}

// Fractions returns rise, transit and set on the calendar date of date
// (taken in date's own location, and treated as a UT date) as fractions of
// the UT day. Debug output from the iteration goes to the logger carried by
// ctx.
//
// Near a day boundary the UT day may have no rise or no set at all, the
// neighbouring days' events falling just before 0h and just after 24h. The
// error then matches ErrEventOffDay.
func Fractions(ctx context.Context, loc Coordinates, date time.Time, opts ...Option) (DayFractions, error) {
	if err := loc.Validate(); err != nil {
		return DayFractions{}, err
	}
	cfg := newConfig(opts)
	year, month, day := date.Date()
	t, err := solveDay(ctx, loc, year, month, day, cfg)
	if err != nil {
		return DayFractions{}, err
	}
	if err := t.OffDay(); err != nil {
		return DayFractions{}, err
	}
	return DayFractions(t), nil
}

// solveDay runs the solver for the UT date year-month-day.
func solveDay(ctx context.Context, loc Coordinates, year int, month time.Month, day int, cfg config) (solver.Times, error) {
	jd := timeutil.JulianDay0h(year, month, day)
	p := solver.Params{
		Lat:           unit.AngleFromDeg(loc.Lat),
		Lon:           -unit.AngleFromDeg(loc.Lon),
		Theta0:        timeutil.Sidereal0h(jd),
		H0:            unit.AngleFromDeg(cfg.altitude),
		DeltaT:        cfg.deltaT,
		Tolerance:     cfg.tolerance,
		MaxIterations: cfg.maxIterations,
		Logger: ctxlog.Logger(ctx).With(
			"date", fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			"altitude", cfg.altitude),
	}
	for i := range 3 {
		eq := sun.ApparentEquatorial(jd + float64(i-1))
		p.Alpha[i] = unit.Angle(eq.RA)
		p.Delta[i] = eq.Dec
	}
	return solver.Solve(p)
}

// RiseSetFor returns sunrise and sunset for the location on the local
// calendar date of date. The date's time zone is used for the returned
// times. A local date without a rise or a set, when the events of the days
// around it fall just either side of it, fails with ErrEventOffDay.
func RiseSetFor(loc Coordinates, date time.Time, opts ...Option) (RiseSet, error) {
	ev, err := localEvents(context.Background(), loc, date, newConfig(opts))
	if err != nil {
		return RiseSet{}, err
	}
	return RiseSet{Rise: ev.rise, Set: ev.set}, nil
}

// SlideIntoSunset is the convenience helper: it returns sunrise and sunset
// for the location and date with the standard altitude.
func SlideIntoSunset(loc Coordinates, date time.Time) (RiseSet, error) {
	return RiseSetFor(loc, date)
}

// DaylightHours calculates the duration of daylight (time between sunrise and
// sunset) at the given location and date, in hours.
//
// Under polar day it returns 24 and an error matching ErrNoRiseNoSet; under
// polar night it returns 0 and the same error. Use errors.As with
// *NoEventError to tell them apart.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := SlideIntoSunset(loc, date)
	if err != nil {
		var ne *NoEventError
		if errors.As(err, &ne) && ne.AlwaysAbove {
			return 24, err
		}
		return 0, err
	}
	return rs.Set.Sub(rs.Rise).Hours(), nil
}

// SolarNoon returns the time of the Sun's upper transit on the local
// calendar date of date. Under polar day or night it fails like RiseSetFor.
func SolarNoon(loc Coordinates, date time.Time, opts ...Option) (time.Time, error) {
	ev, err := localEvents(context.Background(), loc, date, newConfig(opts))
	if err != nil {
		return time.Time{}, err
	}
	return ev.transit, nil
}

// SunPosition returns the apparent right ascension and declination of the
// Sun at t, in degrees. t is interpreted as UT and the default ΔT applied.
func SunPosition(t time.Time) Equatorial {
	eq := sun.ApparentEquatorial(timeutil.JulianDay(t) + solver.DefaultDeltaT/86400)
	return Equatorial{
		RA:  unit.Angle(eq.RA).Deg(),
		Dec: eq.Dec.Deg(),
	}
}

// FormatFraction formats a fraction of a day as hh:mm:ss, rounded to the
// nearest second.
func FormatFraction(f float64) string {
	return timeutil.FormatFraction(f)
}

type localDay struct {
	rise, transit, set time.Time
}

// localEvents computes the events falling on the local calendar date of
// date. An event is taken from the UT day before or after when that is where
// the local date's occurrence lies. If the local date has none, the error is
// an *OffDayError whose Fraction places the nearest one relative to local
// midnight.
func localEvents(ctx context.Context, loc Coordinates, date time.Time, cfg config) (localDay, error) {
	if err := loc.Validate(); err != nil {
		return localDay{}, err
	}
	tz := date.Location()
	year, month, day := date.Date()
	requested := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	midnight := time.Date(year, month, day, 0, 0, 0, 0, tz)

	days := map[int]solver.Times{}
	solveAt := func(offset int) (solver.Times, error) {
		if t, ok := days[offset]; ok {
			return t, nil
		}
		d := requested.AddDate(0, 0, offset)
		t, err := solveDay(ctx, loc, d.Year(), d.Month(), d.Day(), cfg)
		if err != nil {
			return solver.Times{}, err
		}
		days[offset] = t
		return t, nil
	}

	base, err := solveAt(0)
	if err != nil {
		return localDay{}, err
	}
	pick := func(ev Event, frac func(solver.Times) float64) (time.Time, error) {
		at := func(offset int, t solver.Times) time.Time {
			d := requested.AddDate(0, 0, offset)
			return timeutil.FractionToTime(d.Year(), d.Month(), d.Day(), frac(t)).In(tz)
		}
		first := at(0, base)
		offset := compareDate(first, year, month, day)
		if offset == 0 {
			return first, nil
		}
		if t, err := solveAt(offset); err == nil {
			if cand := at(offset, t); compareDate(cand, year, month, day) == 0 {
				return cand, nil
			}
		}
		return time.Time{}, &OffDayError{Event: ev, Fraction: first.Sub(midnight).Hours() / 24}
	}

	var out localDay
	for _, e := range []struct {
		ev   Event
		frac func(solver.Times) float64
		dst  *time.Time
	}{
		{Rise, func(t solver.Times) float64 { return t.Rise }, &out.rise},
		{Transit, func(t solver.Times) float64 { return t.Transit }, &out.transit},
		{Set, func(t solver.Times) float64 { return t.Set }, &out.set},
	} {
		if *e.dst, err = pick(e.ev, e.frac); err != nil {
			return localDay{}, fmt.Errorf("%s: %w", date.Format(time.DateOnly), err)
		}
	}
	return out, nil
}

// compareDate returns the number of days (-1, 0 or 1) to move the UT date
// so that an event at t lands on year-month-day in t's location.
func compareDate(t time.Time, year int, month time.Month, day int) int {
	y, m, d := t.Date()
	got := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	want := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	switch {
	case got.Before(want):
		return 1
	case got.After(want):
		return -1
	}
	return 0
}
