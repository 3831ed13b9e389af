// Package solver finds the times of rising, transit and setting of the Sun
// by interpolating its position between three consecutive days and
// iterating on the corrections of Meeus, Astronomical Algorithms, ch. 15.
//
// All angles are in radians. Longitude is measured positively west of
// Greenwich, as in Meeus. Times are fractions of the UT day.
package solver

import (
	"log/slog"
	"math"

	"github.com/soniakeys/unit"
)

// Event identifies one of the three daily events.
type Event int

const (
	Rise Event = iota
	Transit
	Set
)

func (e Event) String() string {
	switch e {
	case Rise:
		return "rise"
	case Transit:
		return "transit"
	case Set:
		return "set"
	default:
		return "unknown event"
	}
}

const (
	// DefaultDeltaT is TT - UT in seconds.
	DefaultDeltaT = 67.0
	// DefaultTolerance is the largest correction, as a day fraction, that
	// ends the iteration.
	DefaultTolerance = 1e-5
	// DefaultMaxIterations bounds the number of corrections per event.
	DefaultMaxIterations = 20

	// siderealRate is the sidereal angle gained per solar day, in degrees.
	siderealRate = 360.985647
)

// Params describes one day's problem. Alpha and Delta hold the apparent
// right ascension and declination at 0h TD on the day before, the day of,
// and the day after the date of interest.
type Params struct {
	Lat    unit.Angle // φ, north positive
	Lon    unit.Angle // L, west positive
	Theta0 unit.Angle // sidereal time at Greenwich at 0h UT
	Alpha  [3]unit.Angle
	Delta  [3]unit.Angle
	H0     unit.Angle // standard altitude of the event
	DeltaT float64    // TT - UT, seconds

	Tolerance     float64 // zero means DefaultTolerance
	MaxIterations int     // zero means DefaultMaxIterations

	// Logger receives per-iteration debug records; nil disables them.
	Logger *slog.Logger
}

// Times holds the event times as fractions of the UT day. A value outside
// [0, 1) is an event of the previous or next UT day: the day itself has no
// event of that kind, and the nearest one is reported unwrapped.
type Times struct {
	Rise, Transit, Set float64
}

// OffDay returns an *OffDayError for the first event that does not fall
// within the UT day, or nil.
func (t Times) OffDay() error {
	for _, e := range []struct {
		ev Event
		m  float64
	}{{Rise, t.Rise}, {Transit, t.Transit}, {Set, t.Set}} {
		if e.m < 0 || e.m >= 1 {
			return &OffDayError{Event: e.ev, Fraction: e.m}
		}
	}
	return nil
}

func (p Params) withDefaults() Params {
	if p.Tolerance <= 0 {
		p.Tolerance = DefaultTolerance
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = DefaultMaxIterations
	}
	return p
}

// Approximate returns the first approximations m0 (transit), m1 (rise) and
// m2 (set). It fails with a *NoEventError when the Sun does not reach the
// altitude H0 on the day.
func Approximate(p Params) (Times, error) {
	sφ, cφ := p.Lat.Sincos()
	sδ, cδ := p.Delta[1].Sincos()
	cosH0 := (p.H0.Sin() - sφ*sδ) / (cφ * cδ)
	if math.IsNaN(cosH0) || cosH0 < -1 || cosH0 > 1 {
		return Times{}, &NoEventError{AlwaysAbove: cosH0 < -1}
	}
	H0 := math.Acos(cosH0) / (2 * math.Pi)
	m0 := float64(p.Alpha[1]+p.Lon-p.Theta0) / (2 * math.Pi)
	return Times{
		Rise:    normalize(m0 - H0),
		Transit: normalize(m0),
		Set:     normalize(m0 + H0),
	}, nil
}

// Refine iterates the correction for event ev starting from the
// approximation m until it is smaller than the tolerance. The result is not
// normalized.
func Refine(p Params, ev Event, m float64) (float64, error) {
	p = p.withDefaults()
	α := unwrap(p.Alpha)
	sφ, cφ := p.Lat.Sincos()

	var Δm float64
	for i := 1; i <= p.MaxIterations; i++ {
		θ := p.Theta0 + unit.AngleFromDeg(siderealRate*m)
		n := m + p.DeltaT/86400
		a := Interpolate(α[0], α[1], α[2], n)
		d := Interpolate(float64(p.Delta[0]), float64(p.Delta[1]), float64(p.Delta[2]), n)
		H := float64(θ-p.Lon) - a

		if ev == Transit {
			Δm = -wrapPi(H) / (2 * math.Pi)
		} else {
			sδ, cδ := math.Sincos(d)
			h := math.Asin(sφ*sδ + cφ*cδ*math.Cos(H))
			Δm = (h - float64(p.H0)) / (2 * math.Pi * cδ * cφ * math.Sin(H))
		}
		if p.Logger != nil {
			p.Logger.Debug("refine", "event", ev, "iteration", i, "m", m, "delta", Δm)
		}
		if math.IsNaN(Δm) || math.IsInf(Δm, 0) {
			return m, &NonConvergenceError{Event: ev, Iterations: i, Delta: Δm}
		}
		m += Δm
		if math.Abs(Δm) < p.Tolerance {
			return m, nil
		}
	}
	return m, &NonConvergenceError{Event: ev, Iterations: p.MaxIterations, Delta: Δm}
}

// Solve computes transit, rise and set for the day described by p.
//
// The iteration started from an approximation close to midnight may settle
// on the crossing of the adjacent day. Solve then restarts it one day over;
// if that also leaves the day, the first result is kept unwrapped (see
// Times).
func Solve(p Params) (Times, error) {
	approx, err := Approximate(p)
	if err != nil {
		return Times{}, err
	}
	var out Times
	for _, e := range []struct {
		ev  Event
		m   float64
		dst *float64
	}{
		{Transit, approx.Transit, &out.Transit},
		{Rise, approx.Rise, &out.Rise},
		{Set, approx.Set, &out.Set},
	} {
		m, err := Refine(p, e.ev, e.m)
		if err != nil {
			return Times{}, err
		}
		if m < 0 || m >= 1 {
			alt, err := Refine(p, e.ev, m-math.Floor(m))
			if err == nil && alt >= 0 && alt < 1 {
				m = alt
			} else if p.Logger != nil {
				p.Logger.Debug("event off day", "event", e.ev, "m", m)
			}
		}
		*e.dst = m
	}
	return out, nil
}

// Interpolate returns the value at n of the quadratic through y1, y2, y3
// tabulated at -1, 0, 1 (Meeus eq. 3.3).
func Interpolate(y1, y2, y3, n float64) float64 {
	a := y2 - y1
	b := y3 - y2
	c := b - a
	return y2 + n/2*(a+b+n*c)
}

// unwrap returns the right ascensions as plain radians, with the outer two
// shifted by whole turns so that none is more than π from the middle one.
func unwrap(α [3]unit.Angle) [3]float64 {
	mid := float64(α[1])
	return [3]float64{
		mid + wrapPi(float64(α[0])-mid),
		mid,
		mid + wrapPi(float64(α[2])-mid),
	}
}

// wrapPi reduces x to [-π, π).
func wrapPi(x float64) float64 {
	return unit.PMod(x+math.Pi, 2*math.Pi) - math.Pi
}

// normalize reduces a day fraction to [0, 1).
func normalize(m float64) float64 {
	m = unit.PMod(m, 1)
	if m >= 1 {
		m = 0
	}
	return m
}
