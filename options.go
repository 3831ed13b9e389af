package sunglide

import (
	"github.com/thurmanmarka/sunglide/internal/solver"
	"github.com/thurmanmarka/sunglide/internal/sun"
)

// DefaultDeltaT is the TT - UT, in seconds, used unless WithDeltaT is given.
const DefaultDeltaT = solver.DefaultDeltaT

// Option configures a computation.
type Option func(*config)

type config struct {
	altitude      float64 // degrees
	deltaT        float64 // seconds
	tolerance     float64 // day fraction
	maxIterations int
}

func newConfig(opts []Option) config {
	cfg := config{
		altitude:      sun.HorizonAltitude,
		deltaT:        DefaultDeltaT,
		tolerance:     solver.DefaultTolerance,
		maxIterations: solver.DefaultMaxIterations,
	}
	for _, fn := range opts {
		fn(&cfg)
	}
	return cfg
}

// WithAltitude sets the altitude of the Sun's center, in degrees, that
// defines the event. The default is -0.8333°, the standard sunrise/sunset.
func WithAltitude(deg float64) Option {
	return func(c *config) {
		c.altitude = deg
	}
}

// WithDeltaT sets TT - UT in seconds. The default is 67 s.
func WithDeltaT(seconds float64) Option {
	return func(c *config) {
		c.deltaT = seconds
	}
}

// WithTolerance sets the correction, as a fraction of a day, below which the
// iteration stops.
func WithTolerance(dayFraction float64) Option {
	return func(c *config) {
		c.tolerance = dayFraction
	}
}

// WithMaxIterations bounds the number of corrections per event.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIterations = n
	}
}
