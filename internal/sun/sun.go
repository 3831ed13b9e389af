// Package sun computes the apparent geocentric place of the Sun from the
// VSOP87 Earth series, corrected to FK5 and for nutation and aberration.
package sun

import (
	"math"
	"time"

	"github.com/soniakeys/unit"
	"github.com/thurmanmarka/sunglide/internal/timeutil"
)

// HorizonAltitude is the altitude (in degrees) of the Sun's center when the
// upper limb is on the horizon under standard refraction.
const HorizonAltitude = -0.8333333333

// Altitude returns the Sun's altitude (in degrees, no refraction) for an
// observer at lat, lon (degrees, east positive) at the instant t. deltaT is
// TT - UT in seconds.
func Altitude(lat, lon float64, t time.Time, deltaT float64) float64 {
	jd := timeutil.JulianDay(t)
	eq := ApparentEquatorial(jd + deltaT/86400)

	// Mean sidereal time at Greenwich for the instant.
	jd0 := math.Floor(jd-0.5) + 0.5
	θ := timeutil.Sidereal0h(jd0) + unit.AngleFromDeg(360.985647*(jd-jd0))

	H := θ + unit.AngleFromDeg(lon) - unit.Angle(eq.RA)
	φ := unit.AngleFromDeg(lat)
	sφ, cφ := φ.Sincos()
	sδ, cδ := eq.Dec.Sincos()
	return unit.Angle(math.Asin(sφ*sδ + cφ*cδ*H.Cos())).Deg()
}
