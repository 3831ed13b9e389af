package sun

import (
	"math"

	"github.com/soniakeys/unit"
	"github.com/thurmanmarka/sunglide/internal/nutation"
	"github.com/thurmanmarka/sunglide/internal/series"
	"github.com/thurmanmarka/sunglide/internal/timeutil"
	"github.com/thurmanmarka/sunglide/internal/vsop87"
)

// Equatorial represents apparent geocentric equatorial coordinates of the
// Sun, referred to the true equator and equinox of date.
type Equatorial struct {
	RA  unit.RA    // right ascension, [0, 2π)
	Dec unit.Angle // declination, [-π/2, π/2]
}

// Position is the full set of intermediate quantities behind an apparent
// place of the Sun.
type Position struct {
	Lon       unit.Angle // apparent ecliptic longitude Θ
	Lat       unit.Angle // ecliptic latitude β
	Range     float64    // Earth-Sun distance, AU
	Obliquity unit.Angle // true obliquity ε
	Nutation  unit.Angle // nutation in longitude Δψ
	Equatorial
}

// FK5 correction constants, in arcseconds.
const (
	fk5Lon = -0.09033
	fk5Lat = 0.03916
)

// ComputePosition returns the apparent position of the Sun at the Julian
// ephemeris day jde.
func ComputePosition(jde float64) Position {
	tau := timeutil.JulianMillennia(jde)
	l, b, r := vsop87.Heliocentric(tau)

	// Geocentric longitude and latitude.
	Θ := unit.Angle(l + math.Pi).Mod1()
	β := unit.Angle(-b)

	// Conversion to the FK5 system.
	T := 10 * tau
	λp := Θ - unit.AngleFromDeg(1.397*T+0.00031*T*T)
	sλ, cλ := λp.Sincos()
	Θ += unit.AngleFromSec(fk5Lon)
	β += unit.AngleFromSec(fk5Lat * (cλ - sλ))

	Δψ, Δε := nutation.Nutation(jde)
	Θ += Δψ
	Θ -= Aberration(jde, r)

	ε := nutation.MeanObliquity(jde) + Δε

	sε, cε := ε.Sincos()
	sΘ, cΘ := Θ.Sincos()
	sβ, cβ := β.Sincos()
	α := math.Atan2(sΘ*cε-(sβ/cβ)*sε, cΘ)
	δ := math.Asin(sβ*cε + cβ*sε*sΘ)

	return Position{
		Lon:       Θ.Mod1(),
		Lat:       β,
		Range:     r,
		Obliquity: ε,
		Nutation:  Δψ,
		Equatorial: Equatorial{
			RA:  unit.RAFromRad(α),
			Dec: unit.Angle(δ),
		},
	}
}

// ApparentEquatorial returns the apparent right ascension and declination of
// the Sun at the Julian ephemeris day jde.
func ApparentEquatorial(jde float64) Equatorial {
	return ComputePosition(jde).Equatorial
}

// Aberration returns the correction to subtract from the Sun's longitude
// for annual aberration, given the Earth-Sun distance r in AU. It uses the
// variation of the Sun's longitude per day rather than a fixed constant.
func Aberration(jde, r float64) unit.Angle {
	Δλ := dailyMotion.SumSinDeg(timeutil.JulianMillennia(jde))
	return unit.AngleFromSec(0.005775518 * r * Δλ)
}

// dailyMotion is the daily variation of the Sun's geometric longitude, in
// arcseconds. Phases and frequencies are in degrees per millennium.
var dailyMotion = series.Series{
	{
		{3548.193, 90, 0},
		{118.568, 87.5287, 359993.7286},
		{2.476, 85.0561, 719987.4571},
		{1.376, 27.8502, 4452671.1152},
		{0.119, 73.1375, 450368.88564},
		{0.114, 337.2264, 329644.6718},
		{0.086, 222.5400, 659289.3436},
		{0.078, 162.8136, 9224659.7195},
		{0.054, 82.5823, 1079981.1857},
		{0.052, 171.5189, 225184.4282},
		{0.034, 30.3214, 4092677.3866},
		{0.033, 119.8105, 337181.4711},
		{0.023, 247.5418, 299295.6151},
		{0.023, 325.1526, 315559.5560},
		{0.021, 155.1241, 675553.2846},
	},
	{
		{7.311, 333.4515, 359993.7286},
		{0.305, 330.9814, 719987.4571},
		{0.010, 328.5170, 1079981.1857},
	},
	{
		{0.309, 241.4518, 359993.7286},
		{0.021, 205.0482, 719987.4571},
		{0.004, 297.8610, 4452671.1152},
	},
	{
		{0.010, 154.7066, 359993.7286},
	},
}
