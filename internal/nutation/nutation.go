// Package nutation implements the IAU 1980 theory of nutation in the
// 63-term form tabulated by Meeus, together with the mean obliquity of the
// ecliptic.
package nutation

import (
	"github.com/soniakeys/unit"
)

const j2000 = 2451545.0

// Term is one row of the nutation series: five integer multipliers of the
// fundamental arguments D, M, M', F and Ω, followed by the sine coefficient
// for longitude and the cosine coefficient for obliquity, each with its rate
// per Julian century. Coefficients are in units of 0.0001".
type Term struct {
	D, M, Mp, F, Omega int
	Lon0, Lon1         float64
	Obl0, Obl1         float64
}

// Nutation returns nutation in longitude (Δψ) and in obliquity (Δε) for the
// given Julian ephemeris day.
func Nutation(jde float64) (Δψ, Δε unit.Angle) {
	T := (jde - j2000) / 36525
	D, M, Mp, F, Ω := fundamentals(T)
	var psi, eps float64
	for _, t := range Terms {
		arg := unit.AngleFromDeg(float64(t.D)*D +
			float64(t.M)*M +
			float64(t.Mp)*Mp +
			float64(t.F)*F +
			float64(t.Omega)*Ω)
		s, c := arg.Sincos()
		psi += (t.Lon0 + t.Lon1*T) * s
		eps += (t.Obl0 + t.Obl1*T) * c
	}
	return unit.AngleFromSec(psi * 1e-4), unit.AngleFromSec(eps * 1e-4)
}

// fundamentals returns, in degrees, the mean elongation of the Moon from the
// Sun (D), the mean anomaly of the Sun (M) and of the Moon (Mp), the Moon's
// argument of latitude (F) and the longitude of the ascending node of the
// Moon's mean orbit (Ω).
func fundamentals(T float64) (D, M, Mp, F, Ω float64) {
	T2 := T * T
	T3 := T2 * T
	D = 297.85036 + 445267.11148*T - 0.0019142*T2 + T3/189474
	M = 357.52772 + 35999.05034*T - 0.0001603*T2 - T3/300000
	Mp = 134.96298 + 477198.867398*T + 0.0086972*T2 + T3/56250
	F = 93.27191 + 483202.017538*T - 0.0036825*T2 + T3/327270
	Ω = 125.04452 - 1934.136261*T + 0.0020708*T2 + T3/450000
	return
}

// MeanObliquity returns the mean obliquity of the ecliptic using Laskar's
// polynomial, valid over 10000 years either side of J2000.0.
func MeanObliquity(jde float64) unit.Angle {
	U := (jde - j2000) / 3652500
	return unit.AngleFromSec(84381.448 +
		U*(-4680.93+
			U*(-1.55+
				U*(1999.25+
					U*(-51.38+
						U*(-249.67+
							U*(-39.05+
								U*(7.12+
									U*(27.87+
										U*(5.79+
											U*2.45))))))))))
}

// TrueObliquity returns the mean obliquity corrected for nutation.
func TrueObliquity(jde float64) unit.Angle {
	_, Δε := Nutation(jde)
	return MeanObliquity(jde) + Δε
}

// Terms is the nutation series, largest terms first.
var Terms = [63]Term{
	{0, 0, 0, 0, 1, -171996, -174.2, 92025, 8.9},
	{-2, 0, 0, 2, 2, -13187, -1.6, 5736, -3.1},
	{0, 0, 0, 2, 2, -2274, 0.2, 977, -0.5},
	{0, 0, 0, 0, 2, 2062, 0.2, -895, 0.5},
	{0, 1, 0, 0, 0, 1426, -3.4, 54, -0.1},
	{0, 0, 1, 0, 0, 712, 0.1, -7, 0},
	{-2, 1, 0, 2, 2, -517, 1.2, 224, -0.6},
	{0, 0, 0, 2, 1, -386, -0.4, 200, 0},
	{0, 0, 1, 2, 2, -301, 0, 129, -0.1},
	{-2, -1, 0, 2, 2, 217, -0.5, -95, 0.3},
	{-2, 0, 1, 0, 0, -158, 0, 0, 0},
	{-2, 0, 0, 2, 1, 129, 0.1, -70, 0},
	{0, 0, -1, 2, 2, 123, 0, -53, 0},
	{2, 0, 0, 0, 0, 63, 0, 0, 0},
	{0, 0, 1, 0, 1, 63, 0.1, -33, 0},
	{2, 0, -1, 2, 2, -59, 0, 26, 0},
	{0, 0, -1, 0, 1, -58, -0.1, 32, 0},
	{0, 0, 1, 2, 1, -51, 0, 27, 0},
	{-2, 0, 2, 0, 0, 48, 0, 0, 0},
	{0, 0, -2, 2, 1, 46, 0, -24, 0},
	{2, 0, 0, 2, 2, -38, 0, 16, 0},
	{0, 0, 2, 2, 2, -31, 0, 13, 0},
	{0, 0, 2, 0, 0, 29, 0, 0, 0},
	{-2, 0, 1, 2, 2, 29, 0, -12, 0},
	{0, 0, 0, 2, 0, 26, 0, 0, 0},
	{-2, 0, 0, 2, 0, -22, 0, 0, 0},
	{0, 0, -1, 2, 1, 21, 0, -10, 0},
	{0, 2, 0, 0, 0, 17, -0.1, 0, 0},
	{2, 0, -1, 0, 1, 16, 0, -8, 0},
	{-2, 2, 0, 2, 2, -16, 0.1, 7, 0},
	{0, 1, 0, 0, 1, -15, 0, 9, 0},
	{-2, 0, 1, 0, 1, -13, 0, 7, 0},
	{0, -1, 0, 0, 1, -12, 0, 6, 0},
	{0, 0, 2, -2, 0, 11, 0, 0, 0},
	{2, 0, -1, 2, 1, -10, 0, 5, 0},
	{2, 0, 1, 2, 2, -8, 0, 3, 0},
	{0, 1, 0, 2, 2, 7, 0, -3, 0},
	{-2, 1, 1, 0, 0, -7, 0, 0, 0},
	{0, -1, 0, 2, 2, -7, 0, 3, 0},
	{2, 0, 0, 2, 1, -7, 0, 3, 0},
	{2, 0, 1, 0, 0, 6, 0, 0, 0},
	{-2, 0, 2, 2, 2, 6, 0, -3, 0},
	{-2, 0, 1, 2, 1, 6, 0, -3, 0},
	{2, 0, -2, 0, 1, -6, 0, 3, 0},
	{2, 0, 0, 0, 1, -6, 0, 3, 0},
	{0, -1, 1, 0, 0, 5, 0, 0, 0},
	{-2, -1, 0, 2, 1, -5, 0, 3, 0},
	{-2, 0, 0, 0, 1, -5, 0, 3, 0},
	{0, 0, 2, 2, 1, -5, 0, 3, 0},
	{-2, 0, 2, 0, 1, 4, 0, 0, 0},
	{-2, 1, 0, 2, 1, 4, 0, 0, 0},
	{0, 0, 1, -2, 0, 4, 0, 0, 0},
	{-1, 0, 1, 0, 0, -4, 0, 0, 0},
	{-2, 1, 0, 0, 0, -4, 0, 0, 0},
	{1, 0, 0, 0, 0, -4, 0, 0, 0},
	{0, 0, 1, 2, 0, 3, 0, 0, 0},
	{0, 0, -2, 2, 2, -3, 0, 0, 0},
	{-1, -1, 1, 0, 0, -3, 0, 0, 0},
	{0, 1, 1, 0, 0, -3, 0, 0, 0},
	{0, -1, 1, 2, 2, -3, 0, 0, 0},
	{2, -1, -1, 2, 2, -3, 0, 0, 0},
	{0, 0, 3, 2, 2, -3, 0, 0, 0},
	{2, -1, 0, 2, 2, -3, 0, 0, 0},
}
