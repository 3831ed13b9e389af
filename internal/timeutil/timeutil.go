package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/soniakeys/unit"
)

// J2000 is the Julian day of the J2000.0 epoch, 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// JulianDay0h returns the Julian day at 0h UT on the given Gregorian
// calendar date.
func JulianDay0h(year int, month time.Month, day int) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}

// JulianDay returns the Julian day of the instant t.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	frac := float64(u.Hour())/24 +
		float64(u.Minute())/1440 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/86400
	return julian.CalendarGregorianToJD(year, int(month), float64(day)+frac)
}

// JulianCenturies returns centuries of 36525 days since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525
}

// JulianMillennia returns millennia of 365250 days since J2000.0.
func JulianMillennia(jd float64) float64 {
	return (jd - J2000) / 365250
}

// Sidereal0h returns the mean sidereal time at Greenwich at 0h UT on the day
// whose 0h Julian day is jd, as an angle in [0, 2π).
func Sidereal0h(jd float64) unit.Angle {
	T := JulianCenturies(jd)
	deg := 100.46061837 +
		36000.770053608*T +
		0.000387933*T*T -
		T*T*T/38710000
	return unit.AngleFromDeg(deg).Mod1()
}

// Clock splits a day fraction into hours, minutes and seconds, rounding to
// the nearest second. The result is wrapped into a single day, so a fraction
// that rounds up to 86400 s reads 00:00:00.
func Clock(frac float64) (h, m, s int) {
	total := int(math.Floor(frac*86400+0.5)) % 86400
	if total < 0 {
		total += 86400
	}
	return total / 3600, total % 3600 / 60, total % 60
}

// FormatFraction formats a day fraction as hh:mm:ss.
func FormatFraction(frac float64) string {
	h, m, s := Clock(frac)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FractionToTime converts a fraction of the UT day into an instant on the
// given date. Fractions outside [0, 1) roll over into adjacent days. The
// result is rounded to the nearest second.
func FractionToTime(year int, month time.Month, day int, frac float64) time.Time {
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	sec := int64(math.Round(frac * 86400))
	return base.Add(time.Duration(sec) * time.Second)
}
