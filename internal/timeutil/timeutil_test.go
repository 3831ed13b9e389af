package timeutil

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Meeus 7.a", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"Meeus 12.a", time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC), 2446895.5},
		{"offset zone", time.Date(2019, 9, 17, 2, 0, 0, 0, time.FixedZone("CEST", 2*3600)), 2458743.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JulianDay(tc.t); math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("got %.6f, want %.6f", got, tc.want)
			}
		})
	}
}

func TestJulianDay0h(t *testing.T) {
	if got, want := JulianDay0h(2019, time.September, 17), 2458743.5; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Meeus, Astronomical Algorithms, Example 12.a.
func TestSidereal0h(t *testing.T) {
	got := Sidereal0h(JulianDay0h(1987, time.April, 10)).Deg()
	if want := 197.693195; math.Abs(got-want) > 1e-6 {
		t.Errorf("got %.6f°, want %.6f°", got, want)
	}
}

func TestSidereal0hRange(t *testing.T) {
	for jd := J2000 - 36525; jd < J2000+36525; jd += 1234.5 {
		a := Sidereal0h(jd).Rad()
		if a < 0 || a >= 2*math.Pi {
			t.Errorf("JD %v: %v out of [0, 2π)", jd, a)
		}
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{0, "00:00:00"},
		{0.5, "12:00:00"},
		{0.25 + 0.4/86400, "06:00:00"},
		{0.25 + 0.6/86400, "06:00:01"},
		{0.19611, "04:42:24"},
		{1 - 0.2/86400, "00:00:00"},
	}
	for _, tc := range tests {
		if got := FormatFraction(tc.frac); got != tc.want {
			t.Errorf("FormatFraction(%v) = %q, want %q", tc.frac, got, tc.want)
		}
	}
}

func TestFractionToTime(t *testing.T) {
	got := FractionToTime(2019, time.September, 17, 0.75)
	want := time.Date(2019, time.September, 17, 18, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	// Negative fractions fall on the previous day.
	got = FractionToTime(2019, time.September, 17, -0.25)
	want = time.Date(2019, time.September, 16, 18, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
