package vsop87_test

import (
	"math"
	"testing"

	"github.com/thurmanmarka/sunglide/internal/series"
	"github.com/thurmanmarka/sunglide/internal/vsop87"
)

func TestTermCounts(t *testing.T) {
	for _, tc := range []struct {
		name  string
		got   []int
		bands []int
	}{
		{"L", lens(vsop87.Earth.L), []int{64, 34, 20, 7, 3, 1}},
		{"B", lens(vsop87.Earth.B), []int{5, 2}},
		{"R", lens(vsop87.Earth.R), []int{40, 10, 6, 2, 1}},
	} {
		if len(tc.got) != len(tc.bands) {
			t.Fatalf("%s: got %d bands, want %d", tc.name, len(tc.got), len(tc.bands))
		}
		for i := range tc.got {
			if tc.got[i] != tc.bands[i] {
				t.Errorf("%s%d: got %d terms, want %d", tc.name, i, tc.got[i], tc.bands[i])
			}
		}
	}
}

// Meeus, Astronomical Algorithms, Example 25.b: 1992 October 13.0 TD.
func TestHeliocentricMeeus25b(t *testing.T) {
	jde := 2448908.5
	tau := (jde - 2451545) / 365250
	l, b, r := vsop87.Heliocentric(tau)

	if got, want := l, -43.63484796; math.Abs(got-want) > 1e-5 {
		t.Errorf("L = %.8f, want %.8f", got, want)
	}
	if got, want := b, -0.00000312; math.Abs(got-want) > 1e-6 {
		t.Errorf("B = %.8f, want %.8f", got, want)
	}
	if got, want := r, 0.99760775; math.Abs(got-want) > 1e-6 {
		t.Errorf("R = %.8f, want %.8f", got, want)
	}
}

func TestRadiusBounds(t *testing.T) {
	// The Earth's distance stays between perihelion and aphelion.
	for jde := 2451545.0; jde < 2451545.0+366; jde += 7 {
		_, _, r := vsop87.Heliocentric((jde - 2451545) / 365250)
		if r < 0.983 || r > 1.017 {
			t.Errorf("JDE %v: R = %v out of range", jde, r)
		}
	}
}

func lens(s series.Series) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = len(s[i])
	}
	return out
}
