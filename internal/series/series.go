// Package series evaluates periodic series of the VSOP87 kind: sums of
// A·cos(B + C·τ) terms grouped into bands, where band k is the coefficient
// of τ^k in a polynomial in τ.
package series

import (
	"math"

	"github.com/soniakeys/unit"
)

// Term is one periodic term: amplitude A, phase B and frequency C.
//
// For Sum, B is in radians and C in radians per unit of τ. For SumSinDeg,
// both are in degrees.
type Term struct {
	A, B, C float64
}

// Band is the set of terms multiplying a single power of τ.
type Band []Term

// Series is a polynomial in τ whose coefficients are bands. Series[k]
// multiplies τ^k.
type Series []Band

// Sum evaluates the series at τ using cosine terms with phases and
// frequencies in radians.
func (s Series) Sum(tau float64) float64 {
	return s.accumulate(tau, func(t Term) float64 {
		return t.A * math.Cos(t.B+t.C*tau)
	})
}

// SumSinDeg evaluates the series at τ using sine terms whose phases and
// frequencies are tabulated in degrees.
func (s Series) SumSinDeg(tau float64) float64 {
	return s.accumulate(tau, func(t Term) float64 {
		return t.A * unit.AngleFromDeg(t.B+t.C*tau).Sin()
	})
}

// accumulate sums each band on its own and only then combines the band sums
// with a running power of τ.
func (s Series) accumulate(tau float64, term func(Term) float64) float64 {
	sums := make([]float64, len(s))
	for k, band := range s {
		var sum float64
		for _, t := range band {
			sum += term(t)
		}
		sums[k] = sum
	}
	total, power := 0.0, 1.0
	for _, sum := range sums {
		total += sum * power
		power *= tau
	}
	return total
}

// Len returns the total number of terms across all bands.
func (s Series) Len() int {
	n := 0
	for _, band := range s {
		n += len(band)
	}
	return n
}
