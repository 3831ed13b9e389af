package main

import (
	"fmt"
	"io"
	"math"
	"time"
)

// stats accumulates errors in minutes. NaN values are ignored.
type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

func (s *stats) print(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintf(w, "  count: %d\n", s.count)
	fmt.Fprintf(w, "  min:   %.3f\n", s.min)
	fmt.Fprintf(w, "  max:   %.3f\n", s.max)
	fmt.Fprintf(w, "  mean:  %.3f\n", s.mean())
}

// diffMinutes returns |a - b| in minutes, or NaN if either is missing.
func diffMinutes(a, b time.Time) float64 {
	return math.Abs(diffMinutesSigned(a, b))
}

// diffMinutesSigned returns a - b in minutes, or NaN if either is missing.
func diffMinutesSigned(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}
