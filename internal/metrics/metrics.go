// Package metrics exports Prometheus metrics for the sunglide service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "sunglide",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0},
		},
		[]string{"verb", "path", "code"},
	)

	solverOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "solver_outcomes_total",
			Subsystem: "sunglide",
			Help:      "Days solved by outcome: ok, off_day, always_above, always_below, no_convergence.",
		},
		[]string{"outcome"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "cache_lookups_total",
			Subsystem: "sunglide",
			Help:      "Response cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		solverOutcomes,
		cacheLookups,
	)
}

// Outcome values for ObserveSolve.
const (
	OutcomeOK            = "ok"
	OutcomeAlwaysAbove   = "always_above"
	OutcomeAlwaysBelow   = "always_below"
	OutcomeNoConvergence = "no_convergence"
	OutcomeOffDay        = "off_day"
)

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveSolve counts one solved day.
func ObserveSolve(outcome string) {
	solverOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveCache counts one cache lookup.
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}

// SolveCount returns the number of days counted under outcome.
func SolveCount(outcome string) prometheus.Counter {
	return solverOutcomes.WithLabelValues(outcome)
}

// CacheCount returns the counter for cache hits or misses.
func CacheCount(hit bool) prometheus.Counter {
	if hit {
		return cacheLookups.WithLabelValues("hit")
	}
	return cacheLookups.WithLabelValues("miss")
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.code == 0 {
		r.code = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) status() string {
	if r.code == 0 {
		// Unset, will be set to 200 by stdlib.
		return "200"
	}
	return strconv.Itoa(r.code)
}

// LatencyHandler records the latency of every request served by next.
func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w}

		// Any panics in next are reported as 500 errors and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, rec.status(), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
