package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLatencyHandler(t *testing.T) {
	for _, tc := range []struct {
		name string
		h    http.HandlerFunc
		want string
	}{
		{"implicit", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) }, "200"},
		{"explicit", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }, "418"},
		{"nothing", func(w http.ResponseWriter, r *http.Request) {}, "200"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := "/latency/" + tc.name
			before := testutil.CollectAndCount(requestLatency)
			rw := httptest.NewRecorder()
			LatencyHandler(tc.h).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, path, nil))
			if got := testutil.CollectAndCount(requestLatency); got != before+1 {
				t.Errorf("series count = %d, want %d", got, before+1)
			}
			if !requestLatency.DeleteLabelValues(http.MethodGet, path, tc.want) {
				t.Errorf("no observation for code %s", tc.want)
			}
		})
	}
}

func TestObserveSolve(t *testing.T) {
	before := testutil.ToFloat64(SolveCount(OutcomeAlwaysBelow))
	ObserveSolve(OutcomeAlwaysBelow)
	ObserveSolve(OutcomeAlwaysBelow)
	if got := testutil.ToFloat64(SolveCount(OutcomeAlwaysBelow)); got != before+2 {
		t.Errorf("got %v, want %v", got, before+2)
	}
}

func TestObserveCache(t *testing.T) {
	hits, misses := testutil.ToFloat64(CacheCount(true)), testutil.ToFloat64(CacheCount(false))
	ObserveCache(true)
	ObserveCache(false)
	ObserveCache(false)
	if got := testutil.ToFloat64(CacheCount(true)); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheCount(false)); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}
