package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/thurmanmarka/sunglide/internal/metrics"
)

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, url, nil))
	return rw
}

func decodeError(t *testing.T, rw *httptest.ResponseRecorder) Error {
	t.Helper()
	var body struct {
		Error Error `json:"error"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rw.Body.String(), err)
	}
	return body.Error
}

func TestSun(t *testing.T) {
	s := New(Options{Prefix: "/"})
	rw := get(t, s, "/api/v1/sun?lat=50.6611&lon=14.0531&date=2019-09-17&tz=Europe/Prague&days=2")
	if rw.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rw.Code, rw.Body)
	}
	if got := rw.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	var resp Response
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.TimeZone != "Europe/Prague" || len(resp.Days) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	day := resp.Days[0]
	if day.Date != "2019-09-17" || day.Error != nil || day.Fractions == nil {
		t.Fatalf("unexpected day %+v", day)
	}
	rise, err := time.Parse(time.RFC3339, day.Rise)
	if err != nil {
		t.Fatal(err)
	}
	// 04:42 UT is 06:42 CEST.
	if _, off := rise.Zone(); off != 2*3600 {
		t.Errorf("rise %v not in CEST", rise)
	}
	want := time.Date(2019, 9, 17, 4, 42, 30, 0, time.UTC)
	if d := rise.Sub(want); d < -2*time.Minute || d > 2*time.Minute {
		t.Errorf("rise %v, want about %v", rise, want)
	}
	if resp.Days[1].Date != "2019-09-18" {
		t.Errorf("second day %v", resp.Days[1].Date)
	}
}

func TestSunPolar(t *testing.T) {
	s := New(Options{})
	before := testutil.ToFloat64(metrics.SolveCount(metrics.OutcomeAlwaysAbove))
	rw := get(t, s, "/api/v1/sun?lat=69&lon=7&date=2019-06-16")
	if rw.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rw.Code, rw.Body)
	}
	var resp Response
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := []Day{{
		Date:  "2019-06-16",
		Error: &Error{Kind: KindAlwaysAbove, Message: "sun is always above the horizon"},
	}}
	if diff := cmp.Diff(want, resp.Days); diff != "" {
		t.Errorf("days mismatch (-want +got):\n%s", diff)
	}
	if got := testutil.ToFloat64(metrics.SolveCount(metrics.OutcomeAlwaysAbove)); got != before+1 {
		t.Errorf("always_above count %v, want %v", got, before+1)
	}
}

func TestBadRequest(t *testing.T) {
	s := New(Options{})
	for _, tc := range []struct {
		name  string
		query string
		want  []string
	}{
		{"missing", "", []string{`"lat"`, `"lon"`}},
		{"range", "lat=91&lon=0", []string{"invalid location"}},
		{"all", "lat=x&lon=0&tz=Nowhere/Land&date=2019-13-01&days=0",
			[]string{`"lat"`, `"tz"`, `"date"`, `"days"`}},
		{"too many days", "lat=1&lon=1&days=1000", []string{"1000 not in 1..366"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rw := get(t, s, "/api/v1/sun?"+tc.query)
			if rw.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", rw.Code)
			}
			e := decodeError(t, rw)
			if e.Kind != KindBadRequest {
				t.Errorf("kind %q", e.Kind)
			}
			for _, w := range tc.want {
				if !strings.Contains(e.Message, w) {
					t.Errorf("message %q does not mention %s", e.Message, w)
				}
			}
		})
	}
}

func TestCache(t *testing.T) {
	s := New(Options{CacheTTL: time.Hour})
	const url = "/api/v1/sun?lat=33.4484&lon=-112.074&date=2025-11-30&tz=America/Phoenix"
	hits := testutil.ToFloat64(metrics.CacheCount(true))
	first := get(t, s, url)
	second := get(t, s, url)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status %d %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs")
	}
	if got := testutil.ToFloat64(metrics.CacheCount(true)); got != hits+1 {
		t.Errorf("cache hits %v, want %v", got, hits+1)
	}

	// Errors are not cached.
	get(t, s, "/api/v1/sun?lat=100&lon=0")
	if got := s.cache.Len(); got != 1 {
		t.Errorf("cache holds %d entries, want 1", got)
	}
}

func TestCacheKeyResolvesDate(t *testing.T) {
	tz, err := time.LoadLocation("America/Phoenix")
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "/api/v1/sun?lat=33.4484&lon=-112.074&tz=America/Phoenix", nil)
	// 06:00 UT on Dec 1st is still Nov 30th in Phoenix.
	monday := time.Date(2025, 12, 1, 6, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		now  time.Time
		want string
	}{
		{monday, "2025-11-30"},
		{monday.Add(24 * time.Hour), "2025-12-01"},
		{time.Date(2025, 12, 1, 12, 0, 0, 0, tz), "2025-12-01"},
	} {
		req, err := parseRequestAt(r, tc.now)
		if err != nil {
			t.Fatal(err)
		}
		if got := req.date.Format(time.DateOnly); got != tc.want {
			t.Errorf("%v: date %v, want %v", tc.now, got, tc.want)
		}
		if key := cacheKey(r, req); !strings.HasSuffix(key, " "+tc.want) {
			t.Errorf("%v: key %q lacks %v", tc.now, key, tc.want)
		}
	}

	today, _ := parseRequestAt(r, monday)
	tomorrow, _ := parseRequestAt(r, monday.Add(24*time.Hour))
	if cacheKey(r, today) == cacheKey(r, tomorrow) {
		t.Errorf("same key %q for different dates", cacheKey(r, today))
	}
}

func TestSunOffDay(t *testing.T) {
	s := New(Options{})
	before := testutil.ToFloat64(metrics.SolveCount(metrics.OutcomeOffDay))
	rw := get(t, s, "/api/v1/sun?lat=-80&lon=-120&date=2024-09-07")
	if rw.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rw.Code, rw.Body)
	}
	var resp Response
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	day := resp.Days[0]
	if day.Error == nil || day.Error.Kind != KindOffDay {
		t.Fatalf("unexpected day %+v", day)
	}
	if !strings.Contains(day.Error.Message, "no set on this UT day") {
		t.Errorf("message %q", day.Error.Message)
	}
	set, err := time.Parse(time.RFC3339, day.Set)
	if err != nil {
		t.Fatal(err)
	}
	if got := set.UTC().Format(time.DateOnly); got == day.Date {
		t.Errorf("set %v on %v, want an adjacent date", set, day.Date)
	}
	if day.Rise == "" || day.Transit == "" || day.Fractions == nil {
		t.Errorf("times missing from %+v", day)
	}
	if got := testutil.ToFloat64(metrics.SolveCount(metrics.OutcomeOffDay)); got != before+1 {
		t.Errorf("off_day count %v, want %v", got, before+1)
	}
}

func TestPrefixAndMetrics(t *testing.T) {
	s := New(Options{Prefix: "/sun"})
	if rw := get(t, s, "/sun/api/v1/sun?lat=10&lon=10&date=2025-05-01"); rw.Code != http.StatusOK {
		t.Errorf("prefixed route: status %d", rw.Code)
	}
	if rw := get(t, s, "/api/v1/sun?lat=10&lon=10"); rw.Code != http.StatusNotFound {
		t.Errorf("unprefixed route: status %d, want 404", rw.Code)
	}
	rw := get(t, s, "/sun/metrics")
	if rw.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rw.Code)
	}
	for _, name := range []string{"sunglide_request_latency", "sunglide_solver_outcomes_total"} {
		if !strings.Contains(rw.Body.String(), name) {
			t.Errorf("metrics output lacks %s", name)
		}
	}
}
