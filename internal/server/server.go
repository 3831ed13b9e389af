// Package server implements the sunglide HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cerrors "cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thurmanmarka/sunglide"
	"github.com/thurmanmarka/sunglide/internal/cache"
	"github.com/thurmanmarka/sunglide/internal/metrics"
)

// MaxDays bounds the days parameter of a single request.
const MaxDays = sunglide.MaxRangeDays

// Error kinds reported in JSON error bodies.
const (
	KindAlwaysAbove   = "always_above"
	KindAlwaysBelow   = "always_below"
	KindNoConvergence = "no_convergence"
	KindBadRequest    = "bad_request"
	KindOffDay        = "off_day"
)

// Options configures a Server.
type Options struct {
	Prefix   string        // path prefix, e.g. "/" or "/sun"
	CacheTTL time.Duration // zero disables the response cache
	Logger   *slog.Logger
}

// Server serves sunrise and sunset computations over HTTP.
type Server struct {
	router *mux.Router
	cache  *cache.Timed
	logger *slog.Logger
}

// New returns a Server with its routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = ctxlog.Logger(context.Background())
	}
	s := &Server{
		router: mux.NewRouter().StrictSlash(true),
		cache:  cache.NewTimed(opts.CacheTTL),
		logger: logger,
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "/"
	}
	sub := s.router.PathPrefix(prefix).Subrouter()
	sub.Use(metrics.LatencyHandler)
	sub.HandleFunc("/api/v1/sun", s.serveSun).Methods(http.MethodGet)
	sub.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// PurgeCache drops expired responses.
func (s *Server) PurgeCache() {
	s.cache.Purge()
}

// request holds a parsed /api/v1/sun query.
type request struct {
	coords sunglide.Coordinates
	date   time.Time
	tz     *time.Location
	days   int
}

// Fractions of the UT day.
type Fractions struct {
	Rise    float64 `json:"rise"`
	Transit float64 `json:"transit"`
	Set     float64 `json:"set"`
}

// Day is one day of a response. Times are RFC 3339 in the requested zone.
type Day struct {
	Date      string     `json:"date"`
	Rise      string     `json:"rise,omitempty"`
	Transit   string     `json:"transit,omitempty"`
	Set       string     `json:"set,omitempty"`
	Fractions *Fractions `json:"fractions,omitempty"`
	Error     *Error     `json:"error,omitempty"`
}

// Response is the body of a successful /api/v1/sun request.
type Response struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	TimeZone string  `json:"tz"`
	Days     []Day   `json:"days"`
}

// Error is the body of a failed request, and marks polar days in a
// Response.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) serveSun(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("method", r.Method, "url", r.URL.String())
	ctx := ctxlog.WithLogger(r.Context(), logger)

	req, err := parseRequest(r)
	if err != nil {
		logger.Info("bad request", "error", err)
		writeError(w, http.StatusBadRequest, Error{Kind: KindBadRequest, Message: err.Error()})
		return
	}

	key := cacheKey(r, req)
	if cached, ok := s.cache.Get(key); ok {
		metrics.ObserveCache(true)
		logger.Debug("cache hit")
		writeBody(w, http.StatusOK, cached)
		return
	}
	metrics.ObserveCache(false)

	resp, err := compute(ctx, req)
	if err != nil {
		var nc *sunglide.NonConvergenceError
		if errors.As(err, &nc) {
			logger.Warn("solver did not converge", "error", err)
			writeError(w, http.StatusInternalServerError, Error{Kind: KindNoConvergence, Message: err.Error()})
			return
		}
		logger.Error("compute failed", "error", err)
		writeError(w, http.StatusInternalServerError, Error{Kind: "internal", Message: err.Error()})
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		logger.Error("encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, Error{Kind: "internal", Message: err.Error()})
		return
	}
	s.cache.Set(key, body)
	writeBody(w, http.StatusOK, body)
}

// cacheKey is based on method and URL, plus the resolved date since a
// query without one means today.
func cacheKey(r *http.Request, req request) string {
	return fmt.Sprintf("%s %s %s", r.Method, r.URL, req.date.Format(time.DateOnly))
}

// parseRequest validates the query, reporting every problem found.
func parseRequest(r *http.Request) (request, error) {
	return parseRequestAt(r, time.Now())
}

func parseRequestAt(r *http.Request, now time.Time) (request, error) {
	q := r.URL.Query()
	var errs cerrors.M
	req := request{tz: time.UTC, days: 1}

	parseFloat := func(name string) float64 {
		v := q.Get(name)
		if v == "" {
			errs.Append(fmt.Errorf("missing parameter %q", name))
			return 0
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs.Append(fmt.Errorf("parameter %q: %w", name, err))
		}
		return f
	}
	req.coords.Lat = parseFloat("lat")
	req.coords.Lon = parseFloat("lon")
	if errs.Err() == nil {
		errs.Append(req.coords.Validate())
	}

	if v := q.Get("tz"); v != "" {
		tz, err := time.LoadLocation(v)
		if err != nil {
			errs.Append(fmt.Errorf("parameter \"tz\": %w", err))
		} else {
			req.tz = tz
		}
	}

	if v := q.Get("date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			errs.Append(fmt.Errorf("parameter \"date\": %w", err))
		}
		req.date = d
	} else {
		y, m, d := now.In(req.tz).Date()
		req.date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs.Append(fmt.Errorf("parameter \"days\": %w", err))
		case n < 1 || n > MaxDays:
			errs.Append(fmt.Errorf("parameter \"days\": %d not in 1..%d", n, MaxDays))
		default:
			req.days = n
		}
	}
	return req, errs.Err()
}

// compute solves every requested UT date. Polar days are reported per day.
func compute(ctx context.Context, req request) (Response, error) {
	days, err := sunglide.ForRange(ctx, req.coords, req.date, req.days)
	if err != nil {
		var nc *sunglide.NonConvergenceError
		if errors.As(err, &nc) {
			metrics.ObserveSolve(metrics.OutcomeNoConvergence)
		}
		return Response{}, err
	}
	resp := Response{
		Lat:      req.coords.Lat,
		Lon:      req.coords.Lon,
		TimeZone: req.tz.String(),
		Days:     make([]Day, len(days)),
	}
	for i, d := range days {
		out := Day{Date: d.Date.Format(time.DateOnly)}
		if errors.Is(d.Err, sunglide.ErrNoRiseNoSet) {
			e := noEventError(d.Err)
			metrics.ObserveSolve(e.Kind)
			out.Error = &e
			resp.Days[i] = out
			continue
		}
		if d.Err != nil {
			// The times are real; one of them is on the adjacent date.
			metrics.ObserveSolve(metrics.OutcomeOffDay)
			out.Error = &Error{Kind: KindOffDay, Message: d.Err.Error()}
		} else {
			metrics.ObserveSolve(metrics.OutcomeOK)
		}
		out.Rise = d.Rise.In(req.tz).Format(time.RFC3339)
		out.Transit = d.Transit.In(req.tz).Format(time.RFC3339)
		out.Set = d.Set.In(req.tz).Format(time.RFC3339)
		out.Fractions = &Fractions{Rise: d.Fractions.Rise, Transit: d.Fractions.Transit, Set: d.Fractions.Set}
		resp.Days[i] = out
	}
	return resp, nil
}

func noEventError(err error) Error {
	var ne *sunglide.NoEventError
	if errors.As(err, &ne) && ne.AlwaysAbove {
		return Error{Kind: KindAlwaysAbove, Message: err.Error()}
	}
	return Error{Kind: KindAlwaysBelow, Message: err.Error()}
}

func writeError(w http.ResponseWriter, code int, e Error) {
	body, _ := json.Marshal(struct {
		Error Error `json:"error"`
	}{e})
	writeBody(w, code, body)
}

func writeBody(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}
