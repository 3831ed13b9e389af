package sunglide

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/sync/errgroup"
	"github.com/thurmanmarka/sunglide/internal/timeutil"
)

// MaxRangeDays is the longest range the command line tools and the HTTP
// server accept.
const MaxRangeDays = 366

// Day is the result for one date of a range.
type Day struct {
	Date      time.Time // midnight UT of the date
	Fractions DayFractions
	Rise      time.Time // UTC
	Transit   time.Time // UTC
	Set       time.Time // UTC

	// Err is a *NoEventError when the Sun does not rise or set on this
	// date; the other fields are then zero. It is an *OffDayError when an
	// event falls just outside the UT day; the times are then filled in and
	// the event named by Err lies on the adjacent date.
	Err error
}

// ForRange computes rise, transit and set for days consecutive UT dates
// starting at the date of from, solving up to GOMAXPROCS dates at once.
// Polar and off-day dates are reported through Day.Err; any other failure is
// returned, aggregated over all dates, together with the days that did
// succeed.
func ForRange(ctx context.Context, loc Coordinates, from time.Time, days int, opts ...Option) ([]Day, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive: %d", days)
	}
	cfg := newConfig(opts)
	year, month, day := from.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	out := make([]Day, days)
	g, gctx := errgroup.WithContext(ctx)
	g = errgroup.WithConcurrency(g, runtime.GOMAXPROCS(0))
	for i := range out {
		date := start.AddDate(0, 0, i)
		g.Go(func() error {
			out[i].Date = date
			// Canceled by a sibling's failure or by the caller; either is
			// reported once below.
			if gctx.Err() != nil {
				return nil
			}
			y, m, d := date.Date()
			t, err := solveDay(gctx, loc, y, m, d, cfg)
			if err != nil {
				if errors.Is(err, ErrNoRiseNoSet) {
					out[i].Err = err
					return nil
				}
				return fmt.Errorf("%s: %w", date.Format(time.DateOnly), err)
			}
			out[i].Fractions = DayFractions(t)
			out[i].Rise = timeutil.FractionToTime(y, m, d, t.Rise)
			out[i].Transit = timeutil.FractionToTime(y, m, d, t.Transit)
			out[i].Set = timeutil.FractionToTime(y, m, d, t.Set)
			out[i].Err = t.OffDay()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	ctxlog.Logger(ctx).Debug("range computed", "from", start.Format(time.DateOnly), "days", days, "error", err)
	return out, err
}
