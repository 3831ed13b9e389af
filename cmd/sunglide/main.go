package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/kelseyhightower/envconfig"

	"github.com/thurmanmarka/sunglide"
)

// Defaults may be supplied as SUNGLIDE_LAT, SUNGLIDE_LON and SUNGLIDE_TZ.
type Defaults struct {
	Lat float64
	Lon float64
	TZ  string `default:"Local"`
}

// exitNoEvent is the exit status when the Sun does not rise or set.
const exitNoEvent = 2

func main() {
	log.SetFlags(0)

	var env Defaults
	if err := envconfig.Process("sunglide", &env); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	// With no subcommand, or flags first, run rise/set mode.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runRiseSet(os.Args[1:], env)
		return
	}

	switch os.Args[1] {
	case "position":
		runPosition(os.Args[2:], env)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `sunglide – precise sunrise and sunset

Usage:
  sunglide [flags]            # sunrise, transit and sunset (default mode)
  sunglide position [flags]   # apparent RA/Dec of the Sun

Default mode flags:
  -lat float      latitude in degrees (north positive)
  -lon float      longitude in degrees (east positive, west negative)
  -date string    date in YYYY-MM-DD (defaults to today in -tz)
  -tz string      IANA time zone for dates and output (default Local)
  -event string   rise, set, transit, both or all (default "both")
  -twilight kind  civil, nautical or astronomical instead of sunrise/sunset
  -days int       number of consecutive days, at most 366 (default 1)
  -json           output result as JSON
  -v              log solver iterations to stderr

SUNGLIDE_LAT, SUNGLIDE_LON and SUNGLIDE_TZ set the defaults for -lat, -lon
and -tz.
`)
}

// ---------------------
// Rise/set (default) mode
// ---------------------

func runRiseSet(args []string, env Defaults) {
	fs := flag.NewFlagSet("sunglide", flag.ExitOnError)

	lat := fs.Float64("lat", env.Lat, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", env.Lon, "longitude in degrees (east positive, west negative)")
	dateS := fs.String("date", "", "date in YYYY-MM-DD (optional, defaults to today in -tz)")
	tzName := fs.String("tz", env.TZ, "IANA time zone name (e.g. Europe/Prague)")
	event := fs.String("event", "both", "event: rise, set, transit, both, or all")
	twilight := fs.String("twilight", "", "civil, nautical or astronomical twilight instead of sunrise/sunset")
	days := fs.Int("days", 1, "number of consecutive days (at most 366)")
	jsonOut := fs.Bool("json", false, "output result as JSON")
	verbose := fs.Bool("v", false, "log solver iterations to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sunglide [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Use -lat and -lon to set a real location.")
	}

	tz, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", *tzName, err)
	}
	date := parseDate(*dateS, tz)

	ctx := newContext(*verbose)
	coords := sunglide.Coordinates{Lat: *lat, Lon: *lon}

	var opts []sunglide.Option
	if *twilight != "" {
		kind, err := sunglide.ParseTwilightKind(strings.ToLower(*twilight))
		if err != nil {
			log.Fatal(err)
		}
		alt, _ := kind.Altitude()
		opts = append(opts, sunglide.WithAltitude(alt))
	}

	if err := validateDays(*days); err != nil {
		log.Fatal(err)
	}
	results, err := sunglide.ForRange(ctx, coords, date, *days, opts...)
	if err != nil {
		exitOnError(err)
	}
	if *days == 1 && errors.Is(results[0].Err, sunglide.ErrNoRiseNoSet) {
		exitOnError(results[0].Err)
	}

	rows := make([]row, len(results))
	for i, d := range results {
		rows[i] = newRow(d, tz)
	}

	if *jsonOut {
		printJSON(coords, tz, *event, rows)
	} else {
		printHuman(coords, tz, *event, *twilight, rows)
	}
}

func validateDays(n int) error {
	if n < 1 || n > sunglide.MaxRangeDays {
		return fmt.Errorf("invalid -days %d: not in 1..%d", n, sunglide.MaxRangeDays)
	}
	return nil
}

func parseDate(s string, tz *time.Location) time.Time {
	if s == "" {
		now := time.Now().In(tz)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		log.Fatalf("invalid -date %q: %v", s, err)
	}
	return date
}

func newContext(verbose bool) context.Context {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return ctxlog.NewJSONLogger(context.Background(), os.Stderr, &slog.HandlerOptions{Level: level})
}

func exitOnError(err error) {
	var ne *sunglide.NoEventError
	if errors.As(err, &ne) {
		fmt.Println(ne.Error())
		os.Exit(exitNoEvent)
	}
	log.Fatalf("error computing sunrise/sunset: %v", err)
}

// ---------------------
// Position subcommand
// ---------------------

func runPosition(args []string, env Defaults) {
	fs := flag.NewFlagSet("position", flag.ExitOnError)

	tzName := fs.String("tz", env.TZ, "IANA time zone name (e.g. America/Phoenix)")
	timeStr := fs.String("time", "", "Time in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sunglide position [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", *tzName, err)
	}

	var t time.Time
	if *timeStr == "" {
		t = time.Now().In(loc)
	} else {
		layouts := []string{
			time.RFC3339,
			"2006-01-02T15:04",
			"2006-01-02 15:04",
			"2006-01-02",
		}
		var parseErr error
		for _, layout := range layouts {
			t, parseErr = time.ParseInLocation(layout, *timeStr, loc)
			if parseErr == nil {
				break
			}
		}
		if parseErr != nil {
			log.Fatalf("could not parse -time %q: %v", *timeStr, parseErr)
		}
	}

	eq := sunglide.SunPosition(t)
	fmt.Printf("Sun at %s (%s)\n", t.Format(time.RFC3339), loc.String())
	fmt.Printf("  RA  : %.5f° (%s)\n", eq.RA, sunglide.FormatFraction(eq.RA/360))
	fmt.Printf("  Dec : %+.5f°\n", eq.Dec)
}

// ---------------------
// Shared helpers
// ---------------------

type row struct {
	Date    string     `json:"date"` // YYYY-MM-DD, UT
	Rise    *time.Time `json:"rise,omitempty"`
	Transit *time.Time `json:"transit,omitempty"`
	Set     *time.Time `json:"set,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func newRow(d sunglide.Day, tz *time.Location) row {
	r := row{Date: d.Date.Format(time.DateOnly)}
	if d.Err != nil {
		r.Error = d.Err.Error()
		if errors.Is(d.Err, sunglide.ErrNoRiseNoSet) {
			return r
		}
	}
	// Off-day events still carry their times.
	rise, transit, set := d.Rise.In(tz), d.Transit.In(tz), d.Set.In(tz)
	r.Rise, r.Transit, r.Set = &rise, &transit, &set
	return r
}

// selected returns which of rise, transit and set the -event flag asks for.
func selected(event string) (rise, transit, set bool) {
	switch strings.ToLower(event) {
	case "rise":
		return true, false, false
	case "set":
		return false, false, true
	case "transit":
		return false, true, false
	case "all":
		return true, true, true
	case "both":
	default:
		fmt.Fprintf(os.Stderr, "unknown event %q, showing both\n", event)
	}
	return true, false, true
}

func printHuman(coords sunglide.Coordinates, tz *time.Location, event, twilight string, rows []row) {
	title := "Sun rise/set"
	if twilight != "" {
		title = strings.ToLower(twilight) + " twilight (dawn/dusk)"
	}
	fmt.Printf("%s for lat=%.6f lon=%.6f (%s)\n\n", title, coords.Lat, coords.Lon, tz)

	wantRise, wantTransit, wantSet := selected(event)
	for _, r := range rows {
		fmt.Printf("Date: %s\n", r.Date)
		if r.Rise == nil {
			fmt.Printf("  %s\n", r.Error)
			continue
		}
		if wantRise {
			fmt.Printf("  Rise:    %s\n", r.Rise.Format(time.RFC3339))
		}
		if wantTransit {
			fmt.Printf("  Transit: %s\n", r.Transit.Format(time.RFC3339))
		}
		if wantSet {
			fmt.Printf("  Set:     %s\n", r.Set.Format(time.RFC3339))
		}
		if r.Error != "" {
			fmt.Printf("  note: %s\n", r.Error)
		}
	}
}

type jsonOutput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Days      []row   `json:"days"`
}

func printJSON(coords sunglide.Coordinates, tz *time.Location, event string, rows []row) {
	wantRise, wantTransit, wantSet := selected(event)
	for i := range rows {
		if !wantRise {
			rows[i].Rise = nil
		}
		if !wantTransit {
			rows[i].Transit = nil
		}
		if !wantSet {
			rows[i].Set = nil
		}
	}

	out := jsonOutput{
		Latitude:  coords.Lat,
		Longitude: coords.Lon,
		Timezone:  tz.String(),
		Days:      rows,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
