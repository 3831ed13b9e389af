package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	keep94 "github.com/keep94/sunrise"
	gosunrise "github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/sunglide"
)

// reference is one day of expected rise/set times.
type reference struct {
	date      time.Time // local midnight
	rise, set time.Time
}

// The reference CSV format is:
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//	2025-01-02,07:32,17:13
//
// - date is YYYY-MM-DD
// - rise/set are local times in HH:MM or HH:MM:SS (24-hour clock)
// - All times are assumed to be in the timezone given by -tz.
//
// With -oracle, the reference is computed by another library instead.
func main() {
	var (
		lat      = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		tzName   = flag.String("tz", "UTC", "IANA time zone name (e.g. America/Phoenix)")
		refCSV   = flag.String("refcsv", "", "path to reference ephemeris CSV file (date,rise,set)")
		oracle   = flag.String("oracle", "", "compare against a library instead: go-sunrise or keep94")
		fromS    = flag.String("from", "", "first date for -oracle, YYYY-MM-DD (default: January 1st this year)")
		days     = flag.Int("days", 365, "number of days for -oracle")
		verbose  = flag.Bool("verbose", false, "log per-day errors instead of only summary")
		twilight = flag.String("twilight", "", "twilight kind: civil, nautical, astronomical (CSV only)")
		outCSV   = flag.String("outcsv", "", "optional path to write per-row error CSV")
	)

	flag.Parse()

	if (*refCSV == "") == (*oracle == "") {
		log.Fatalf("exactly one of -refcsv or -oracle is required")
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", *tzName, err)
	}

	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}

	modeDesc := "SUN"
	var opts []sunglide.Option
	if *twilight != "" {
		if *oracle != "" {
			log.Fatalf("-twilight is only supported with -refcsv")
		}
		kind, err := sunglide.ParseTwilightKind(strings.ToLower(*twilight))
		if err != nil {
			log.Fatal(err)
		}
		alt, _ := kind.Altitude()
		opts = append(opts, sunglide.WithAltitude(alt))
		modeDesc = fmt.Sprintf("SUN (%s TWILIGHT)", strings.ToUpper(kind.String()))
	}

	var (
		refs    []reference
		skipped int
	)
	switch {
	case *refCSV != "":
		f, err := os.Open(*refCSV)
		if err != nil {
			log.Fatalf("failed to open refcsv %q: %v", *refCSV, err)
		}
		refs, skipped, err = readReference(f, loc)
		f.Close()
		if err != nil {
			log.Fatalf("failed to read CSV: %v", err)
		}
	default:
		from := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, loc)
		if *fromS != "" {
			from, err = time.ParseInLocation(time.DateOnly, *fromS, loc)
			if err != nil {
				log.Fatalf("invalid -from %q: %v", *fromS, err)
			}
		}
		refs, err = oracleReference(*oracle, *lat, *lon, from, *days)
		if err != nil {
			log.Fatal(err)
		}
		modeDesc = fmt.Sprintf("SUN vs %s", *oracle)
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"date",
			"mode",
			"rise_err",
			"set_err",
			"rise_signed",
			"set_signed",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	var (
		riseStats       stats
		setStats        stats
		riseSignedStats stats
		setSignedStats  stats
	)

	coords := sunglide.Coordinates{Lat: *lat, Lon: *lon}

	for _, ref := range refs {
		dateStr := ref.date.Format(time.DateOnly)

		rs, err := sunglide.RiseSetFor(coords, ref.date, opts...)
		if err != nil {
			log.Printf("%s: sunglide error: %v, skipping", dateStr, err)
			skipped++
			continue
		}

		gotRise := rs.Rise.In(loc)
		gotSet := rs.Set.In(loc)

		riseErr := diffMinutes(gotRise, ref.rise)
		setErr := diffMinutes(gotSet, ref.set)
		riseSigned := diffMinutesSigned(gotRise, ref.rise)
		setSigned := diffMinutesSigned(gotSet, ref.set)

		riseStats.add(riseErr)
		setStats.add(setErr)
		riseSignedStats.add(riseSigned)
		setSignedStats.add(setSigned)

		if *verbose {
			fmt.Printf("%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				dateStr, modeDesc,
				riseErr, gotRise.Format(time.TimeOnly), ref.rise.Format(time.TimeOnly),
				setErr, gotSet.Format(time.TimeOnly), ref.set.Format(time.TimeOnly))
		}

		if outWriter != nil {
			rec := []string{
				dateStr,
				modeDesc,
				fmt.Sprintf("%.6f", riseErr),
				fmt.Sprintf("%.6f", setErr),
				fmt.Sprintf("%.6f", riseSigned),
				fmt.Sprintf("%.6f", setSigned),
			}
			if err := outWriter.Write(rec); err != nil {
				log.Printf("%s: failed to write outcsv: %v", dateStr, err)
			}
		}
	}

	fmt.Println("=== sunglide profiler summary ===")
	fmt.Printf("Mode:    %s\n", modeDesc)
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("TZ:      %s\n", loc.String())
	fmt.Printf("Rows:    %d (processed), %d skipped\n", riseStats.count, skipped)

	if riseStats.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	riseStats.print(os.Stdout, "Rise error (minutes)")
	setStats.print(os.Stdout, "Set error (minutes)")
	riseSignedStats.print(os.Stdout, "Rise signed error (minutes, our - ref)")
	setSignedStats.print(os.Stdout, "Set signed error (minutes, our - ref)")
}

// readReference parses the reference CSV. Malformed rows are logged and
// counted in skipped.
func readReference(r io.Reader, loc *time.Location) (refs []reference, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(records[0][0], "date") {
		startIdx = 1
	}

	for i := startIdx; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			log.Printf("row %d: expected at least 3 columns (date,rise,set), got %d, skipping", i+1, len(row))
			skipped++
			continue
		}
		dateStr := strings.TrimSpace(row[0])
		date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
		if err != nil {
			log.Printf("row %d: invalid date %q: %v, skipping", i+1, dateStr, err)
			skipped++
			continue
		}
		rise, err := parseLocalTime(date, strings.TrimSpace(row[1]), loc)
		if err != nil {
			log.Printf("row %d: invalid rise time %q: %v, skipping", i+1, row[1], err)
			skipped++
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(row[2]), loc)
		if err != nil {
			log.Printf("row %d: invalid set time %q: %v, skipping", i+1, row[2], err)
			skipped++
			continue
		}
		refs = append(refs, reference{date: date, rise: rise, set: set})
	}
	return refs, skipped, nil
}

// oracleReference computes reference rise/set times with another sunrise
// library for days consecutive local dates starting at from.
func oracleReference(name string, lat, lon float64, from time.Time, days int) ([]reference, error) {
	loc := from.Location()
	refs := make([]reference, 0, days)
	var k keep94.Sunrise
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		ref := reference{date: date}
		switch name {
		case "go-sunrise":
			rise, set := gosunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())
			ref.rise, ref.set = rise.In(loc), set.In(loc)
		case "keep94":
			k.Around(lat, lon, date.Add(12*time.Hour))
			ref.rise, ref.set = k.Sunrise().In(loc), k.Sunset().In(loc)
		default:
			return nil, fmt.Errorf("unknown oracle %q (use go-sunrise or keep94)", name)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseLocalTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	// Expect HH:MM (optionally HH:MM:SS).
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	// Combine parsed clock time with date.
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}
