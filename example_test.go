package sunglide_test

import (
	"context"
	"fmt"
	"time"

	"github.com/thurmanmarka/sunglide"
)

// ExampleSlideIntoSunset demonstrates computing sunrise and sunset for a location.
func ExampleSlideIntoSunset() {
	loc := sunglide.Coordinates{
		Lat: 40.7128,  // New York City latitude
		Lon: -74.0060, // New York City longitude
	}

	// Use a local date; the time zone is taken from the date's Location.
	locNY, _ := time.LoadLocation("America/New_York")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locNY)

	rs, err := sunglide.SlideIntoSunset(loc, date)
	if err != nil {
		panic(err)
	}

	fmt.Println("Sunrise:", rs.Rise.Format(time.RFC3339))
	fmt.Println("Sunset:", rs.Set.Format(time.RFC3339))
}

// ExampleRiseSetFor demonstrates choosing a different altitude.
func ExampleRiseSetFor() {
	loc := sunglide.Coordinates{
		Lat: 33.4484,   // Phoenix, AZ
		Lon: -112.0740, // Phoenix longitude
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locPHX)

	// Geometric rise and set of the Sun's center, without refraction.
	rs, err := sunglide.RiseSetFor(loc, date, sunglide.WithAltitude(0))
	if err != nil {
		panic(err)
	}

	fmt.Println("Rise:", rs.Rise.Format(time.RFC3339))
	fmt.Println("Set:", rs.Set.Format(time.RFC3339))
}

// ExampleDaylightHours demonstrates calculating daylight duration.
func ExampleDaylightHours() {
	loc := sunglide.Coordinates{
		Lat: 33.4484,   // Phoenix, AZ
		Lon: -112.0740, // Phoenix longitude
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")

	// Summer solstice
	summer := time.Date(2025, time.June, 21, 0, 0, 0, 0, locPHX)
	summerHours, _ := sunglide.DaylightHours(loc, summer)
	fmt.Printf("Summer solstice daylight: %.2f hours\n", summerHours)

	// Winter solstice
	winter := time.Date(2025, time.December, 21, 0, 0, 0, 0, locPHX)
	winterHours, _ := sunglide.DaylightHours(loc, winter)
	fmt.Printf("Winter solstice daylight: %.2f hours\n", winterHours)
}

// ExampleFractions prints the UT times of sunrise, transit and sunset in
// Ústí nad Labem.
func ExampleFractions() {
	usti := sunglide.Coordinates{Lat: 50.6611, Lon: 14.0531}
	date := time.Date(2019, time.September, 17, 0, 0, 0, 0, time.UTC)

	f, err := sunglide.Fractions(context.Background(), usti, date)
	if err != nil {
		panic(err)
	}
	fmt.Println("rise   ", sunglide.FormatFraction(f.Rise))
	fmt.Println("transit", sunglide.FormatFraction(f.Transit))
	fmt.Println("set    ", sunglide.FormatFraction(f.Set))
}

func ExampleFormatFraction() {
	fmt.Println(sunglide.FormatFraction(0.19611))
	fmt.Println(sunglide.FormatFraction(0.75))
	// Output:
	// 04:42:24
	// 18:00:00
}
