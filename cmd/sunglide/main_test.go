package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/thurmanmarka/sunglide"
)

func TestValidateDays(t *testing.T) {
	for _, tc := range []struct {
		days int
		ok   bool
	}{
		{1, true},
		{sunglide.MaxRangeDays, true},
		{0, false},
		{-3, false},
		{sunglide.MaxRangeDays + 1, false},
		{1 << 40, false},
	} {
		err := validateDays(tc.days)
		if (err == nil) != tc.ok {
			t.Errorf("validateDays(%d) = %v", tc.days, err)
		}
		if err != nil && !strings.Contains(err.Error(), "not in 1..366") {
			t.Errorf("validateDays(%d): message %q", tc.days, err)
		}
	}
}

func TestNewRow(t *testing.T) {
	date := time.Date(2024, time.September, 7, 0, 0, 0, 0, time.UTC)
	rise := date.Add(14 * time.Hour)

	polar := newRow(sunglide.Day{Date: date, Err: &sunglide.NoEventError{AlwaysAbove: true}}, time.UTC)
	if polar.Rise != nil || polar.Error == "" {
		t.Errorf("polar row %+v", polar)
	}

	offDay := newRow(sunglide.Day{
		Date: date, Rise: rise, Transit: rise.Add(2 * time.Hour), Set: date.Add(-time.Minute),
		Err: &sunglide.OffDayError{Event: sunglide.Set, Fraction: -0.0007},
	}, time.UTC)
	if offDay.Rise == nil || !offDay.Rise.Equal(rise) || offDay.Set == nil {
		t.Errorf("off-day row lost its times: %+v", offDay)
	}
	if !strings.Contains(offDay.Error, "previous day") {
		t.Errorf("off-day note %q", offDay.Error)
	}

	if errors.Is(&sunglide.OffDayError{}, sunglide.ErrNoRiseNoSet) {
		t.Errorf("an off-day event must not exit as a polar day")
	}
}
