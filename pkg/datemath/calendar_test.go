package datemath_test

import (
	"testing"
	"time"

	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

func TestLocalNoon(t *testing.T) {
	la, err := datemath.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// 2025-03-08 23:30 local; DST starts 2025-03-09.
	start := time.Date(2025, 3, 8, 23, 30, 0, 0, la)

	tests := []struct {
		name   string
		offset int
		want   time.Time
	}{
		{name: "same day", offset: 0, want: time.Date(2025, 3, 8, 12, 0, 0, 0, la)},
		{name: "across dst", offset: 1, want: time.Date(2025, 3, 9, 12, 0, 0, 0, la)},
		{name: "month rollover", offset: 24, want: time.Date(2025, 4, 1, 12, 0, 0, 0, la)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := datemath.LocalNoon(start, tt.offset, la)
			if !got.Equal(tt.want) {
				t.Errorf("LocalNoon() = %v, want %v", got, tt.want)
			}
			if got.In(la).Hour() != 12 {
				t.Errorf("hour = %d, want 12", got.In(la).Hour())
			}
		})
	}
}

func TestLocalNoonUsesLocalCalendarDay(t *testing.T) {
	la, _ := datemath.LoadLocation("America/Los_Angeles")
	// 03:00 UTC on the 18th is still the 17th in Los Angeles.
	start := time.Date(2025, 4, 18, 3, 0, 0, 0, time.UTC)
	want := time.Date(2025, 4, 17, 12, 0, 0, 0, la)
	if got := datemath.LocalNoon(start, 0, la); !got.Equal(want) {
		t.Errorf("LocalNoon() = %v, want %v", got, want)
	}
}

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := datemath.ISOWeekday(monday.AddDate(0, 0, i)); got != i+1 {
			t.Errorf("ISOWeekday(+%d) = %d, want %d", i, got, i+1)
		}
	}
}

func TestLoadLocationOr(t *testing.T) {
	loc, err := datemath.LoadLocationOr("Not/AZone", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("location = %s, want UTC", loc)
	}

	loc, err = datemath.LoadLocationOr("Europe/Berlin", "UTC")
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("location = %v, err = %v", loc, err)
	}
}
