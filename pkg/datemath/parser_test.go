package datemath_test

import (
	"testing"
	"time"

	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	if _, err := datemath.NewParser("America/Los_Angeles"); err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}
	if _, err := datemath.NewParser("Invalid/Timezone"); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expr    string
		want    time.Time
		wantErr bool
	}{
		{name: "empty is now", expr: "", want: baseTime},
		{name: "today", expr: "today", want: startOfBase},
		{name: "tomorrow", expr: "Tomorrow", want: startOfBase.AddDate(0, 0, 1)},
		{name: "yesterday", expr: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "in 3 days", expr: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "in 2 weeks", expr: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "in 1 month", expr: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "2 weeks ago", expr: "2 weeks ago", want: startOfBase.AddDate(0, 0, -14)},
		{name: "calendar date", expr: "2025-04-17", want: time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC)},
		{name: "epoch ms", expr: "1744891200000", want: time.UnixMilli(1744891200000)},
		{name: "next monday from wednesday", expr: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "next wednesday from wednesday", expr: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "invalid duration", expr: "in a few days", want: baseTime, wantErr: true},
		{name: "invalid weekday", expr: "next funday", want: baseTime, wantErr: true},
		{name: "unknown", expr: "some random day", want: baseTime, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.expr, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMs(t *testing.T) {
	parser, _ := datemath.NewParser("America/Los_Angeles")
	got, err := parser.ParseMs("2025-04-17", time.Now())
	if err != nil {
		t.Fatalf("ParseMs() error = %v", err)
	}
	want := time.Date(2025, 4, 17, 0, 0, 0, 0, parser.Location()).UnixMilli()
	if got != want {
		t.Errorf("ParseMs() = %d, want %d", got, want)
	}
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	if got := parser.EndOfDay(base); !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
