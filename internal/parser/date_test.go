package parser_test

import (
	"testing"
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/parser"
)

func TestExtractDate(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	at := func(h, m int) *time.Time {
		v := time.Date(2025, 4, 17, h, m, 0, 0, la)
		return &v
	}

	tests := []struct {
		name          string
		content       string
		wantDate      *time.Time
		wantRemaining string
	}{
		{
			name:          "date only defaults to noon",
			content:       "2025-04-17\n\nSquat\n100 x 5",
			wantDate:      at(12, 0),
			wantRemaining: "Squat\n100 x 5",
		},
		{
			name:          "24 hour time",
			content:       "2025-04-17 14:05\nSquat",
			wantDate:      at(14, 5),
			wantRemaining: "Squat",
		},
		{
			name:          "pm adds twelve hours",
			content:       "2025-04-17 6:30pm\nSquat",
			wantDate:      at(18, 30),
			wantRemaining: "Squat",
		},
		{
			name:          "12 pm stays noon",
			content:       "2025-04-17 12:15 PM\nSquat",
			wantDate:      at(12, 15),
			wantRemaining: "Squat",
		},
		{
			name:          "12 am is midnight",
			content:       "2025-04-17 12:15am\nSquat",
			wantDate:      at(0, 15),
			wantRemaining: "Squat",
		},
		{
			name:          "bare 12 is read as 24-hour noon",
			content:       "2025-04-17 12:40\nSquat",
			wantDate:      at(12, 40),
			wantRemaining: "Squat",
		},
		{
			name:          "title kept after date",
			content:       "2025-04-17 Leg day\nSquat",
			wantDate:      at(12, 0),
			wantRemaining: "Leg day\nSquat",
		},
		{
			name:          "time stripped from title",
			content:       "2025-04-17 7:00 am gym\nSquat",
			wantDate:      at(7, 0),
			wantRemaining: "gym\nSquat",
		},
		{
			name:          "no date on first line",
			content:       "Squat\n2025-04-17",
			wantRemaining: "Squat\n2025-04-17",
		},
		{
			name:          "date must be its own token",
			content:       "2025-04-17x\nSquat",
			wantRemaining: "2025-04-17x\nSquat",
		},
		{
			name:          "invalid calendar date",
			content:       "2025-13-40\nSquat",
			wantRemaining: "2025-13-40\nSquat",
		},
		{
			name:          "empty",
			content:       "",
			wantRemaining: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.ExtractDate(tt.content, la)

			if got.RemainingContent != tt.wantRemaining {
				t.Errorf("RemainingContent = %q, want %q", got.RemainingContent, tt.wantRemaining)
			}

			switch {
			case tt.wantDate == nil && got.Date != nil:
				t.Errorf("Date = %v, want nil", got.Date)
			case tt.wantDate != nil && got.Date == nil:
				t.Errorf("Date = nil, want %v", tt.wantDate)
			case tt.wantDate != nil && !got.Date.Equal(*tt.wantDate):
				t.Errorf("Date = %v, want %v", got.Date, tt.wantDate)
			}
		})
	}
}

func TestExtractDateNilLocation(t *testing.T) {
	got := parser.ExtractDate("2025-04-17", nil)
	if got.Date == nil {
		t.Fatal("expected a date")
	}
	want := time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", got.Date, want)
	}
	if got.RemainingContent != "" {
		t.Errorf("RemainingContent = %q, want empty", got.RemainingContent)
	}
}
