package datemath_test

import (
	"testing"
	"time"

	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
)

func TestParseRangeMs(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2025, 4, 20, 15, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) int64 { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli() }

	tests := []struct {
		name      string
		start     string
		end       string
		wantStart *int64
		wantEnd   *int64
		wantErr   bool
	}{
		{name: "both empty"},
		{
			name:      "calendar dates",
			start:     "2025-04-01",
			end:       "2025-04-30",
			wantStart: ptr(day(2025, 4, 1)),
			wantEnd:   ptr(day(2025, 5, 1) - 1),
		},
		{name: "epoch end is exact", end: "1745000000000", wantEnd: ptr(1745000000000)},
		{name: "relative start", start: "3 days ago", wantStart: ptr(day(2025, 4, 17))},
		{name: "inverted", start: "2025-04-30", end: "2025-04-01", wantErr: true},
		{name: "garbage", start: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parser.ParseRangeMs(tt.start, tt.end, base)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalPtr(start, tt.wantStart) {
				t.Errorf("start = %v, want %v", deref(start), deref(tt.wantStart))
			}
			if !equalPtr(end, tt.wantEnd) {
				t.Errorf("end = %v, want %v", deref(end), deref(tt.wantEnd))
			}
		})
	}
}

func ptr(v int64) *int64 { return &v }

func deref(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func equalPtr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
