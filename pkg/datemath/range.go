package datemath

import (
	"fmt"
	"strings"
	"time"
)

// ParseRangeMs resolves optional start and end expressions into inclusive epoch millisecond
// bounds. Empty expressions yield nil. Calendar end expressions extend to the last millisecond
// of that day.
func (p *Parser) ParseRangeMs(start, end string, baseTime time.Time) (*int64, *int64, error) {
	var startMs, endMs *int64

	if s := strings.TrimSpace(start); s != "" {
		t, err := p.Parse(s, baseTime)
		if err != nil {
			return nil, nil, fmt.Errorf("start: %w", err)
		}
		ms := t.UnixMilli()
		startMs = &ms
	}

	if e := strings.TrimSpace(end); e != "" {
		t, err := p.Parse(e, baseTime)
		if err != nil {
			return nil, nil, fmt.Errorf("end: %w", err)
		}
		if isCalendarExpr(e) {
			t = p.EndOfDay(t)
		}
		ms := t.UnixMilli()
		endMs = &ms
	}

	if startMs != nil && endMs != nil && *startMs > *endMs {
		return nil, nil, fmt.Errorf("start %d is after end %d", *startMs, *endMs)
	}
	return startMs, endMs, nil
}

// isCalendarExpr reports whether expr names a whole day rather than an instant.
func isCalendarExpr(expr string) bool {
	expr = strings.ToLower(strings.TrimSpace(expr))
	if expr == "now" || epochMsRe.MatchString(expr) {
		return false
	}
	return true
}
