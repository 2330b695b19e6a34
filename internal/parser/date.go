package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	leadingDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:\s|$)`)
	clockTimeRe   = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)
)

// DateResult is the outcome of ExtractDate. Date is nil when the first line carries no date.
type DateResult struct {
	Date             *time.Time
	RemainingContent string
}

// ExtractDate pulls a leading YYYY-MM-DD (and optional clock time) off the first line of
// content. The time defaults to noon in loc. Only the first line is inspected.
func ExtractDate(content string, loc *time.Location) DateResult {
	if loc == nil {
		loc = time.UTC
	}

	lines := strings.Split(normalizeNewlines(content), "\n")
	first := strings.TrimSpace(lines[0])

	m := leadingDateRe.FindStringSubmatch(first)
	if m == nil {
		return DateResult{RemainingContent: content}
	}

	day, err := time.ParseInLocation("2006-01-02", m[1], loc)
	if err != nil {
		return DateResult{RemainingContent: content}
	}

	rest := strings.TrimSpace(first[len(m[0]):])
	hour, minute := 12, 0
	if tm := clockTimeRe.FindStringSubmatchIndex(rest); tm != nil {
		h, _ := strconv.Atoi(rest[tm[2]:tm[3]])
		mi, _ := strconv.Atoi(rest[tm[4]:tm[5]])
		if tm[6] >= 0 {
			switch strings.ToLower(rest[tm[6]:tm[7]]) {
			case "pm":
				if h < 12 {
					h += 12
				}
			case "am":
				if h == 12 {
					h = 0
				}
			}
		}
		if h <= 23 && mi <= 59 {
			hour, minute = h, mi
		}
		rest = strings.TrimSpace(rest[:tm[0]] + rest[tm[1]:])
	}

	date := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

	var remaining string
	if rest == "" {
		// Drop the emptied header and the blank lines under it.
		remaining = strings.TrimLeft(strings.Join(lines[1:], "\n"), "\n")
	} else {
		lines[0] = rest
		remaining = strings.Join(lines, "\n")
	}

	return DateResult{
		Date:             &date,
		RemainingContent: remaining,
	}
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
