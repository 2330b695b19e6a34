package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	relativeInRe  = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	relativeAgoRe = regexp.MustCompile(`^(\d+) (day|days|week|weeks|month|months) ago$`)
	epochMsRe     = regexp.MustCompile(`^\d{10,}$`)
)

// Parser resolves the date expressions accepted on the command line and in API filters
// ("today", "in 2 weeks", "3 days ago", "next monday", "2025-04-17", epoch milliseconds)
// into instants in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for the given IANA timezone, e.g. "America/Los_Angeles".
func NewParser(timezone string) (*Parser, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts expr to an absolute time relative to baseTime. Calendar expressions resolve
// to the start of that day in the parser's timezone; epoch milliseconds are returned as is.
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "", "now":
		return baseTime, nil
	case "today":
		return p.StartOfDay(baseTime), nil
	case "tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.StartOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if epochMsRe.MatchString(expr) {
		ms, err := strconv.ParseInt(expr, 10, 64)
		if err != nil {
			return baseTime, fmt.Errorf("invalid epoch milliseconds %q: %w", expr, err)
		}
		return time.UnixMilli(ms).In(p.location), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", expr, p.location); err == nil {
		return t, nil
	}

	if m := relativeInRe.FindStringSubmatch(expr); m != nil {
		return p.shift(baseTime, m[1], m[2], 1)
	}
	if m := relativeAgoRe.FindStringSubmatch(expr); m != nil {
		return p.shift(baseTime, m[1], m[2], -1)
	}

	if strings.HasPrefix(expr, "next ") {
		return p.parseNextWeekday(strings.TrimPrefix(expr, "next "), baseTime)
	}

	return baseTime, fmt.Errorf("unrecognised date expression %q", expr)
}

// ParseMs is Parse returning milliseconds since epoch.
func (p *Parser) ParseMs(expr string, baseTime time.Time) (int64, error) {
	t, err := p.Parse(expr, baseTime)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func (p *Parser) shift(baseTime time.Time, amountStr, unit string, sign int) (time.Time, error) {
	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return baseTime, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	amount *= sign

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.StartOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.StartOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.StartOfDay(baseTime.AddDate(0, amount, 0)), nil
	}
	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

func (p *Parser) parseNextWeekday(dayName string, baseTime time.Time) (time.Time, error) {
	target, ok := weekdayNames[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	daysUntil := int(target - baseTime.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return p.StartOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// StartOfDay returns midnight of t's calendar day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	return StartOfDay(t, p.location)
}

// EndOfDay returns the last millisecond of t's calendar day in the parser's timezone.
func (p *Parser) EndOfDay(t time.Time) time.Time {
	return StartOfDay(t, p.location).AddDate(0, 0, 1).Add(-time.Millisecond)
}
