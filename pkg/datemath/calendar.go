package datemath

import "time"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// LocalNoon returns 12:00 local time on the calendar day that lies offsetDays after t's
// calendar day in loc. Day arithmetic is on calendar dates, so DST shifts never move the
// result off noon.
func LocalNoon(t time.Time, offsetDays int, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day()+offsetDays, 12, 0, 0, 0, loc)
}

// ISOWeekday maps time.Weekday onto 1=Monday..7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
