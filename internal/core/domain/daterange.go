package domain

import "time"

// RangeSelector chooses the analytics window.
type RangeSelector string

const (
	RangeWeekly  RangeSelector = "weekly"
	RangeMonthly RangeSelector = "monthly"
)

// ParseRangeSelector maps a raw query value to a selector. An empty value
// selects the weekly window. Unknown values are kept as-is and resolve to a
// zero-length window ending now.
func ParseRangeSelector(raw string) RangeSelector {
	if raw == "" {
		return RangeWeekly
	}
	return RangeSelector(raw)
}

func (s RangeSelector) IsMonthly() bool {
	return s == RangeMonthly
}

func (s RangeSelector) String() string {
	return string(s)
}

// DateRange is an inclusive [Start, End] interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolveDateRange computes the window for a selector ending at now.
func ResolveDateRange(selector RangeSelector, now time.Time) DateRange {
	start := now
	switch selector {
	case RangeWeekly:
		start = now.AddDate(0, 0, -7)
	case RangeMonthly:
		start = now.AddDate(0, -1, 0)
	}
	return DateRange{Start: start, End: now}
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfWeek returns midnight of the Sunday that begins the calendar week
// containing now, in loc.
func StartOfWeek(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()-int(local.Weekday()), 0, 0, 0, 0, loc)
}

// CurrentWeek is the range from StartOfWeek through now.
func CurrentWeek(now time.Time, loc *time.Location) DateRange {
	return DateRange{Start: StartOfWeek(now, loc), End: now}
}
