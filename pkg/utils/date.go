package utils

import (
	"fmt"
	"time"
)

// DayOf truncates t to midnight of its calendar day in loc. All day grouping
// in one analysis run must use the same location.
func DayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayKey formats a day as YYYY-MM-DD, the canonical map key for per-day series.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// WindowBounds returns the inclusive day range [start, end] of a lookback
// window of windowDays calendar days ending on the day of asOf.
func WindowBounds(asOf time.Time, windowDays int, loc *time.Location) (time.Time, time.Time) {
	end := DayOf(asOf, loc)
	start := end.AddDate(0, 0, -(windowDays - 1))
	return start, end
}

func PrettyDate(date time.Time) string {
	return fmt.Sprintf("%02d %s %d", date.Day(), date.Month().String(), date.Year())
}
