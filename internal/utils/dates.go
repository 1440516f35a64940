package utils

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOnly returns the calendar date of t as midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ISOWeek returns the ISO-8601 year and week number of the calendar date of t.
func ISOWeek(t time.Time) (year, week int) {
	return DateOnly(t).ISOWeek()
}
