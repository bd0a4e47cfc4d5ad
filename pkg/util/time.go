package util

import (
	"time"
)

const JourneyDateLayout = "2006-01-02"

// JourneyDate formats the calendar date of t the way the backend expects it.
func JourneyDate(t time.Time) string {
	return t.Format(JourneyDateLayout)
}

// ParseJourneyDate treats an empty string as the current day of now.
func ParseJourneyDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	return time.ParseInLocation(JourneyDateLayout, s, now.Location())
}
