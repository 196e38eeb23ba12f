package domain

import "time"

// Default configuration values
const (
	DefaultGenerateWindowDays  = 14
	DefaultHoldTTL             = 15 * time.Minute
	DefaultOccupancyWindowDays = 60
)

// Business validation constants
const (
	MinAutoPauseThreshold = 0
	MaxAutoPauseThreshold = 100
	DaysInWeek            = 7
	MaxGenerateWindowDays = 90
)

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayTimeFormat = "3:04 PM"
)

// DayOf returns midnight of t's calendar day in t's location
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses YYYY-MM-DD as midnight in loc
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, loc)
}
