package calendar

import "time"

// Event событие занятости площадки из iCal фида
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time // не включается
	AllDay  bool      // Start/End содержат только дату
}
