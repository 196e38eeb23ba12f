package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/FarmStand-PickupService/pkg/types"
)

// CapacityRule pickup capacity for one weekday (0 = Sunday)
type CapacityRule struct {
	Weekday         time.Weekday
	BasePickups     int
	OccupiedPickups int
}

// CapacityFor returns the capacity for a day with the given occupancy
func (r CapacityRule) CapacityFor(occupied bool) int {
	if occupied {
		return r.OccupiedPickups
	}
	return r.BasePickups
}

// OccupancySignal says whether the venue is booked on a day
type OccupancySignal struct {
	Day      time.Time
	Occupied bool
}

// PickupWindow is a recurring template of slots for a weekday
type PickupWindow struct {
	ID          int64
	Weekday     time.Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	SlotMinutes int
	Active      bool
}

// Validate checks that the window can produce slots
func (w PickupWindow) Validate() error {
	if w.SlotMinutes <= 0 {
		return fmt.Errorf("%w: slot_minutes must be positive, got %d", ErrInvalidWindow, w.SlotMinutes)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidWindow, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidWindow, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: start_time %s is not before end_time %s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}
	return nil
}

// SlotStarts enumerates slot start timestamps on day, stepping SlotMinutes
// from StartTime while strictly before EndTime.
func (w PickupWindow) SlotStarts(day time.Time) ([]time.Time, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	start, _ := w.StartTime.Minutes()
	end, _ := w.EndTime.Minutes()

	base := DayOf(day)
	starts := make([]time.Time, 0, (end-start+w.SlotMinutes-1)/w.SlotMinutes)
	for m := start; m < end; m += w.SlotMinutes {
		starts = append(starts, time.Date(base.Year(), base.Month(), base.Day(), m/60, m%60, 0, 0, base.Location()))
	}
	return starts, nil
}
