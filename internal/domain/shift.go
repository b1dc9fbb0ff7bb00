package domain

import (
	"time"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
)

// SlotLabel distinguishes the DAY and NIGHT rotation slots that make up a
// shift ID (spec.md §3 "Shift").
type SlotLabel string

const (
	SlotDay   SlotLabel = "DAY"
	SlotNight SlotLabel = "NIGHT"
)

// Shift is one generated coverage slot: a post, an anchor date, a
// start/end time-of-day, and the per-calendar-date hour breakdown C1
// computed for its interval.
type Shift struct {
	ShiftID string

	PostID      string
	AnchorDate  calendar.Date
	StartOffset time.Duration // offset from midnight of AnchorDate
	DurationHrs int
	Slot        SlotLabel

	// IsSunday/IsHoliday are true iff any touched date in HoursByDay
	// satisfies the predicate (spec.md §4.2).
	IsSunday  bool
	IsHoliday bool

	HoursByDay map[calendar.Date]calendar.DayHours
}

// Start returns the shift's start instant in loc.
func (s Shift) Start(loc *time.Location) time.Time {
	return s.AnchorDate.Time(loc).Add(s.StartOffset)
}

// End returns the shift's end instant in loc.
func (s Shift) End(loc *time.Location) time.Time {
	return s.Start(loc).Add(time.Duration(s.DurationHrs) * time.Hour)
}

// IsNight reports whether the shift is labelled NIGHT (spec.md: "is_night
// from slot label").
func (s Shift) IsNight() bool {
	return s.Slot == SlotNight
}

// NightHours sums the night-bucket hours across every date the shift
// touches, used by the centihour night-hour coefficient (spec.md §4.4
// constraint 8).
func (s Shift) NightHours() float64 {
	var total float64
	for _, dh := range s.HoursByDay {
		total += dh.NightHours
	}
	return total
}

// HolidayHours sums TotalHours over dates flagged as holidays.
func (s Shift) HolidayHours() float64 {
	var total float64
	for _, dh := range s.HoursByDay {
		if dh.IsHoliday {
			total += dh.TotalHours
		}
	}
	return total
}

// SundayHours sums TotalHours over dates flagged as Sunday.
func (s Shift) SundayHours() float64 {
	var total float64
	for _, dh := range s.HoursByDay {
		if dh.IsSunday {
			total += dh.TotalHours
		}
	}
	return total
}

// ConflictPair is an ordered pair of shift IDs (ShiftA < ShiftB
// lexicographically) that cannot be served by the same employee
// (spec.md §4.3).
type ConflictPair struct {
	ShiftA string
	ShiftB string
}
