// Package calendar decomposes a time interval into per-calendar-date
// day/night/Sunday/holiday hour buckets.
package calendar

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time-of-day or location component.
// Shifts are anchored to dates, not instants, so the rest of the module
// keys everything by Date rather than time.Time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the midnight instant of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Weekday reports d's day of week.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// IsSunday reports whether d falls on a Sunday.
func (d Date) IsSunday() bool {
	return d.Weekday() == time.Sunday
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time(time.UTC).After(other.Time(time.UTC))
}

// String renders d as YYYYMMDD, the format used inside shift IDs.
func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// DaysInMonth returns the number of days in the given year/month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SundaysInMonth returns every Sunday date in the given year/month, in
// ascending order. Used by the model builder to index worked_sunday
// indicators.
func SundaysInMonth(year int, month time.Month) []Date {
	var out []Date
	numDays := DaysInMonth(year, month)
	for day := 1; day <= numDays; day++ {
		d := Date{Year: year, Month: month, Day: day}
		if d.IsSunday() {
			out = append(out, d)
		}
	}
	return out
}

// HolidaySet is a set of holiday dates with their description, used for
// O(1) membership checks while decomposing shifts.
type HolidaySet map[Date]string

// NewHolidaySet builds a HolidaySet from (date, description) pairs.
func NewHolidaySet(dates []Date, descriptions []string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for i, d := range dates {
		desc := ""
		if i < len(descriptions) {
			desc = descriptions[i]
		}
		set[d] = desc
	}
	return set
}

// Contains reports whether d is a holiday.
func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d]
	return ok
}
