package calendar

import "time"

// DayHours is the contribution of a single calendar date to a shift or
// other time interval: how many hours fall on that date, how many of
// those are day vs. night hours, and whether the date is a Sunday or a
// configured holiday.
//
// Invariants (enforced by DecomposeInterval, not re-checked by callers):
// DayHoursAmt + NightHours == TotalHours; TotalHours > 0.
type DayHours struct {
	Date       Date
	TotalHours float64
	DayHoursAmt float64
	NightHours  float64
	IsSunday    bool
	IsHoliday   bool
}

// DecomposeInterval walks [start, end) one calendar day at a time and
// returns, for every date the interval touches, the day/night/Sunday/
// holiday breakdown of the hours worked on that date.
//
// dayStart and nightStart are offsets from midnight (e.g. 6*time.Hour for
// 06:00); dayStart must be <= nightStart. The night window is
// [nightStart, 24:00) ∪ [00:00, dayStart) — it wraps across midnight.
//
// DecomposeInterval never emits an entry with TotalHours == 0: an
// interval that exactly touches a date boundary without crossing into it
// contributes nothing for that date.
func DecomposeInterval(start, end time.Time, dayStart, nightStart time.Duration, holidays HolidaySet) map[Date]DayHours {
	result := make(map[Date]DayHours)
	if !end.After(start) {
		return result
	}

	cursor := start
	for cursor.Before(end) {
		date := DateOf(cursor)
		midnightNext := date.AddDays(1).Time(cursor.Location())

		dayEnd := end
		if midnightNext.Before(dayEnd) {
			dayEnd = midnightNext
		}

		total := dayEnd.Sub(cursor).Hours()
		if total > 0 {
			dayH, nightH := splitDayNight(cursor, dayEnd, date, dayStart, nightStart)
			result[date] = DayHours{
				Date:        date,
				TotalHours:  total,
				DayHoursAmt: dayH,
				NightHours:  nightH,
				IsSunday:    date.IsSunday(),
				IsHoliday:   holidays.Contains(date),
			}
		}

		cursor = dayEnd
	}

	return result
}

// splitDayNight splits the period [periodStart, periodEnd) — both known
// to fall within the single calendar date `date` — into day and night
// hours using the three half-open windows on date:
//
//	[00:00, dayStart)     -> night
//	[dayStart, nightStart) -> day
//	[nightStart, 24:00)   -> night
func splitDayNight(periodStart, periodEnd time.Time, date Date, dayStart, nightStart time.Duration) (dayHours, nightHours float64) {
	midnight := date.Time(periodStart.Location())
	dayWindowStart := midnight.Add(dayStart)
	dayWindowEnd := midnight.Add(nightStart)
	midnightNext := midnight.AddDate(0, 0, 1)

	overlapHours := func(aStart, aEnd, bStart, bEnd time.Time) float64 {
		start := aStart
		if bStart.After(start) {
			start = bStart
		}
		end := aEnd
		if bEnd.Before(end) {
			end = bEnd
		}
		if end.After(start) {
			return end.Sub(start).Hours()
		}
		return 0
	}

	dayHours = overlapHours(periodStart, periodEnd, dayWindowStart, dayWindowEnd)
	nightHours = overlapHours(periodStart, periodEnd, midnight, dayWindowStart)
	nightHours += overlapHours(periodStart, periodEnd, dayWindowEnd, midnightNext)

	return dayHours, nightHours
}
