package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

func sundayDate(day int) calendar.Date {
	return calendar.Date{Year: 2025, Month: time.January, Day: day}
}

func TestCountDistinctSundays_NoSundays(t *testing.T) {
	shiftList := []domain.Shift{
		{
			ShiftID: "S1",
			HoursByDay: map[calendar.Date]calendar.DayHours{
				sundayDate(6): {Date: sundayDate(6), TotalHours: 12, IsSunday: false},
			},
		},
	}
	require.Equal(t, 0, countDistinctSundays(shiftList))
}

func TestCountDistinctSundays_DistinctAcrossShifts(t *testing.T) {
	// Jan 2025: Sundays fall on 5, 12, 19, 26.
	shiftList := []domain.Shift{
		{
			ShiftID: "S1",
			HoursByDay: map[calendar.Date]calendar.DayHours{
				sundayDate(5): {Date: sundayDate(5), TotalHours: 12, IsSunday: true},
			},
		},
		{
			ShiftID: "S2",
			HoursByDay: map[calendar.Date]calendar.DayHours{
				sundayDate(12): {Date: sundayDate(12), TotalHours: 12, IsSunday: true},
			},
		},
	}
	require.Equal(t, 2, countDistinctSundays(shiftList))
}

func TestCountDistinctSundays_SameDateNotDoubleCounted(t *testing.T) {
	// Two distinct shifts (e.g. a Saturday NIGHT shift ending Sunday
	// morning and a Sunday shift) can touch the same Sunday date; the
	// result must dedup by date, not by shift.
	shiftList := []domain.Shift{
		{
			ShiftID: "S1",
			HoursByDay: map[calendar.Date]calendar.DayHours{
				sundayDate(5): {Date: sundayDate(5), TotalHours: 6, IsSunday: true},
			},
		},
		{
			ShiftID: "S2",
			HoursByDay: map[calendar.Date]calendar.DayHours{
				sundayDate(5): {Date: sundayDate(5), TotalHours: 6, IsSunday: true},
			},
		},
	}
	require.Equal(t, 1, countDistinctSundays(shiftList))
}

func TestCountDistinctSundays_ZeroHoursIgnored(t *testing.T) {
	// A Sunday entry with zero hours (DecomposeInterval never emits one,
	// but a hand-built shift can carry it) shouldn't count as worked
	// exposure.
	shiftList := []domain.Shift{
		{
			ShiftID: "S1",
			HoursByDay: map[calendar.Date]calendar.DayHours{
				sundayDate(5): {Date: sundayDate(5), TotalHours: 0, IsSunday: true},
			},
		},
	}
	require.Equal(t, 0, countDistinctSundays(shiftList))
}
