package shifts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

func baseGlobal() domain.GlobalConfig {
	return domain.GlobalConfig{
		Year:             2025,
		Month:            time.January,
		DayStart:         6 * time.Hour,
		NightStart:       21 * time.Hour,
		ShiftLengthHours: 12,
		ShiftStartTime:   6 * time.Hour,
	}
}

func TestGenerate_SinglePostMinimumViable(t *testing.T) {
	// Scenario 1 from spec.md: one post, January 2025, 12h rotation.
	cfg := domain.Config{
		Global: baseGlobal(),
		Holidays: []domain.Holiday{
			{Date: calendar.Date{Year: 2025, Month: time.January, Day: 1}, Description: "New Year"},
		},
		Posts: []domain.Post{
			{PostID: "P1", Name: "Main Gate", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: true},
		},
	}

	got, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, got, 62) // 31 days * 2 slots

	sundayShifts := 0
	holidayShifts := 0
	for _, s := range got {
		if s.IsSunday {
			sundayShifts++
		}
		if s.IsHoliday {
			holidayShifts++
		}
	}
	// 4 Sundays * 2 slots, plus the 4 Saturday NIGHT shifts (18:00-06:00)
	// that run into a Sunday morning.
	require.Equal(t, 12, sundayShifts)
	require.Equal(t, 2, holidayShifts) // Jan 1 * 2 slots
}

func TestGenerate_RespectsAllowFlags(t *testing.T) {
	cfg := domain.Config{
		Global: baseGlobal(),
		Posts: []domain.Post{
			{PostID: "P1", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: false},
		},
	}
	cfg.Global.Year, cfg.Global.Month = 2025, time.February

	got, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, got, calendar.DaysInMonth(2025, time.February))
	for _, s := range got {
		require.Equal(t, domain.SlotDay, s.Slot)
	}
}

func TestGenerate_EightHourRotation(t *testing.T) {
	cfg := domain.Config{
		Global: domain.GlobalConfig{
			Year: 2025, Month: time.March,
			DayStart: 6 * time.Hour, NightStart: 21 * time.Hour,
			ShiftLengthHours: 8, ShiftStartTime: 6 * time.Hour,
		},
		Posts: []domain.Post{
			{PostID: "P1", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: true},
		},
	}

	got, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, got, 31*3)

	labels := map[domain.SlotLabel]int{}
	for _, s := range got {
		if s.AnchorDate.Day == 1 {
			labels[s.Slot]++
		}
	}
	require.Equal(t, 2, labels[domain.SlotDay])
	require.Equal(t, 1, labels[domain.SlotNight])
}

func TestShiftID_Format(t *testing.T) {
	cfg := domain.Config{
		Global: baseGlobal(),
		Posts: []domain.Post{
			{PostID: "GATE", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: true},
		},
	}
	got, err := Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, "GATE_20250101_DAY", got[0].ShiftID)
	require.Equal(t, "GATE_20250101_NIGHT", got[1].ShiftID)
}

func TestConflicts_OverlapAndAbut(t *testing.T) {
	cfg := domain.Config{
		Global: baseGlobal(),
		Posts: []domain.Post{
			{PostID: "P1", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: true},
		},
	}
	all, err := Generate(cfg)
	require.NoError(t, err)

	pairs := Conflicts(all)
	require.NotEmpty(t, pairs)

	// Day-1 DAY and Day-1 NIGHT abut (06:00-18:00, 18:00-06:00) -> conflict.
	found := false
	for _, p := range pairs {
		if (p.ShiftA == "P1_20250101_DAY" && p.ShiftB == "P1_20250101_NIGHT") ||
			(p.ShiftB == "P1_20250101_DAY" && p.ShiftA == "P1_20250101_NIGHT") {
			found = true
		}
	}
	require.True(t, found)

	// Day-1 DAY and Day-2 DAY (24h apart, same duration) never conflict.
	for _, p := range pairs {
		require.False(t, p.ShiftA == "P1_20250101_DAY" && p.ShiftB == "P1_20250102_DAY")
	}
}

func TestConflicts_SortedOutput(t *testing.T) {
	cfg := domain.Config{
		Global: baseGlobal(),
		Posts: []domain.Post{
			{PostID: "P1", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: true},
		},
	}
	all, err := Generate(cfg)
	require.NoError(t, err)

	pairs := Conflicts(all)
	for i := 1; i < len(pairs); i++ {
		prev, cur := pairs[i-1], pairs[i]
		require.True(t, prev.ShiftA < cur.ShiftA || (prev.ShiftA == cur.ShiftA && prev.ShiftB <= cur.ShiftB))
	}
}
