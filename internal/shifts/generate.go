// Package shifts generates the full shift space for one planning month
// (spec.md §4.2, C2) and enumerates which shift pairs cannot be served by
// the same employee (spec.md §4.3, C3).
package shifts

import (
	"fmt"
	"sort"
	"time"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

type rotationSlot struct {
	offset time.Duration
	label  domain.SlotLabel
}

// rotation returns the shift-start/label pairs for one calendar day,
// given the configured shift length and anchor start time (spec.md
// §4.2). 12h and 8h lengths get the original's fixed rotations; any other
// length falls back to an evenly spaced 24/duration rotation, classifying
// each slot by whether its start falls inside the night window — this
// fallback branch is carried over from shift_generator.py's `else`
// clause, which spec.md's prose omits but which must survive because
// ShiftLengthHours is a general GlobalConfig field (SPEC_FULL.md §4.2).
func rotation(cfg domain.GlobalConfig) ([]rotationSlot, error) {
	switch cfg.ShiftLengthHours {
	case 12:
		return []rotationSlot{
			{cfg.ShiftStartTime, domain.SlotDay},
			{cfg.ShiftStartTime + 12*time.Hour, domain.SlotNight},
		}, nil
	case 8:
		return []rotationSlot{
			{cfg.ShiftStartTime, domain.SlotDay},
			{cfg.ShiftStartTime + 8*time.Hour, domain.SlotDay},
			{cfg.ShiftStartTime + 16*time.Hour, domain.SlotNight},
		}, nil
	default:
		if cfg.ShiftLengthHours <= 0 || 24%cfg.ShiftLengthHours != 0 {
			return nil, fmt.Errorf("shiftplan: shift_length_hours=%d does not evenly divide 24", cfg.ShiftLengthHours)
		}
		count := 24 / cfg.ShiftLengthHours
		slots := make([]rotationSlot, count)
		for i := 0; i < count; i++ {
			offset := (cfg.ShiftStartTime + time.Duration(i*cfg.ShiftLengthHours)*time.Hour) % (24 * time.Hour)
			label := domain.SlotDay
			if offset >= cfg.NightStart || offset < cfg.DayStart {
				label = domain.SlotNight
			}
			slots[i] = rotationSlot{offset: offset, label: label}
		}
		return slots, nil
	}
}

func allowsSlot(post domain.Post, label domain.SlotLabel) bool {
	if label == domain.SlotDay {
		return post.AllowDayShift
	}
	return post.AllowNightShift
}

// Generate emits every shift for cfg.Global.Year/Month, one per
// (post, day, rotation slot) combination allowed by the post's
// allow_day_shift/allow_night_shift flags.
func Generate(cfg domain.Config) ([]domain.Shift, error) {
	slots, err := rotation(cfg.Global)
	if err != nil {
		return nil, err
	}

	holidays := cfg.HolidaySet()
	numDays := cfg.Global.DaysInMonth()

	var out []domain.Shift
	for day := 1; day <= numDays; day++ {
		date := calendar.Date{Year: cfg.Global.Year, Month: cfg.Global.Month, Day: day}

		for _, post := range cfg.Posts {
			for _, slot := range slots {
				if !allowsSlot(post, slot.label) {
					continue
				}
				out = append(out, buildShift(post, date, slot, cfg.Global, holidays))
			}
		}
	}

	return out, nil
}

func buildShift(post domain.Post, date calendar.Date, slot rotationSlot, global domain.GlobalConfig, holidays calendar.HolidaySet) domain.Shift {
	start := date.Time(time.UTC).Add(slot.offset)
	end := start.Add(time.Duration(global.ShiftLengthHours) * time.Hour)

	hoursByDay := calendar.DecomposeInterval(start, end, global.DayStart, global.NightStart, holidays)

	touchesSunday := false
	touchesHoliday := false
	for _, dh := range hoursByDay {
		if dh.IsSunday {
			touchesSunday = true
		}
		if dh.IsHoliday {
			touchesHoliday = true
		}
	}

	return domain.Shift{
		ShiftID:     fmt.Sprintf("%s_%s_%s", post.PostID, date.String(), slot.label),
		PostID:      post.PostID,
		AnchorDate:  date,
		StartOffset: slot.offset,
		DurationHrs: global.ShiftLengthHours,
		Slot:        slot.label,
		IsSunday:    touchesSunday,
		IsHoliday:   touchesHoliday,
		HoursByDay:  hoursByDay,
	}
}

// Conflicts enumerates every unordered pair of shifts that overlap or
// abut (spec.md §4.3): an employee working shift A cannot also work shift
// B. Rest-hour parameters are ignored by design — the rule is purely
// "no consecutive slots." Output is sorted by (ShiftA, ShiftB) for
// reproducibility.
func Conflicts(shiftList []domain.Shift) []domain.ConflictPair {
	type interval struct {
		id         string
		start, end time.Time
	}

	intervals := make([]interval, len(shiftList))
	for i, s := range shiftList {
		intervals[i] = interval{id: s.ShiftID, start: s.Start(time.UTC), end: s.End(time.UTC)}
	}

	var pairs []domain.ConflictPair
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			a, b := intervals[i], intervals[j]
			if conflicts(a.start, a.end, b.start, b.end) {
				pairs = append(pairs, orderedPair(a.id, b.id))
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ShiftA != pairs[j].ShiftA {
			return pairs[i].ShiftA < pairs[j].ShiftA
		}
		return pairs[i].ShiftB < pairs[j].ShiftB
	})

	return pairs
}

func conflicts(startA, endA, startB, endB time.Time) bool {
	overlap := startA.Before(endB) && startB.Before(endA)
	abut := endA.Equal(startB) || endB.Equal(startA)
	return overlap || abut
}

func orderedPair(a, b string) domain.ConflictPair {
	if a < b {
		return domain.ConflictPair{ShiftA: a, ShiftB: b}
	}
	return domain.ConflictPair{ShiftA: b, ShiftB: a}
}
