// Package domain holds the fully-typed input/output records the
// scheduling engine consumes and produces (spec.md §3, §6): run
// configuration, posts, employees, shifts, and solutions. It has no
// dependency on solver/shifts/metrics/verify, which all import it — the
// orchestration entry point that wires those packages together lives in
// internal/planner instead, to avoid an import cycle.
package domain

import (
	"time"

	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
)

// EmployeeKind distinguishes employees pinned to a single post from
// employees eligible for any post.
type EmployeeKind string

const (
	Fixed   EmployeeKind = "FIXED"
	Floater EmployeeKind = "FLOATER"
)

// GlobalConfig holds the month-level parameters of a single planning run.
type GlobalConfig struct {
	Year  int
	Month time.Month

	// DayStart and NightStart are offsets from midnight. The night window
	// is [NightStart, DayStart) wrapping across midnight.
	DayStart   time.Duration
	NightStart time.Duration

	ShiftLengthHours int
	ShiftStartTime   time.Duration

	HEPercent float64
	RFPercent float64
	RNPercent float64

	HoursBaseMonth float64
	HoursPerWeek   float64

	SundayThreshold  int
	MinFixedPerPost  int
	MaxPostsPerFloater int

	WeightHE   float64
	WeightRF   float64
	WeightRN   float64
	WeightBase float64

	UseLexicographic bool

	// SundayPolicy is the run's default L2b strategy name (spec.md §4.5).
	// Callers of Plan may override it per-invocation; when both are unset
	// the planner falls back to "smart".
	SundayPolicy string
}

// DaysInMonth returns the number of calendar days in this run's month.
func (g GlobalConfig) DaysInMonth() int {
	return calendar.DaysInMonth(g.Year, g.Month)
}

// HoursBudget is the pre-overtime hour threshold for the month, derived
// from HoursPerWeek and the number of days in the month (spec.md §4.4).
func (g GlobalConfig) HoursBudget() float64 {
	return (g.HoursPerWeek / 7) * float64(g.DaysInMonth())
}

// HourlyWage converts a monthly contract salary to an hourly wage.
func (g GlobalConfig) HourlyWage(contractSalary float64) float64 {
	if g.HoursBaseMonth == 0 {
		return 0
	}
	return contractSalary / g.HoursBaseMonth
}

// Holiday is a single calendar date treated as a holiday for RF purposes.
type Holiday struct {
	Date        calendar.Date
	Description string
}

// Post is a guarded location requiring coverage.
type Post struct {
	PostID           string
	Name             string
	RequiredCoverage int
	AllowDayShift    bool
	AllowNightShift  bool
}

// Employee is a person eligible to be assigned shifts.
type Employee struct {
	EmpID  string
	Kind   EmployeeKind
	// AssignedPostID is set iff Kind == Fixed.
	AssignedPostID string

	ContractSalary float64

	AvailableFrom calendar.Date
	AvailableTo   calendar.Date

	// MaxPostsIfFloater is the employee-specific post cap; zero means
	// "defer to the global cap" (spec.md §9 Open Question (a), resolved
	// as the more permissive reading: per-employee value if positive,
	// else the global GlobalConfig.MaxPostsPerFloater).
	MaxPostsIfFloater int
}

// EffectiveFloaterCap resolves the per-employee vs. global floater post
// cap per the Open Question (a) decision recorded in DESIGN.md.
func (e Employee) EffectiveFloaterCap(globalCap int) int {
	if e.MaxPostsIfFloater > 0 {
		return e.MaxPostsIfFloater
	}
	return globalCap
}

// Available reports whether d falls within e's inclusive availability
// window. Callers that want an unrestricted employee should set
// AvailableFrom/AvailableTo to the full month.
func (e Employee) Available(d calendar.Date) bool {
	return !d.Before(e.AvailableFrom) && !d.After(e.AvailableTo)
}

// Config is the complete, fully-typed input to Plan.
type Config struct {
	Global    GlobalConfig
	Holidays  []Holiday
	Posts     []Post
	Employees []Employee
}

// HolidaySet builds the calendar.HolidaySet used by C1/C2.
func (c Config) HolidaySet() calendar.HolidaySet {
	dates := make([]calendar.Date, len(c.Holidays))
	descs := make([]string, len(c.Holidays))
	for i, h := range c.Holidays {
		dates[i] = h.Date
		descs[i] = h.Description
	}
	return calendar.NewHolidaySet(dates, descs)
}
