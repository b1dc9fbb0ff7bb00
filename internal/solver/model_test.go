package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-ops/shiftplan-go/internal/apperrors"
	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/shifts"
)

func smallConfig() domain.Config {
	return domain.Config{
		Global: domain.GlobalConfig{
			Year: 2025, Month: time.January,
			DayStart: 6 * time.Hour, NightStart: 21 * time.Hour,
			ShiftLengthHours: 12, ShiftStartTime: 6 * time.Hour,
			HoursPerWeek: 40, HoursBaseMonth: 240,
			SundayThreshold: 2, MinFixedPerPost: 2, MaxPostsPerFloater: 1,
			UseLexicographic: true,
		},
		Posts: []domain.Post{
			{PostID: "P1", Name: "Gate", RequiredCoverage: 1, AllowDayShift: true, AllowNightShift: true},
		},
		Employees: []domain.Employee{
			{EmpID: "E1", Kind: domain.Fixed, AssignedPostID: "P1", ContractSalary: 1400,
				AvailableFrom: calendar.Date{Year: 2025, Month: time.January, Day: 1},
				AvailableTo:   calendar.Date{Year: 2025, Month: time.January, Day: 31}},
			{EmpID: "E2", Kind: domain.Fixed, AssignedPostID: "P1", ContractSalary: 1500,
				AvailableFrom: calendar.Date{Year: 2025, Month: time.January, Day: 1},
				AvailableTo:   calendar.Date{Year: 2025, Month: time.January, Day: 31}},
		},
	}
}

func TestCheckValidConfig_Passes(t *testing.T) {
	require.NoError(t, checkValidConfig(smallConfig()))
}

func TestCheckValidConfig_RejectsZeroHoursPerWeek(t *testing.T) {
	cfg := smallConfig()
	cfg.Global.HoursPerWeek = 0

	err := checkValidConfig(cfg)
	require.Error(t, err)
	var target *apperrors.InvalidConfig
	require.ErrorAs(t, err, &target)
	require.Equal(t, "hours_per_week", target.Field)
}

func TestCheckValidConfig_RejectsZeroCoveragePost(t *testing.T) {
	cfg := smallConfig()
	cfg.Posts[0].RequiredCoverage = 0

	err := checkValidConfig(cfg)
	require.Error(t, err)
	var target *apperrors.InvalidConfig
	require.ErrorAs(t, err, &target)
}

func TestCheckValidConfig_RejectsFloaterWithNoUsableCap(t *testing.T) {
	cfg := smallConfig()
	cfg.Global.MaxPostsPerFloater = 0
	cfg.Employees = append(cfg.Employees, domain.Employee{
		EmpID: "E3", Kind: domain.Floater,
		AvailableFrom: calendar.Date{Year: 2025, Month: time.January, Day: 1},
		AvailableTo:   calendar.Date{Year: 2025, Month: time.January, Day: 31},
	})

	err := checkValidConfig(cfg)
	require.Error(t, err)
	var target *apperrors.InvalidConfig
	require.ErrorAs(t, err, &target)
	require.Equal(t, "employee.E3.max_posts_if_floater", target.Field)
}

func TestCheckMinimumFixedStaffing_Fails(t *testing.T) {
	cfg := smallConfig()
	cfg.Global.MinFixedPerPost = 3

	err := checkMinimumFixedStaffing(cfg)
	require.Error(t, err)

	var target *apperrors.InsufficientFixedStaffing
	require.ErrorAs(t, err, &target)
	require.Equal(t, "P1", target.Post)
	require.Equal(t, 2, target.Have)
	require.Equal(t, 3, target.Need)
}

func TestCheckMinimumFixedStaffing_Passes(t *testing.T) {
	cfg := smallConfig()
	require.NoError(t, checkMinimumFixedStaffing(cfg))
}

func TestEligible_FixedRestrictedToAssignedPost(t *testing.T) {
	e := domain.Employee{Kind: domain.Fixed, AssignedPostID: "P1"}
	require.True(t, eligible(e, domain.Shift{PostID: "P1"}))
	require.False(t, eligible(e, domain.Shift{PostID: "P2"}))
}

func TestEligible_FloaterUnrestricted(t *testing.T) {
	e := domain.Employee{Kind: domain.Floater}
	require.True(t, eligible(e, domain.Shift{PostID: "P1"}))
	require.True(t, eligible(e, domain.Shift{PostID: "P2"}))
}

func TestBuild_PopulatesVariablesAndEligibility(t *testing.T) {
	cfg := smallConfig()
	shiftList, err := shifts.Generate(cfg)
	require.NoError(t, err)
	conflicts := shifts.Conflicts(shiftList)

	bm, err := Build(cfg, shiftList, conflicts)
	require.NoError(t, err)

	require.Len(t, bm.EmpOrder, 2)
	require.Equal(t, []string{"E1", "E2"}, bm.EmpOrder)

	// Both employees are FIXED on P1 and the month has 62 shifts, all on
	// P1, so every shift should have an x-variable for both employees.
	require.Len(t, bm.X, 2*62)

	require.Len(t, bm.Sundays, 4)
}

func TestBuild_FailsFastOnUnderstaffedPost(t *testing.T) {
	cfg := smallConfig()
	cfg.Global.MinFixedPerPost = 5

	_, err := Build(cfg, nil, nil)
	require.Error(t, err)
	var target *apperrors.InsufficientFixedStaffing
	require.ErrorAs(t, err, &target)
}
