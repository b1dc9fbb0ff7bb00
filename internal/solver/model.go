package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/kestrel-ops/shiftplan-go/internal/apperrors"
	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
)

type xKey struct {
	EmpID   string
	ShiftID string
}

// employeeVars is the full set of CP-SAT variables tracked for one
// employee (spec.md §4.4 "Integer derived variables").
type employeeVars struct {
	Emp domain.Employee

	Active        cpsat.BoolVar
	HasHE         cpsat.BoolVar
	ExcessSundays cpsat.BoolVar

	HoursAssigned   cpsat.IntVar
	HoursAssignedUB int64
	HoursNight      cpsat.IntVar // centihours
	HoursHoliday    cpsat.IntVar // centihours
	HoursSunday     cpsat.IntVar // centihours
	HEHours         cpsat.IntVar // centihours

	WorkedSunday map[calendar.Date]cpsat.BoolVar
	FloaterPost  map[string]cpsat.BoolVar // z[e,p]; only populated for FLOATERS

	EligibleShifts []domain.Shift
}

// BuiltModel is C4's output: a CP-SAT model populated with every
// decision/derived variable and structural constraint from spec.md §4.4,
// ready for the lexicographic driver (C5) to attach objectives to.
type BuiltModel struct {
	M   *cpsat.Model
	Cfg domain.Config

	Shifts    []domain.Shift
	ShiftByID map[string]domain.Shift
	Sundays   []calendar.Date

	HoursBudgetCenti int64

	X   map[xKey]cpsat.BoolVar
	Emp map[string]*employeeVars

	// EmpOrder is cfg.Employees' IDs sorted ascending, giving every
	// objective sum a deterministic term order (spec.md §9 "Determinism").
	EmpOrder []string
}

// Build allocates every variable and structural constraint from spec.md
// §4.4. It fails at build time (before any Solve call) only for an
// invalid configuration (checkValidConfig) and for constraint 4, minimum
// fixed staffing — every other structural rule is encoded directly into
// the model and can only fail by infeasibility, which the lexicographic
// driver reports.
func Build(cfg domain.Config, shiftList []domain.Shift, conflicts []domain.ConflictPair) (*BuiltModel, error) {
	if err := checkValidConfig(cfg); err != nil {
		return nil, err
	}
	if err := checkMinimumFixedStaffing(cfg); err != nil {
		return nil, err
	}

	m := cpsat.NewModel()

	shiftByID := make(map[string]domain.Shift, len(shiftList))
	for _, s := range shiftList {
		shiftByID[s.ShiftID] = s
	}

	sundays := calendar.SundaysInMonth(cfg.Global.Year, cfg.Global.Month)
	hoursBudgetCenti := int64(math.Floor(100 * cfg.Global.HoursBudget()))

	bm := &BuiltModel{
		M:                m,
		Cfg:              cfg,
		Shifts:           shiftList,
		ShiftByID:        shiftByID,
		Sundays:          sundays,
		HoursBudgetCenti: hoursBudgetCenti,
		X:                map[xKey]cpsat.BoolVar{},
		Emp:              map[string]*employeeVars{},
	}

	buildVariables(bm, cfg, shiftList, sundays)

	addCoverageConstraint(bm, cfg, shiftList)
	addActivationConstraint(bm)
	addConflictConstraint(bm, conflicts, cfg)
	addFloaterCapConstraint(bm, cfg)
	addSundayIndicatorConstraint(bm, sundays)
	addExcessSundaysConstraint(bm, sundays, cfg)
	addHourAggregatorConstraint(bm)
	addOvertimeConstraint(bm, hoursBudgetCenti)

	return bm, nil
}

// AssignedEmployee returns the employee ID assigned to shiftID in res, if
// any. It exists so packages outside solver (metrics, verify) can read
// the assignment map without needing to name the unexported xKey type.
func (bm *BuiltModel) AssignedEmployee(res *cpsat.Result, shiftID string) (string, bool) {
	for _, empID := range bm.EmpOrder {
		if xv, ok := bm.X[xKey{empID, shiftID}]; ok && res.BooleanValue(xv) {
			return empID, true
		}
	}
	return "", false
}

// checkValidConfig catches structural input failures spec.md names only
// in prose (an out-of-range month, negative hour budgets, a zero-coverage
// post, a FLOATER with no usable cap) before a single CP-SAT variable is
// allocated.
func checkValidConfig(cfg domain.Config) error {
	if cfg.Global.Month < 1 || cfg.Global.Month > 12 {
		return &apperrors.InvalidConfig{Field: "month", Reason: "must be between 1 and 12"}
	}
	if cfg.Global.HoursPerWeek <= 0 {
		return &apperrors.InvalidConfig{Field: "hours_per_week", Reason: "must be positive"}
	}
	if cfg.Global.ShiftLengthHours <= 0 {
		return &apperrors.InvalidConfig{Field: "shift_length_hours", Reason: "must be positive"}
	}
	for _, p := range cfg.Posts {
		if p.RequiredCoverage <= 0 {
			return &apperrors.InvalidConfig{Field: "post." + p.PostID + ".required_coverage", Reason: "must be positive"}
		}
	}
	for _, e := range cfg.Employees {
		if e.Kind == domain.Floater && e.EffectiveFloaterCap(cfg.Global.MaxPostsPerFloater) <= 0 {
			return &apperrors.InvalidConfig{Field: "employee." + e.EmpID + ".max_posts_if_floater", Reason: "floater has no usable post cap (both per-employee and global caps are zero)"}
		}
	}
	return nil
}

func checkMinimumFixedStaffing(cfg domain.Config) error {
	fixedCountByPost := map[string]int{}
	for _, e := range cfg.Employees {
		if e.Kind == domain.Fixed {
			fixedCountByPost[e.AssignedPostID]++
		}
	}
	for _, p := range cfg.Posts {
		have := fixedCountByPost[p.PostID]
		if have < cfg.Global.MinFixedPerPost {
			return &apperrors.InsufficientFixedStaffing{Post: p.PostID, Have: have, Need: cfg.Global.MinFixedPerPost}
		}
	}
	return nil
}

// eligible implements spec.md §4.4's eligibility rule: FIXED employees
// may only take shifts of their assigned post; FLOATERS are unrestricted
// by kind (but still bound by availability, checked separately).
func eligible(e domain.Employee, s domain.Shift) bool {
	if e.Kind == domain.Fixed {
		return s.PostID == e.AssignedPostID
	}
	return true
}

func buildVariables(bm *BuiltModel, cfg domain.Config, shiftList []domain.Shift, sundays []calendar.Date) {
	m := bm.M

	for _, e := range cfg.Employees {
		var elig []domain.Shift
		for _, s := range shiftList {
			if eligible(e, s) && e.Available(s.AnchorDate) {
				elig = append(elig, s)
			}
		}

		ev := &employeeVars{Emp: e, EligibleShifts: elig}

		ev.Active = m.NewBoolVar("active_" + e.EmpID)
		ev.HasHE = m.NewBoolVar("has_he_" + e.EmpID)
		ev.ExcessSundays = m.NewBoolVar("excess_sundays_" + e.EmpID)

		hoursUB := int64(len(elig)) * int64(cfg.Global.ShiftLengthHours)
		ev.HoursAssignedUB = hoursUB
		ev.HoursAssigned = m.NewIntVar(0, hoursUB, "hours_assigned_"+e.EmpID)

		centihoursUB := hoursUB * 100
		ev.HoursNight = m.NewIntVar(0, centihoursUB, "hours_night_"+e.EmpID)
		ev.HoursHoliday = m.NewIntVar(0, centihoursUB, "hours_holiday_"+e.EmpID)
		ev.HoursSunday = m.NewIntVar(0, centihoursUB, "hours_sunday_"+e.EmpID)

		heUB := hoursUB*100 - bm.HoursBudgetCenti
		if heUB < 0 {
			heUB = 0
		}
		ev.HEHours = m.NewIntVar(0, heUB, "he_hours_"+e.EmpID)

		ev.WorkedSunday = make(map[calendar.Date]cpsat.BoolVar, len(sundays))
		for _, d := range sundays {
			ev.WorkedSunday[d] = m.NewBoolVar(fmt.Sprintf("worked_sunday_%s_%s", e.EmpID, d.String()))
		}

		if e.Kind == domain.Floater {
			ev.FloaterPost = make(map[string]cpsat.BoolVar, len(cfg.Posts))
			for _, p := range cfg.Posts {
				ev.FloaterPost[p.PostID] = m.NewBoolVar(fmt.Sprintf("z_%s_%s", e.EmpID, p.PostID))
			}
		}

		for _, s := range elig {
			bm.X[xKey{e.EmpID, s.ShiftID}] = m.NewBoolVar(fmt.Sprintf("x_%s_%s", e.EmpID, s.ShiftID))
		}

		bm.Emp[e.EmpID] = ev
		bm.EmpOrder = append(bm.EmpOrder, e.EmpID)
	}
	sort.Strings(bm.EmpOrder)
}

// addCoverageConstraint is constraint 1.
func addCoverageConstraint(bm *BuiltModel, cfg domain.Config, shiftList []domain.Shift) {
	postByID := make(map[string]domain.Post, len(cfg.Posts))
	for _, p := range cfg.Posts {
		postByID[p.PostID] = p
	}

	for _, s := range shiftList {
		sum := cpsat.NewLinearExpr()
		for _, empID := range bm.EmpOrder {
			if xv, ok := bm.X[xKey{empID, s.ShiftID}]; ok {
				sum.Add(xv, 1)
			}
		}
		rc := int64(postByID[s.PostID].RequiredCoverage)
		bm.M.AddEquality(sum, cpsat.NewLinearExpr().AddConstant(rc))
	}
}

// addActivationConstraint is constraint 2.
func addActivationConstraint(bm *BuiltModel) {
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		for _, s := range ev.EligibleShifts {
			xv := bm.X[xKey{empID, s.ShiftID}]
			bm.M.AddLessOrEqual(cpsat.NewLinearExpr().Add(xv, 1), cpsat.NewLinearExpr().Add(ev.Active, 1))
		}
	}
}

// addConflictConstraint is constraint 3.
func addConflictConstraint(bm *BuiltModel, conflicts []domain.ConflictPair, cfg domain.Config) {
	for _, cp := range conflicts {
		for _, empID := range bm.EmpOrder {
			xa, okA := bm.X[xKey{empID, cp.ShiftA}]
			xb, okB := bm.X[xKey{empID, cp.ShiftB}]
			if !okA || !okB {
				continue
			}
			sum := cpsat.NewLinearExpr().Add(xa, 1).Add(xb, 1)
			bm.M.AddLessOrEqual(sum, cpsat.NewLinearExpr().AddConstant(1))
		}
	}
}

// addFloaterCapConstraint is constraint 5.
func addFloaterCapConstraint(bm *BuiltModel, cfg domain.Config) {
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		if ev.Emp.Kind != domain.Floater {
			continue
		}

		capN := int64(ev.Emp.EffectiveFloaterCap(cfg.Global.MaxPostsPerFloater))
		sumZ := cpsat.NewLinearExpr()

		for _, p := range cfg.Posts {
			var terms []cpsat.BoolVar
			for _, s := range ev.EligibleShifts {
				if s.PostID != p.PostID {
					continue
				}
				terms = append(terms, bm.X[xKey{empID, s.ShiftID}])
			}
			linkAnyToIndicator(bm.M, ev.FloaterPost[p.PostID], terms)
			sumZ.Add(ev.FloaterPost[p.PostID], 1)
		}

		bm.M.AddLessOrEqual(sumZ, cpsat.NewLinearExpr().AddConstant(capN))
	}
}

// addSundayIndicatorConstraint is constraint 6.
func addSundayIndicatorConstraint(bm *BuiltModel, sundays []calendar.Date) {
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		for _, d := range sundays {
			var terms []cpsat.BoolVar
			for _, s := range ev.EligibleShifts {
				if _, touches := s.HoursByDay[d]; touches {
					terms = append(terms, bm.X[xKey{empID, s.ShiftID}])
				}
			}
			linkAnyToIndicator(bm.M, ev.WorkedSunday[d], terms)
		}
	}
}

// addExcessSundaysConstraint is constraint 7.
func addExcessSundaysConstraint(bm *BuiltModel, sundays []calendar.Date, cfg domain.Config) {
	T := int64(cfg.Global.SundayThreshold)
	K := int64(len(sundays))

	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		sum := cpsat.NewLinearExpr()
		for _, d := range sundays {
			sum.Add(ev.WorkedSunday[d], 1)
		}

		upper := cpsat.NewLinearExpr().AddConstant(T).Add(ev.ExcessSundays, K)
		bm.M.AddLessOrEqual(sum, upper)

		lower := cpsat.NewLinearExpr().Add(ev.ExcessSundays, T+1)
		bm.M.AddGreaterOrEqual(sum, lower)
	}
}

// addHourAggregatorConstraint is constraint 8.
func addHourAggregatorConstraint(bm *BuiltModel) {
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]

		hoursSum := cpsat.NewLinearExpr()
		nightSum := cpsat.NewLinearExpr()
		holSum := cpsat.NewLinearExpr()
		sunSum := cpsat.NewLinearExpr()

		for _, s := range ev.EligibleShifts {
			xv := bm.X[xKey{empID, s.ShiftID}]
			hoursSum.Add(xv, int64(s.DurationHrs))
			nightSum.Add(xv, int64(math.Round(s.NightHours()*100)))
			holSum.Add(xv, int64(math.Round(s.HolidayHours()*100)))
			sunSum.Add(xv, int64(math.Round(s.SundayHours()*100)))
		}

		bm.M.AddEquality(cpsat.NewLinearExpr().Add(ev.HoursAssigned, 1), hoursSum)
		bm.M.AddEquality(cpsat.NewLinearExpr().Add(ev.HoursNight, 1), nightSum)
		bm.M.AddEquality(cpsat.NewLinearExpr().Add(ev.HoursHoliday, 1), holSum)
		bm.M.AddEquality(cpsat.NewLinearExpr().Add(ev.HoursSunday, 1), sunSum)
	}
}

// addOvertimeConstraint is constraint 9.
func addOvertimeConstraint(bm *BuiltModel, hoursBudgetCenti int64) {
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]

		lhs := cpsat.NewLinearExpr().Add(ev.HEHours, 1)
		rhs := cpsat.NewLinearExpr().Add(ev.HoursAssigned, 100).AddConstant(-hoursBudgetCenti)
		bm.M.AddGreaterOrEqual(lhs, rhs)

		bigM := ev.HoursAssignedUB*100 - hoursBudgetCenti
		if bigM < 0 {
			bigM = 0
		}
		bm.M.AddLessOrEqual(cpsat.NewLinearExpr().Add(ev.HEHours, 1), cpsat.NewLinearExpr().Add(ev.HasHE, bigM))
		bm.M.AddGreaterOrEqual(cpsat.NewLinearExpr().Add(ev.HEHours, 1), cpsat.NewLinearExpr().Add(ev.HasHE, 1))
	}
}
