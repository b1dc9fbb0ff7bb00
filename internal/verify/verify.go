// Package verify implements C8: an independent recomputation of every
// invariant from the raw assignment map, used to catch model-builder or
// metrics bugs that would otherwise silently ship a wrong Solution
// (spec.md §4.8).
package verify

import (
	"fmt"
	"math"

	"github.com/kestrel-ops/shiftplan-go/internal/apperrors"
	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

const (
	hourTolerance     = 0.01
	overtimeTolerance = 1.0 // spec.md §9 Open Question (c): looser, since the
	// hour-budget derivation can differ slightly from the solver's integer
	// rounding; always derived from the real days_in_month, never a
	// hard-coded 31 (the bug the original implementation had).
)

// Verify recomputes every invariant from spec.md §4.8 against sol and
// returns a report distinguishing fatal violations from advisories.
func Verify(cfg domain.Config, shiftList []domain.Shift, conflicts []domain.ConflictPair, sol domain.Solution) domain.VerificationReport {
	var findings []domain.VerificationFinding
	add := func(sev domain.VerificationSeverity, format string, args ...interface{}) {
		findings = append(findings, domain.VerificationFinding{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	shiftByID := make(map[string]domain.Shift, len(shiftList))
	for _, s := range shiftList {
		shiftByID[s.ShiftID] = s
	}
	postByID := make(map[string]domain.Post, len(cfg.Posts))
	for _, p := range cfg.Posts {
		postByID[p.PostID] = p
	}
	empByID := make(map[string]domain.Employee, len(cfg.Employees))
	for _, e := range cfg.Employees {
		empByID[e.EmpID] = e
	}

	verifyCoverage(add, shiftList, sol)
	verifyUnknownEmployees(add, empByID, sol)

	shiftsByEmp := make(map[string][]domain.Shift, len(cfg.Employees))
	for shiftID, empID := range sol.Assignments {
		s, ok := shiftByID[shiftID]
		if !ok {
			continue
		}
		shiftsByEmp[empID] = append(shiftsByEmp[empID], s)
	}

	verifyFixedPostRule(add, empByID, shiftsByEmp)
	verifyAvailability(add, empByID, shiftsByEmp)
	verifyConflictAbsence(add, conflicts, shiftsByEmp)
	verifyFloaterCap(add, cfg, empByID, shiftsByEmp)
	verifyMinimumFixedStaffing(add, cfg)
	verifyHourRecomputation(add, cfg, shiftsByEmp, sol)
	verifyShiftCountDivisibility(add, cfg, sol)

	metricsOut := map[string]float64{
		"total_cost":       sol.TotalMetrics.TotalCost,
		"active_employees": float64(sol.TotalMetrics.ActiveEmployees),
	}

	report := domain.VerificationReport{Findings: findings, Metrics: metricsOut}
	report.Valid = len(report.Errors()) == 0
	return report
}

func verifyCoverage(add func(domain.VerificationSeverity, string, ...interface{}), shiftList []domain.Shift, sol domain.Solution) {
	for _, s := range shiftList {
		if _, ok := sol.Assignments[s.ShiftID]; !ok {
			add(domain.SeverityError, "shift %s has no assignment", s.ShiftID)
		}
	}
}

func verifyUnknownEmployees(add func(domain.VerificationSeverity, string, ...interface{}), empByID map[string]domain.Employee, sol domain.Solution) {
	for shiftID, empID := range sol.Assignments {
		if _, ok := empByID[empID]; !ok {
			err := &apperrors.UnknownEmployeeInAssignment{EmpID: empID, ShiftID: shiftID}
			add(domain.SeverityError, "%s", err.Error())
		}
	}
}

func verifyFixedPostRule(add func(domain.VerificationSeverity, string, ...interface{}), empByID map[string]domain.Employee, shiftsByEmp map[string][]domain.Shift) {
	for empID, shifts := range shiftsByEmp {
		e, ok := empByID[empID]
		if !ok || e.Kind != domain.Fixed {
			continue
		}
		for _, s := range shifts {
			if s.PostID != e.AssignedPostID {
				add(domain.SeverityError, "fixed employee %s assigned shift %s outside post %s", empID, s.ShiftID, e.AssignedPostID)
			}
		}
	}
}

func verifyAvailability(add func(domain.VerificationSeverity, string, ...interface{}), empByID map[string]domain.Employee, shiftsByEmp map[string][]domain.Shift) {
	for empID, shifts := range shiftsByEmp {
		e, ok := empByID[empID]
		if !ok {
			continue
		}
		for _, s := range shifts {
			if !e.Available(s.AnchorDate) {
				add(domain.SeverityError, "employee %s assigned shift %s outside availability window [%s, %s]", empID, s.ShiftID, e.AvailableFrom, e.AvailableTo)
			}
		}
	}
}

func verifyConflictAbsence(add func(domain.VerificationSeverity, string, ...interface{}), conflicts []domain.ConflictPair, shiftsByEmp map[string][]domain.Shift) {
	conflictSet := make(map[domain.ConflictPair]bool, len(conflicts))
	for _, cp := range conflicts {
		conflictSet[cp] = true
	}

	for empID, shifts := range shiftsByEmp {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				a, b := shifts[i].ShiftID, shifts[j].ShiftID
				pair := domain.ConflictPair{ShiftA: a, ShiftB: b}
				if a > b {
					pair = domain.ConflictPair{ShiftA: b, ShiftB: a}
				}
				if conflictSet[pair] {
					add(domain.SeverityError, "employee %s holds conflicting shifts %s and %s", empID, a, b)
				}
			}
		}
	}
}

func verifyFloaterCap(add func(domain.VerificationSeverity, string, ...interface{}), cfg domain.Config, empByID map[string]domain.Employee, shiftsByEmp map[string][]domain.Shift) {
	for empID, shifts := range shiftsByEmp {
		e, ok := empByID[empID]
		if !ok || e.Kind != domain.Floater {
			continue
		}
		posts := map[string]bool{}
		for _, s := range shifts {
			posts[s.PostID] = true
		}
		cap := e.EffectiveFloaterCap(cfg.Global.MaxPostsPerFloater)
		if len(posts) > cap {
			add(domain.SeverityError, "floater %s serves %d posts, exceeding cap %d", empID, len(posts), cap)
		}
	}
}

func verifyMinimumFixedStaffing(add func(domain.VerificationSeverity, string, ...interface{}), cfg domain.Config) {
	fixedCountByPost := map[string]int{}
	for _, e := range cfg.Employees {
		if e.Kind == domain.Fixed {
			fixedCountByPost[e.AssignedPostID]++
		}
	}
	for _, p := range cfg.Posts {
		if fixedCountByPost[p.PostID] < cfg.Global.MinFixedPerPost {
			add(domain.SeverityError, "post %s has %d fixed employees, minimum required is %d", p.PostID, fixedCountByPost[p.PostID], cfg.Global.MinFixedPerPost)
		}
	}
}

func verifyHourRecomputation(add func(domain.VerificationSeverity, string, ...interface{}), cfg domain.Config, shiftsByEmp map[string][]domain.Shift, sol domain.Solution) {
	hoursBudget := cfg.Global.HoursBudget() // uses calendar.DaysInMonth, not a hard-coded 31 (Open Question c)

	for empID, shifts := range shiftsByEmp {
		em, ok := sol.EmployeeMetrics[empID]
		if !ok {
			continue
		}

		var hoursAssigned, hoursNight, hoursHoliday, hoursSunday float64
		sundays := map[calendar.Date]bool{}
		for _, s := range shifts {
			hoursAssigned += float64(s.DurationHrs)
			hoursNight += s.NightHours()
			hoursHoliday += s.HolidayHours()
			hoursSunday += s.SundayHours()
			for date, dh := range s.HoursByDay {
				if dh.IsSunday && dh.TotalHours > 0 {
					sundays[date] = true
				}
			}
		}

		checkTolerance(add, empID, "hours_assigned", hoursAssigned, em.HoursAssigned, hourTolerance)
		checkTolerance(add, empID, "hours_night", hoursNight, em.HoursNight, hourTolerance)
		checkTolerance(add, empID, "hours_holiday", hoursHoliday, em.HoursHoliday, hourTolerance)
		checkTolerance(add, empID, "hours_sunday", hoursSunday, em.HoursSunday, hourTolerance)

		if len(sundays) != em.NumSundays {
			add(domain.SeverityError, "employee %s num_sundays mismatch: recomputed %d, reported %d", empID, len(sundays), em.NumSundays)
		}

		wantExcess := len(sundays) > cfg.Global.SundayThreshold
		wantRFA := hoursHoliday
		if wantExcess {
			wantRFA = hoursHoliday + hoursSunday
		}
		checkTolerance(add, empID, "rf_hours_applied", wantRFA, em.RFHoursApplied, hourTolerance)

		recomputedHE := math.Max(0, hoursAssigned-hoursBudget)
		checkTolerance(add, empID, "he_hours", recomputedHE, em.HEHours, overtimeTolerance)
	}
}

func checkTolerance(add func(domain.VerificationSeverity, string, ...interface{}), empID, field string, want, got, tol float64) {
	if math.Abs(want-got) > tol {
		err := &apperrors.HourBudgetMismatch{EmpID: empID, Expected: want, Got: got}
		add(domain.SeverityError, "%s field %s (tolerance %.2f)", err.Error(), field, tol)
	}
}

// verifyShiftCountDivisibility is an advisory check beyond spec.md's
// original invariant list: a post whose generated shift count doesn't
// evenly divide by its required_coverage likely has a misconfigured
// rotation, even though it isn't itself a solver-level failure.
func verifyShiftCountDivisibility(add func(domain.VerificationSeverity, string, ...interface{}), cfg domain.Config, sol domain.Solution) {
	for _, p := range cfg.Posts {
		pm, ok := sol.PostMetrics[p.PostID]
		if !ok || p.RequiredCoverage == 0 {
			continue
		}
		if pm.TotalShifts%p.RequiredCoverage != 0 {
			add(domain.SeverityWarning, "post %s shift count %d does not evenly divide required_coverage %d", p.PostID, pm.TotalShifts, p.RequiredCoverage)
		}
	}
}
