// Package metrics implements C7: reading CP-SAT's final variable values
// back into plain Go values, converting centihours to hours, and
// aggregating per-employee and per-post cost (spec.md §4.7).
package metrics

import (
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/solver"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
)

// Extract builds a domain.Solution from a finished solve. runID
// correlates the solution with the log lines emitted while it was
// computed (SPEC_FULL.md §4.10).
func Extract(bm *solver.BuiltModel, outcome *solver.Outcome, runID string) domain.Solution {
	res := outcome.Final

	assignments := make(map[string]string, len(bm.Shifts))
	shiftsByEmp := map[string][]domain.Shift{}
	for _, s := range bm.Shifts {
		empID, ok := bm.AssignedEmployee(res, s.ShiftID)
		if !ok {
			continue
		}
		assignments[s.ShiftID] = empID
		shiftsByEmp[empID] = append(shiftsByEmp[empID], s)
	}

	empMetrics := make(map[string]domain.EmployeeMetrics, len(shiftsByEmp))
	var active []string
	var total domain.TotalMetrics

	for _, empID := range bm.EmpOrder {
		assigned := shiftsByEmp[empID]
		if len(assigned) == 0 {
			continue
		}
		active = append(active, empID)

		em := employeeMetrics(bm, res, empID, assigned)
		empMetrics[empID] = em

		total.TotalHEHours += em.HEHours
		total.TotalRFHours += em.RFHoursApplied
		total.TotalRNHours += em.HoursNight
		total.TotalValHE += em.ValHE
		total.TotalValRF += em.ValRF
		total.TotalValRN += em.ValRN
		total.TotalSalaryBase += em.SalaryBase
		total.TotalCost += em.Total
		if em.ExcessSundays {
			total.EmployeesWithExcessSundays++
		}
		if bm.Emp[empID].Emp.Kind == domain.Fixed {
			total.FixedActive++
		} else {
			total.FloatersActive++
		}
	}
	total.ActiveEmployees = len(active)

	postMetrics := postMetrics(bm, empMetrics, assignments)
	if len(bm.Cfg.Posts) > 0 {
		total.CostPerPost = total.TotalCost / float64(len(bm.Cfg.Posts))
	}

	return domain.Solution{
		RunID:           runID,
		Assignments:     assignments,
		ActiveEmployees: active,
		EmployeeMetrics: empMetrics,
		PostMetrics:     postMetrics,
		TotalMetrics:    total,
		ObjectiveValue:  res.ObjectiveValue,
		SolverStatus:    solverStatus(res.Status),
		SolveTime:       res.WallTime,
	}
}

func solverStatus(s cpsat.Status) domain.SolverStatus {
	if s == cpsat.StatusOptimal {
		return domain.StatusOptimal
	}
	return domain.StatusFeasible
}
