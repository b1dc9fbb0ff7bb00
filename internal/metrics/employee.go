package metrics

import (
	"github.com/kestrel-ops/shiftplan-go/internal/calendar"
	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/solver"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
)

// employeeMetrics computes one active employee's EmployeeMetrics.
// Sunday count is recomputed by scanning the employee's assigned shifts
// rather than read from the solver's worked_sunday indicators, so a
// drift between the solver's indicator convention and the reporting
// convention never surfaces downstream (spec.md §4.7).
func employeeMetrics(bm *solver.BuiltModel, res *cpsat.Result, empID string, assigned []domain.Shift) domain.EmployeeMetrics {
	ev := bm.Emp[empID]
	g := bm.Cfg.Global

	hoursAssigned := float64(res.IntegerValue(ev.HoursAssigned))
	hoursNight := float64(res.IntegerValue(ev.HoursNight)) / 100
	hoursHoliday := float64(res.IntegerValue(ev.HoursHoliday)) / 100
	hoursSunday := float64(res.IntegerValue(ev.HoursSunday)) / 100
	heHours := float64(res.IntegerValue(ev.HEHours)) / 100

	numSundays := countDistinctSundays(assigned)
	excessSundays := numSundays > g.SundayThreshold

	rfHoursApplied := hoursHoliday
	if excessSundays {
		rfHoursApplied = hoursHoliday + hoursSunday
	}

	wage := g.HourlyWage(ev.Emp.ContractSalary)
	valRN := (g.RNPercent / 100) * hoursNight * wage
	valRF := (g.RFPercent / 100) * rfHoursApplied * wage
	valHE := (g.HEPercent / 100) * heHours * wage
	salaryBase := ev.Emp.ContractSalary

	return domain.EmployeeMetrics{
		EmpID:          empID,
		HoursAssigned:  hoursAssigned,
		HoursNight:     hoursNight,
		HoursHoliday:   hoursHoliday,
		HoursSunday:    hoursSunday,
		NumSundays:     numSundays,
		HEHours:        heHours,
		HasOvertime:    res.BooleanValue(ev.HasHE),
		ExcessSundays:  excessSundays,
		RFHoursApplied: rfHoursApplied,
		HourlyWage:     wage,
		ValRN:          valRN,
		ValRF:          valRF,
		ValHE:          valHE,
		SalaryBase:     salaryBase,
		Total:          valRN + valRF + valHE + salaryBase,
	}
}

func countDistinctSundays(assigned []domain.Shift) int {
	seen := map[calendar.Date]bool{}
	for _, s := range assigned {
		for date, dh := range s.HoursByDay {
			if dh.IsSunday && dh.TotalHours > 0 {
				seen[date] = true
			}
		}
	}
	return len(seen)
}

// postMetrics allocates each shift's cost proportionally to its assigned
// employee's overall cost-per-hour (spec.md §4.7 "Per-post cost").
func postMetrics(bm *solver.BuiltModel, empMetrics map[string]domain.EmployeeMetrics, assignments map[string]string) map[string]domain.PostMetrics {
	out := make(map[string]domain.PostMetrics, len(bm.Cfg.Posts))
	for _, p := range bm.Cfg.Posts {
		out[p.PostID] = domain.PostMetrics{PostID: p.PostID, Name: p.Name}
	}

	for _, s := range bm.Shifts {
		pm := out[s.PostID]
		pm.TotalShifts++

		if empID, ok := assignments[s.ShiftID]; ok {
			if em, ok := empMetrics[empID]; ok && em.HoursAssigned > 0 {
				pm.TotalCost += (em.Total / em.HoursAssigned) * float64(s.DurationHrs)
			}
		}

		out[s.PostID] = pm
	}

	return out
}
