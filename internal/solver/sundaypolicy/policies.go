package sundaypolicy

import (
	"math"

	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
)

type smartPolicy struct{}

func (smartPolicy) BuildL2bObjective(ctx Context) (Result, error) {
	roles := inferRoles(ctx.Employees)

	obj := cpsat.NewLinearExpr()
	for _, e := range ctx.Employees {
		w := weight(roles[e.EmpID], e.ContractSalary)
		obj.Add(e.ExcessSundays, int64(w))
	}
	return Result{Objective: obj, FreezeAfter: true}, nil
}

type balancedPolicy struct{}

func (balancedPolicy) BuildL2bObjective(ctx Context) (Result, error) {
	obj := cpsat.NewLinearExpr()
	for _, e := range ctx.Employees {
		obj.Add(e.ExcessSundays, 1)
	}
	return Result{Objective: obj, FreezeAfter: true}, nil
}

type costFocusedPolicy struct{}

func (costFocusedPolicy) BuildL2bObjective(ctx Context) (Result, error) {
	obj := cpsat.NewLinearExpr()
	for _, e := range ctx.Employees {
		coeff := int64(math.Floor(e.HourlyWage * ctx.RFPercent / 100))
		obj.Add(e.HoursSunday, coeff)
	}
	return Result{Objective: obj, FreezeAfter: true}, nil
}

// loadBalancingPolicy introduces a free max_hours variable bounded above
// every employee's hours_assigned and minimises it, spreading total hours
// evenly rather than penalising Sunday exposure directly (spec.md §4.5
// L2b "load_balancing").
type loadBalancingPolicy struct{}

func (loadBalancingPolicy) BuildL2bObjective(ctx Context) (Result, error) {
	var ub int64
	for _, e := range ctx.Employees {
		if e.HoursAssignedUB > ub {
			ub = e.HoursAssignedUB
		}
	}

	maxHours := ctx.Model.NewIntVar(0, ub, "max_hours")
	for _, e := range ctx.Employees {
		ctx.Model.AddGreaterOrEqual(
			cpsat.NewLinearExpr().Add(maxHours, 1),
			cpsat.NewLinearExpr().Add(e.HoursAssigned, 1),
		)
	}

	obj := cpsat.NewLinearExpr().Add(maxHours, 1)
	return Result{Objective: obj, FreezeAfter: true}, nil
}

// surchargeEquityPolicy introduces a free max_surcharge variable bounded
// above every employee's integer-valued total surcharge value and
// minimises it (spec.md §4.5 L2b "surcharge_equity"). The per-employee
// surcharge total depends on rf_hours_applied[e], a conditional variable
// equal to hours_holiday[e] when excess_sundays[e]=0 and
// hours_holiday[e]+hours_sunday[e] when =1, linearised by bracketing both
// endpoints (spec.md §4.5, §9 "Mixed float/integer objectives").
type surchargeEquityPolicy struct{}

func (surchargeEquityPolicy) BuildL2bObjective(ctx Context) (Result, error) {
	m := ctx.Model

	var surchargeUB int64
	for _, e := range ctx.Employees {
		ub := rfHoursAppliedUB(e) * 3
		if ub > surchargeUB {
			surchargeUB = ub
		}
	}

	maxSurcharge := m.NewIntVar(0, surchargeUB, "max_surcharge")

	for _, e := range ctx.Employees {
		rfaUB := rfHoursAppliedUB(e)
		rfa := m.NewIntVar(0, rfaUB, "rf_hours_applied_"+e.EmpID)

		// rfa - hours_holiday in [0, hours_sunday], pinned to 0 when
		// excess_sundays=0 and to hours_sunday when excess_sundays=1.
		diff := cpsat.NewLinearExpr().Add(rfa, 1).Add(e.HoursHoliday, -1)

		m.AddGreaterOrEqual(diff, cpsat.NewLinearExpr().AddConstant(0))
		m.AddLessOrEqual(diff, cpsat.NewLinearExpr().Add(e.HoursSunday, 1))

		m.AddLessOrEqual(diff, cpsat.NewLinearExpr().Add(e.ExcessSundays, rfaUB))

		lower := cpsat.NewLinearExpr().Add(e.HoursSunday, 1).AddConstant(-rfaUB).Add(e.ExcessSundays, rfaUB)
		m.AddGreaterOrEqual(diff, lower)

		rnCoeff := int64(math.Floor(e.HourlyWage * ctx.RNPercent / 100))
		rfCoeff := int64(math.Floor(e.HourlyWage * ctx.RFPercent / 100))
		heCoeff := int64(math.Floor(e.HourlyWage * ctx.HEPercent / 100))

		total := cpsat.NewLinearExpr().
			Add(e.HoursNight, rnCoeff).
			Add(rfa, rfCoeff).
			Add(e.HEHours, heCoeff)

		m.AddGreaterOrEqual(cpsat.NewLinearExpr().Add(maxSurcharge, 1), total)
	}

	obj := cpsat.NewLinearExpr().Add(maxSurcharge, 1)
	return Result{Objective: obj, FreezeAfter: true}, nil
}

func rfHoursAppliedUB(e EmployeeRef) int64 {
	return e.HoursAssignedUB * 100
}
