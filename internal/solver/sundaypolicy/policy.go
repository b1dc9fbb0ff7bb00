// Package sundaypolicy implements C6: the pluggable Sunday-distribution
// strategies dispatched at lexicographic level L2b (spec.md §4.6). Each
// strategy builds an objective expression, and sometimes auxiliary model
// variables, from the same shared Context — a tagged variant dispatched
// through a factory map, not an inheritance hierarchy (spec.md §9
// "Policy dispatch"), mirroring the teacher repo's map-keyed dispatch for
// its own provider/service registrations.
package sundaypolicy

import (
	"fmt"

	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
)

// EmployeeRef is the subset of one employee's model variables and
// payroll facts a Sunday policy needs to build its objective. The solver
// package populates one of these per employee from its BuiltModel; this
// package never constructs model variables for x/active/hours_* itself.
type EmployeeRef struct {
	EmpID          string
	Kind           domain.EmployeeKind
	PostID         string // FIXED employees' assigned post; empty for FLOATER
	ContractSalary float64
	HourlyWage     float64

	ExcessSundays cpsat.BoolVar
	HoursAssigned cpsat.IntVar
	HoursAssignedUB int64
	HoursNight    cpsat.IntVar // centihours
	HoursHoliday  cpsat.IntVar // centihours
	HoursSunday   cpsat.IntVar // centihours
	HEHours       cpsat.IntVar // centihours
}

// Context is the read-only view of the model a policy builds its
// objective against.
type Context struct {
	Model     *cpsat.Model
	Employees []EmployeeRef

	RFPercent float64
	RNPercent float64
	HEPercent float64
}

// Result is what a policy hands back to the lexicographic driver: the
// objective to minimise at L2b. FreezeAfter mirrors every other
// lexicographic level's default behaviour (optimum frozen as a
// constraint before advancing) and every policy here sets it to true.
// The driver reads only Objective: it freezes the L2b optimum like every
// other level whatever FreezeAfter says.
type Result struct {
	Objective   *cpsat.LinearExpr
	FreezeAfter bool
}

// Policy is the shared interface every Sunday-distribution strategy
// implements (spec.md §4.5 L2b, §9 "Policy dispatch").
type Policy interface {
	BuildL2bObjective(ctx Context) (Result, error)
}

var registry = map[string]func() Policy{
	"smart":            func() Policy { return smartPolicy{} },
	"balanced":         func() Policy { return balancedPolicy{} },
	"cost_focused":     func() Policy { return costFocusedPolicy{} },
	"load_balancing":   func() Policy { return loadBalancingPolicy{} },
	"surcharge_equity": func() Policy { return surchargeEquityPolicy{} },
}

// New resolves a policy name from GlobalConfig's Sunday-policy string.
func New(name string) (Policy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sundaypolicy: unknown policy %q", name)
	}
	return factory(), nil
}
