package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/kestrel-ops/shiftplan-go/internal/apperrors"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/sundaypolicy"
)

// LevelResult records one lexicographic level's frozen optimum, kept for
// diagnostics and for the monotonicity property spec.md §8 requires
// ("objective_j(sol_k) ≤ objective_j(sol_{k-1})").
type LevelResult struct {
	Level          string
	ObjectiveValue float64
	WallTime       float64 // seconds
}

// Outcome is C5's output: the final CP-SAT result (from whose variables
// C7 reads assignments) plus the per-level trail.
type Outcome struct {
	Final  *cpsat.Result
	Levels []LevelResult
}

// SolveOptions configures one Solve invocation.
type SolveOptions struct {
	Seed         int64
	Workers      int
	Verbose      bool
	SundayPolicy string // spec.md §4.5 L2b dispatch key; ignored when UseLexicographic is false
}

// Solve runs the lexicographic objective sequence (spec.md §4.5): L1 →
// L1b → L2 → L2b → L2c → L3, each level's optimum frozen as a hard
// constraint before the next level's objective replaces the model's
// current one. When cfg.Global.UseLexicographic is false, it instead
// solves the single weighted-sum alternative once.
//
// The random seed is threaded through identically on every call within
// one Solve invocation — spec.md's "injected once before L1" requirement
// means the *value* is fixed for the whole sequence, not that CP-SAT's
// API is called only once (spec.md §4.5, §9 "Determinism").
func Solve(ctx context.Context, bm *BuiltModel, opts SolveOptions) (*Outcome, error) {
	if !bm.Cfg.Global.UseLexicographic {
		return solveWeighted(ctx, bm, opts)
	}

	out := &Outcome{}

	levels := []struct {
		name  string
		build func() (*cpsat.LinearExpr, error)
	}{
		{"L1", func() (*cpsat.LinearExpr, error) { return objectiveTotalHE(bm), nil }},
		{"L1b", func() (*cpsat.LinearExpr, error) { return objectiveOvertimeHeadcount(bm), nil }},
		{"L2", func() (*cpsat.LinearExpr, error) { return objectiveHolidayPlusSunday(bm), nil }},
		{"L2b", func() (*cpsat.LinearExpr, error) { return objectiveSundayPolicy(bm, opts.SundayPolicy) }},
		{"L2c", func() (*cpsat.LinearExpr, error) { return objectiveWeightedSundayCost(bm), nil }},
		{"L3", func() (*cpsat.LinearExpr, error) { return objectiveNightHours(bm), nil }},
	}

	for i, level := range levels {
		obj, err := level.build()
		if err != nil {
			return nil, fmt.Errorf("shiftplan: building %s objective: %w", level.name, err)
		}

		bm.M.Minimize(obj)
		res, err := bm.M.Solve(ctx, opts.Seed, opts.Workers, opts.Verbose)
		if err != nil {
			return nil, err
		}
		if !res.Status.Ok() {
			return nil, &apperrors.InfeasibleModel{Level: level.name}
		}

		out.Levels = append(out.Levels, LevelResult{
			Level:          level.name,
			ObjectiveValue: res.ObjectiveValue,
			WallTime:       res.WallTime.Seconds(),
		})

		isLast := i == len(levels)-1
		if !isLast {
			optimum := int64(math.Round(res.ObjectiveValue))
			bm.M.AddLessOrEqual(obj, cpsat.NewLinearExpr().AddConstant(optimum))
		} else {
			out.Final = res
		}
	}

	return out, nil
}

func solveWeighted(ctx context.Context, bm *BuiltModel, opts SolveOptions) (*Outcome, error) {
	obj := objectiveWeightedSingle(bm)
	bm.M.Minimize(obj)

	res, err := bm.M.Solve(ctx, opts.Seed, opts.Workers, opts.Verbose)
	if err != nil {
		return nil, err
	}
	if !res.Status.Ok() {
		return nil, &apperrors.InfeasibleModel{Level: "weighted"}
	}

	return &Outcome{
		Final: res,
		Levels: []LevelResult{{
			Level:          "weighted",
			ObjectiveValue: res.ObjectiveValue,
			WallTime:       res.WallTime.Seconds(),
		}},
	}, nil
}

// objectiveTotalHE is L1: minimise total overtime hours (centihours).
func objectiveTotalHE(bm *BuiltModel) *cpsat.LinearExpr {
	e := cpsat.NewLinearExpr()
	for _, empID := range bm.EmpOrder {
		e.Add(bm.Emp[empID].HEHours, 1)
	}
	return e
}

// objectiveOvertimeHeadcount is L1b: minimise the count of employees with
// any overtime.
func objectiveOvertimeHeadcount(bm *BuiltModel) *cpsat.LinearExpr {
	e := cpsat.NewLinearExpr()
	for _, empID := range bm.EmpOrder {
		e.Add(bm.Emp[empID].HasHE, 1)
	}
	return e
}

// objectiveHolidayPlusSunday is L2: minimise raw holiday+Sunday hour mass
// (spec.md §4.5's deliberate approximation of the downstream RF rule).
func objectiveHolidayPlusSunday(bm *BuiltModel) *cpsat.LinearExpr {
	e := cpsat.NewLinearExpr()
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		e.Add(ev.HoursHoliday, 1)
		e.Add(ev.HoursSunday, 1)
	}
	return e
}

// objectiveSundayPolicy is L2b: dispatch to the configured Sunday policy
// (spec.md §4.6, C6).
func objectiveSundayPolicy(bm *BuiltModel, policyName string) (*cpsat.LinearExpr, error) {
	policy, err := sundaypolicy.New(policyName)
	if err != nil {
		return nil, err
	}

	refs := make([]sundaypolicy.EmployeeRef, 0, len(bm.EmpOrder))
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		refs = append(refs, sundaypolicy.EmployeeRef{
			EmpID:           empID,
			Kind:            ev.Emp.Kind,
			PostID:          ev.Emp.AssignedPostID,
			ContractSalary:  ev.Emp.ContractSalary,
			HourlyWage:      bm.Cfg.Global.HourlyWage(ev.Emp.ContractSalary),
			ExcessSundays:   ev.ExcessSundays,
			HoursAssigned:   ev.HoursAssigned,
			HoursAssignedUB: ev.HoursAssignedUB,
			HoursNight:      ev.HoursNight,
			HoursHoliday:    ev.HoursHoliday,
			HoursSunday:     ev.HoursSunday,
			HEHours:         ev.HEHours,
		})
	}

	result, err := policy.BuildL2bObjective(sundaypolicy.Context{
		Model:     bm.M,
		Employees: refs,
		RFPercent: bm.Cfg.Global.RFPercent,
		RNPercent: bm.Cfg.Global.RNPercent,
		HEPercent: bm.Cfg.Global.HEPercent,
	})
	if err != nil {
		return nil, err
	}
	return result.Objective, nil
}

// objectiveWeightedSundayCost is L2c: always runs, refining the L2b-tied
// set by preferring Sunday work on cheaper employees.
func objectiveWeightedSundayCost(bm *BuiltModel) *cpsat.LinearExpr {
	e := cpsat.NewLinearExpr()
	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		wage := bm.Cfg.Global.HourlyWage(ev.Emp.ContractSalary)
		coeff := int64(math.Floor(wage * bm.Cfg.Global.RFPercent / 100))
		e.Add(ev.HoursSunday, coeff)
	}
	return e
}

// objectiveNightHours is L3: minimise total night hours (centihours).
func objectiveNightHours(bm *BuiltModel) *cpsat.LinearExpr {
	e := cpsat.NewLinearExpr()
	for _, empID := range bm.EmpOrder {
		e.Add(bm.Emp[empID].HoursNight, 1)
	}
	return e
}

// objectiveWeightedSingle is the use_lexicographic=false alternative
// (spec.md §4.5): a single minimisation combining centihour-scaled HE,
// RF and RN costs by their configured weights, plus base-salary-scaled
// activation cost, coefficients truncated to integers.
func objectiveWeightedSingle(bm *BuiltModel) *cpsat.LinearExpr {
	g := bm.Cfg.Global
	e := cpsat.NewLinearExpr()

	for _, empID := range bm.EmpOrder {
		ev := bm.Emp[empID]
		wage := g.HourlyWage(ev.Emp.ContractSalary)

		heCoeff := int64(math.Floor(wage * g.HEPercent / 100 * g.WeightHE))
		rfCoeff := int64(math.Floor(wage * g.RFPercent / 100 * g.WeightRF))
		rnCoeff := int64(math.Floor(wage * g.RNPercent / 100 * g.WeightRN))

		e.Add(ev.HEHours, heCoeff)
		e.Add(ev.HoursHoliday, rfCoeff)
		e.Add(ev.HoursSunday, rfCoeff)
		e.Add(ev.HoursNight, rnCoeff)

		activationCoeff := int64(math.Floor(ev.Emp.ContractSalary * g.WeightBase))
		e.Add(ev.Active, activationCoeff)
	}

	return e
}
