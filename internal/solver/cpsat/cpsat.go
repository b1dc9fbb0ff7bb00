// Package cpsat is the only place in this module that imports
// github.com/google/or-tools. Everything else in internal/solver talks to
// the small Model/BoolVar/IntVar/LinearExpr/Result surface declared here,
// the same "wrap the external collaborator behind a package-local
// interface" pattern the teacher repo uses for its SOAP/Apple Music
// clients (see internal/solver's package doc).
//
// This isolates the CP-SAT wire format (everything in or-tools' Go
// binding is a protobuf message) from the rest of the scheduling logic,
// and gives the model one obvious seam to mock in tests that don't want
// to pay for a real solve.
package cpsat

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/sat_parameters"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cp_model"
	"google.golang.org/protobuf/proto"
)

// Status is the outcome of one Solve call.
type Status int

const (
	StatusUnknown Status = iota
	StatusInfeasible
	StatusFeasible
	StatusOptimal
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Ok reports whether the solver produced a usable assignment (OPTIMAL or
// FEASIBLE), matching the original's `status in [OPTIMAL, FEASIBLE]`
// check (spec.md §4.5).
func (s Status) Ok() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// BoolVar and IntVar are opaque handles into the model's variable table.
// They carry no state of their own; all reads go through Result.
type BoolVar struct{ v cpmodel.BoolVar }
type IntVar struct{ v cpmodel.IntVar }

// LinearExpr accumulates a sum of weighted variables and a constant, the
// only expression shape this model ever needs (spec.md §4.4's
// constraints and §4.5's objectives are all linear).
type LinearExpr struct {
	e *cpmodel.LinearExpr
}

// NewLinearExpr starts an empty expression.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{e: cpmodel.NewLinearExpr()}
}

// Add appends coeff*v to the expression. v must be a BoolVar or IntVar.
func (l *LinearExpr) Add(v interface{}, coeff int64) *LinearExpr {
	switch t := v.(type) {
	case BoolVar:
		l.e = l.e.AddTerm(t.v, coeff)
	case IntVar:
		l.e = l.e.AddTerm(t.v, coeff)
	default:
		panic(fmt.Sprintf("cpsat: unsupported term type %T", v))
	}
	return l
}

// AddConstant appends a constant offset.
func (l *LinearExpr) AddConstant(c int64) *LinearExpr {
	l.e = l.e.AddConstant(c)
	return l
}

// Model wraps a single CP-SAT model builder. Model is not safe for
// concurrent use — the lexicographic driver only ever touches one model
// from one goroutine at a time (spec.md §5).
type Model struct {
	b *cpmodel.CpModelBuilder
}

// NewModel allocates an empty CP-SAT model.
func NewModel() *Model {
	return &Model{b: cpmodel.NewCpModelBuilder()}
}

// NewBoolVar declares a new boolean decision variable.
func (m *Model) NewBoolVar(name string) BoolVar {
	return BoolVar{v: m.b.NewBoolVar(name)}
}

// NewIntVar declares a new integer variable bounded by [lb, ub].
func (m *Model) NewIntVar(lb, ub int64, name string) IntVar {
	return IntVar{v: m.b.NewIntVarFromDomain(cpmodel.NewDomain(lb, ub), name)}
}

// AddEquality constrains lhs == rhs.
func (m *Model) AddEquality(lhs, rhs *LinearExpr) {
	m.b.AddEquality(lhs.e, rhs.e)
}

// AddLessOrEqual constrains lhs <= rhs.
func (m *Model) AddLessOrEqual(lhs, rhs *LinearExpr) {
	m.b.AddLessOrEqual(lhs.e, rhs.e)
}

// AddGreaterOrEqual constrains lhs >= rhs.
func (m *Model) AddGreaterOrEqual(lhs, rhs *LinearExpr) {
	m.b.AddGreaterOrEqual(lhs.e, rhs.e)
}

// Minimize replaces the model's current objective. The lexicographic
// driver calls this once per level (spec.md §4.5).
func (m *Model) Minimize(expr *LinearExpr) {
	m.b.Minimize(expr.e)
}

// Result is a snapshot of one Solve call's outcome: status, objective
// value, and read-only access to every variable's assigned value.
type Result struct {
	Status         Status
	ObjectiveValue float64
	WallTime       time.Duration

	response *cmpb.CpSolverResponse
}

// BooleanValue returns v's value in this result.
func (r *Result) BooleanValue(v BoolVar) bool {
	return cpmodel.SolutionBooleanValue(r.response, v.v)
}

// IntegerValue returns v's value in this result.
func (r *Result) IntegerValue(v IntVar) int64 {
	return cpmodel.SolutionIntegerValue(r.response, v.v)
}

// Solve runs the solver once against the model's current objective.
// seed is written into the solver parameters of every call; the
// lexicographic driver passes the same value at every level, so the whole
// sequence runs under one seed (spec.md §4.5, §9 "Determinism"). workers bounds
// the solver's own internal search parallelism; it has no bearing on the
// strictly serial level sequence (spec.md §5).
func (m *Model) Solve(ctx context.Context, seed int64, workers int, verbose bool) (*Result, error) {
	params := &sppb.SatParameters{
		RandomSeed:      proto.Int32(int32(seed)),
		NumSearchWorkers: proto.Int32(int32(workers)),
	}

	if verbose {
		glog.V(1).Infof("cpsat: solving with seed=%d workers=%d", seed, workers)
	}

	built, err := m.b.Model()
	if err != nil {
		return nil, fmt.Errorf("cpsat: building model: %w", err)
	}

	start := time.Now()
	response, err := cpmodel.SolveCpModelWithContext(ctx, built, params)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("cpsat: solve failed: %w", err)
	}

	status := translateStatus(response.GetStatus())
	if verbose {
		glog.V(1).Infof("cpsat: status=%s objective=%.2f wall=%s", status, response.GetObjectiveValue(), elapsed)
	}

	return &Result{
		Status:         status,
		ObjectiveValue: response.GetObjectiveValue(),
		WallTime:       elapsed,
		response:       response,
	}, nil
}

func translateStatus(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	default:
		return StatusUnknown
	}
}
