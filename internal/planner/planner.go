// Package planner wires C1-C9 together behind the single entry point the
// spec's external interfaces describe: a fully-typed Config in, a
// Solution out (spec.md §6). Everything upstream of it (calendar,
// shifts, solver, metrics, verify) stays free of orchestration logic so
// each component can be tested in isolation; only this package knows the
// order they run in.
package planner

import (
	"context"
	"fmt"
	"log"

	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/metrics"
	"github.com/kestrel-ops/shiftplan-go/internal/runlog"
	"github.com/kestrel-ops/shiftplan-go/internal/shifts"
	"github.com/kestrel-ops/shiftplan-go/internal/solver"
	"github.com/kestrel-ops/shiftplan-go/internal/verify"
)

// Options configures one Plan invocation. A zero-value Options solves
// with a single-worker deterministic search and no log output beyond
// log.Default().
type Options struct {
	Logger  *log.Logger
	Seed    int64
	Workers int

	// SundayPolicy selects the L2b strategy (spec.md §4.5); ignored when
	// cfg.Global.UseLexicographic is false.
	SundayPolicy string

	Verbose bool
}

func (o Options) withDefaults(cfg domain.Config) Options {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.SundayPolicy == "" {
		o.SundayPolicy = cfg.Global.SundayPolicy
	}
	if o.SundayPolicy == "" {
		o.SundayPolicy = "smart"
	}
	return o
}

// Plan runs the full pipeline: C2 shift generation (using C1), C3
// conflict analysis, C4 model build, C5 lexicographic solve (dispatching
// C6 at L2b), and C7 metrics extraction (spec.md §2 "Data flow").
// Verification (C8) is a separate, optional step — call Verify on the
// result if desired.
func Plan(ctx context.Context, cfg domain.Config, opts Options) (domain.Solution, error) {
	opts = opts.withDefaults(cfg)
	run := runlog.New(opts.Logger)
	defer run.Done()

	run.Logf("generating shifts for %04d-%02d", cfg.Global.Year, cfg.Global.Month)
	shiftList, err := shifts.Generate(cfg)
	if err != nil {
		return domain.Solution{}, fmt.Errorf("shiftplan: generating shifts: %w", err)
	}
	run.Logf("generated %d shifts", len(shiftList))

	conflicts := shifts.Conflicts(shiftList)
	run.Logf("found %d conflicting shift pairs", len(conflicts))

	bm, err := solver.Build(cfg, shiftList, conflicts)
	if err != nil {
		return domain.Solution{}, err
	}

	outcome, err := solver.Solve(ctx, bm, solver.SolveOptions{
		Seed:         opts.Seed,
		Workers:      opts.Workers,
		Verbose:      opts.Verbose,
		SundayPolicy: opts.SundayPolicy,
	})
	if err != nil {
		return domain.Solution{}, err
	}

	for _, level := range outcome.Levels {
		run.Logf("level %s optimum=%.2f wall=%.3fs", level.Level, level.ObjectiveValue, level.WallTime)
	}

	sol := metrics.Extract(bm, outcome, run.ID)
	return sol, nil
}

// Verify independently recomputes sol's invariants against cfg (C8). It
// is never called automatically by Plan — the data flow treats it as
// optional (spec.md §2).
func Verify(cfg domain.Config, sol domain.Solution) domain.VerificationReport {
	shiftList, err := shifts.Generate(cfg)
	if err != nil {
		return domain.VerificationReport{
			Valid:    false,
			Findings: []domain.VerificationFinding{{Severity: domain.SeverityError, Message: err.Error()}},
		}
	}
	conflicts := shifts.Conflicts(shiftList)
	return verify.Verify(cfg, shiftList, conflicts, sol)
}
