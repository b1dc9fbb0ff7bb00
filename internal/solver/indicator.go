// Package solver builds the CP-SAT model (C4), drives the lexicographic
// objective sequence over it (C5), and dispatches the Sunday-distribution
// policy (C6) at level L2b. It and its sundaypolicy subpackage build the
// model through internal/solver/cpsat, and internal/metrics reads solver
// values through cpsat.Result; everything upstream of it (shifts,
// domain) stays CP-SAT-agnostic — the same "wrap the external
// collaborator" seam internal/solver/cpsat itself documents.
package solver

import "github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"

// linkAnyToIndicator ties a boolean indicator to "at least one of terms is
// true" using the canonical pair from spec.md §4.4 ("any ⇒ indicator",
// "indicator ⇒ sum ≥ 1"), reused for FLOATER z[e,p] and worked_sunday[e,d]
// (spec.md §9 "Indicator encodings" design note). It takes no threshold;
// excess_sundays[e] is linked by its own threshold pair in
// addExcessSundaysConstraint.
//
//   indicator <= sum(terms)          (indicator can't be 1 if nothing is)
//   indicator * len(terms) >= sum(terms)   (indicator must be 1 if anything is)
//
// The second inequality is the integer-friendly form of
// "sum(terms) <= len(terms) * indicator".
func linkAnyToIndicator(m *cpsat.Model, indicator cpsat.BoolVar, terms []cpsat.BoolVar) {
	if len(terms) == 0 {
		m.AddEquality(cpsat.NewLinearExpr().Add(indicator, 1), cpsat.NewLinearExpr().AddConstant(0))
		return
	}

	sum := sumBools(terms)

	upper := cpsat.NewLinearExpr().Add(indicator, 1)
	m.AddLessOrEqual(upper, sum)

	scaled := cpsat.NewLinearExpr().Add(indicator, int64(len(terms)))
	m.AddGreaterOrEqual(scaled, sum)
}

func sumBools(terms []cpsat.BoolVar) *cpsat.LinearExpr {
	e := cpsat.NewLinearExpr()
	for _, t := range terms {
		e.Add(t, 1)
	}
	return e
}
