// Package apperrors is the discriminated error taxonomy shared by every
// component of the scheduling engine (spec.md §6 "Error surface", §7
// "Error handling design").
//
// Model-build and infeasibility failures are returned as the concrete
// types below, and the verifier builds its finding messages from them;
// callers use errors.As to branch on which failure occurred. Other
// failures (an unsupported shift length, an unknown Sunday policy, a
// solver call error) are plain wrapped errors.
package apperrors

import "fmt"

// Code identifies which failure occurred, independent of the error's
// formatted message. Useful for metrics/log aggregation without string
// matching.
type Code string

const (
	CodeInfeasibleModel             Code = "INFEASIBLE_MODEL"
	CodeInsufficientFixedStaffing   Code = "INSUFFICIENT_FIXED_STAFFING"
	CodeUnknownEmployeeInAssignment Code = "UNKNOWN_EMPLOYEE_IN_ASSIGNMENT"
	CodeHourBudgetMismatch          Code = "HOUR_BUDGET_MISMATCH"
	CodeInvalidConfig               Code = "INVALID_CONFIG"
)

// InfeasibleModel is returned when the CP-SAT solver fails to find a
// satisfying assignment at some lexicographic level (spec.md §4.5, §7).
// No fallback heuristic is attempted; the driver stops at the first
// infeasible level.
type InfeasibleModel struct {
	Level string
}

func (e *InfeasibleModel) Error() string {
	return fmt.Sprintf("model infeasible at level %s", e.Level)
}

func (e *InfeasibleModel) Code() Code { return CodeInfeasibleModel }

// InsufficientFixedStaffing is returned at model-build time (before the
// solver is invoked) when a post has fewer FIXED employees than
// GlobalConfig.MinFixedPerPost (spec.md §4.4 constraint 4).
type InsufficientFixedStaffing struct {
	Post string
	Have int
	Need int
}

func (e *InsufficientFixedStaffing) Error() string {
	return fmt.Sprintf("post %s has %d fixed employees, minimum required is %d", e.Post, e.Have, e.Need)
}

func (e *InsufficientFixedStaffing) Code() Code { return CodeInsufficientFixedStaffing }

// UnknownEmployeeInAssignment describes a solution that assigns a shift to
// an employee ID absent from the input roster; the verifier reports it as
// an error-severity finding.
type UnknownEmployeeInAssignment struct {
	EmpID   string
	ShiftID string
}

func (e *UnknownEmployeeInAssignment) Error() string {
	return fmt.Sprintf("shift %s assigned to unknown employee %s", e.ShiftID, e.EmpID)
}

func (e *UnknownEmployeeInAssignment) Code() Code { return CodeUnknownEmployeeInAssignment }

// HourBudgetMismatch describes a recomputed hour aggregate that disagrees
// with the solution's reported value beyond tolerance. The verifier
// reports it as an error-severity finding in its report rather than
// returning it (spec.md §7).
type HourBudgetMismatch struct {
	EmpID    string
	Expected float64
	Got      float64
}

func (e *HourBudgetMismatch) Error() string {
	return fmt.Sprintf("employee %s hour budget mismatch: expected %.2f, got %.2f", e.EmpID, e.Expected, e.Got)
}

func (e *HourBudgetMismatch) Code() Code { return CodeHourBudgetMismatch }

// InvalidConfig is returned at model-build time for structural/input
// failures spec.md names only in prose (negative hour budgets, an
// out-of-range month, a post requiring zero coverage, etc — spec.md §7
// "Structural/input").
type InvalidConfig struct {
	Field  string
	Reason string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("invalid config field %s: %s", e.Field, e.Reason)
}

func (e *InvalidConfig) Code() Code { return CodeInvalidConfig }
