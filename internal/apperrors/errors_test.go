package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfeasibleModel_ErrorsAs(t *testing.T) {
	var err error = &InfeasibleModel{Level: "L2"}

	var target *InfeasibleModel
	require.True(t, errors.As(err, &target))
	require.Equal(t, "L2", target.Level)
	require.Equal(t, CodeInfeasibleModel, target.Code())
	require.Contains(t, err.Error(), "L2")
}

func TestInsufficientFixedStaffing_ErrorsAs(t *testing.T) {
	var err error = &InsufficientFixedStaffing{Post: "P1", Have: 1, Need: 2}

	var target *InsufficientFixedStaffing
	require.True(t, errors.As(err, &target))
	require.Equal(t, CodeInsufficientFixedStaffing, target.Code())
	require.Contains(t, err.Error(), "P1")
}

func TestUnknownEmployeeInAssignment_ErrorsAs(t *testing.T) {
	var err error = &UnknownEmployeeInAssignment{EmpID: "E9", ShiftID: "S1"}

	var target *UnknownEmployeeInAssignment
	require.True(t, errors.As(err, &target))
	require.Equal(t, CodeUnknownEmployeeInAssignment, target.Code())
	require.Contains(t, err.Error(), "E9")
	require.Contains(t, err.Error(), "S1")
}

func TestHourBudgetMismatch_ErrorsAs(t *testing.T) {
	var err error = &HourBudgetMismatch{EmpID: "E1", Expected: 160, Got: 150}

	var target *HourBudgetMismatch
	require.True(t, errors.As(err, &target))
	require.Equal(t, CodeHourBudgetMismatch, target.Code())
	require.Contains(t, err.Error(), "160.00")
	require.Contains(t, err.Error(), "150.00")
}

func TestInvalidConfig_ErrorsAs(t *testing.T) {
	var err error = &InvalidConfig{Field: "hours_per_week", Reason: "must be positive"}

	var target *InvalidConfig
	require.True(t, errors.As(err, &target))
	require.Equal(t, CodeInvalidConfig, target.Code())
	require.Contains(t, err.Error(), "hours_per_week")
	require.Contains(t, err.Error(), "must be positive")
}

func TestErrorTypes_AreDistinguishable(t *testing.T) {
	// A caller doing a type switch over a taxonomy should never confuse
	// two distinct failure modes, even when both satisfy error.
	var infeasible error = &InfeasibleModel{Level: "L1"}
	var staffing error = &InsufficientFixedStaffing{Post: "P1", Have: 0, Need: 1}

	var target *InsufficientFixedStaffing
	require.False(t, errors.As(infeasible, &target))

	var target2 *InfeasibleModel
	require.False(t, errors.As(staffing, &target2))
}
