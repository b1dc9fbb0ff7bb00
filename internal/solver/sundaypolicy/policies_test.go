package sundaypolicy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-ops/shiftplan-go/internal/domain"
	"github.com/kestrel-ops/shiftplan-go/internal/solver/cpsat"
)

func testContext(m *cpsat.Model) Context {
	emp := EmployeeRef{
		EmpID: "E1", Kind: domain.Fixed, PostID: "P1", ContractSalary: 1500,
		HourlyWage:      6.25,
		ExcessSundays:   m.NewBoolVar("excess_E1"),
		HoursAssigned:   m.NewIntVar(0, 300, "hours_assigned_E1"),
		HoursAssignedUB: 300,
		HoursNight:      m.NewIntVar(0, 30000, "hours_night_E1"),
		HoursHoliday:    m.NewIntVar(0, 30000, "hours_holiday_E1"),
		HoursSunday:     m.NewIntVar(0, 30000, "hours_sunday_E1"),
		HEHours:         m.NewIntVar(0, 30000, "he_hours_E1"),
	}
	return Context{Model: m, Employees: []EmployeeRef{emp}, RFPercent: 75, RNPercent: 25, HEPercent: 50}
}

func TestNew_KnownPolicies(t *testing.T) {
	for _, name := range []string{"smart", "balanced", "cost_focused", "load_balancing", "surcharge_equity"} {
		p, err := New(name)
		require.NoError(t, err)
		require.NotNil(t, p)
	}
}

func TestNew_UnknownPolicy(t *testing.T) {
	_, err := New("nonexistent")
	require.Error(t, err)
}

func TestSmartPolicy_BuildsObjective(t *testing.T) {
	m := cpsat.NewModel()
	p := smartPolicy{}
	res, err := p.BuildL2bObjective(testContext(m))
	require.NoError(t, err)
	require.NotNil(t, res.Objective)
	require.True(t, res.FreezeAfter)
}

func TestBalancedPolicy_BuildsObjective(t *testing.T) {
	m := cpsat.NewModel()
	p := balancedPolicy{}
	res, err := p.BuildL2bObjective(testContext(m))
	require.NoError(t, err)
	require.NotNil(t, res.Objective)
}

func TestCostFocusedPolicy_BuildsObjective(t *testing.T) {
	m := cpsat.NewModel()
	p := costFocusedPolicy{}
	res, err := p.BuildL2bObjective(testContext(m))
	require.NoError(t, err)
	require.NotNil(t, res.Objective)
}

func TestLoadBalancingPolicy_BuildsObjective(t *testing.T) {
	m := cpsat.NewModel()
	p := loadBalancingPolicy{}
	res, err := p.BuildL2bObjective(testContext(m))
	require.NoError(t, err)
	require.NotNil(t, res.Objective)
}

func TestSurchargeEquityPolicy_BuildsObjective(t *testing.T) {
	m := cpsat.NewModel()
	p := surchargeEquityPolicy{}
	res, err := p.BuildL2bObjective(testContext(m))
	require.NoError(t, err)
	require.NotNil(t, res.Objective)
}
