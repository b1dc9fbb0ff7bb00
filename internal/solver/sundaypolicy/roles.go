package sundaypolicy

import (
	"sort"

	"github.com/kestrel-ops/shiftplan-go/internal/domain"
)

// Role is a post-local rank assigned to FIXED employees (by ascending
// salary) and a flat rank for FLOATERS, used to weight the excess-Sunday
// penalty under the "smart" policy (spec.md §4.6).
type Role string

const (
	RoleChampion     Role = "CHAMPION"
	RoleHelper       Role = "HELPER"
	RoleOther        Role = "OTHER"
	RoleFloater      Role = "FLOATER"
	RoleUnclassified Role = "UNCLASSIFIED"
)

// weight is the excess-Sunday penalty table from spec.md §4.6. The gaps
// are deliberately large: summing these into one Minimise call approximates
// a strict lexicographic preference over roles (spec.md §4.6 prose).
func weight(role Role, contractSalary float64) float64 {
	switch role {
	case RoleFloater:
		return 5
	case RoleChampion:
		return 1
	case RoleHelper:
		return 50
	case RoleOther:
		return 10000
	default:
		return float64(int64(contractSalary/1000)) * 10
	}
}

// inferRoles assigns a Role to every employee: per post, FIXED employees
// are sorted ascending by contract salary and ranked champion/helper/
// other; FLOATERS are uniformly relief (spec.md §4.6).
func inferRoles(employees []EmployeeRef) map[string]Role {
	roles := make(map[string]Role, len(employees))

	byPost := map[string][]EmployeeRef{}
	for _, e := range employees {
		if e.Kind == domain.Floater {
			roles[e.EmpID] = RoleFloater
			continue
		}
		byPost[e.PostID] = append(byPost[e.PostID], e)
	}

	for _, fixed := range byPost {
		sort.Slice(fixed, func(i, j int) bool {
			return fixed[i].ContractSalary < fixed[j].ContractSalary
		})
		for i, e := range fixed {
			switch i {
			case 0:
				roles[e.EmpID] = RoleChampion
			case 1:
				roles[e.EmpID] = RoleHelper
			default:
				roles[e.EmpID] = RoleOther
			}
		}
	}

	return roles
}
