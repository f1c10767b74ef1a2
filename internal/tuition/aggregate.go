package tuition

import (
	"sort"
	"strings"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent returns count/total*100 rounded half away from zero to 2 decimals.
func Percent(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}

// Aggregate groups classified students by department. Students with a blank
// department are left out. A non-empty departments list restricts the output
// to those departments.
func Aggregate(students []types.StudentSummary, rule PaidRule, departments []string, appLogger *logger.Logger) []types.DepartmentRollup {
	const component = "Aggregator"

	wanted := make(map[string]bool)
	for _, d := range cleanSelection(departments) {
		wanted[d] = true
	}

	byDept := make(map[string]*types.DepartmentRollup)
	counted := make(map[string]bool)
	blank := 0
	for _, s := range students {
		dept := strings.TrimSpace(s.Department)
		if dept == "" {
			blank++
			continue
		}
		if len(wanted) > 0 && !wanted[dept] {
			continue
		}
		// one vote per student ID
		if counted[s.StudentID] {
			continue
		}
		counted[s.StudentID] = true

		r, ok := byDept[dept]
		if !ok {
			r = &types.DepartmentRollup{Department: dept}
			byDept[dept] = r
		}
		if s.Status == rule.PaidLabel {
			r.Paid++
		} else {
			r.Unpaid++
		}
	}

	if blank > 0 {
		appLogger.Warn(component, "Students without department left out of rollup: count=%d", blank)
	}

	out := make([]types.DepartmentRollup, 0, len(byDept))
	for _, r := range byDept {
		r.Total = r.Paid + r.Unpaid
		r.PaidPercent = Percent(r.Paid, r.Total)
		r.UnpaidPercent = Percent(r.Unpaid, r.Total)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })

	appLogger.Info(component, "Department rollup built: departments=%d", len(out))
	return out
}
