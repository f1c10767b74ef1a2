package tuition

import (
	"sort"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition/converter"
	"github.com/farxc/tuition_status/internal/tuition/types"
)

// BuildIdentities keeps the first-seen name, department, area and faculty of
// every student in the normalized table.
func BuildIdentities(t *NormalizedTable) map[string]types.Identity {
	identities := make(map[string]types.Identity)
	for _, rec := range converter.DfToPaymentRecords(t.Frame) {
		if _, ok := identities[rec.StudentID]; ok {
			continue
		}
		identities[rec.StudentID] = types.Identity{
			Name:       rec.StudentName,
			Department: rec.Department,
			Area:       rec.Area,
			Faculty:    rec.Faculty,
		}
	}
	return identities
}

// Pivot turns reduced rows into one summary per student with an amount for
// every period present among the rows. It returns the summaries ordered by
// student ID and the sorted period columns.
func Pivot(reduced []types.ReducedRecord, identities map[string]types.Identity, appLogger *logger.Logger) ([]types.StudentSummary, []string) {
	const component = "PivotBuilder"

	periodSet := make(map[string]struct{})
	byStudent := make(map[string]*types.StudentSummary)
	order := make([]string, 0)

	for _, r := range reduced {
		periodSet[r.Period] = struct{}{}
		s, ok := byStudent[r.StudentID]
		if !ok {
			id := identities[r.StudentID]
			s = &types.StudentSummary{
				StudentID:  r.StudentID,
				Name:       id.Name,
				Department: id.Department,
				Area:       id.Area,
				Faculty:    id.Faculty,
				Amounts:    make(map[string]float64),
			}
			byStudent[r.StudentID] = s
			order = append(order, r.StudentID)
		}
		s.Amounts[r.Period] = r.Amount
	}

	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	sort.Strings(order)

	students := make([]types.StudentSummary, 0, len(order))
	for _, id := range order {
		s := byStudent[id]
		for _, p := range periods {
			if _, ok := s.Amounts[p]; !ok {
				s.Amounts[p] = 0
			}
		}
		students = append(students, *s)
	}

	appLogger.Info(component, "Pivot built: students=%d periods=%v", len(students), periods)
	return students, periods
}
