package tuition

import (
	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition/types"
	"gonum.org/v1/gonum/floats"
)

// PaidRule decides whether a student has paid for a selection of periods.
type PaidRule struct {
	Threshold   float64
	PaidLabel   string
	UnpaidLabel string
}

// IsPaid reports whether every selected period's amount exceeds the threshold.
// Periods the student has no amount for count as zero.
func (r PaidRule) IsPaid(amounts map[string]float64, selected []string) bool {
	if len(selected) == 0 {
		return false
	}
	for _, p := range selected {
		if !(amounts[p] > r.Threshold) {
			return false
		}
	}
	return true
}

// ClassifyStatus fills TotalPaid, PeriodCount and Status of every student.
// selected must be the exact period set the rows were filtered with.
func ClassifyStatus(students []types.StudentSummary, periods, selected []string, rule PaidRule, appLogger *logger.Logger) {
	const component = "StatusClassifier"

	paid := 0
	values := make([]float64, len(periods))
	for i := range students {
		s := &students[i]
		for j, p := range periods {
			values[j] = s.Amounts[p]
		}
		s.TotalPaid = floats.Sum(values)
		s.PeriodCount = len(selected)
		if rule.IsPaid(s.Amounts, selected) {
			s.Status = rule.PaidLabel
			paid++
		} else {
			s.Status = rule.UnpaidLabel
		}
	}

	appLogger.Info(component, "Status classified: students=%d paid=%d unpaid=%d threshold=%.2f",
		len(students), paid, len(students)-paid, rule.Threshold)
}
