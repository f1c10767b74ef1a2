package tuition

import (
	"fmt"
	"strings"

	"github.com/farxc/tuition_status/internal/env"
	"github.com/go-playground/validator/v10"
)

// Options configures a pipeline run. Labels are matched case-insensitively
// after trimming.
type Options struct {
	TuitionLabels []string          `validate:"required,min=1,dive,required"`
	LeaveLabels   []string          `validate:"dive,required"`
	ColumnAliases map[string]string `validate:"omitempty,dive,keys,required,endkeys,required"`

	// A student is paid when every selected period's amount is strictly
	// greater than PaidThreshold. Zero means "any positive amount".
	PaidThreshold float64 `validate:"gte=0"`
	PaidLabel     string  `validate:"required"`
	UnpaidLabel   string  `validate:"required,nefield=PaidLabel"`
}

// Selection carries the user's choices for one run.
type Selection struct {
	Periods     []string `json:"periods"`
	Departments []string `json:"departments,omitempty"`
}

func DefaultOptions() Options {
	return Options{
		TuitionLabels: append([]string(nil), DefaultTuitionLabels...),
		LeaveLabels:   append([]string(nil), DefaultLeaveLabels...),
		ColumnAliases: DefaultColumnAliases,
		PaidThreshold: DefaultPaidThreshold,
		PaidLabel:     DefaultPaidLabel,
		UnpaidLabel:   DefaultUnpaidLabel,
	}
}

// OptionsFromEnv starts from DefaultOptions and applies TUITION_LABELS,
// LEAVE_LABELS, PAID_THRESHOLD, PAID_LABEL and UNPAID_LABEL.
func OptionsFromEnv() Options {
	opts := DefaultOptions()
	opts.TuitionLabels = env.GetList("TUITION_LABELS", opts.TuitionLabels)
	opts.LeaveLabels = env.GetList("LEAVE_LABELS", opts.LeaveLabels)
	opts.PaidThreshold = env.GetFloat("PAID_THRESHOLD", opts.PaidThreshold)
	opts.PaidLabel = env.GetString("PAID_LABEL", opts.PaidLabel)
	opts.UnpaidLabel = env.GetString("UNPAID_LABEL", opts.UnpaidLabel)
	return opts
}

var validate = validator.New()

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	leave := labelSet(o.LeaveLabels)
	for _, label := range o.TuitionLabels {
		if leave[strings.ToLower(strings.TrimSpace(label))] {
			return fmt.Errorf("invalid options: label %q is both tuition and leave", label)
		}
	}
	return nil
}

func labelSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		if k := strings.ToLower(strings.TrimSpace(l)); k != "" {
			set[k] = true
		}
	}
	return set
}

// cleanSelection trims entries and drops blanks and duplicates, keeping order.
func cleanSelection(vals []string) []string {
	out := make([]string, 0, len(vals))
	seen := make(map[string]bool, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
