package tuition

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition/converter"
	"github.com/farxc/tuition_status/internal/tuition/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
)

// Result holds the output tables of one pipeline run.
type Result struct {
	RunID           string                   `json:"run_id"`
	SelectedPeriods []string                 `json:"selected_periods"`
	Periods         []string                 `json:"periods"`
	Students        []types.StudentSummary   `json:"students"`
	Departments     []types.DepartmentRollup `json:"departments"`
	Warnings        []MissingOptionalColumn  `json:"warnings,omitempty"`

	HasDepartment bool `json:"has_department"`
	HasArea       bool `json:"has_area"`
	HasFaculty    bool `json:"has_faculty"`
	HasAdditional bool `json:"has_additional"`
	HasLeave      bool `json:"has_leave"`

	paidLabel   string
	unpaidLabel string
}

// Run executes the whole pipeline over one uploaded table. records[0] is the
// header row. Nothing is kept between runs.
func Run(records [][]string, sel Selection, opts Options, appLogger *logger.Logger) (*Result, error) {
	const component = "Pipeline"

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	started := time.Now()
	appLogger.Info(component, "Run started: runID=%s rows=%d periods=%v", runID, max(len(records)-1, 0), sel.Periods)

	table, err := Normalize(records, opts.ColumnAliases, appLogger)
	if err != nil {
		return nil, err
	}

	selected := cleanSelection(sel.Periods)
	if len(selected) == 0 {
		appLogger.Warn(component, "Run halted, no period selected: runID=%s", runID)
		return nil, &EmptySelectionError{Available: AvailablePeriods(table)}
	}
	sort.Strings(selected)

	classifier := NewClassifier(opts.TuitionLabels, opts.LeaveLabels)
	tagged := table.Frame
	if tagged.Nrow() > 0 {
		tagged = classifier.Tag(tagged, appLogger)
	}

	tuitionRows, err := FilterRows(tagged, KindTuition, selected)
	if err != nil {
		return nil, err
	}
	appLogger.Info("RowFilter", "Tuition rows selected: rows=%d periods=%v", tuitionRows.Nrow(), selected)

	reduced, err := Reduce(tuitionRows, appLogger)
	if err != nil {
		return nil, fmt.Errorf("reduce tuition rows: %w", err)
	}

	students, periods := Pivot(reduced, BuildIdentities(table), appLogger)

	rule := PaidRule{Threshold: opts.PaidThreshold, PaidLabel: opts.PaidLabel, UnpaidLabel: opts.UnpaidLabel}
	ClassifyStatus(students, periods, selected, rule, appLogger)

	res := &Result{
		RunID:           runID,
		SelectedPeriods: selected,
		Periods:         periods,
		Students:        students,
		Departments:     []types.DepartmentRollup{},
		Warnings:        table.Warnings,
		HasDepartment:   table.Has(ColDepartment),
		HasArea:         table.Has(ColArea),
		HasFaculty:      table.Has(ColFaculty),
		paidLabel:       opts.PaidLabel,
		unpaidLabel:     opts.UnpaidLabel,
	}

	if err := attachExtras(res, tagged, selected); err != nil {
		return nil, err
	}

	if res.HasDepartment {
		res.Departments = Aggregate(students, rule, sel.Departments, appLogger)
	}

	appLogger.Info(component, "Run completed: runID=%s students=%d departments=%d duration=%s",
		runID, len(res.Students), len(res.Departments), time.Since(started).Round(time.Millisecond))
	return res, nil
}

// attachExtras adds the additional-payment total and the leave-of-absence note
// of each student, both over the selected periods only.
func attachExtras(res *Result, tagged dataframe.DataFrame, selected []string) error {
	otherRows, err := FilterRows(tagged, KindOther, selected)
	if err != nil {
		return err
	}
	additional, err := SumPositive(otherRows)
	if err != nil {
		return fmt.Errorf("sum additional payments: %w", err)
	}

	leaveRows, err := FilterRows(tagged, KindLeave, selected)
	if err != nil {
		return err
	}
	leavePeriods := make(map[string][]string)
	for _, rec := range converter.DfToPaymentRecords(leaveRows) {
		leavePeriods[rec.StudentID] = append(leavePeriods[rec.StudentID], rec.Period)
	}

	res.HasAdditional = otherRows.Nrow() > 0
	res.HasLeave = leaveRows.Nrow() > 0

	for i := range res.Students {
		s := &res.Students[i]
		s.AdditionalPayments = additional[s.StudentID]
		if ps, ok := leavePeriods[s.StudentID]; ok {
			s.LeaveNote = LeaveNote(ps)
		}
	}
	return nil
}

// LeaveNote renders the periods a student was on leave.
func LeaveNote(periods []string) string {
	uniq := cleanSelection(periods)
	sort.Strings(uniq)
	return "Leave of absence: " + strings.Join(uniq, ", ")
}

// IsUserError reports whether err comes from the upload or the selection rather
// than from the pipeline itself.
func IsUserError(err error) bool {
	var schemaErr *SchemaError
	var selErr *EmptySelectionError
	return errors.As(err, &schemaErr) || errors.As(err, &selErr)
}
