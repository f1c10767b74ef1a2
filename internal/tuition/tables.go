package tuition

import "github.com/farxc/tuition_status/internal/tuition/types"

const (
	StudentSheetName    = "Student Status"
	DepartmentSheetName = "Department Rollup"
)

// StudentTable renders the student summaries: identity columns, one column per
// period, computed columns, then the optional area and faculty columns.
func (r *Result) StudentTable() types.Table {
	header := []string{"Student ID", "Student Name"}
	if r.HasDepartment {
		header = append(header, "Department")
	}
	header = append(header, r.Periods...)
	header = append(header, "Period Count", "Total Paid", "Status")
	if r.HasAdditional {
		header = append(header, "Additional Payments")
	}
	if r.HasLeave {
		header = append(header, "Leave Note")
	}
	if r.HasArea {
		header = append(header, "Area")
	}
	if r.HasFaculty {
		header = append(header, "Faculty")
	}

	rows := make([][]any, 0, len(r.Students))
	for _, s := range r.Students {
		row := make([]any, 0, len(header))
		row = append(row, s.StudentID, s.Name)
		if r.HasDepartment {
			row = append(row, s.Department)
		}
		for _, p := range r.Periods {
			row = append(row, s.Amount(p))
		}
		row = append(row, s.PeriodCount, s.TotalPaid, s.Status)
		if r.HasAdditional {
			row = append(row, s.AdditionalPayments)
		}
		if r.HasLeave {
			row = append(row, s.LeaveNote)
		}
		if r.HasArea {
			row = append(row, s.Area)
		}
		if r.HasFaculty {
			row = append(row, s.Faculty)
		}
		rows = append(rows, row)
	}

	return types.Table{Name: StudentSheetName, Header: header, Rows: rows}
}

// DepartmentTable renders the department rollup with one count and one
// percentage column per status label.
func (r *Result) DepartmentTable() types.Table {
	paid, unpaid := r.statusLabels()
	header := []string{"Department", paid, unpaid, "Total", "% " + paid, "% " + unpaid}

	rows := make([][]any, 0, len(r.Departments))
	for _, d := range r.Departments {
		rows = append(rows, []any{d.Department, d.Paid, d.Unpaid, d.Total, d.PaidPercent, d.UnpaidPercent})
	}
	return types.Table{Name: DepartmentSheetName, Header: header, Rows: rows}
}

func (r *Result) statusLabels() (string, string) {
	paid, unpaid := r.paidLabel, r.unpaidLabel
	if paid == "" {
		paid = DefaultPaidLabel
	}
	if unpaid == "" {
		unpaid = DefaultUnpaidLabel
	}
	return paid, unpaid
}
