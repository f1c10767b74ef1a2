package tuition

import (
	"errors"
	"reflect"
	"testing"

	"github.com/farxc/tuition_status/internal/tuition/types"
)

func findStudent(t *testing.T, res *Result, id string) types.StudentSummary {
	t.Helper()
	for _, s := range res.Students {
		if s.StudentID == id {
			return s
		}
	}
	t.Fatalf("student %s not in result", id)
	return types.StudentSummary{}
}

func TestRunPaidAcrossBothPeriods(t *testing.T) {
	records := uploadRecords(
		row("A001", "budi santoso", "Agronomy", "SPP", "2023", "1000000"),
		row("A001", "budi santoso", "Agronomy", "SPP", "2024", "950000"),
	)
	res, err := Run(records, Selection{Periods: []string{"2023", "2024"}}, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := findStudent(t, res, "A001")
	if !floatEqual(s.Amount("2023"), 1_000_000) || !floatEqual(s.Amount("2024"), 950_000) {
		t.Fatalf("amounts = %v", s.Amounts)
	}
	if !floatEqual(s.TotalPaid, 1_950_000) || s.Status != "Paid" {
		t.Fatalf("A001 = %+v", s)
	}
}

func TestRunMissingPeriodIsUnpaid(t *testing.T) {
	records := uploadRecords(
		row("A001", "budi", "Agronomy", "SPP", "2023", "1000000"),
		row("B002", "andi", "Agronomy", "SPP", "2024", "1000000"),
	)
	res, err := Run(records, Selection{Periods: []string{"2023", "2024"}}, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := findStudent(t, res, "A001")
	if s.Amount("2024") != 0 || s.Status != "Unpaid" {
		t.Fatalf("A001 = %+v", s)
	}
}

func TestRunDepartmentRollup(t *testing.T) {
	records := uploadRecords(
		row("1", "a", "Agronomy", "SPP", "2024", "1000000"),
		row("2", "b", "Agronomy", "SPP", "2024", "1000000"),
		row("3", "c", "Agronomy", "SPP", "2024", "1000000"),
		row("4", "d", "Agronomy", "SPP", "2024", "100000"),
		row("5", "e", "Kehutanan", "SPP", "2024", "1000000"),
	)
	res, err := Run(records, Selection{Periods: []string{"2024"}, Departments: []string{"Agronomy"}}, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Departments) != 1 {
		t.Fatalf("departments = %+v", res.Departments)
	}
	d := res.Departments[0]
	if d.Department != "Agronomy" || d.Paid != 3 || d.Unpaid != 1 || d.Total != 4 {
		t.Fatalf("rollup = %+v", d)
	}
	if d.PaidPercent.StringFixed(2) != "75.00" || d.UnpaidPercent.StringFixed(2) != "25.00" {
		t.Fatalf("percentages = %s %s", d.PaidPercent, d.UnpaidPercent)
	}
}

func TestRunInvariants(t *testing.T) {
	records := uploadRecords(
		row("A001", "a", "X", "SPP", "2023", "1000000"),
		row("A001", "a", "X", "SPP", "2023", "1200000"),
		row("A001", "a", "X", "SPP", "2022", "5000000"),
		row("B002", "b", "Y", "spp angsuran 2", "2024", "-10"),
		row("C003", "c", "Y", "Praktikum", "2024", "300000"),
		row("", "ghost", "Y", "SPP", "2024", "1000000"),
	)
	sel := Selection{Periods: []string{"2024", " 2023", "2023"}}

	res, err := Run(records, sel, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !reflect.DeepEqual(res.SelectedPeriods, []string{"2023", "2024"}) {
		t.Fatalf("selected = %v", res.SelectedPeriods)
	}
	for _, p := range res.Periods {
		if p != "2023" && p != "2024" {
			t.Fatalf("period %s outside the selection", p)
		}
	}

	seen := make(map[string]bool)
	for _, s := range res.Students {
		if seen[s.StudentID] {
			t.Fatalf("student %s appears twice", s.StudentID)
		}
		seen[s.StudentID] = true

		var sum float64
		for _, p := range res.Periods {
			if s.Amount(p) < 0 {
				t.Fatalf("negative amount for %s", s.StudentID)
			}
			sum += s.Amount(p)
		}
		if !floatEqual(sum, s.TotalPaid) {
			t.Fatalf("%s total %v != sum %v", s.StudentID, s.TotalPaid, sum)
		}
	}
	if seen["C003"] {
		t.Fatalf("student with only non-tuition rows must not be listed")
	}
	if a := findStudent(t, res, "A001"); !floatEqual(a.Amount("2023"), 1_200_000) {
		t.Fatalf("A001 2023 = %v", a.Amount("2023"))
	}

	again, err := Run(records, sel, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(res.StudentTable(), again.StudentTable()) {
		t.Fatalf("student table differs between runs")
	}
	if !reflect.DeepEqual(res.DepartmentTable(), again.DepartmentTable()) {
		t.Fatalf("department table differs between runs")
	}
	if res.RunID == again.RunID {
		t.Fatalf("run ids should differ")
	}
}

func TestRunEmptySelection(t *testing.T) {
	records := uploadRecords(
		row("A001", "a", "X", "SPP", "2024", "1"),
		row("A001", "a", "X", "SPP", "2023", "1"),
	)
	_, err := Run(records, Selection{Periods: []string{" ", ""}}, DefaultOptions(), testLogger)

	var selErr *EmptySelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected EmptySelectionError, got %v", err)
	}
	if !reflect.DeepEqual(selErr.Available, []string{"2023", "2024"}) {
		t.Fatalf("available = %v", selErr.Available)
	}
	if !IsUserError(err) {
		t.Fatalf("empty selection should be a user error")
	}
}

func TestRunSchemaError(t *testing.T) {
	records := [][]string{{"NIM", "Nominal"}, {"A001", "1"}}
	_, err := Run(records, Selection{Periods: []string{"2024"}}, DefaultOptions(), testLogger)

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !IsUserError(err) {
		t.Fatalf("schema error should be a user error")
	}
}

func TestRunWithoutDepartmentColumn(t *testing.T) {
	records := [][]string{
		{"NIM", "Nama", "Jenis Tagihan", "Tahun Akademik", "Nominal"},
		{"A001", "a", "SPP", "2024", "1000000"},
	}
	res, err := Run(records, Selection{Periods: []string{"2024"}}, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.HasDepartment || len(res.Departments) != 0 {
		t.Fatalf("expected an empty rollup, got %+v", res.Departments)
	}
	if len(res.Warnings) != 3 {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if got := res.StudentTable().Header; !reflect.DeepEqual(got, []string{"Student ID", "Student Name", "2024", "Period Count", "Total Paid", "Status"}) {
		t.Fatalf("header = %v", got)
	}
}

func TestRunExtrasOverSelectedPeriods(t *testing.T) {
	records := uploadRecords(
		row("A001", "a", "X", "SPP", "2024", "1000000"),
		row("A001", "a", "X", "Praktikum", "2024", "150000"),
		row("A001", "a", "X", "Praktikum", "2022", "999"),
		row("A001", "a", "X", "Cuti", "2024", "0"),
		row("B002", "b", "X", "SPP", "2024", "1000000"),
	)
	res, err := Run(records, Selection{Periods: []string{"2024"}}, DefaultOptions(), testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	a := findStudent(t, res, "A001")
	if !floatEqual(a.AdditionalPayments, 150000) {
		t.Fatalf("additional = %v", a.AdditionalPayments)
	}
	if a.LeaveNote != "Leave of absence: 2024" {
		t.Fatalf("leave note = %q", a.LeaveNote)
	}
	if a.Status != "Paid" {
		t.Fatalf("leave must not change status, got %s", a.Status)
	}
	if b := findStudent(t, res, "B002"); b.LeaveNote != "" || b.AdditionalPayments != 0 {
		t.Fatalf("B002 = %+v", b)
	}

	header := res.StudentTable().Header
	want := []string{"Student ID", "Student Name", "Department", "2024", "Period Count", "Total Paid", "Status", "Additional Payments", "Leave Note"}
	if !reflect.DeepEqual(header, want) {
		t.Fatalf("header = %v", header)
	}
}

func TestRunCustomLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.PaidLabel, opts.UnpaidLabel = "Lunas", "Belum Lunas"
	opts.PaidThreshold = 0

	records := uploadRecords(row("A001", "a", "X", "SPP", "2024", "1"))
	res, err := Run(records, Selection{Periods: []string{"2024"}}, opts, testLogger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Students[0].Status != "Lunas" {
		t.Fatalf("status = %s", res.Students[0].Status)
	}
	want := []string{"Department", "Lunas", "Belum Lunas", "Total", "% Lunas", "% Belum Lunas"}
	if got := res.DepartmentTable().Header; !reflect.DeepEqual(got, want) {
		t.Fatalf("header = %v", got)
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.TuitionLabels = nil
	if _, err := Run(uploadRecords(), Selection{Periods: []string{"2024"}}, opts, testLogger); err == nil {
		t.Fatalf("expected options error")
	}
}

func TestLeaveNote(t *testing.T) {
	if got := LeaveNote([]string{"2024", "2023", "2024"}); got != "Leave of absence: 2023, 2024" {
		t.Fatalf("LeaveNote = %q", got)
	}
}
