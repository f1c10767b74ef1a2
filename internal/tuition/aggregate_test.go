package tuition

import (
	"testing"

	"github.com/farxc/tuition_status/internal/tuition/types"
	"github.com/shopspring/decimal"
)

var testRule = PaidRule{Threshold: 900_000, PaidLabel: "Paid", UnpaidLabel: "Unpaid"}

func summary(id, dept, status string) types.StudentSummary {
	return types.StudentSummary{StudentID: id, Department: dept, Status: status}
}

func TestAggregateAgronomyScenario(t *testing.T) {
	students := []types.StudentSummary{
		summary("A1", "Agronomy", "Paid"),
		summary("A2", "Agronomy", "Paid"),
		summary("A3", "Agronomy", "Paid"),
		summary("A4", "Agronomy", "Unpaid"),
	}
	rollup := Aggregate(students, testRule, nil, testLogger)
	if len(rollup) != 1 {
		t.Fatalf("expected 1 department, got %d", len(rollup))
	}
	r := rollup[0]
	if r.Paid != 3 || r.Unpaid != 1 || r.Total != 4 {
		t.Fatalf("counts = %+v", r)
	}
	if !r.PaidPercent.Equal(decimal.RequireFromString("75.00")) || !r.UnpaidPercent.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("percentages = %s %s", r.PaidPercent, r.UnpaidPercent)
	}
}

func TestAggregateFillsMissingStatusWithZero(t *testing.T) {
	students := []types.StudentSummary{
		summary("B1", "Kehutanan", "Unpaid"),
		summary("C1", "Agronomy", "Paid"),
	}
	rollup := Aggregate(students, testRule, nil, testLogger)
	if len(rollup) != 2 || rollup[0].Department != "Agronomy" {
		t.Fatalf("rollup = %+v", rollup)
	}
	k := rollup[1]
	if k.Paid != 0 || k.Unpaid != 1 || !k.PaidPercent.IsZero() || !k.UnpaidPercent.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Kehutanan = %+v", k)
	}
}

func TestAggregateConsistency(t *testing.T) {
	students := []types.StudentSummary{
		summary("1", "X", "Paid"),
		summary("2", "X", "Unpaid"),
		summary("3", "X", "Unpaid"),
		summary("4", "", "Paid"),
		summary("5", "Y", "Paid"),
	}
	for _, r := range Aggregate(students, testRule, nil, testLogger) {
		if r.Paid+r.Unpaid != r.Total {
			t.Fatalf("%s counts do not add up: %+v", r.Department, r)
		}
		if !r.PaidPercent.Equal(Percent(r.Paid, r.Total)) {
			t.Fatalf("%s paid percent = %s", r.Department, r.PaidPercent)
		}
		if r.Department == "" {
			t.Fatalf("blank department must be left out")
		}
	}
}

func TestAggregateDepartmentSelection(t *testing.T) {
	students := []types.StudentSummary{
		summary("1", "X", "Paid"),
		summary("2", "Y", "Unpaid"),
	}
	rollup := Aggregate(students, testRule, []string{" Y ", ""}, testLogger)
	if len(rollup) != 1 || rollup[0].Department != "Y" {
		t.Fatalf("rollup = %+v", rollup)
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		count, total int
		want         string
	}{
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{0, 0, "0"},
		{4, 4, "100"},
	}
	for _, tc := range cases {
		if got := Percent(tc.count, tc.total); !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("Percent(%d, %d) = %s, want %s", tc.count, tc.total, got, tc.want)
		}
	}
}
