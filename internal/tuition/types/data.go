package types

import "github.com/shopspring/decimal"

// PaymentRecord is one normalized input row.
type PaymentRecord struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Department  string  `json:"department,omitempty"`
	Area        string  `json:"area,omitempty"`
	Faculty     string  `json:"faculty,omitempty"`
	Category    string  `json:"category"`
	Period      string  `json:"period"`
	Amount      float64 `json:"amount"`
}

// ReducedRecord is the single representative amount of a (student, period) pair.
type ReducedRecord struct {
	StudentID string  `json:"student_id"`
	Period    string  `json:"period"`
	Amount    float64 `json:"amount"`
}

// Identity holds the first-seen descriptive fields of a student.
type Identity struct {
	Name       string
	Department string
	Area       string
	Faculty    string
}

type StudentSummary struct {
	StudentID          string             `json:"student_id"`
	Name               string             `json:"name"`
	Department         string             `json:"department,omitempty"`
	Area               string             `json:"area,omitempty"`
	Faculty            string             `json:"faculty,omitempty"`
	Amounts            map[string]float64 `json:"amounts"`
	PeriodCount        int                `json:"period_count"`
	TotalPaid          float64            `json:"total_paid"`
	Status             string             `json:"status"`
	AdditionalPayments float64            `json:"additional_payments,omitempty"`
	LeaveNote          string             `json:"leave_note,omitempty"`
}

// Amount returns the pivoted amount for period, 0 when the student has none.
func (s StudentSummary) Amount(period string) float64 {
	return s.Amounts[period]
}

type DepartmentRollup struct {
	Department    string          `json:"department"`
	Paid          int             `json:"paid"`
	Unpaid        int             `json:"unpaid"`
	Total         int             `json:"total"`
	PaidPercent   decimal.Decimal `json:"paid_percent"`
	UnpaidPercent decimal.Decimal `json:"unpaid_percent"`
}

// Table is an export-neutral rendering of a result table. Cells hold string,
// int, float64 or decimal.Decimal values.
type Table struct {
	Name   string   `json:"name"`
	Header []string `json:"header"`
	Rows   [][]any  `json:"rows"`
}
