package converter

import (
	"math"

	"github.com/farxc/tuition_status/internal/tuition/types"
	"github.com/farxc/tuition_status/internal/tuition/utils"
	"github.com/go-gota/gota/dataframe"
)

// Canonical column names of the tuition package, which imports this one.
const (
	colStudentID   = "student_id"
	colStudentName = "student_name"
	colDepartment  = "department"
	colArea        = "area"
	colFaculty     = "faculty"
	colCategory    = "category"
	colPeriod      = "period"
	colAmount      = "amount"
)

// DfToPaymentRecords converts every row of df. Columns are read once, so this
// is the one to use on whole frames.
func DfToPaymentRecords(df dataframe.DataFrame) []types.PaymentRecord {
	n := df.Nrow()
	names := df.Names()
	column := func(col string) []string {
		if !utils.ContainsString(names, col) {
			return make([]string, n)
		}
		return df.Col(col).Records()
	}

	ids := column(colStudentID)
	studentNames := column(colStudentName)
	departments := column(colDepartment)
	areas := column(colArea)
	faculties := column(colFaculty)
	categories := column(colCategory)
	periods := column(colPeriod)

	amounts := make([]float64, n)
	if utils.ContainsString(names, colAmount) {
		amounts = df.Col(colAmount).Float()
	}

	out := make([]types.PaymentRecord, 0, n)
	for i := 0; i < n; i++ {
		amount := amounts[i]
		if math.IsNaN(amount) {
			amount = 0
		}
		out = append(out, types.PaymentRecord{
			StudentID:   ids[i],
			StudentName: studentNames[i],
			Department:  departments[i],
			Area:        areas[i],
			Faculty:     faculties[i],
			Category:    categories[i],
			Period:      periods[i],
			Amount:      amount,
		})
	}
	return out
}
