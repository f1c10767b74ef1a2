package tuition

// Canonical column names used inside the pipeline once headers are resolved.
const (
	ColStudentID   = "student_id"
	ColStudentName = "student_name"
	ColCategory    = "category"
	ColPeriod      = "period"
	ColAmount      = "amount"
	ColDepartment  = "department"
	ColArea        = "area"
	ColFaculty     = "faculty"

	colRowKind   = "row_kind"
	colReduceKey = "reduce_key"
)

var requiredColumns = []string{
	ColStudentID,
	ColStudentName,
	ColCategory,
	ColPeriod,
	ColAmount,
}

var optionalColumns = []string{
	ColDepartment,
	ColArea,
	ColFaculty,
}

// DefaultColumnAliases maps normalized header text to canonical columns.
var DefaultColumnAliases = map[string]string{
	"nim":              ColStudentID,
	"student id":       ColStudentID,
	"student_id":       ColStudentID,
	"nama mahasiswa":   ColStudentName,
	"nama":             ColStudentName,
	"student name":     ColStudentName,
	"name":             ColStudentName,
	"jenis tagihan":    ColCategory,
	"tuition category": ColCategory,
	"category":         ColCategory,
	"tahun akademik":   ColPeriod,
	"academic period":  ColPeriod,
	"period":           ColPeriod,
	"nominal":          ColAmount,
	"amount":           ColAmount,
	"jurusan":          ColDepartment,
	"prodi":            ColDepartment,
	"department":       ColDepartment,
	"minat":            ColArea,
	"area of interest": ColArea,
	"area":             ColArea,
	"fakultas":         ColFaculty,
	"faculty":          ColFaculty,
}

// RowKind tags an input row by what its category label means.
type RowKind int

const (
	KindNone RowKind = iota
	KindTuition
	KindOther
	KindLeave
)

var rowKindNames = map[RowKind]string{
	KindNone:    "none",
	KindTuition: "tuition",
	KindOther:   "other",
	KindLeave:   "leave",
}

func (k RowKind) String() string {
	return rowKindNames[k]
}

var DefaultTuitionLabels = []string{"spp", "spp t", "spp angsuran 2", "spp tetap", "spp c"}

var DefaultLeaveLabels = []string{"cuti"}

const (
	DefaultPaidThreshold = 900_000
	DefaultPaidLabel     = "Paid"
	DefaultUnpaidLabel   = "Unpaid"
)
