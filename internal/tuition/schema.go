package tuition

import (
	"sort"
	"strings"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NormalizedTable is the upload after header resolution and cell cleanup. Its
// frame carries canonical column names; every column is a string series except
// ColAmount, which is float.
type NormalizedTable struct {
	Frame       dataframe.DataFrame
	Warnings    []MissingOptionalColumn
	DroppedRows int

	present map[string]bool
}

// Has reports whether a canonical column exists in the upload.
func (t *NormalizedTable) Has(col string) bool {
	return t.present[col]
}

// Normalize resolves raw headers through aliases and cleans key fields. The
// first record is the header row.
func Normalize(records [][]string, aliases map[string]string, appLogger *logger.Logger) (*NormalizedTable, error) {
	const component = "SchemaNormalizer"

	if len(aliases) == 0 {
		aliases = DefaultColumnAliases
	}
	if len(records) == 0 {
		return nil, &SchemaError{Missing: append([]string(nil), requiredColumns...)}
	}

	header := records[0]
	colIndex := make(map[string]int)
	var duplicates []string
	for i, h := range header {
		canonical, ok := aliases[utils.NormalizeHeader(h)]
		if !ok {
			continue
		}
		if _, seen := colIndex[canonical]; seen {
			if !utils.ContainsString(duplicates, canonical) {
				duplicates = append(duplicates, canonical)
			}
			continue
		}
		colIndex[canonical] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 || len(duplicates) > 0 {
		sort.Strings(duplicates)
		err := &SchemaError{Missing: missing, Duplicate: duplicates}
		appLogger.Error(component, "Header check failed: headers=%v error=%v", header, err)
		return nil, err
	}

	table := &NormalizedTable{present: make(map[string]bool)}
	columns := append([]string(nil), requiredColumns...)
	for _, col := range requiredColumns {
		table.present[col] = true
	}
	for _, col := range optionalColumns {
		if _, ok := colIndex[col]; ok {
			table.present[col] = true
			columns = append(columns, col)
			continue
		}
		table.Warnings = append(table.Warnings, MissingOptionalColumn{Column: col})
		appLogger.Warn(component, "Optional column missing, field will be omitted: column=%s", col)
	}

	values := make(map[string][]string, len(columns))
	amounts := make([]float64, 0, len(records)-1)
	badAmounts := 0

	cell := func(row []string, col string) string {
		idx := colIndex[col]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		id := utils.NormalizeID(cell(row, ColStudentID))
		if id == "" {
			table.DroppedRows++
			continue
		}

		for _, col := range columns {
			var v string
			switch col {
			case ColStudentID:
				v = id
			case ColStudentName:
				v = utils.TitleName(cell(row, col))
			case ColAmount:
				raw := cell(row, col)
				amount, ok := utils.ParseAmount(raw)
				if !ok && strings.TrimSpace(raw) != "" {
					badAmounts++
				}
				amounts = append(amounts, amount)
				continue
			default:
				v = strings.TrimSpace(cell(row, col))
			}
			values[col] = append(values[col], v)
		}
	}

	if table.DroppedRows > 0 {
		appLogger.Warn(component, "Rows without student ID dropped: count=%d", table.DroppedRows)
	}
	if badAmounts > 0 {
		appLogger.Warn(component, "Unreadable nominal values treated as zero: count=%d", badAmounts)
	}

	cols := make([]series.Series, 0, len(columns))
	for _, col := range columns {
		if col == ColAmount {
			cols = append(cols, series.New(amounts, series.Float, ColAmount))
			continue
		}
		vals := values[col]
		if vals == nil {
			vals = []string{}
		}
		cols = append(cols, series.New(vals, series.String, col))
	}

	table.Frame = dataframe.New(cols...)
	if err := table.Frame.Error(); err != nil {
		return nil, err
	}

	appLogger.Info(component, "Upload normalized: rows=%d columns=%v", table.Frame.Nrow(), table.Frame.Names())
	return table, nil
}

// AvailablePeriods lists the distinct academic periods present in the table.
func AvailablePeriods(t *NormalizedTable) []string {
	if t == nil || t.Frame.Nrow() == 0 {
		return []string{}
	}
	return utils.UniqueSorted(t.Frame.Col(ColPeriod).Records())
}

// AvailableDepartments lists the distinct non-blank departments, or nothing
// when the upload has no department column.
func AvailableDepartments(t *NormalizedTable) []string {
	if t == nil || !t.Has(ColDepartment) || t.Frame.Nrow() == 0 {
		return []string{}
	}
	return utils.UniqueSorted(t.Frame.Col(ColDepartment).Records())
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
