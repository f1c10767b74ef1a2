package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/farxc/tuition_status/internal/tuition/types"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	StudentFileName    = "student_payment_status.xlsx"
	DepartmentFileName = "department_rollup.xlsx"
)

// WriteXLSX writes table as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, table types.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Name
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if len(table.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, row := range table.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = xlsxValue(v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes table to dir/name, creating dir if needed, and returns the path.
func SaveXLSX(dir, name string, table types.Table) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteXLSX(file, table); err != nil {
		file.Close()
		return "", err
	}
	return path, file.Close()
}

// RenderTable prints table as aligned text, the way it is shown on a terminal.
func RenderTable(w io.Writer, table types.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(table.Header)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = textValue(v)
		}
		tw.Append(cells)
	}
	tw.Render()
}

func xlsxValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}

func textValue(v any) string {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.StringFixed(2)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
