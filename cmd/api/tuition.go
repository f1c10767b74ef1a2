package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/farxc/tuition_status/internal/response"
	"github.com/farxc/tuition_status/internal/tuition"
	"github.com/farxc/tuition_status/internal/tuition/export"
	"github.com/farxc/tuition_status/internal/tuition/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PeriodsData struct {
	Periods     []string `json:"periods"`
	Departments []string `json:"departments"`
}

type ListPeriodsResponse = response.APIResponse[PeriodsData]
type ProcessResponse = response.APIResponse[*tuition.Result]

func warningMessages(ws []tuition.MissingOptionalColumn) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.String())
	}
	return out
}

// @Summary		List academic periods
// @Description	Reads an upload and returns the periods and departments it contains, so a client can build its selection.
// @Tags			Tuition
// @Accept			mpfd
// @Produce		json
// @Param			file	formData	file					true	"Spreadsheet (.xlsx or .csv)"
// @Success		200		{object}	ListPeriodsResponse
// @Failure		400		{object}	response.ErrorResponse	"Missing or unreadable upload"
// @Failure		422		{object}	response.ErrorResponse	"Required columns missing"
// @Router			/periods [post]
func (app *application) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	records, err := app.readUpload(w, r)
	if err != nil {
		app.writeProcessError(w, err)
		return
	}

	table, err := tuition.Normalize(records, app.opts.ColumnAliases, app.logger)
	if err != nil {
		app.writeProcessError(w, err)
		return
	}

	resp := &ListPeriodsResponse{
		Success:  true,
		Message:  "Successfully read upload",
		Warnings: warningMessages(table.Warnings),
		Data: PeriodsData{
			Periods:     tuition.AvailablePeriods(table),
			Departments: tuition.AvailableDepartments(table),
		},
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) processUpload(w http.ResponseWriter, r *http.Request) (*tuition.Result, error) {
	records, err := app.readUpload(w, r)
	if err != nil {
		return nil, err
	}
	return tuition.Run(records, selectionFromForm(r), app.opts, app.logger)
}

func (app *application) writeResult(w http.ResponseWriter, res *tuition.Result) {
	resp := &ProcessResponse{
		Success:  true,
		Message:  fmt.Sprintf("Processed %d students", len(res.Students)),
		Warnings: warningMessages(res.Warnings),
		Data:     res,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Process upload
// @Description	Runs the pipeline over an upload and returns student statuses and the department rollup.
// @Tags			Tuition
// @Accept			mpfd
// @Produce		json
// @Param			file		formData	file					true	"Spreadsheet (.xlsx or .csv)"
// @Param			periods		formData	string					true	"Academic periods, repeated or comma separated"
// @Param			departments	formData	string					false	"Departments to keep in the rollup"
// @Success		200			{object}	ProcessResponse
// @Failure		400			{object}	response.ErrorResponse	"Missing upload or empty period selection"
// @Failure		422			{object}	response.ErrorResponse	"Required columns missing"
// @Router			/process [post]
func (app *application) handleProcessUpload(w http.ResponseWriter, r *http.Request) {
	res, err := app.processUpload(w, r)
	if err != nil {
		app.writeProcessError(w, err)
		return
	}
	app.writeResult(w, res)
}

type processRecordsInput struct {
	Records     [][]string `json:"records"`
	Periods     []string   `json:"periods"`
	Departments []string   `json:"departments"`
}

// @Summary		Process records
// @Description	Runs the pipeline over rows a client already read; records[0] is the header row.
// @Tags			Tuition
// @Accept			json
// @Produce		json
// @Param			input	body		processRecordsInput		true	"Rows and selection"
// @Success		200		{object}	ProcessResponse
// @Failure		400		{object}	response.ErrorResponse	"Invalid payload or empty period selection"
// @Failure		422		{object}	response.ErrorResponse	"Required columns missing"
// @Router			/process/records [post]
func (app *application) handleProcessRecords(w http.ResponseWriter, r *http.Request) {
	var input processRecordsInput
	if err := readJSON(w, r, app.maxUploadBytes(), &input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			app.writeProcessError(w, err)
			return
		}
		app.writeProcessError(w, &uploadError{fmt.Errorf("invalid request payload: %w", err)})
		return
	}

	res, err := tuition.Run(input.Records, tuition.Selection{Periods: input.Periods, Departments: input.Departments}, app.opts, app.logger)
	if err != nil {
		app.writeProcessError(w, err)
		return
	}
	app.writeResult(w, res)
}

func (app *application) exportTable(w http.ResponseWriter, r *http.Request, filename string, render func(*tuition.Result) types.Table) {
	const component = "Export"

	res, err := app.processUpload(w, r)
	if err != nil {
		app.writeProcessError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, render(res)); err != nil {
		app.writeProcessError(w, err)
		return
	}

	app.logger.Info(component, "Export ready: runID=%s file=%s bytes=%d", res.RunID, filename, buf.Len())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		app.logger.Warn(component, "Failed to send export: file=%s error=%v", filename, err)
	}
}

// @Summary		Export student statuses
// @Tags			Tuition
// @Accept			mpfd
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			file	formData	file	true	"Spreadsheet (.xlsx or .csv)"
// @Param			periods	formData	string	true	"Academic periods"
// @Success		200		{file}		file
// @Router			/export/students [post]
func (app *application) handleExportStudents(w http.ResponseWriter, r *http.Request) {
	app.exportTable(w, r, export.StudentFileName, (*tuition.Result).StudentTable)
}

// @Summary		Export department rollup
// @Tags			Tuition
// @Accept			mpfd
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			file		formData	file	true	"Spreadsheet (.xlsx or .csv)"
// @Param			periods		formData	string	true	"Academic periods"
// @Param			departments	formData	string	false	"Departments to keep"
// @Success		200			{file}		file
// @Router			/export/departments [post]
func (app *application) handleExportDepartments(w http.ResponseWriter, r *http.Request) {
	app.exportTable(w, r, export.DepartmentFileName, (*tuition.Result).DepartmentTable)
}
