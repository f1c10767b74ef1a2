package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/farxc/tuition_status/internal/tuition"
	"github.com/farxc/tuition_status/internal/tuition/files"
)

const (
	errKindUpload    = "upload"
	errKindSchema    = "schema"
	errKindSelection = "empty_selection"
	errKindTooLarge  = "too_large"
	errKindInternal  = "internal"
)

// uploadError marks problems with the request itself: a missing file, a bad
// form, an unreadable spreadsheet.
type uploadError struct {
	err error
}

func (e *uploadError) Error() string { return e.err.Error() }
func (e *uploadError) Unwrap() error { return e.err }

func (app *application) maxUploadBytes() int64 {
	mb := app.config.maxUploadMB
	if mb <= 0 {
		mb = 32
	}
	return int64(mb) << 20
}

// readUpload parses the multipart form and decodes its "file" part. Optional
// form fields sheet, delimiter and encoding tune the decoder.
func (app *application) readUpload(w http.ResponseWriter, r *http.Request) ([][]string, error) {
	maxBytes := app.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &uploadError{fmt.Errorf("invalid multipart form: %w", err)}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &uploadError{fmt.Errorf("form field \"file\" is required: %w", err)}
	}
	defer file.Close()

	opts := files.ReadOptions{
		Sheet:    r.FormValue("sheet"),
		Encoding: r.FormValue("encoding"),
	}
	if d := r.FormValue("delimiter"); d != "" {
		if utf8.RuneCountInString(d) != 1 {
			return nil, &uploadError{fmt.Errorf("delimiter must be a single character, got %q", d)}
		}
		opts.Delimiter, _ = utf8.DecodeRuneInString(d)
	}

	records, err := files.Read(file, header.Filename, opts, app.logger)
	if err != nil {
		return nil, &uploadError{err}
	}
	return records, nil
}

// formList collects a repeated form field, also splitting comma separated
// values, so both periods=2023&periods=2024 and periods=2023,2024 work.
func formList(r *http.Request, key string) []string {
	var out []string
	if r.MultipartForm != nil {
		for _, v := range r.MultipartForm.Value[key] {
			out = append(out, strings.Split(v, ",")...)
		}
		return out
	}
	for _, v := range r.Form[key] {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func selectionFromForm(r *http.Request) tuition.Selection {
	return tuition.Selection{
		Periods:     formList(r, "periods"),
		Departments: formList(r, "departments"),
	}
}

// writeProcessError maps pipeline and upload errors to a status code and an
// error kind the client can switch on.
func (app *application) writeProcessError(w http.ResponseWriter, err error) {
	const component = "API"

	var (
		upErr     *uploadError
		tooLarge  *http.MaxBytesError
		schemaErr *tuition.SchemaError
		selErr    *tuition.EmptySelectionError
	)
	switch {
	case errors.As(err, &tooLarge):
		writeJSONErrorKind(w, http.StatusRequestEntityTooLarge, errKindTooLarge,
			fmt.Sprintf("upload exceeds %d MB", app.config.maxUploadMB), nil)
	case errors.As(err, &upErr):
		writeJSONErrorKind(w, http.StatusBadRequest, errKindUpload, err.Error(), nil)
	case errors.As(err, &schemaErr):
		writeJSONErrorKind(w, http.StatusUnprocessableEntity, errKindSchema, err.Error(), schemaErr)
	case errors.As(err, &selErr):
		writeJSONErrorKind(w, http.StatusBadRequest, errKindSelection, err.Error(),
			map[string][]string{"available_periods": selErr.Available})
	default:
		app.logger.Error(component, "Request failed: error=%v", err)
		writeJSONErrorKind(w, http.StatusInternalServerError, errKindInternal, "failed to process upload", nil)
	}
}
