package tuition

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns that are missing, or columns that appear
// more than once, after header normalization.
type SchemaError struct {
	Missing   []string `json:"missing,omitempty"`
	Duplicate []string `json:"duplicate,omitempty"`
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "required columns not found: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicate) > 0 {
		parts = append(parts, "columns found more than once: "+strings.Join(e.Duplicate, ", "))
	}
	if len(parts) == 0 {
		return "schema error"
	}
	return "schema error: " + strings.Join(parts, "; ")
}

// EmptySelectionError is returned when no academic period is selected. The
// periods found in the upload are attached so the caller can offer them again.
type EmptySelectionError struct {
	Available []string `json:"available"`
}

func (e *EmptySelectionError) Error() string {
	return "no period selected"
}

// MissingOptionalColumn notes an optional column absent from the upload. It is
// not an error; the output simply omits the field.
type MissingOptionalColumn struct {
	Column string `json:"column"`
}

func (m MissingOptionalColumn) String() string {
	return fmt.Sprintf("optional column %q not found", m.Column)
}
