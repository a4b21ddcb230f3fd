package parser

import (
	"fmt"
	"strings"
)

// SchemaError reports a sheet that cannot be processed because the sheet or
// required header columns are missing.
type SchemaError struct {
	Sheet   string
	Missing []string
	// NoSheet is set when the workbook has no sheet named Sheet.
	NoSheet bool
}

func (e *SchemaError) Error() string {
	if e.NoSheet {
		return fmt.Sprintf("schema error: sheet %q not found", e.Sheet)
	}
	return fmt.Sprintf("schema error in sheet %q: missing required columns: %s",
		e.Sheet, strings.Join(e.Missing, ", "))
}

// NewSchemaError creates a new SchemaError for missing columns.
func NewSchemaError(sheet string, missing []string) *SchemaError {
	return &SchemaError{
		Sheet:   sheet,
		Missing: missing,
	}
}

// AmountError reports a planned-amount cell that is not a number.
type AmountError struct {
	Column string
	Value  string
	Err    error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %q in column %q: %v", e.Value, e.Column, e.Err)
}

func (e *AmountError) Unwrap() error {
	return e.Err
}
