package haushalt

import (
	"errors"
	"fmt"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/parser"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/validation"
)

// ErrMissingInput indicates the input workbook does not exist.
var ErrMissingInput = errors.New("input file not found")

// ErrInvalidFormat indicates the input file is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrEmptyResult indicates that no row survived filtering, which usually
// means the sheet layout or the prefix table no longer fits the data.
var ErrEmptyResult = errors.New("no budget items extracted")

// SchemaError reports a missing sheet or missing required columns.
type SchemaError = parser.SchemaError

// AmountError reports a planned amount that is not a number.
type AmountError = parser.AmountError

// RowError ties a row-level failure to its sheet row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ValidationMismatchError reports block aggregates that do not add up to the
// grand total of a fiscal year. Output must not be written.
type ValidationMismatchError struct {
	Year       int
	GrandTotal float64
	BlockSum   float64
	Diff       float64
}

func (e *ValidationMismatchError) Error() string {
	return fmt.Sprintf("validation failed for %d: total=%.2f, sum of blocks=%.2f, difference=%.2f",
		e.Year, e.GrandTotal, e.BlockSum, e.Diff)
}

// NewValidationMismatchError creates a ValidationMismatchError from a failed check.
func NewValidationMismatchError(c validation.YearCheck) *ValidationMismatchError {
	return &ValidationMismatchError{
		Year:       c.Year,
		GrandTotal: c.GrandTotal,
		BlockSum:   c.BlockSum,
		Diff:       c.Diff,
	}
}
