// Package parser reads the budget sheet and classifies its rows.
package parser

import (
	"fmt"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/xuri/excelize/v2"
)

// Columns names the header fields read from the sheet.
type Columns struct {
	CostTypeLevel string `toml:"cost_type_level"`
	ObjectType    string `toml:"object_type"`
	ProductCode   string `toml:"product_code"`
	Plan2025      string `toml:"plan_2025"`
	Plan2026      string `toml:"plan_2026"`

	Description        string `toml:"description"`
	Office             string `toml:"office"`
	SubBudget          string `toml:"sub_budget"`
	CostTypePosition   string `toml:"cost_type_position"`
	AccountDescription string `toml:"account_description"`
}

// DefaultColumns returns the header names used by the Leipzig export.
func DefaultColumns() Columns {
	return Columns{
		CostTypeLevel: "Zuordnung_Kostenart.Ebene",
		ObjectType:    "Objektart",
		ProductCode:   "Zielstruktur.PC",
		Plan2025:      "Plan 2025",
		Plan2026:      "Plan 2026",

		Description:        "PCBeschreibung",
		Office:             "Amt",
		SubBudget:          "Zielstruktur.Teilhaushalt Bezeichnung",
		CostTypePosition:   "Zuordnung_Kostenart.Position",
		AccountDescription: "KostenartBeschreibung",
	}
}

// Required returns the columns a sheet must have to be processed.
func (c Columns) Required() []string {
	return []string{c.CostTypeLevel, c.ObjectType, c.ProductCode, c.Plan2025, c.Plan2026}
}

// SheetReader iterates the data rows of one sheet, keyed by the header row.
type SheetReader struct {
	f      *excelize.File
	rows   *excelize.Rows
	sheet  string
	header []string
	line   int
	cur    models.Row
	err    error
}

// OpenSheet opens a workbook, reads the header row of sheet and checks that
// every required column is present. The returned reader must be closed.
func OpenSheet(path, sheet string, required []string) (*SheetReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	r, err := newSheetReader(f, sheet, required)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

func newSheetReader(f *excelize.File, sheet string, required []string) (*SheetReader, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, &SchemaError{Sheet: sheet, NoSheet: true}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var cells []string
	if rows.Next() {
		cells, err = rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("reading header of sheet %q: %w", sheet, err)
		}
	}

	header := HeaderNames(cells)
	if missing := MissingColumns(header, required); len(missing) > 0 {
		_ = rows.Close()
		return nil, NewSchemaError(sheet, missing)
	}

	return &SheetReader{
		f:      f,
		rows:   rows,
		sheet:  sheet,
		header: header,
		line:   1,
	}, nil
}

// HeaderNames turns the first row into field names. Empty cells get a
// positional placeholder ("col_3" for the fourth column).
func HeaderNames(cells []string) []string {
	names := make([]string, len(cells))
	for i, c := range cells {
		if c == "" {
			names[i] = fmt.Sprintf("col_%d", i)
			continue
		}
		names[i] = c
	}
	return names
}

// MissingColumns returns the required names absent from header, in the
// order they were required.
func MissingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, r := range required {
		if !present[r] {
			missing = append(missing, r)
		}
	}
	return missing
}

// Header returns the field names read from the first row.
func (r *SheetReader) Header() []string {
	return r.header
}

// Next advances to the next data row. It returns false at the end of the
// sheet or on error; check Err afterwards.
func (r *SheetReader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.rows.Next() {
		r.err = r.rows.Error()
		return false
	}

	cells, err := r.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		r.err = fmt.Errorf("reading row %d of sheet %q: %w", r.line+1, r.sheet, err)
		return false
	}
	r.line++

	row := make(models.Row, len(r.header))
	for i, name := range r.header {
		if i >= len(cells) {
			break
		}
		row[name] = cells[i]
	}
	r.cur = row
	return true
}

// Row returns the current data row.
func (r *SheetReader) Row() models.Row {
	return r.cur
}

// Line returns the 1-based sheet row number of the current row.
func (r *SheetReader) Line() int {
	return r.line
}

// Err returns the first error hit while iterating.
func (r *SheetReader) Err() error {
	return r.err
}

// Close releases the row iterator and the workbook.
func (r *SheetReader) Close() error {
	rerr := r.rows.Close()
	if err := r.f.Close(); err != nil {
		return err
	}
	return rerr
}
