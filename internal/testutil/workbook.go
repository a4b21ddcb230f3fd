// Package testutil builds workbook fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the column layout of the Leipzig Grunddaten sheet used by the
// fixtures: the five required columns followed by two descriptive ones.
var Header = []interface{}{
	"Zuordnung_Kostenart.Ebene",
	"Objektart",
	"Zielstruktur.PC",
	"Plan 2025",
	"Plan 2026",
	"PCBeschreibung",
	"Amt",
}

// WriteWorkbook saves rows (header first) to sheet of a new xlsx file in a
// temporary directory and returns its path.
func WriteWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("Failed to rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to build cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("Failed to write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

// FiveRowSheet is a Grunddaten sheet with two accepted rows (prefixes 11 and
// 53), an object-level duplicate, a non-expense row and an unmapped prefix.
func FiveRowSheet() [][]interface{} {
	return [][]interface{}{
		Header,
		{"2 ordentliche Aufwendungen", "PR", "11010100", 1000.5, 1100, "Innere Verwaltung", "Hauptamt"},
		{"2 ordentliche Aufwendungen", "PR", "53010100", 250, 260.25, "Abwasserbeseitigung", "Stadtreinigung"},
		{"2 ordentliche Aufwendungen", "OR", "11010100", 1000.5, 1100, "Rathaus", "Hauptamt"},
		{"1 ordentliche Erträge", "PR", "21010100", 5, 5, "Schulen", "Schulamt"},
		{"2 ordentliche Aufwendungen", "PR", "99010100", 7, 7, "Unbekannt", ""},
	}
}
