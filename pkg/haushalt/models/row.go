// Package models defines data structures for budget extraction.
package models

// Row maps header names to raw cell text for one data row of the sheet.
// A missing key means the row ended before that column.
type Row map[string]string

// Text returns the raw value of a column, or "" if the cell is absent.
func (r Row) Text(column string) string {
	return r[column]
}
