package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// nullMarker is how an empty cell reads after being stringified by the
// export tooling that produces these workbooks.
const nullMarker = "None"

// isNull reports whether a raw cell value carries no data.
func isNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == nullMarker
}

// ParseAmount converts a raw planned-amount cell to a float.
// Empty and null cells count as zero. Exponent notation ("1.5E+6") is accepted
// because raw numeric cells are stored that way for large values.
func ParseAmount(raw string) (float64, error) {
	if isNull(raw) {
		return 0, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
