package output

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts are printed with German separators ("1.234,5 Mio €").
var printer = message.NewPrinter(language.German)

// FormatCount formats a row or item count with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMio formats a euro amount in millions with one decimal.
func FormatMio(v float64) string {
	return printer.Sprintf("%.1f Mio €", v/1e6)
}

// FormatMrd formats a euro amount in billions with three decimals.
func FormatMrd(v float64) string {
	return printer.Sprintf("%.3f Mrd €", v/1e9)
}

// FormatPercent formats a share of total with one decimal.
func FormatPercent(part, total float64) string {
	if total <= 0 {
		return printer.Sprintf("%.1f %%", 0.0)
	}
	return printer.Sprintf("%.1f %%", part/total*100)
}
