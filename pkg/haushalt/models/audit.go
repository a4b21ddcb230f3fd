package models

import "sort"

// Reason names why a row was not turned into a BudgetItem.
type Reason string

const (
	ReasonNotExpense      Reason = "not_expense"
	ReasonNotProductLevel Reason = "not_product_level"
	ReasonNoProductCode   Reason = "no_product_code"
	ReasonUnmappedPrefix  Reason = "unmapped_prefix"
)

// Reasons lists every rejection reason in rule order.
var Reasons = []Reason{
	ReasonNotExpense,
	ReasonNotProductLevel,
	ReasonNoProductCode,
	ReasonUnmappedPrefix,
}

// Audit tallies what happened to every data row of a run.
type Audit struct {
	// TotalRows counts data rows; the header row is not included.
	TotalRows int
	Extracted int

	rejected map[Reason]int
	unmapped map[string]struct{}
}

// NewAudit returns an empty audit.
func NewAudit() *Audit {
	return &Audit{
		rejected: make(map[Reason]int),
		unmapped: make(map[string]struct{}),
	}
}

// Accept counts a row that became a BudgetItem.
func (a *Audit) Accept() {
	a.TotalRows++
	a.Extracted++
}

// Reject counts a row dropped for the given reason.
func (a *Audit) Reject(reason Reason) {
	a.TotalRows++
	a.rejected[reason]++
}

// RecordUnmapped remembers a prefix that has no policy block.
func (a *Audit) RecordUnmapped(prefix string) {
	a.unmapped[prefix] = struct{}{}
}

// Rejected returns the number of rows dropped for reason.
func (a *Audit) Rejected(reason Reason) int {
	return a.rejected[reason]
}

// TotalRejected returns the number of rows dropped for any reason.
func (a *Audit) TotalRejected() int {
	n := 0
	for _, c := range a.rejected {
		n += c
	}
	return n
}

// UnmappedPrefixes returns the distinct unmapped prefixes, sorted.
func (a *Audit) UnmappedPrefixes() []string {
	out := make([]string, 0, len(a.unmapped))
	for p := range a.unmapped {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
