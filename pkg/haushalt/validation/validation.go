// Package validation cross-checks the per-block aggregation against the
// independently computed grand totals.
package validation

import (
	"github.com/shopspring/decimal"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/aggregate"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
)

// Tolerance is the largest gap, in euro, allowed between a grand total and
// the sum of the block aggregates. The comparison is strict.
var Tolerance = decimal.RequireFromString("0.01")

// YearCheck is the comparison for one fiscal year.
type YearCheck struct {
	Year       int
	GrandTotal float64
	BlockSum   float64
	Diff       float64
	Match      bool
}

// Report holds the checks for both fiscal years.
type Report struct {
	Years []YearCheck
}

// OK reports whether every year matched.
func (r Report) OK() bool {
	for _, y := range r.Years {
		if !y.Match {
			return false
		}
	}
	return len(r.Years) > 0
}

// FirstMismatch returns the first year that failed, if any.
func (r Report) FirstMismatch() (YearCheck, bool) {
	for _, y := range r.Years {
		if !y.Match {
			return y, true
		}
	}
	return YearCheck{}, false
}

// Check compares the block aggregates with the grand totals of both years.
func Check(aggs map[policy.Block]*models.Aggregate, total2025, total2026 float64) Report {
	sum2025, sum2026 := aggregate.BlockSums(aggs)
	return Report{Years: []YearCheck{
		Compare(2025, total2025, sum2025),
		Compare(2026, total2026, sum2026),
	}}
}

// Compare checks a single grand total against a block sum.
func Compare(year int, grandTotal, blockSum float64) YearCheck {
	diff := decimal.NewFromFloat(grandTotal).Sub(decimal.NewFromFloat(blockSum)).Abs()
	d, _ := diff.Float64()
	return YearCheck{
		Year:       year,
		GrandTotal: grandTotal,
		BlockSum:   blockSum,
		Diff:       d,
		Match:      diff.LessThan(Tolerance),
	}
}
