// Package aggregate folds budget items into per-block sums.
package aggregate

import (
	"sort"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/policy"
)

// ByBlock groups items by policy block. Sums do not depend on item order;
// each block's item list keeps the input order.
func ByBlock(items []models.BudgetItem) map[policy.Block]*models.Aggregate {
	out := make(map[policy.Block]*models.Aggregate)
	for _, item := range items {
		agg, ok := out[item.PolicyBlock]
		if !ok {
			agg = &models.Aggregate{Block: item.PolicyBlock}
			out[item.PolicyBlock] = agg
		}
		info, _ := policy.Describe(item.PolicyBlock)
		agg.Name = info.Name
		agg.Color = info.Color
		agg.Plan2025 += item.Plan2025
		agg.Plan2026 += item.Plan2026
		agg.ItemCount++
		agg.Items = append(agg.Items, item)
	}
	return out
}

// Totals sums both planned amounts over all items, without going through
// the per-block fold. It is the reference the validator checks against.
func Totals(items []models.BudgetItem) (total2025, total2026 float64) {
	for _, item := range items {
		total2025 += item.Plan2025
		total2026 += item.Plan2026
	}
	return total2025, total2026
}

// BlockSums adds up the per-block sums of both fiscal years.
func BlockSums(aggs map[policy.Block]*models.Aggregate) (sum2025, sum2026 float64) {
	for _, b := range policy.Blocks() {
		agg, ok := aggs[b]
		if !ok {
			continue
		}
		sum2025 += agg.Plan2025
		sum2026 += agg.Plan2026
	}
	return sum2025, sum2026
}

// Sorted returns the aggregates ordered by descending amount for year
// (2025 or 2026), ties broken by block id.
func Sorted(aggs map[policy.Block]*models.Aggregate, year int) []*models.Aggregate {
	out := make([]*models.Aggregate, 0, len(aggs))
	for _, b := range policy.Blocks() {
		if agg, ok := aggs[b]; ok {
			out = append(out, agg)
		}
	}
	value := func(a *models.Aggregate) float64 {
		if year == 2026 {
			return a.Plan2026
		}
		return a.Plan2025
	}
	sort.SliceStable(out, func(i, j int) bool {
		return value(out[i]) > value(out[j])
	})
	return out
}
