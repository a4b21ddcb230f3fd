// Package output renders the console audit trail and writes the JSON
// artifacts consumed by the visualization.
package output

import (
	"fmt"
	"strings"

	"github.com/ukaji3/haushalt-go/pkg/haushalt/aggregate"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/models"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/validation"
)

var reasonLabels = map[models.Reason]string{
	models.ReasonNotExpense:      "Skipped (not 'ordentl. Aufw.')",
	models.ReasonNotProductLevel: "Skipped (not PR, avoids double count)",
	models.ReasonNoProductCode:   "Skipped (no product code)",
	models.ReasonUnmappedPrefix:  "Skipped (unmapped prefix)",
}

// RenderAudit renders the row counts and rejection breakdown of a run.
func RenderAudit(a *models.Audit) string {
	rows := [][]string{
		{"Data rows processed", FormatCount(a.TotalRows)},
		{"Budget items extracted", FormatCount(a.Extracted)},
		{separatorRow},
	}
	for _, r := range models.Reasons {
		rows = append(rows, []string{reasonLabels[r], FormatCount(a.Rejected(r))})
	}

	var b strings.Builder
	b.WriteString(RenderTable(Table{
		Title:   "Processing audit",
		Headers: []string{"Check", "Rows"},
		Rows:    rows,
	}))

	if prefixes := a.UnmappedPrefixes(); len(prefixes) > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  ! Unmapped prefixes found: %s", strings.Join(prefixes, ", "))))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("    These product codes were excluded. Extend the prefix table to include them."))
		b.WriteString("\n")
	} else {
		b.WriteString(okStyle.Render("  ✓ All product codes successfully mapped"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderValidation renders the totals cross-check.
func RenderValidation(r validation.Report) string {
	var b strings.Builder
	for _, y := range r.Years {
		if y.Match {
			b.WriteString(okStyle.Render(fmt.Sprintf("  ✓ %d totals match: %s", y.Year, FormatMio(y.GrandTotal))))
		} else {
			b.WriteString(errStyle.Render(fmt.Sprintf("  ✗ %d mismatch: total=%s, sum of blocks=%s, difference=%s",
				y.Year, FormatMio(y.GrandTotal), FormatMio(y.BlockSum), FormatMio(y.Diff))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders the per-block table for the first fiscal year,
// largest block first, followed by the grand totals.
func RenderSummary(art *models.Artifact) string {
	md := art.Metadata
	sorted := aggregate.Sorted(art.Aggregated, 2025)

	rows := make([][]string, 0, len(sorted)+4)
	colors := make([]string, 0, len(sorted))
	for _, agg := range sorted {
		rows = append(rows, []string{
			fmt.Sprintf("%s  %s", agg.Block, agg.Name),
			FormatMio(agg.Plan2025),
			FormatPercent(agg.Plan2025, md.Total2025),
			FormatCount(agg.ItemCount),
		})
		colors = append(colors, agg.Color)
	}
	rows = append(rows,
		[]string{separatorRow},
		[]string{"TOTAL 2025", FormatMio(md.Total2025), FormatMrd(md.Total2025), FormatCount(md.TotalItems)},
		[]string{"TOTAL 2026", FormatMio(md.Total2026), FormatMrd(md.Total2026), ""},
	)

	return RenderTable(Table{
		Title:   "Policy block summary, plan 2025",
		Headers: []string{"Block", "Plan 2025", "Share", "Items"},
		Rows:    rows,
		Colors:  colors,
	})
}
