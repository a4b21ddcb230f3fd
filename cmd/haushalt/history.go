package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/haushalt-go/internal/archive"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/output"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		path  string
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = a.cfg.Archive.Path
			}
			if path == "" {
				return errNoArchive
			}

			db, err := archive.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				blocks, err := db.RunBlocks(runID)
				if err != nil {
					return err
				}
				if len(blocks) == 0 {
					return fmt.Errorf("run %s not found", runID)
				}
				fmt.Fprint(out, renderRunBlocks(runID, blocks))
				return nil
			}

			runs, err := db.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No archived runs.")
				return nil
			}
			fmt.Fprint(out, renderRuns(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "archive", "", "SQLite run history")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the block sums of one run")
	return cmd
}

func renderRuns(runs []archive.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		valid := "✓"
		if !r.TotalsMatch {
			valid = "✗"
		}
		if !r.AllPrefixesMapped {
			valid += " unmapped"
		}
		rows = append(rows, []string{
			r.ID,
			r.GeneratedAt,
			r.Source,
			output.FormatCount(r.TotalItems),
			output.FormatMio(r.Total2025),
			output.FormatMio(r.Total2026),
			valid,
		})
	}
	return output.RenderTable(output.Table{
		Title:   "Archived runs",
		Headers: []string{"Run", "Generated", "Source", "Items", "Plan 2025", "Plan 2026", "Checks"},
		Rows:    rows,
	})
}

func renderRunBlocks(runID string, blocks []archive.BlockSum) string {
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []string{
			fmt.Sprintf("%s  %s", b.Block, b.Name),
			output.FormatMio(b.Plan2025),
			output.FormatMio(b.Plan2026),
			output.FormatCount(b.ItemCount),
		})
	}
	return output.RenderTable(output.Table{
		Title:   "Run " + runID,
		Headers: []string{"Block", "Plan 2025", "Plan 2026", "Items"},
		Rows:    rows,
	})
}
