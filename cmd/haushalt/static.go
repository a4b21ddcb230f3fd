package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/haushalt-go/internal/logging"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/output"
	"go.uber.org/zap"
)

func newStaticCmd(a *app) *cobra.Command {
	var dir, city string

	cmd := &cobra.Command{
		Use:   "static [artifact.json]",
		Short: "Write per-year summary, treemap, list and block files from an artifact",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := a.cfg.Output
			if len(args) == 1 {
				src = args[0]
			}
			if dir == "" {
				dir = a.cfg.Static.Dir
			}
			if city == "" {
				city = a.cfg.Static.City
			}

			art, err := output.ReadArtifact(src)
			if err != nil {
				return err
			}

			written, err := output.WriteStatic(dir, city, art)
			if err != nil {
				return fmt.Errorf("writing static views: %w", err)
			}
			logging.Info("static views written",
				zap.String("artifact", src), zap.String("dir", dir), zap.Int("files", len(written)))

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d files written to %s\n", len(written), dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "out", "", "Output directory")
	cmd.Flags().StringVar(&city, "city", "", "City name used in titles")
	return cmd
}
