package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/haushalt-go/internal/archive"
	"github.com/ukaji3/haushalt-go/internal/logging"
	"github.com/ukaji3/haushalt-go/pkg/haushalt"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/output"
	"go.uber.org/zap"
)

// processWorkbook runs the pipeline; tests replace it to force failures.
var processWorkbook = haushalt.Process

type processFlags struct {
	output    string
	sheet     string
	archive   string
	staticDir string
	quiet     bool
}

func newProcessCmd(a *app) *cobra.Command {
	f := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process [input.xlsx]",
		Short: "Extract, validate and write the budget artifact",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProcess(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output artifact path")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet holding the budget rows")
	cmd.Flags().StringVar(&f.archive, "archive", "", "SQLite run history to append to")
	cmd.Flags().StringVar(&f.staticDir, "static", "", "Also write the per-year view files to this directory")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Suppress the audit report")
	return cmd
}

func (a *app) runProcess(cmd *cobra.Command, args []string, f *processFlags) error {
	cfg := a.cfg
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.sheet != "" {
		cfg.Sheet = f.sheet
	}
	if f.archive != "" {
		cfg.Archive.Path = f.archive
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logging.Named("process")

	opts := haushalt.DefaultOptions()
	opts.Sheet = cfg.Sheet
	opts.Columns = cfg.Columns
	opts.Logger = log

	result, err := processWorkbook(cfg.Input, opts)
	if result != nil && !f.quiet {
		fmt.Fprintln(out, output.RenderTitle("Leipzig Ergebnishaushalt"))
		fmt.Fprint(out, output.RenderAudit(result.Audit))
		fmt.Fprint(out, output.RenderValidation(result.Validation))
	}
	if err != nil {
		return err
	}

	art := result.Artifact
	if !f.quiet {
		fmt.Fprint(out, output.RenderSummary(art))
	}

	if err := output.WriteArtifact(cfg.Output, art); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	log.Info("artifact written", zap.String("path", cfg.Output), zap.String("runId", art.Metadata.RunID))
	if !f.quiet {
		fmt.Fprintf(out, "✓ Output saved to: %s\n", cfg.Output)
	}

	// The artifact is final from here on; later steps report their own errors.
	var failed []error
	if f.staticDir != "" {
		written, err := output.WriteStatic(f.staticDir, cfg.Static.City, art)
		if err != nil {
			failed = append(failed, fmt.Errorf("writing static views: %w", err))
		} else {
			log.Info("static views written", zap.String("dir", f.staticDir), zap.Int("files", len(written)))
		}
	}

	if cfg.Archive.Path != "" {
		if err := archiveRun(cfg.Archive.Path, result); err != nil {
			failed = append(failed, err)
		} else {
			log.Info("run archived", zap.String("archive", cfg.Archive.Path))
		}
	}

	if len(failed) > 0 {
		err := &postWriteError{Artifact: cfg.Output, Err: errors.Join(failed...)}
		logging.Warn("post-write step failed", zap.String("artifact", cfg.Output), zap.Error(err.Err))
		return err
	}
	return nil
}

// postWriteError reports a failed step that ran after the artifact was
// saved. The artifact itself is valid.
type postWriteError struct {
	Artifact string
	Err      error
}

func (e *postWriteError) Error() string {
	return fmt.Sprintf("artifact %s was written, but: %v", e.Artifact, e.Err)
}

func (e *postWriteError) Unwrap() error {
	return e.Err
}

func archiveRun(path string, result *haushalt.Result) error {
	db, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRun(result.Artifact); err != nil {
		return fmt.Errorf("archiving run: %w", err)
	}
	return nil
}
