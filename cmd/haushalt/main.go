// Package main provides the CLI entry point for haushalt.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/haushalt-go/internal/config"
	"github.com/ukaji3/haushalt-go/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

const defaultConfigFile = "haushalt.toml"

type app struct {
	cfg config.Config

	configPath string
	envFile    string
	verbose    bool
	logFormat  string
}

func main() {
	err := newRootCmd().Execute()
	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "haushalt",
		Short: "Turn the Ergebnishaushalt workbook into validated budget JSON",
		Long: `haushalt reads the Leipzig Ergebnishaushalt workbook, keeps product-level
expense rows, groups them into policy blocks, cross-checks the totals and
writes the JSON consumed by the budget visualization.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: ./haushalt.toml if present)")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file with HAUSHALT_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(
		newProcessCmd(a),
		newStaticCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration and the logger before every command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg, err := config.Load(path, a.envFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Logging.Validate(); err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "haushalt "+version)
			return err
		},
	}
}

var errNoArchive = errors.New("no archive configured: pass --archive or set HAUSHALT_ARCHIVE")
