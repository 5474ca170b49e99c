// Command sitecheck prepares and checks a sonic anemometer station's yearly
// data set.
//
// Usage:
//
//	sitecheck expand  <data-path> <year>
//	sitecheck collect <data-path> <year> <processed-file> <diagnostic-file>
//	sitecheck check   <combined-file> <report-prefix>
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/couchcryptid/sonic-site-check/internal/adapter/archive"
	"github.com/couchcryptid/sonic-site-check/internal/config"
	"github.com/couchcryptid/sonic-site-check/internal/observability"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sitecheck",
		Short:         "Data quality checks for sonic anemometer stations",
		Long:          `sitecheck expands raw archives, collects monthly files into yearly sets and checks their timing, directional coverage and heat flux.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(expandCmd())
	rootCmd.AddCommand(collectCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger shared by every command.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, observability.NewLogger(cfg), nil
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 || year > 9999 {
		return 0, fmt.Errorf("invalid year: %q", s)
	}
	return year, nil
}

func expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <data-path> <year>",
		Short: "Decompress the raw files of one year in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			_, logger, err := setup()
			if err != nil {
				return err
			}

			res, err := archive.Expand(cmd.Context(), args[0], year, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d files expanded, %d failed\n", res.Files, res.Failed)
			return nil
		},
	}
}

func collectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collect <data-path> <year> <processed-file> <diagnostic-file>",
		Short: "Concatenate one year of processed and diagnostic files",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			_, logger, err := setup()
			if err != nil {
				return err
			}

			targets := []struct {
				kind archive.Kind
				dst  string
			}{
				{archive.Processed, args[2]},
				{archive.Diagnostic, args[3]},
			}
			for _, t := range targets {
				res, err := archive.Collect(cmd.Context(), args[0], year, t.kind, t.dst, logger)
				if err != nil {
					return fmt.Errorf("collect %s: %w", t.kind, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files from %d months -> %s\n", t.kind, res.Files, res.Dirs, t.dst)
			}
			return nil
		},
	}
}
