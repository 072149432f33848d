package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"phirapack/internal/staging"
)

func newStagingCommand(ctx *commandContext) *cobra.Command {
	stagingCmd := &cobra.Command{
		Use:   "staging",
		Short: "Manage staging directories",
	}

	stagingCmd.AddCommand(newStagingListCommand(ctx))
	stagingCmd.AddCommand(newStagingCleanCommand(ctx))

	return stagingCmd
}

func newStagingListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staging directories left behind by interrupted builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stagingDir := strings.TrimSpace(cfg.Paths.StagingDir)
			dirs, err := staging.ListDirectories(stagingDir)
			if err != nil {
				return fmt.Errorf("list staging directories: %w", err)
			}

			var totalSize int64
			for _, dir := range dirs {
				totalSize += dir.Size
			}

			if ctx.JSONMode() {
				if dirs == nil {
					dirs = []staging.DirInfo{}
				}
				return writeJSON(cmd, map[string]any{
					"staging_dir":      stagingDir,
					"directories":      dirs,
					"total_size_bytes": totalSize,
				})
			}

			out := cmd.OutOrStdout()
			if len(dirs) == 0 {
				fmt.Fprintln(out, "No staging directories found")
				return nil
			}

			fmt.Fprintf(out, "Staging directory: %s\n\n", stagingDir)
			rows := make([][]string, 0, len(dirs))
			for _, dir := range dirs {
				age := time.Since(dir.ModTime).Truncate(time.Minute)
				rows = append(rows, []string{dir.Name, formatDuration(age), humanize.IBytes(uint64(dir.Size))})
			}
			fmt.Fprint(out, renderTable(
				[]string{"Directory", "Age", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(out, "\nTotal: %d directories, %s\n", len(dirs), humanize.IBytes(uint64(totalSize)))
			return nil
		},
	}
}

func newStagingCleanCommand(ctx *commandContext) *cobra.Command {
	var cleanAll bool
	var maxAgeHours int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale staging directories",
		Long: `Remove staging directories older than staging.stale_after_hours.

Only directories created by phirapack are considered. Use --max-age to
override the threshold for one run, or --all to remove every staging
directory regardless of age. Do not use --all while a build is running.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			maxAge := staleAge(cfg)
			label := "stale"
			switch {
			case cleanAll:
				maxAge = 0
				label = "staging"
			case cmd.Flags().Changed("max-age"):
				if maxAgeHours < 0 {
					return fmt.Errorf("--max-age must be non-negative")
				}
				maxAge = time.Duration(maxAgeHours) * time.Hour
			}

			result := staging.CleanStale(cmd.Context(), cfg.Paths.StagingDir, maxAge, logger)
			if ctx.JSONMode() {
				return writeStagingCleanJSON(cmd, result)
			}
			return printStagingCleanResult(cmd, result, label)
		},
	}

	cmd.Flags().BoolVar(&cleanAll, "all", false, "Remove all staging directories regardless of age")
	cmd.Flags().IntVar(&maxAgeHours, "max-age", 0, "Age threshold in hours (default staging.stale_after_hours)")

	return cmd
}

func printStagingCleanResult(cmd *cobra.Command, result staging.CleanStaleResult, label string) error {
	out := cmd.OutOrStdout()
	if len(result.Removed) == 0 && len(result.Errors) == 0 {
		fmt.Fprintf(out, "No %s directories to clean\n", label)
		return nil
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "Removed %d %s directories, %d errors\n", len(result.Removed), label, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  Error: %s: %v\n", e.Path, e.Error)
		}
		return nil
	}
	fmt.Fprintf(out, "Removed %d %s directories\n", len(result.Removed), label)
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

func writeStagingCleanJSON(cmd *cobra.Command, result staging.CleanStaleResult) error {
	removed := result.Removed
	if removed == nil {
		removed = []string{}
	}
	errs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, fmt.Sprintf("%s: %v", e.Path, e.Error))
	}
	return writeJSON(cmd, map[string]any{
		"removed": removed,
		"errors":  errs,
	})
}
