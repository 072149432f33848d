package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"phirapack/internal/history"
	"phirapack/internal/textutil"
)

var errHistoryDisabled = errors.New("build history is disabled (history.enabled = false)")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			return ctx.withHistory(func(store *history.Store) error {
				if store == nil {
					return errHistoryDisabled
				}
				entries, err := store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No builds recorded")
					return nil
				}
				fmt.Fprint(out, renderHistoryTable(entries, time.Now()))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of builds to show")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <build-id>",
		Short: "Show one recorded build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withHistory(func(store *history.Store) error {
				if store == nil {
					return errHistoryDisabled
				}
				entry, err := store.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("build %s not found", id)
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, entry)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Build:     %s\n", entry.BuildID)
				fmt.Fprintf(out, "Pack:      %s\n", entry.PackName)
				fmt.Fprintf(out, "Result:    %s\n", textutil.Ternary(entry.OK, "ok", "failed"))
				fmt.Fprintf(out, "State:     %s\n", describeFinalState(entry.FinalState))
				fmt.Fprintf(out, "Started:   %s (%s)\n", entry.StartedAt.Local().Format(time.DateTime), humanize.Time(entry.StartedAt))
				fmt.Fprintf(out, "Duration:  %s\n", entry.Duration.Round(time.Millisecond))
				if entry.ArchivePath != "" {
					fmt.Fprintf(out, "Archive:   %s\n", entry.ArchivePath)
				}
				if entry.ErrorKind != "" {
					fmt.Fprintf(out, "Error:     %s\n", entry.ErrorKind)
				}
				fmt.Fprintf(out, "Message:   %s\n", entry.Message)
				fmt.Fprintf(out, "Skipped:   %d\n", entry.Skipped)
				return nil
			})
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThanDays int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete builds older than the given age",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThanDays < 0 {
				return fmt.Errorf("--older-than must be non-negative")
			}
			cutoff := time.Now().Add(-time.Duration(olderThanDays) * 24 * time.Hour)
			return ctx.withHistory(func(store *history.Store) error {
				if store == nil {
					return errHistoryDisabled
				}
				removed, err := store.Prune(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"removed": removed})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d builds\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&olderThanDays, "older-than", 30, "Age threshold in days")
	return cmd
}

func renderHistoryTable(entries []history.Entry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			shortID(e.BuildID),
			e.PackName,
			textutil.Ternary(e.OK, "ok", "failed"),
			describeFinalState(e.FinalState),
			humanize.RelTime(e.StartedAt, now, "ago", "from now"),
			e.Duration.Round(time.Millisecond).String(),
		})
	}
	return renderTable(
		[]string{"Build", "Pack", "Result", "State", "Started", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

// describeFinalState renders "failed:manifest_written" as "Failed at Manifest Written".
func describeFinalState(state string) string {
	if after, ok := strings.CutPrefix(state, "failed:"); ok {
		return "Failed at " + textutil.Title(after)
	}
	return textutil.Title(state)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
