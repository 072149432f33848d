package main

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"phirapack/internal/archive"
	"phirapack/internal/manifest"
)

type inspectOutput struct {
	Archive          string          `json:"archive"`
	ConventionalName bool            `json:"conventional_name"`
	Members          []archive.Entry `json:"members"`
	Manifest         *manifestView   `json:"manifest,omitempty"`
}

type manifestView struct {
	Name          string            `json:"name"`
	Author        string            `json:"author"`
	Description   string            `json:"description"`
	HitFx         manifest.Pair     `json:"hitFx"`
	HitFxDuration float64           `json:"hitFxDuration"`
	HitFxScale    float64           `json:"hitFxScale"`
	HitFxRotate   bool              `json:"hitFxRotate"`
	HoldAtlas     *manifest.Pair    `json:"holdAtlas,omitempty"`
	HoldAtlasMH   *manifest.Pair    `json:"holdAtlasMH,omitempty"`
	Audio         map[string]string `json:"audio,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <pack.zip>",
		Short: "List the members and manifest of a built pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			entries, err := archive.List(path)
			if err != nil {
				return err
			}

			output := inspectOutput{
				Archive:          path,
				ConventionalName: archive.IsArchiveName(filepath.Base(path)),
				Members:          entries,
			}
			m, manifestErr := archive.ReadManifest(path)
			if manifestErr == nil {
				view := manifestView(m)
				output.Manifest = &view
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, output)
			}

			if !output.ConventionalName {
				errOut := cmd.ErrOrStderr()
				fmt.Fprintln(errOut, renderStatusLine("archive name", statusWarn,
					"does not end in "+archive.Suffix+"; the game may not list it", shouldColorize(errOut)))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Archive: %s\n\n", path)
			fmt.Fprint(out, renderMemberTable(entries))
			fmt.Fprintln(out)
			if manifestErr != nil {
				fmt.Fprintln(out, renderStatusLine(manifest.FileName, statusWarn, manifestErr.Error(), shouldColorize(out)))
				return nil
			}
			printManifestSummary(out, m)
			return nil
		},
	}
}

func renderMemberTable(entries []archive.Entry) string {
	rows := make([][]string, 0, len(entries))
	var size, compressed uint64
	for _, e := range entries {
		size += e.Size
		compressed += e.CompressedSize
		rows = append(rows, []string{
			e.Name,
			humanize.IBytes(e.Size),
			humanize.IBytes(e.CompressedSize),
			methodName(e.Method),
		})
	}
	return tableSpec{
		Headers: []string{"Member", "Size", "Compressed", "Method"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
		Footer: []string{
			fmt.Sprintf("%d members", len(entries)),
			humanize.IBytes(size),
			humanize.IBytes(compressed),
			"",
		},
	}.render()
}

func methodName(method uint16) string {
	switch method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return strconv.Itoa(int(method))
	}
}

func printManifestSummary(out io.Writer, m manifest.Manifest) {
	fmt.Fprintf(out, "Name:        %s\n", m.Name)
	fmt.Fprintf(out, "Author:      %s\n", m.Author)
	if m.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", m.Description)
	}
	fmt.Fprintf(out, "Hit effect:  %dx%d grid, %gs, scale %g, rotate %s\n",
		m.HitFx[0], m.HitFx[1], m.HitFxDuration, m.HitFxScale, yesNo(m.HitFxRotate))
	if m.HoldAtlas != nil {
		fmt.Fprintf(out, "Hold atlas:  %d, %d\n", m.HoldAtlas[0], m.HoldAtlas[1])
	}
	if m.HoldAtlasMH != nil {
		fmt.Fprintf(out, "Hold atlas (duo): %d, %d\n", m.HoldAtlasMH[0], m.HoldAtlasMH[1])
	}
	if len(m.Audio) > 0 {
		keys := make([]string, 0, len(m.Audio))
		for key, file := range m.Audio {
			keys = append(keys, key+"="+file)
		}
		slices.Sort(keys)
		fmt.Fprintf(out, "Audio:       %s\n", strings.Join(keys, ", "))
	}
}
