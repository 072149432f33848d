package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"phirapack/internal/atlas"
)

func newAtlasCommand(ctx *commandContext) *cobra.Command {
	var duo bool

	cmd := &cobra.Command{
		Use:   "atlas <image>",
		Short: "Suggest a hold atlas anchor for an image",
		Long: `Suggest a hold atlas anchor from the centre of an image, capped at 200 on
each axis. When the image cannot be read the configured fallback is printed
instead; use --mh for the duo hold fallback.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fallback := pointFrom(cfg.Atlas.HoldFallback)
			if duo {
				fallback = pointFrom(cfg.Atlas.HoldMHFallback)
			}

			path := args[0]
			width, height, format, dimErr := atlas.Dimensions(path)
			point := atlas.Center(path, fallback)

			if ctx.JSONMode() {
				payload := map[string]any{
					"image":    path,
					"anchor":   [2]int{point.X, point.Y},
					"fallback": dimErr != nil,
				}
				if dimErr == nil {
					payload["width"] = width
					payload["height"] = height
					payload["format"] = format
				} else {
					payload["error"] = dimErr.Error()
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if dimErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine("image", statusWarn, "using fallback: "+dimErr.Error(), shouldColorize(cmd.ErrOrStderr())))
			} else {
				fmt.Fprintf(out, "Image:  %s (%s, %dx%d)\n", path, format, width, height)
			}
			fmt.Fprintf(out, "Anchor: %d,%d\n", point.X, point.Y)
			return nil
		},
	}
	cmd.Flags().BoolVar(&duo, "mh", false, "Use the duo hold fallback")
	return cmd
}
