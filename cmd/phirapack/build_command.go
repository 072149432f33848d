package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"phirapack/internal/atlas"
	"phirapack/internal/builder"
	"phirapack/internal/config"
	"phirapack/internal/history"
	"phirapack/internal/params"
	"phirapack/internal/staging"
)

type buildFlags struct {
	name        string
	author      string
	description string
	output      string
	images      map[params.ImageRole]*string
	audio       map[params.AudioRole]*string
	hitFxImage  string
	fxCols      int
	fxRows      int
	fxWidth     int
	fxHeight    int
	frameWidth  int
	frameHeight int
	fxDuration  float64
	fxScale     float64
	fxRotate    bool
	holdAtlas   string
	holdAtlasMH string
	autoAtlas   bool
}

var imageFlagNames = map[params.ImageRole]string{
	params.ImageTap:      "tap",
	params.ImageTapDuo:   "tap-duo",
	params.ImageDrag:     "drag",
	params.ImageDragDuo:  "drag-duo",
	params.ImageFlick:    "flick",
	params.ImageFlickDuo: "flick-duo",
	params.ImageHold:     "hold",
	params.ImageHoldDuo:  "hold-duo",
}

var audioFlagNames = map[params.AudioRole]string{
	params.AudioTap:      "tap-sound",
	params.AudioDrag:     "drag-sound",
	params.AudioFlick:    "flick-sound",
	params.AudioEndMusic: "end-music",
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	flags := &buildFlags{
		images: make(map[params.ImageRole]*string),
		audio:  make(map[params.AudioRole]*string),
	}
	defaults := params.Default().HitFx

	cmd := &cobra.Command{
		Use:   "build [pack.toml]",
		Short: "Assemble a resource pack archive",
		Long: `Assemble a resource pack from a TOML pack file, flags, or both.

Flags override values from the pack file. Relative paths in the pack file are
resolved against its directory; relative flag paths against the working
directory. Assets that are configured but missing are skipped with a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			p, err := resolveBuildParams(cmd, flags, cfg, args)
			if err != nil {
				return err
			}

			if cfg.Staging.CleanOnStart {
				staging.CleanStale(cmd.Context(), cfg.Paths.StagingDir, staleAge(cfg), logger)
			}

			var result builder.Result
			err = ctx.withHistory(func(store *history.Store) error {
				opts := builder.Options{Logger: logger, StagingRoot: cfg.Paths.StagingDir}
				if store != nil {
					opts.Recorder = store
				}
				result = builder.New(opts).Build(cmd.Context(), p)
				return nil
			})
			if err != nil {
				return err
			}
			return printBuildResult(cmd, ctx, result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.name, "name", "", "Pack name")
	f.StringVar(&flags.author, "author", "", "Pack author")
	f.StringVar(&flags.description, "description", "", "Pack description")
	f.StringVarP(&flags.output, "output", "o", "", "Destination directory (default paths.output_dir)")
	for _, role := range params.ImageRoles {
		value := new(string)
		flags.images[role] = value
		f.StringVar(value, imageFlagNames[role], "", fmt.Sprintf("Image for the %s role", role))
	}
	for _, role := range params.AudioRoles {
		value := new(string)
		flags.audio[role] = value
		f.StringVar(value, audioFlagNames[role], "", fmt.Sprintf("Sound for the %s role", role))
	}
	f.StringVar(&flags.hitFxImage, "hit-fx", "", "Supplied hit effect sprite sheet (skips synthesis)")
	f.IntVar(&flags.fxCols, "fx-cols", defaults.Cols, "Hit effect grid columns")
	f.IntVar(&flags.fxRows, "fx-rows", defaults.Rows, "Hit effect grid rows")
	f.IntVar(&flags.fxWidth, "fx-width", defaults.CanvasWidth, "Synthesized sprite sheet width")
	f.IntVar(&flags.fxHeight, "fx-height", defaults.CanvasHeight, "Synthesized sprite sheet height")
	f.IntVar(&flags.frameWidth, "frame-width", defaults.FrameWidth, "Synthesized frame width")
	f.IntVar(&flags.frameHeight, "frame-height", defaults.FrameHeight, "Synthesized frame height")
	f.Float64Var(&flags.fxDuration, "fx-duration", defaults.Duration, "Hit effect duration in seconds")
	f.Float64Var(&flags.fxScale, "fx-scale", defaults.Scale, "Hit effect scale")
	f.BoolVar(&flags.fxRotate, "fx-rotate", defaults.Rotate, "Rotate the hit effect with the note")
	f.StringVar(&flags.holdAtlas, "hold-atlas", "", "Hold atlas anchor as x,y")
	f.StringVar(&flags.holdAtlasMH, "hold-atlas-mh", "", "Duo hold atlas anchor as x,y")
	f.BoolVar(&flags.autoAtlas, "auto-atlas", false, "Derive missing hold anchors from the hold images")

	return cmd
}

func resolveBuildParams(cmd *cobra.Command, flags *buildFlags, cfg *config.Config, args []string) (params.BuildParameters, error) {
	p := params.Default()
	if len(args) == 1 {
		loaded, err := params.LoadFile(args[0])
		if err != nil {
			return params.BuildParameters{}, err
		}
		p = loaded
	}

	cwd, err := os.Getwd()
	if err != nil {
		return params.BuildParameters{}, fmt.Errorf("working directory: %w", err)
	}
	changed := cmd.Flags().Changed
	resolve := func(value string) (string, error) {
		return params.ResolvePath(cwd, value)
	}

	if changed("name") {
		p.Name = flags.name
	}
	if changed("author") {
		p.Author = flags.author
	}
	if changed("description") {
		p.Description = flags.description
	}
	if changed("output") {
		if p.OutputDir, err = resolve(flags.output); err != nil {
			return params.BuildParameters{}, err
		}
	}
	if strings.TrimSpace(p.OutputDir) == "" {
		p.OutputDir = cfg.Paths.OutputDir
	}
	for role, value := range flags.images {
		if changed(imageFlagNames[role]) {
			if p.Images[role], err = resolve(*value); err != nil {
				return params.BuildParameters{}, err
			}
		}
	}
	for role, value := range flags.audio {
		if changed(audioFlagNames[role]) {
			if p.Audio[role], err = resolve(*value); err != nil {
				return params.BuildParameters{}, err
			}
		}
	}
	if changed("hit-fx") {
		if p.HitFx.Image, err = resolve(flags.hitFxImage); err != nil {
			return params.BuildParameters{}, err
		}
	}

	ints := []struct {
		flag   string
		value  int
		target *int
	}{
		{"fx-cols", flags.fxCols, &p.HitFx.Cols},
		{"fx-rows", flags.fxRows, &p.HitFx.Rows},
		{"fx-width", flags.fxWidth, &p.HitFx.CanvasWidth},
		{"fx-height", flags.fxHeight, &p.HitFx.CanvasHeight},
		{"frame-width", flags.frameWidth, &p.HitFx.FrameWidth},
		{"frame-height", flags.frameHeight, &p.HitFx.FrameHeight},
	}
	for _, field := range ints {
		if changed(field.flag) {
			*field.target = field.value
		}
	}
	if changed("fx-duration") {
		p.HitFx.Duration = flags.fxDuration
	}
	if changed("fx-scale") {
		p.HitFx.Scale = flags.fxScale
	}
	if changed("fx-rotate") {
		p.HitFx.Rotate = flags.fxRotate
	}

	if changed("hold-atlas") {
		point, err := parsePoint(flags.holdAtlas)
		if err != nil {
			return params.BuildParameters{}, fmt.Errorf("--hold-atlas: %w", err)
		}
		p.HoldAtlas = point
	}
	if changed("hold-atlas-mh") {
		point, err := parsePoint(flags.holdAtlasMH)
		if err != nil {
			return params.BuildParameters{}, fmt.Errorf("--hold-atlas-mh: %w", err)
		}
		p.HoldAtlasMH = point
	}
	if flags.autoAtlas {
		applyAutoAtlas(&p, cfg)
	}
	return p, nil
}

// applyAutoAtlas fills unset hold anchors from the centre of the matching hold image.
func applyAutoAtlas(p *params.BuildParameters, cfg *config.Config) {
	if p.HoldAtlas == nil {
		if hold := p.Image(params.ImageHold); hold != "" {
			point := atlas.Center(hold, pointFrom(cfg.Atlas.HoldFallback))
			p.HoldAtlas = &point
		}
	}
	if p.HoldAtlasMH == nil {
		if hold := p.Image(params.ImageHoldDuo); hold != "" {
			point := atlas.Center(hold, pointFrom(cfg.Atlas.HoldMHFallback))
			p.HoldAtlasMH = &point
		}
	}
}

func pointFrom(pair [2]int) params.Point {
	return params.Point{X: pair[0], Y: pair[1]}
}

// parsePoint accepts "x,y". An empty value clears the anchor.
func parsePoint(value string) (*params.Point, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected x,y but got %q", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid x %q", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid y %q", parts[1])
	}
	return &params.Point{X: x, Y: y}, nil
}

func staleAge(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Staging.StaleAfterHours) * time.Hour
}

func printBuildResult(cmd *cobra.Command, ctx *commandContext, result builder.Result) error {
	if ctx.JSONMode() {
		if err := writeJSON(cmd, result); err != nil {
			return err
		}
		if !result.OK {
			return errSilent
		}
		return nil
	}

	errOut := cmd.ErrOrStderr()
	colorize := shouldColorize(errOut)
	for _, s := range result.Skipped {
		fmt.Fprintln(errOut, renderStatusLine(s.Role, statusWarn, "not found, skipped: "+s.Path, colorize))
	}
	if !result.OK {
		return fmt.Errorf("build failed: %s", result.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.ArchivePath)
	return nil
}
