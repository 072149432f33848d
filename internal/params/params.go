package params

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"phirapack/internal/packerr"
	"phirapack/internal/textutil"
)

// Point is a pixel coordinate inside a hold sprite.
type Point struct {
	X int `toml:"x" json:"x"`
	Y int `toml:"y" json:"y"`
}

// HitFx describes the hit effect sprite sheet and its playback settings.
type HitFx struct {
	Image        string  `toml:"image" json:"image,omitempty"`
	Cols         int     `toml:"cols" json:"cols"`
	Rows         int     `toml:"rows" json:"rows"`
	CanvasWidth  int     `toml:"canvas_width" json:"canvas_width"`
	CanvasHeight int     `toml:"canvas_height" json:"canvas_height"`
	FrameWidth   int     `toml:"frame_width" json:"frame_width"`
	FrameHeight  int     `toml:"frame_height" json:"frame_height"`
	Duration     float64 `toml:"duration" json:"duration"`
	Scale        float64 `toml:"scale" json:"scale"`
	Rotate       bool    `toml:"rotate" json:"rotate"`
}

// BuildParameters is the complete, self-contained description of one pack build.
type BuildParameters struct {
	Name        string
	Author      string
	Description string
	Images      map[ImageRole]string
	Audio       map[AudioRole]string
	HitFx       HitFx
	HoldAtlas   *Point
	HoldAtlasMH *Point
	OutputDir   string
}

// Default hit effect geometry and playback settings.
const (
	DefaultCols         = 8
	DefaultRows         = 8
	DefaultCanvasWidth  = 512
	DefaultCanvasHeight = 512
	DefaultFrameWidth   = 64
	DefaultFrameHeight  = 64
	DefaultDuration     = 0.55
	DefaultScale        = 1.0
)

// Default hold atlas anchors used when none can be derived from an image.
var (
	DefaultHoldAtlas   = Point{X: 50, Y: 50}
	DefaultHoldAtlasMH = Point{X: 50, Y: 95}
)

// Default returns parameters with the stock hit effect settings and no assets.
func Default() BuildParameters {
	return BuildParameters{
		Images: make(map[ImageRole]string),
		Audio:  make(map[AudioRole]string),
		HitFx: HitFx{
			Cols:         DefaultCols,
			Rows:         DefaultRows,
			CanvasWidth:  DefaultCanvasWidth,
			CanvasHeight: DefaultCanvasHeight,
			FrameWidth:   DefaultFrameWidth,
			FrameHeight:  DefaultFrameHeight,
			Duration:     DefaultDuration,
			Scale:        DefaultScale,
			Rotate:       true,
		},
	}
}

// Image returns the trimmed path configured for role, or "".
func (p BuildParameters) Image(role ImageRole) string {
	return strings.TrimSpace(p.Images[role])
}

// AudioPath returns the trimmed path configured for role, or "".
func (p BuildParameters) AudioPath(role AudioRole) string {
	return strings.TrimSpace(p.Audio[role])
}

// Validate checks every constraint and reports all violations at once.
func (p BuildParameters) Validate() error {
	var problems []string
	if name := strings.TrimSpace(p.Name); name == "" {
		problems = append(problems, "pack name is required")
	} else if textutil.Underscore(name) == "" {
		problems = append(problems, fmt.Sprintf("pack name %q has no characters usable in a file name", name))
	}
	if strings.TrimSpace(p.OutputDir) == "" {
		problems = append(problems, "output directory is required")
	}
	for role := range p.Images {
		if !role.Valid() {
			problems = append(problems, fmt.Sprintf("unknown image role %q", role))
		}
	}
	for role := range p.Audio {
		if !role.Valid() {
			problems = append(problems, fmt.Sprintf("unknown audio role %q", role))
		}
	}

	fx := p.HitFx
	positive := []struct {
		name  string
		value int
	}{
		{"hit_fx.cols", fx.Cols},
		{"hit_fx.rows", fx.Rows},
		{"hit_fx.canvas_width", fx.CanvasWidth},
		{"hit_fx.canvas_height", fx.CanvasHeight},
		{"hit_fx.frame_width", fx.FrameWidth},
		{"hit_fx.frame_height", fx.FrameHeight},
	}
	for _, field := range positive {
		if field.value < 1 {
			problems = append(problems, fmt.Sprintf("%s must be at least 1 (got %d)", field.name, field.value))
		}
	}
	if !positiveFinite(fx.Duration) {
		problems = append(problems, fmt.Sprintf("hit_fx.duration must be a positive finite number (got %g)", fx.Duration))
	}
	if !positiveFinite(fx.Scale) {
		problems = append(problems, fmt.Sprintf("hit_fx.scale must be a positive finite number (got %g)", fx.Scale))
	}
	if p.HoldAtlas != nil && (p.HoldAtlas.X < 0 || p.HoldAtlas.Y < 0) {
		problems = append(problems, "hold_atlas coordinates must be non-negative")
	}
	if p.HoldAtlasMH != nil && (p.HoldAtlasMH.X < 0 || p.HoldAtlasMH.Y < 0) {
		problems = append(problems, "hold_atlas_mh coordinates must be non-negative")
	}

	problems = append(problems, p.audioNameProblems()...)

	if len(problems) == 0 {
		return nil
	}
	return packerr.Wrap(packerr.ErrValidation, "validate", "check parameters", strings.Join(problems, "; "), nil)
}

// positiveFinite rejects NaN and infinities along with non-positive values.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// audioNameProblems reports audio files that would be staged under a name
// already taken by another audio role or by a member the builder writes.
// Names are compared case-insensitively.
func (p BuildParameters) audioNameProblems() []string {
	taken := make(map[string]string)
	for _, name := range ReservedNames() {
		taken[strings.ToLower(name)] = "a pack member"
	}
	var problems []string
	for _, role := range AudioRoles {
		src := p.AudioPath(role)
		if src == "" {
			continue
		}
		base := filepath.Base(src)
		key := strings.ToLower(base)
		if owner, ok := taken[key]; ok {
			problems = append(problems, fmt.Sprintf("audio.%s file name %q collides with %s", role, base, owner))
			continue
		}
		taken[key] = "audio." + string(role)
	}
	return problems
}
