package params_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phirapack/internal/packerr"
	"phirapack/internal/params"
)

func TestDefaultMatchesStockHitEffect(t *testing.T) {
	p := params.Default()
	fx := p.HitFx
	if fx.Cols != 8 || fx.Rows != 8 {
		t.Fatalf("unexpected grid %dx%d", fx.Cols, fx.Rows)
	}
	if fx.CanvasWidth != 512 || fx.CanvasHeight != 512 || fx.FrameWidth != 64 || fx.FrameHeight != 64 {
		t.Fatalf("unexpected geometry %+v", fx)
	}
	if fx.Duration != 0.55 || fx.Scale != 1.0 || !fx.Rotate {
		t.Fatalf("unexpected playback settings %+v", fx)
	}
	if p.HoldAtlas != nil || p.HoldAtlasMH != nil {
		t.Fatal("expected hold anchors to be absent by default")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	p := params.Default()
	p.Name = "   "
	p.HitFx.Cols = 0
	p.HitFx.Duration = 0
	p.HitFx.Scale = -1
	p.HoldAtlas = &params.Point{X: -1, Y: 2}

	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, packerr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"pack name is required", "output directory is required", "hit_fx.cols", "hit_fx.duration", "hit_fx.scale", "hold_atlas coordinates"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateRejectsNonFinitePlayback(t *testing.T) {
	tests := []struct {
		name            string
		duration, scale float64
		want            []string
	}{
		{"nan duration", math.NaN(), 1, []string{"hit_fx.duration"}},
		{"inf duration", math.Inf(1), 1, []string{"hit_fx.duration"}},
		{"nan scale", 0.5, math.NaN(), []string{"hit_fx.scale"}},
		{"both infinite", math.Inf(1), math.Inf(-1), []string{"hit_fx.duration", "hit_fx.scale"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params.Default()
			p.Name = "x"
			p.OutputDir = t.TempDir()
			p.HitFx.Duration = tt.duration
			p.HitFx.Scale = tt.scale
			err := p.Validate()
			if !errors.Is(err, packerr.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Fatalf("expected %q in %v", want, err)
				}
			}
		})
	}
}

func TestValidateRejectsCollidingAudioNames(t *testing.T) {
	tests := []struct {
		name  string
		audio map[params.AudioRole]string
		want  string
	}{
		{
			name:  "shared base name",
			audio: map[params.AudioRole]string{params.AudioTap: "a/hit.wav", params.AudioDrag: "b/hit.wav"},
			want:  `audio.drag file name "hit.wav" collides with audio.tap`,
		},
		{
			name:  "manifest name",
			audio: map[params.AudioRole]string{params.AudioEndMusic: "c/info.yml"},
			want:  `audio.end_music file name "info.yml" collides with a pack member`,
		},
		{
			name:  "image member name ignoring case",
			audio: map[params.AudioRole]string{params.AudioFlick: "Click.PNG"},
			want:  `audio.flick file name "Click.PNG" collides with a pack member`,
		},
		{
			name:  "hit effect name",
			audio: map[params.AudioRole]string{params.AudioTap: "x/hitFx.png"},
			want:  "collides with a pack member",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params.Default()
			p.Name = "x"
			p.OutputDir = t.TempDir()
			p.Audio = tt.audio
			err := p.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}

	p := params.Default()
	p.Name = "x"
	p.OutputDir = t.TempDir()
	p.Audio[params.AudioTap] = "a/tap.wav"
	p.Audio[params.AudioDrag] = "a/drag.wav"
	if err := p.Validate(); err != nil {
		t.Fatalf("distinct audio names rejected: %v", err)
	}
}

func TestValidateRejectsUnusablePackName(t *testing.T) {
	p := params.Default()
	p.Name = "???"
	p.OutputDir = t.TempDir()
	err := p.Validate()
	if err == nil || !strings.Contains(err.Error(), "no characters usable in a file name") {
		t.Fatalf("expected unusable name error, got %v", err)
	}
}

func TestValidateAcceptsMinimalParameters(t *testing.T) {
	p := params.Default()
	p.Name = "Test Pack"
	p.OutputDir = t.TempDir()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsUnknownRoles(t *testing.T) {
	p := params.Default()
	p.Name = "x"
	p.OutputDir = t.TempDir()
	p.Images["slide"] = "a.png"
	if err := p.Validate(); err == nil || !strings.Contains(err.Error(), `unknown image role "slide"`) {
		t.Fatalf("expected unknown role error, got %v", err)
	}
}

func TestCanonicalNames(t *testing.T) {
	want := map[params.ImageRole]string{
		params.ImageTap:      "click.png",
		params.ImageTapDuo:   "click_mh.png",
		params.ImageDrag:     "drag.png",
		params.ImageDragDuo:  "drag_mh.png",
		params.ImageFlick:    "flick.png",
		params.ImageFlickDuo: "flick_mh.png",
		params.ImageHold:     "hold.png",
		params.ImageHoldDuo:  "hold_mh.png",
	}
	if len(params.ImageRoles) != len(want) {
		t.Fatalf("expected %d image roles, got %d", len(want), len(params.ImageRoles))
	}
	for role, name := range want {
		if got := role.FileName(); got != name {
			t.Fatalf("%s: got %q want %q", role, got, name)
		}
	}
	if params.AudioEndMusic.ManifestKey() != "endMusic" {
		t.Fatalf("unexpected end music key %q", params.AudioEndMusic.ManifestKey())
	}
}

func TestLoadFileResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	packPath := filepath.Join(dir, "pack.toml")
	content := `name = "Test Pack"
author = "Tester"
output_dir = "out"

[images]
tap = "img/tap.png"
hold = "/abs/hold.png"

[audio]
end_music = "sfx/end.ogg"

[hit_fx]
cols = 4
duration = 0.8

[hold_atlas_mh]
x = 12
y = 30
`
	if err := os.WriteFile(packPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write pack file: %v", err)
	}

	p, err := params.LoadFile(packPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if p.Name != "Test Pack" || p.Author != "Tester" {
		t.Fatalf("unexpected identity %q/%q", p.Name, p.Author)
	}
	if p.OutputDir != filepath.Join(dir, "out") {
		t.Fatalf("unexpected output dir %q", p.OutputDir)
	}
	if got := p.Image(params.ImageTap); got != filepath.Join(dir, "img", "tap.png") {
		t.Fatalf("unexpected tap path %q", got)
	}
	if got := p.Image(params.ImageHold); got != "/abs/hold.png" {
		t.Fatalf("unexpected hold path %q", got)
	}
	if got := p.AudioPath(params.AudioEndMusic); got != filepath.Join(dir, "sfx", "end.ogg") {
		t.Fatalf("unexpected end music path %q", got)
	}
	if p.HitFx.Cols != 4 || p.HitFx.Rows != 8 || p.HitFx.Duration != 0.8 || !p.HitFx.Rotate {
		t.Fatalf("expected partial hit_fx override on defaults, got %+v", p.HitFx)
	}
	if p.HoldAtlas != nil {
		t.Fatal("expected hold_atlas to stay absent")
	}
	if p.HoldAtlasMH == nil || *p.HoldAtlasMH != (params.Point{X: 12, Y: 30}) {
		t.Fatalf("unexpected hold_atlas_mh %+v", p.HoldAtlasMH)
	}
}

func TestLoadFileRejectsUnknownRole(t *testing.T) {
	packPath := filepath.Join(t.TempDir(), "pack.toml")
	if err := os.WriteFile(packPath, []byte("name = \"x\"\n[images]\nslide = \"a.png\"\n"), 0o644); err != nil {
		t.Fatalf("write pack file: %v", err)
	}
	_, err := params.LoadFile(packPath)
	if !errors.Is(err, packerr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolvePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := params.ResolvePath("/base", "~/tap.png")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if got != filepath.Join(home, "tap.png") {
		t.Fatalf("unexpected path %q", got)
	}
	if got, _ := params.ResolvePath("/base", "  "); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}
