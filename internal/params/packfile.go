package params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"phirapack/internal/config"
	"phirapack/internal/packerr"
)

type packFile struct {
	Name        string            `toml:"name"`
	Author      string            `toml:"author"`
	Description string            `toml:"description"`
	OutputDir   string            `toml:"output_dir"`
	Images      map[string]string `toml:"images"`
	Audio       map[string]string `toml:"audio"`
	HitFx       HitFx             `toml:"hit_fx"`
	HoldAtlas   *Point            `toml:"hold_atlas"`
	HoldAtlasMH *Point            `toml:"hold_atlas_mh"`
}

// LoadFile decodes a TOML pack description on top of Default. Relative asset
// and output paths are resolved against the directory holding the pack file.
func LoadFile(path string) (BuildParameters, error) {
	file, err := os.Open(path)
	if err != nil {
		return BuildParameters{}, packerr.Wrap(packerr.ErrValidation, "pack file", "open", path, err)
	}
	defer file.Close()

	p := Default()
	raw := packFile{HitFx: p.HitFx}
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return BuildParameters{}, packerr.Wrap(packerr.ErrValidation, "pack file", "parse", path, err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return BuildParameters{}, packerr.Wrap(packerr.ErrEnvironment, "pack file", "resolve directory", path, err)
	}

	p.Name = raw.Name
	p.Author = raw.Author
	p.Description = raw.Description
	p.HitFx = raw.HitFx
	p.HoldAtlas = raw.HoldAtlas
	p.HoldAtlasMH = raw.HoldAtlasMH

	resolve := func(field, value string) (string, error) {
		resolved, err := ResolvePath(baseDir, value)
		if err != nil {
			return "", packerr.Wrap(packerr.ErrValidation, "pack file", "resolve "+field, value, err)
		}
		return resolved, nil
	}

	if p.OutputDir, err = resolve("output_dir", raw.OutputDir); err != nil {
		return BuildParameters{}, err
	}
	if p.HitFx.Image, err = resolve("hit_fx.image", raw.HitFx.Image); err != nil {
		return BuildParameters{}, err
	}
	for key, value := range raw.Images {
		role := ImageRole(key)
		if !role.Valid() {
			return BuildParameters{}, packerr.Wrap(packerr.ErrValidation, "pack file", "images", fmt.Sprintf("unknown image role %q", key), nil)
		}
		if p.Images[role], err = resolve("images."+key, value); err != nil {
			return BuildParameters{}, err
		}
	}
	for key, value := range raw.Audio {
		role := AudioRole(key)
		if !role.Valid() {
			return BuildParameters{}, packerr.Wrap(packerr.ErrValidation, "pack file", "audio", fmt.Sprintf("unknown audio role %q", key), nil)
		}
		if p.Audio[role], err = resolve("audio."+key, value); err != nil {
			return BuildParameters{}, err
		}
	}
	return p, nil
}

// ResolvePath expands a leading tilde and anchors relative paths at baseDir.
// Empty values stay empty.
func ResolvePath(baseDir, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if strings.HasPrefix(value, "~") {
		return config.ExpandPath(value)
	}
	if !filepath.IsAbs(value) {
		value = filepath.Join(baseDir, value)
	}
	return filepath.Clean(value), nil
}
