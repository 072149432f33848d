// Package manifest models the info.yml document at the root of a resource pack.
package manifest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"phirapack/internal/packerr"
	"phirapack/internal/params"
)

// FileName is the manifest member name inside a pack.
const FileName = params.ManifestName

// Pair is a two element coordinate, encoded as a flow sequence.
type Pair [2]int

// Manifest is the declarative description read by the game. Field order is
// the emitted key order; optional keys are omitted rather than written as null.
type Manifest struct {
	Name          string            `yaml:"name"`
	Author        string            `yaml:"author"`
	Description   string            `yaml:"description"`
	HitFx         Pair              `yaml:"hitFx,flow"`
	HitFxDuration float64           `yaml:"hitFxDuration"`
	HitFxScale    float64           `yaml:"hitFxScale"`
	HitFxRotate   bool              `yaml:"hitFxRotate"`
	HoldAtlas     *Pair             `yaml:"holdAtlas,omitempty,flow"`
	HoldAtlasMH   *Pair             `yaml:"holdAtlasMH,omitempty,flow"`
	Audio         map[string]string `yaml:"audio,omitempty"`
}

// FromParams builds the manifest for p. audio maps manifest audio keys to
// staged file names; an empty map omits the audio key entirely.
func FromParams(p params.BuildParameters, audio map[string]string) Manifest {
	m := Manifest{
		Name:          p.Name,
		Author:        p.Author,
		Description:   p.Description,
		HitFx:         Pair{p.HitFx.Cols, p.HitFx.Rows},
		HitFxDuration: p.HitFx.Duration,
		HitFxScale:    p.HitFx.Scale,
		HitFxRotate:   p.HitFx.Rotate,
	}
	if p.HoldAtlas != nil {
		m.HoldAtlas = &Pair{p.HoldAtlas.X, p.HoldAtlas.Y}
	}
	if p.HoldAtlasMH != nil {
		m.HoldAtlasMH = &Pair{p.HoldAtlasMH.X, p.HoldAtlasMH.Y}
	}
	if len(audio) > 0 {
		m.Audio = make(map[string]string, len(audio))
		for key, name := range audio {
			m.Audio[key] = name
		}
	}
	return m
}

// Encode writes m as UTF-8 YAML.
func (m Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return packerr.Wrap(packerr.ErrSerialization, "manifest", "encode", "", err)
	}
	if err := enc.Close(); err != nil {
		return packerr.Wrap(packerr.ErrSerialization, "manifest", "flush", "", err)
	}
	return nil
}

// WriteFile writes the manifest as info.yml inside dir and returns its path.
func (m Manifest) WriteFile(dir string) (string, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", packerr.Wrap(packerr.ErrSerialization, "manifest", "write", path, err)
	}
	return path, nil
}

// Read decodes a manifest document.
func Read(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, packerr.Wrap(packerr.ErrSerialization, "manifest", "decode", "", err)
	}
	return m, nil
}
