package manifest_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"phirapack/internal/manifest"
	"phirapack/internal/packerr"
	"phirapack/internal/params"
)

func baseParams() params.BuildParameters {
	p := params.Default()
	p.Name = "Test Pack"
	p.Author = "Tester"
	p.Description = "for tests"
	return p
}

func TestEncodeKeyOrderAndShapes(t *testing.T) {
	p := baseParams()
	p.HoldAtlasMH = &params.Point{X: 50, Y: 95}

	var buf bytes.Buffer
	if err := manifest.FromParams(p, nil).Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	root := node.Content[0]
	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	want := "name,author,description,hitFx,hitFxDuration,hitFxScale,hitFxRotate,holdAtlasMH"
	if got := strings.Join(keys, ","); got != want {
		t.Fatalf("keys = %s, want %s", got, want)
	}
	if !strings.Contains(buf.String(), "hitFx: [8, 8]") {
		t.Fatalf("expected flow sequence for hitFx:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "holdAtlasMH: [50, 95]") {
		t.Fatalf("expected flow sequence for holdAtlasMH:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "null") {
		t.Fatalf("optional keys must be omitted:\n%s", buf.String())
	}
}

func TestAudioKeyPresentOnlyWhenStaged(t *testing.T) {
	p := baseParams()

	without := manifest.FromParams(p, map[string]string{})
	if without.Audio != nil {
		t.Fatalf("expected no audio map, got %v", without.Audio)
	}

	with := manifest.FromParams(p, map[string]string{"drag": "d.wav", "endMusic": "end.ogg"})
	var buf bytes.Buffer
	if err := with.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := manifest.Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(decoded.Audio) != 2 || decoded.Audio["endMusic"] != "end.ogg" {
		t.Fatalf("unexpected audio %v", decoded.Audio)
	}
	if _, ok := decoded.Audio["tap"]; ok {
		t.Fatal("tap must not appear when not staged")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	p := baseParams()
	p.Name = "Ünïcode パック"
	p.HitFx.Scale = 1.5
	p.HitFx.Rotate = false
	p.HoldAtlas = &params.Point{X: 10, Y: 20}

	dir := t.TempDir()
	path, err := manifest.FromParams(p, nil).WriteFile(dir)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if path != filepath.Join(dir, "info.yml") {
		t.Fatalf("unexpected manifest path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(data), "Ünïcode パック") {
		t.Fatalf("expected unescaped unicode name:\n%s", data)
	}

	m, err := manifest.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if m.Name != p.Name || m.HitFx != (manifest.Pair{8, 8}) || m.HitFxDuration != 0.55 || m.HitFxScale != 1.5 || m.HitFxRotate {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if m.HoldAtlas == nil || *m.HoldAtlas != (manifest.Pair{10, 20}) {
		t.Fatalf("unexpected holdAtlas %v", m.HoldAtlas)
	}
	if m.HoldAtlasMH != nil {
		t.Fatalf("expected holdAtlasMH absent, got %v", m.HoldAtlasMH)
	}
}

func TestWriteFileIntoMissingDirectory(t *testing.T) {
	_, err := manifest.FromParams(baseParams(), nil).WriteFile(filepath.Join(t.TempDir(), "gone"))
	if !errors.Is(err, packerr.ErrSerialization) {
		t.Fatalf("expected ErrSerialization, got %v", err)
	}
}
