package staging

import (
	"fmt"
	"path/filepath"

	"phirapack/internal/fileutil"
	"phirapack/internal/packerr"
	"phirapack/internal/params"
)

// Skipped records a configured asset that was not found on disk.
type Skipped struct {
	Role string `json:"role"`
	Path string `json:"path"`
}

// CopyImages copies every configured image role that exists on disk into the
// workspace under its canonical name. Unset roles are ignored; configured
// paths that do not exist are returned as skipped.
func (w *Workspace) CopyImages(p params.BuildParameters) ([]Skipped, error) {
	var skipped []Skipped
	for _, role := range params.ImageRoles {
		src := p.Image(role)
		if src == "" {
			continue
		}
		if !fileutil.Exists(src) {
			skipped = append(skipped, Skipped{Role: "image." + string(role), Path: src})
			continue
		}
		if err := fileutil.CopyFile(src, w.Path(role.FileName())); err != nil {
			return skipped, packerr.Wrap(packerr.ErrEnvironment, "staging", "copy image", string(role), err)
		}
	}
	return skipped, nil
}

// CopyHitEffect copies a supplied hit effect sprite sheet into the workspace.
func (w *Workspace) CopyHitEffect(src string) error {
	if err := fileutil.CopyFile(src, w.Path(params.SuppliedHitFxName)); err != nil {
		return packerr.Wrap(packerr.ErrEnvironment, "staging", "copy hit effect", src, err)
	}
	return nil
}

// CopyAudio copies every configured audio role that exists on disk into the
// workspace under its source base name. The returned map is keyed by
// manifest audio key and only holds staged files. A base name that is already
// present in the workspace is rejected rather than overwritten.
func (w *Workspace) CopyAudio(p params.BuildParameters) (map[string]string, []Skipped, error) {
	staged := make(map[string]string)
	var skipped []Skipped
	for _, role := range params.AudioRoles {
		src := p.AudioPath(role)
		if src == "" {
			continue
		}
		if !fileutil.Exists(src) {
			skipped = append(skipped, Skipped{Role: "audio." + string(role), Path: src})
			continue
		}
		name := filepath.Base(src)
		if fileutil.Exists(w.Path(name)) {
			return staged, skipped, packerr.Wrap(packerr.ErrValidation, "staging", "copy audio",
				fmt.Sprintf("audio.%s file name %q is already staged", role, name), nil)
		}
		if err := fileutil.CopyFile(src, w.Path(name)); err != nil {
			return staged, skipped, packerr.Wrap(packerr.ErrEnvironment, "staging", "copy audio", string(role), err)
		}
		staged[role.ManifestKey()] = name
	}
	return staged, skipped, nil
}
