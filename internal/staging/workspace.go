package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"phirapack/internal/packerr"
)

// DirPrefix starts the name of every staging directory.
const DirPrefix = "phira_pack_"

// Workspace is a uniquely named staging directory owned by a single build.
type Workspace struct {
	dir     string
	once    sync.Once
	removed error
}

// NewWorkspace creates a fresh staging directory under root. An empty root
// uses the system temp directory.
func NewWorkspace(root, buildID string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, packerr.Wrap(packerr.ErrEnvironment, "staging", "create root", root, err)
	}
	pattern := DirPrefix + "*"
	if id := strings.TrimSpace(buildID); id != "" {
		pattern = DirPrefix + id + "-*"
	}
	dir, err := os.MkdirTemp(root, pattern)
	if err != nil {
		return nil, packerr.Wrap(packerr.ErrEnvironment, "staging", "create directory", root, err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the absolute staging directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins name onto the staging directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Remove deletes the staging directory and everything inside it. Repeated
// calls return the first result.
func (w *Workspace) Remove() error {
	w.once.Do(func() {
		if err := os.RemoveAll(w.dir); err != nil {
			w.removed = fmt.Errorf("remove staging directory %s: %w", w.dir, err)
		}
	})
	return w.removed
}
