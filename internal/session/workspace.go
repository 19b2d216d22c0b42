package session

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/threatflux/cot/internal/errors"
)

// Workspace is a scratch directory exclusively owned by one package-edit
// session. Close removes it on every exit path, including error, per the
// scoped-cleanup design in the specification's concurrency model.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh scratch directory under root (the system
// temp directory if root is empty), named with a random identifier so
// concurrent invocations never collide.
func NewWorkspace(root string) (*Workspace, error) {
	if root == "" {
		root = os.TempDir()
	}

	name := filepath.Join(root, "cot-"+uuid.NewString())
	if err := os.MkdirAll(name, 0o755); err != nil {
		return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "creating scratch directory %s", name)
	}

	return &Workspace{dir: name}, nil
}

// Dir returns the scratch directory's absolute path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins a relative name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Close removes the scratch directory and everything under it.
func (w *Workspace) Close() error {
	if w == nil || w.dir == "" {
		return nil
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "removing scratch directory %s", w.dir)
	}
	return nil
}
