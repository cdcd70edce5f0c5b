package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"cradle/logging"

	"github.com/google/uuid"
)

// TempDir is a uniquely named temporary directory. The directory exists
// from the moment the constructor returns until Cleanup removes it;
// creation cannot be separated from allocation.
type TempDir struct {
	path    string
	cleaned bool
}

// NewTempDir creates a temporary directory under the OS default location.
func NewTempDir() (*TempDir, error) {
	return NewTempDirIn(os.TempDir(), "cradle")
}

// NewTempDirIn creates a uniquely named directory under parent. Uniqueness
// is the harness's responsibility, so the name carries a fresh UUID.
func NewTempDirIn(parent, prefix string) (*TempDir, error) {
	if prefix == "" {
		prefix = "cradle"
	}
	path := filepath.Join(parent, fmt.Sprintf("%s-%s", prefix, uuid.NewString()))
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &AllocationError{Resource: "temp dir", Err: err}
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, &AllocationError{Resource: "temp dir", Err: err}
	}
	return &TempDir{path: abs}, nil
}

// Path returns the absolute directory path.
func (d *TempDir) Path() string {
	return d.path
}

// Cleanup recursively removes the directory. A directory that is already
// gone counts as success (RemoveAll reports nil for missing paths); any
// other failure is logged as a warning and swallowed so a surrounding
// dispose chain keeps going. Repeated calls are no-ops.
func (d *TempDir) Cleanup() {
	if d.cleaned {
		return
	}
	d.cleaned = true

	if err := os.RemoveAll(d.path); err != nil {
		logging.Logger.Warn("failed to remove temp dir", "path", d.path, "error", err)
	}
}

// Dispose releases the directory. Implements Disposable.
func (d *TempDir) Dispose() {
	d.Cleanup()
}
