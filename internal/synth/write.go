package synth

import (
	"os"
	"path/filepath"

	"github.com/ThomasCrouzet/k8sify/internal/model"
)

// Write stores each manifest as <dir>/<name>.yaml, creating dir if needed.
// It returns the written paths in set order and stops at the first failure.
// Two manifests mapping to the same file are an error, never an overwrite.
func Write(dir string, set model.ManifestSet) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}

	paths := make([]string, 0, set.Len())
	seen := make(map[string]bool, set.Len())
	for _, m := range set.Items {
		path := filepath.Join(dir, m.FileName())
		if seen[path] {
			return paths, &IOError{Path: path, Err: ErrDuplicateFile}
		}
		seen[path] = true
		if err := os.WriteFile(path, []byte(m.Content), 0o644); err != nil {
			return paths, &IOError{Path: path, Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}
