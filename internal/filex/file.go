// Package filex locates the client's on-disk state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubDir creates dirName under the current working directory (if it
// does not exist yet) and returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// StatePath resolves the state database location. Absolute paths and the
// SQLite ":memory:" DSN are returned unchanged; relative names are placed
// inside stateDir, which is created on demand.
func StatePath(stateDir, name string) (string, error) {
	if name == ":memory:" || filepath.IsAbs(name) {
		return name, nil
	}

	dir, err := EnsureSubDir(stateDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
