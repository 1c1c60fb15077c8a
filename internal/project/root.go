package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file name of a project manifest.
const ManifestName = "guard.toml"

// ErrNoManifest is returned when no guard.toml exists in the start directory or above.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// FindManifest walks up from startDir to locate guard.toml.
// A file path is accepted as well; the search starts at its directory.
func FindManifest(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoManifest
}

// FindProjectRoot returns the directory containing guard.toml.
func FindProjectRoot(startDir string) (string, error) {
	manifestPath, err := FindManifest(startDir)
	if err != nil {
		return "", err
	}
	return filepath.Dir(manifestPath), nil
}
