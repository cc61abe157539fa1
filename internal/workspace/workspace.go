// Package workspace resolves the project root for a working directory.
package workspace

import (
	"os"
	"path/filepath"
)

// DefaultMarkers are the entries whose presence identifies a project root.
var DefaultMarkers = []string{".codecompanion", ".git", "go.mod"}

// FindRoot walks upward from start looking for one of the marker entries.
// It returns the first directory containing a marker, or start itself when
// nothing matches. An empty start means the current working directory.
func FindRoot(start string, markers ...string) (string, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = cwd
	}
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	dir := start
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return start, nil
}
