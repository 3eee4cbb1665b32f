// Package checker compares freshly computed artifacts against their on-disk
// counterparts byte-for-byte. It is a dry-run oracle: it never writes, and
// its report tells the caller whether regeneration is needed.
package checker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Status describes one artifact's relationship to its computed form
type Status string

const (
	// StatusUnchanged means the on-disk bytes match the computed bytes
	StatusUnchanged Status = "unchanged"
	// StatusWouldUpdate means the artifact exists but its content drifted
	StatusWouldUpdate Status = "would-update"
	// StatusWouldCreate means the artifact does not exist yet
	StatusWouldCreate Status = "would-create"
)

// Result maps artifact paths (relative to the package root) to statuses
type Result map[string]Status

// Drift reports whether any artifact is out of date or missing
func (r Result) Drift() bool {
	for _, status := range r {
		if status != StatusUnchanged {
			return true
		}
	}
	return false
}

// Paths returns the artifact paths in sorted order for deterministic reports
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r))
	for p := range r {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Check compares every computed artifact against the file of the same
// relative path under root. Read-only: the filesystem is never mutated.
func Check(root string, artifacts map[string]string) (Result, error) {
	result := make(Result, len(artifacts))

	for rel, want := range artifacts {
		full := filepath.Join(root, filepath.FromSlash(rel))

		existing, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				result[rel] = StatusWouldCreate
				continue
			}
			return nil, fmt.Errorf("failed to read artifact %s: %w", rel, err)
		}

		if string(existing) == want {
			result[rel] = StatusUnchanged
		} else {
			result[rel] = StatusWouldUpdate
		}
	}

	return result, nil
}
