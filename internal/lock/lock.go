// Package lock provides the advisory "landing in progress" marker.
//
// The marker is a single file at the repository root. It is purely advisory:
// it signals to a human operator that a landing workflow is active, and a
// pre-existing marker is surfaced as a warning rather than enforced as a
// mutex. Release is safe to call on every exit path.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MarkerName is the marker file created at the repository root while a
// landing workflow is in progress.
const MarkerName = ".landing"

// Guard represents an acquired landing marker, scoped to one workflow run
type Guard struct {
	path     string
	acquired bool
}

// New creates a Guard for the repository at repoRoot. The marker is not
// created until Acquire is called.
func New(repoRoot string) *Guard {
	return &Guard{path: filepath.Join(repoRoot, MarkerName)}
}

// Path returns the marker file path
func (g *Guard) Path() string {
	return g.path
}

// Acquire creates the marker file, recording this process's pid.
// A pre-existing marker is overwritten; the previous owner (if readable)
// is returned as a non-empty stale description so the caller can warn.
func (g *Guard) Acquire() (stale string, err error) {
	if data, readErr := os.ReadFile(g.path); readErr == nil {
		stale = describeStale(string(data))
	}

	if err := os.WriteFile(g.path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0600); err != nil {
		return stale, fmt.Errorf("failed to create landing marker %s: %w", g.path, err)
	}
	g.acquired = true
	return stale, nil
}

// Release removes the marker file. Safe to call when the marker was never
// acquired or is already gone.
func (g *Guard) Release() error {
	if !g.acquired {
		return nil
	}
	g.acquired = false
	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove landing marker %s: %w", g.path, err)
	}
	return nil
}

// describeStale formats a human-readable description of a pre-existing marker
func describeStale(contents string) string {
	pid := strings.TrimSpace(contents)
	if pid == "" {
		return "a landing marker already exists"
	}
	return fmt.Sprintf("a landing marker already exists (left by pid %s)", pid)
}
