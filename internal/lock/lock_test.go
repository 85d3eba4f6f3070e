package lock_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"land.dev/land/internal/lock"
)

func TestGuardLifecycle(t *testing.T) {
	dir := t.TempDir()
	guard := lock.New(dir)

	stale, err := guard.Acquire()
	require.NoError(t, err)
	require.Empty(t, stale)

	data, err := os.ReadFile(guard.Path())
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	require.NoError(t, guard.Release())
	_, err = os.Stat(guard.Path())
	require.True(t, os.IsNotExist(err))
}

func TestGuardStaleMarker(t *testing.T) {
	dir := t.TempDir()
	markerPath := filepath.Join(dir, lock.MarkerName)
	require.NoError(t, os.WriteFile(markerPath, []byte("999\n"), 0600))

	guard := lock.New(dir)
	stale, err := guard.Acquire()
	require.NoError(t, err)
	require.Contains(t, stale, "999")

	require.NoError(t, guard.Release())
}

func TestReleaseWithoutAcquire(t *testing.T) {
	guard := lock.New(t.TempDir())
	require.NoError(t, guard.Release())
}

func TestReleaseIsIdempotent(t *testing.T) {
	guard := lock.New(t.TempDir())
	_, err := guard.Acquire()
	require.NoError(t, err)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
}
