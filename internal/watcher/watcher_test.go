package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Config.txt")

	var calls atomic.Int32
	w, err := New(path, 300*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("A,a\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	w, err := New(filepath.Join(dir, "Config.txt"), 50*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestWatcherCloseStopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Config.txt")

	var calls atomic.Int32
	w, err := New(path, 200*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("A,a\n"), 0o644))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	time.Sleep(400 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "Config.txt"), 0, func() {}, nil)
	assert.Error(t, err)
}
