package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/psync/internal/adapters/watcher"
	"go.trai.ch/psync/internal/core/ports"
)

const eventTimeout = 5 * time.Second

// startWatcher starts a watcher on root and returns a channel fed from its
// event iterator.
func startWatcher(t *testing.T, root string, excludes []string) <-chan ports.WatchEvent {
	t.Helper()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Start(t.Context(), root, excludes))

	ch := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(ch)
		for event := range w.Events() {
			ch <- event
		}
	}()
	return ch
}

func nextEvent(t *testing.T, ch <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "watcher closed before delivering an event")
		return event
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for a watch event")
		return ports.WatchEvent{}
	}
}

func TestWatcher_DeliversCreate(t *testing.T) {
	root := t.TempDir()
	ch := startWatcher(t, root, nil)

	path := filepath.Join(root, "Main.cs")
	require.NoError(t, os.WriteFile(path, []byte("class Main {}"), 0o644))

	event := nextEvent(t, ch)
	assert.Equal(t, ports.WatchEvent{Path: path, Op: ports.OpCreate}, event)
}

func TestWatcher_DeliversWrite(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Main.cs")
	require.NoError(t, os.WriteFile(path, []byte("class Main {}"), 0o644))

	ch := startWatcher(t, root, nil)

	require.NoError(t, os.WriteFile(path, []byte("class Main { int x; }"), 0o644))

	event := nextEvent(t, ch)
	assert.Equal(t, ports.WatchEvent{Path: path, Op: ports.OpWrite}, event)
}

func TestWatcher_DeliversRemove(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Old.cs")
	require.NoError(t, os.WriteFile(path, []byte("class Old {}"), 0o644))

	ch := startWatcher(t, root, nil)

	require.NoError(t, os.Remove(path))

	event := nextEvent(t, ch)
	assert.Equal(t, ports.WatchEvent{Path: path, Op: ports.OpRemove}, event)
}

func TestWatcher_WatchesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "models")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	ch := startWatcher(t, root, nil)

	path := filepath.Join(nested, "User.cs")
	require.NoError(t, os.WriteFile(path, []byte("class User {}"), 0o644))

	event := nextEvent(t, ch)
	assert.Equal(t, ports.WatchEvent{Path: path, Op: ports.OpCreate}, event)
}

func TestWatcher_SkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))

	ch := startWatcher(t, root, []string{"bin", "obj"})

	// The excluded directory is not watched, so this produces no event.
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "App.dll"), []byte("x"), 0o644))

	seen := filepath.Join(root, "Seen.cs")
	require.NoError(t, os.WriteFile(seen, []byte("class Seen {}"), 0o644))

	event := nextEvent(t, ch)
	assert.Equal(t, ports.WatchEvent{Path: seen, Op: ports.OpCreate}, event)
}

func TestWatcher_WatchesCreatedDirectories(t *testing.T) {
	root := t.TempDir()
	ch := startWatcher(t, root, nil)

	sub := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))

	event := nextEvent(t, ch)
	require.Equal(t, ports.WatchEvent{Path: sub, Op: ports.OpCreate}, event)

	// Give the watcher a moment to register the new directory.
	time.Sleep(250 * time.Millisecond)

	path := filepath.Join(sub, "Inner.cs")
	require.NoError(t, os.WriteFile(path, []byte("class Inner {}"), 0o644))

	event = nextEvent(t, ch)
	assert.Equal(t, ports.WatchEvent{Path: path, Op: ports.OpCreate}, event)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context(), root, nil))

	require.NoError(t, w.Stop())

	done := make(chan struct{})
	go func() {
		for range w.Events() {
			continue
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(eventTimeout):
		t.Fatal("event iterator did not terminate after Stop")
	}
}
