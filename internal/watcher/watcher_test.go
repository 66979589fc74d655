package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fling-dev/fling/internal/pubsub"
	"github.com/fling-dev/fling/internal/watcher"
)

func startWatcher(t *testing.T, dirs []string) (<-chan pubsub.Event[string], *watcher.Watcher) {
	t.Helper()
	broker := pubsub.NewBroker[string]()
	t.Cleanup(broker.Close)

	w, err := watcher.New(watcher.Config{
		Dirs:        dirs,
		DebounceDur: 50 * time.Millisecond,
	}, broker)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := broker.Subscribe(ctx)

	w.Start()
	return events, w
}

func TestWatcherDebouncesDescriptorBurst(t *testing.T) {
	dir := t.TempDir()
	events, _ := startWatcher(t, []string{dir})

	// A package upgrade rewriting many descriptors coalesces into one event.
	for i := 0; i < 10; i++ {
		path := filepath.Join(dir, fmt.Sprintf("app%d.desktop", i))
		require.NoError(t, os.WriteFile(path, []byte("[Desktop Entry]\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case event := <-events:
		require.Equal(t, pubsub.ChangedEvent, event.Type)
		require.Equal(t, dir, event.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("expected change event but got timeout")
	}

	select {
	case <-events:
		t.Fatal("unexpected second event")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherIgnoresNonDescriptorFiles(t *testing.T) {
	dir := t.TempDir()
	events, _ := startWatcher(t, []string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-events:
		t.Fatal("unexpected event for non-descriptor file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherReportsRemovals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.desktop")
	require.NoError(t, os.WriteFile(path, []byte("[Desktop Entry]\n"), 0o644))

	events, _ := startWatcher(t, []string{dir})

	require.NoError(t, os.Remove(path))

	select {
	case event := <-events:
		require.Equal(t, dir, event.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("expected event for descriptor removal")
	}
}

func TestWatcherSkipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist")

	events, _ := startWatcher(t, []string{missing, dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.desktop"), []byte("[Desktop Entry]\n"), 0o644))

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher should still cover the existing dir")
	}
}

func TestWatcherAllDirsMissing(t *testing.T) {
	broker := pubsub.NewBroker[string]()
	defer broker.Close()

	_, err := watcher.New(watcher.Config{
		Dirs:        []string{filepath.Join(t.TempDir(), "nope")},
		DebounceDur: 50 * time.Millisecond,
	}, broker)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig([]string{"/a", "/b"})
	require.Equal(t, []string{"/a", "/b"}, cfg.Dirs)
	require.Equal(t, time.Second, cfg.DebounceDur)
}
