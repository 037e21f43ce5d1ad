package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/relens/internal/watcher"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	patternPath := filepath.Join(dir, "pattern.txt")
	textPath := filepath.Join(dir, "text.txt")
	writeFile(t, patternPath, "a")
	writeFile(t, textPath, "ab")

	w, err := watcher.New(watcher.Config{
		Paths:       []string{patternPath, textPath},
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	// Rapid writes across both files coalesce into a single notification
	for i := 0; i < 10; i++ {
		path := patternPath
		if i%2 == 1 {
			path = textPath
		}
		writeFile(t, path, fmt.Sprintf("a%d", i))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	patternPath := filepath.Join(dir, "pattern.txt")
	otherPath := filepath.Join(dir, "other.txt")
	writeFile(t, patternPath, "a")
	// Pre-create the other file so writes to it are just Write events
	writeFile(t, otherPath, "initial")

	w, err := watcher.New(watcher.Config{
		Paths:       []string{patternPath},
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	writeFile(t, otherPath, "other content")

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_RenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "text.txt")
	writeFile(t, textPath, "one")

	w, err := watcher.New(watcher.Config{
		Paths:       []string{textPath},
		DebounceDur: 30 * time.Millisecond,
	})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	tmp := filepath.Join(dir, ".text.txt.swp")
	writeFile(t, tmp, "two")
	require.NoError(t, os.Rename(tmp, textPath))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for rename-into-place save")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.txt")
	writeFile(t, path, "a")

	w, err := watcher.New(watcher.Config{
		Paths:       []string{path},
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)

	// Stop should not hang or panic
	done := make(chan struct{})
	go func() {
		err := w.Stop()
		assert.NoError(t, err, "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestNew_RequiresFiles(t *testing.T) {
	_, err := watcher.New(watcher.Config{Paths: []string{"", ""}})
	require.Error(t, err)
}

func TestStart_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.Config{Paths: []string{filepath.Join(t.TempDir(), "nope", "p.txt")}})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("p.txt", "t.txt")

	assert.Equal(t, []string{"p.txt", "t.txt"}, cfg.Paths)
	assert.Equal(t, 600*time.Millisecond, cfg.DebounceDur)
}
