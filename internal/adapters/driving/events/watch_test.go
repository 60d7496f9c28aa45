package events

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
)

func startWatcher(t *testing.T, dir string, dispatcher *mockDispatcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	w := NewWatcher(dir, NewReplayer(dispatcher, "s3"))
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, FailedDir))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	return cancel
}

// dropFile writes content under a hidden name and renames it into place.
func dropFile(t *testing.T, dir, name, content string) {
	t.Helper()
	tmp := filepath.Join(dir, "."+name+".tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, name)))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestWatcher_Run(t *testing.T) {
	t.Run("dispatches new event files", func(t *testing.T) {
		dir := t.TempDir()
		dispatcher := &mockDispatcher{}
		startWatcher(t, dir, dispatcher)

		dropFile(t, dir, "one.json", s3EventJSON)

		require.Eventually(t, func() bool {
			return fileExists(filepath.Join(dir, ProcessedDir, "one.json"))
		}, 2*time.Second, 10*time.Millisecond)

		batches := dispatcher.Batches()
		require.Len(t, batches, 1)
		assert.Equal(t, domain.SourceWatch, batches[0].Invocation.Source)
		assert.Len(t, batches[0].Records, 2)
		assert.False(t, fileExists(filepath.Join(dir, "one.json")))
	})

	t.Run("drains existing files first", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(s3EventJSON), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(s3EventJSON), 0o644))

		dispatcher := &mockDispatcher{}
		startWatcher(t, dir, dispatcher)

		require.Eventually(t, func() bool {
			return fileExists(filepath.Join(dir, ProcessedDir, "a.json")) &&
				fileExists(filepath.Join(dir, ProcessedDir, "b.json"))
		}, 2*time.Second, 10*time.Millisecond)
		assert.Len(t, dispatcher.Batches(), 2)
	})

	t.Run("moves failures aside", func(t *testing.T) {
		dir := t.TempDir()
		dispatcher := &mockDispatcher{err: errors.New("catalog down")}
		startWatcher(t, dir, dispatcher)

		dropFile(t, dir, "bad.json", s3EventJSON)

		require.Eventually(t, func() bool {
			return fileExists(filepath.Join(dir, FailedDir, "bad.json"))
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("ignores other files", func(t *testing.T) {
		dir := t.TempDir()
		dispatcher := &mockDispatcher{}
		startWatcher(t, dir, dispatcher)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))
		dropFile(t, dir, "ok.json", s3EventJSON)

		require.Eventually(t, func() bool {
			return fileExists(filepath.Join(dir, ProcessedDir, "ok.json"))
		}, 2*time.Second, 10*time.Millisecond)
		assert.True(t, fileExists(filepath.Join(dir, "notes.txt")))
		assert.Len(t, dispatcher.Batches(), 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		w := NewWatcher(filepath.Join(t.TempDir(), "nope"), NewReplayer(&mockDispatcher{}, "s3"))
		assert.Error(t, w.Run(context.Background()))
	})
}

func TestWatcher_handleFsEvent(t *testing.T) {
	dir := t.TempDir()
	eventFile := filepath.Join(dir, "e.json")
	require.NoError(t, os.WriteFile(eventFile, []byte(s3EventJSON), 0o644))
	hidden := filepath.Join(dir, ".e.json")
	require.NoError(t, os.WriteFile(hidden, []byte(s3EventJSON), 0o644))
	sub := filepath.Join(dir, "sub.json")
	require.NoError(t, os.Mkdir(sub, 0o755))

	w := NewWatcher(dir, nil)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
	}{
		{"create", fsnotify.Event{Name: eventFile, Op: fsnotify.Create}, eventFile},
		{"write", fsnotify.Event{Name: eventFile, Op: fsnotify.Write}, eventFile},
		{"write and chmod", fsnotify.Event{Name: eventFile, Op: fsnotify.Write | fsnotify.Chmod}, eventFile},
		{"remove", fsnotify.Event{Name: eventFile, Op: fsnotify.Remove}, ""},
		{"chmod only", fsnotify.Event{Name: eventFile, Op: fsnotify.Chmod}, ""},
		{"hidden", fsnotify.Event{Name: hidden, Op: fsnotify.Create}, ""},
		{"directory", fsnotify.Event{Name: sub, Op: fsnotify.Create}, ""},
		{"missing", fsnotify.Event{Name: filepath.Join(dir, "gone.json"), Op: fsnotify.Create}, ""},
		{"other dir", fsnotify.Event{Name: filepath.Join(dir, ProcessedDir, "e.json"), Op: fsnotify.Create}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleFsEvent(tt.event))
		})
	}
}

func TestWatcher_processLeavesIncompleteFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ProcessedDir), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, FailedDir), 0o755))

	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(s3EventJSON[:60]), 0o644))
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	dispatcher := &mockDispatcher{}
	w := NewWatcher(dir, NewReplayer(dispatcher, "s3"))
	w.process(context.Background(), partial)
	w.process(context.Background(), empty)

	assert.True(t, fileExists(partial))
	assert.True(t, fileExists(empty))
	assert.Empty(t, dispatcher.Batches())
}
