package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// Subdirectories of the spool directory that receive handled files.
const (
	ProcessedDir = "processed"
	FailedDir    = "failed"
)

// eventFileExt is the extension of spool files.
const eventFileExt = ".json"

// Watcher replays S3 event files dropped into a spool directory.
//
// Writers should create files under a hidden or non-.json name and rename
// them into place. Files are handled one at a time and then moved into
// processed/ or failed/.
type Watcher struct {
	dir      string
	replayer *Replayer
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, replayer *Replayer) *Watcher {
	return &Watcher{dir: dir, replayer: replayer}
}

// Run handles files already in the spool directory, then watches it until
// ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("spool directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}
	for _, sub := range []string{ProcessedDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(w.dir, sub), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", sub, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	if err := w.drain(ctx); err != nil {
		return err
	}
	logger.Info("Watching %s for S3 event files", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path := w.handleFsEvent(event); path != "" {
				w.process(ctx, path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// drain handles files present before the watch started, oldest name first.
func (w *Watcher) drain(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && isEventFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if ctx.Err() != nil {
			return nil
		}
		w.process(ctx, filepath.Join(w.dir, name))
	}
	return nil
}

// handleFsEvent returns the path to process for event, or "".
func (w *Watcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if filepath.Dir(event.Name) != filepath.Clean(w.dir) || !isEventFile(filepath.Base(event.Name)) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return event.Name
}

// process replays one file and moves it out of the spool.
// Incomplete files are left in place for the next write event.
func (w *Watcher) process(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("open %s: %v", path, err)
		}
		return
	}

	info, err := f.Stat()
	if err == nil && info.Size() == 0 {
		f.Close()
		return
	}

	result, err := w.replayer.Replay(ctx, f, filepath.Base(path), domain.SourceWatch)
	f.Close()

	if errors.Is(err, io.ErrUnexpectedEOF) {
		logger.Debug("%s is incomplete, waiting for more data", path)
		return
	}
	if ctx.Err() != nil {
		return
	}

	dest := ProcessedDir
	if err != nil {
		dest = FailedDir
		logger.Error("%s: %v", filepath.Base(path), err)
	} else {
		logger.Info("%s: %d received, %d processed, %d skipped",
			filepath.Base(path), result.Received, result.Processed, result.Skipped)
	}

	if err := os.Rename(path, filepath.Join(w.dir, dest, filepath.Base(path))); err != nil {
		logger.Warn("move %s to %s: %v", path, dest, err)
	}
}

func isEventFile(name string) bool {
	return !strings.HasPrefix(name, ".") && strings.EqualFold(filepath.Ext(name), eventFileExt)
}
