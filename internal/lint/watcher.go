package lint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-lints a path whenever a changelog file under it changes.
type Watcher struct {
	linter       *Linter
	path         string
	isDir        bool
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	onResult     func(*Result)
}

// NewWatcher creates a watcher over path. onResult is invoked after every
// re-lint, including the initial one.
func NewWatcher(linter *Linter, path string, onResult func(*Result)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to stat watch path: %w", err)
	}

	return &Watcher{
		linter:       linter,
		path:         absPath,
		isDir:        info.IsDir(),
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
		onResult:     onResult,
	}, nil
}

// Run lints once, then blocks re-linting on changes until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Watching the directory is more reliable than watching a file directly:
	// editors commonly replace files on save.
	watchDir := w.path
	if !w.isDir {
		watchDir = filepath.Dir(w.path)
	}
	if err := w.watcher.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchDir, err)
	}

	slog.Info("Watching for changelog changes", "path", w.path)
	w.lint()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// Debounce rapid write bursts from editors.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceTime, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)
		case <-pending:
			w.lint()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if !w.isDir {
		return event.Name == w.path
	}
	return IsChangelogFile(event.Name)
}

func (w *Watcher) lint() {
	result, err := w.linter.LintPath(w.path)
	if err != nil {
		slog.Error("Lint pass failed", "path", w.path, "error", err)
		return
	}
	if w.onResult != nil {
		w.onResult(result)
	}
}
