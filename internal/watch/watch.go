// Package watch monitors a source tree and triggers a full re-generation
// when files change. Rebuilds are debounced so editor save bursts collapse
// into one run.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a directory tree and invokes a rebuild callback.
type Watcher struct {
	root         string
	rebuild      func() error
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
}

// New creates a watcher over root. rebuild runs after each debounced change
// burst; its errors are logged, not fatal to watching.
func New(root string, rebuild func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	return &Watcher{
		root:         absRoot,
		rebuild:      rebuild,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
	}, nil
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	slog.Info("watching for changes", "root", w.root)

	debounce := time.NewTimer(w.debounceTime)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if isHidden(event.Name) {
				continue
			}
			// New directories must be added to the watch set themselves.
			if event.Op.Has(fsnotify.Create) {
				if err := w.addTree(event.Name); err != nil {
					slog.Debug("could not watch new path", "path", event.Name, "error", err)
				}
			}
			slog.Debug("source change detected", "path", event.Name, "op", event.Op.String())
			debounce.Reset(w.debounceTime)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)

		case <-debounce.C:
			if err := w.rebuild(); err != nil {
				slog.Error("rebuild failed", "error", err)
			}
		}
	}
}

// addTree registers path and, when it is a directory, all non-hidden
// subdirectories.
func (w *Watcher) addTree(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if isHidden(p) && p != path {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
