package codebase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc receives the project rebuilt after a batch of file changes.
type ChangeFunc func(project *Project, failures Failures)

// Watcher keeps a Codebase rooted at a local directory in sync with the
// file system. Events are collected until none arrive for the debounce
// delay and then applied as one batch.
type Watcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	onChange ChangeFunc

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

func NewWatcher(c *Codebase, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	root, err := filepath.Abs(c.RootDir())
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		codebase: c,
		watcher:  watcher,
		root:     root,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}
	if _, err := w.addTree(root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// addTree watches dir and every directory below it that is not hidden. It
// returns the source files found on the way.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			if IsSourceFile(path) {
				sources = append(sources, path)
			}
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		log.Debugf("watching %s", path)
		return nil
	})
	return sources, err
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %s", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	switch {
	case event.Op&fsnotify.Create != 0 && isDir(name):
		if strings.HasPrefix(filepath.Base(name), ".") {
			return
		}
		sources, err := w.addTree(name)
		if err != nil {
			log.Warningf("watch %s: %s", name, err)
		}
		w.queue(ctx, sources...)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Removed directories are not sources but still drop their files.
		w.queue(ctx, name)
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0 && IsSourceFile(name):
		w.queue(ctx, name)
	}
}

func (w *Watcher) queue(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range paths {
		w.pending[path] = struct{}{}
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.flush(ctx); err != nil {
			log.Errorf("rebuild: %s", err)
		}
	})
}

// flush applies every pending change to the codebase.
func (w *Watcher) flush(ctx context.Context) error {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()
	if len(pending) == 0 {
		return nil
	}

	changed := make(Files)
	var removed []string
	for path := range pending {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if IsSourceFile(path) {
				changed[path] = content
			}
		case errors.Is(err, fs.ErrNotExist):
			removed = append(removed, w.knownBelow(path)...)
		default:
			log.Warningf("read %s: %s", path, err)
		}
	}
	log.Infof("applying %d changed and %d removed files", len(changed), len(removed))
	if err := w.codebase.UpdateFiles(ctx, changed, removed); err != nil {
		return err
	}
	if w.onChange != nil {
		w.onChange(w.codebase.Project(), w.codebase.Failures())
	}
	return nil
}

// knownBelow returns path itself and every known file inside it.
func (w *Watcher) knownBelow(path string) []string {
	files := []string{path}
	prefix := path + string(filepath.Separator)
	for _, known := range w.codebase.FilePaths() {
		if strings.HasPrefix(known, prefix) {
			files = append(files, known)
		}
	}
	return files
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
