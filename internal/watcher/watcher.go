// Package watcher folds raw filesystem notifications into one debounced
// "this directory changed" signal per affected directory (§4.5).
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is the per-path coalescing window before a change is surfaced.
// fsnotify reports several raw events per logical write (metadata touch,
// rename-in-place, etc.); without this, a single `cp` can fire a burst of
// reloads for the same directory.
const Debounce = 60 * time.Millisecond

// Watcher owns an fsnotify handle configured non-recursively: it only
// ever watches the directories handed to it via Watch, never their
// subtrees, matching §4.5's "recursive-capable notifier configured
// non-recursively".
type Watcher struct {
	fsw *fsnotify.Watcher

	mu       sync.Mutex
	watched  map[string]bool
	pending  map[string]*time.Timer
	closed   bool
	debounce time.Duration

	changed chan string
}

// New starts the underlying fsnotify watcher and its event-folding loop.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		watched:  make(map[string]bool),
		pending:  make(map[string]*time.Timer),
		debounce: Debounce,
		changed:  make(chan string, 64),
	}
	go w.run()
	return w, nil
}

// Changed delivers one directory path per debounced batch of events
// affecting it; the caller re-reads that directory and folds the result
// into the matching Folder via Manager.UpdateFiles.
func (w *Watcher) Changed() <-chan string { return w.changed }

// Watch reconciles the watched set to exactly `want` (the union of every
// tab's cwd, parent cwd, and hovered directory — computed by the caller,
// per §4.5).
func (w *Watcher) Watch(want map[string]bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for p := range want {
		if !w.watched[p] {
			w.fsw.Add(p)
		}
	}
	for p := range w.watched {
		if !want[p] {
			w.fsw.Remove(p)
		}
	}
	w.watched = want
}

// Trigger force-enqueues a refresh of path regardless of watch state —
// used right after the app itself mutates the filesystem, since the
// resulting fsnotify event (if any) may race the caller's own redraw.
func (w *Watcher) Trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.schedule(path)
}

// schedule debounces one path; callers must hold w.mu.
func (w *Watcher) schedule(path string) {
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		select {
		case w.changed <- path:
		default:
		}
	})
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.fold(ev)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// fold maps one raw fsnotify event to the directory path(s) it affects.
// Create only disturbs the parent's listing. Remove and rename-adjacent
// events disturb both the entry's own path (in case it was a watched
// directory itself) and its parent. Plain content writes are dropped —
// they don't change a directory's listing.
func (w *Watcher) fold(ev fsnotify.Event) {
	parent := filepath.Dir(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case ev.Op&fsnotify.Create != 0:
		w.schedule(parent)
	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0, ev.Op&fsnotify.Chmod != 0:
		w.schedule(ev.Name)
		w.schedule(parent)
	}
}

// Close shuts the watcher down, stopping all pending debounce timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
