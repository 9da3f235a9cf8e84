package watcher

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.debounce = 5 * time.Millisecond
	t.Cleanup(func() { w.Close() })
	return w
}

func drain(t *testing.T, w *Watcher, want string) {
	t.Helper()
	select {
	case got := <-w.Changed():
		if got != want {
			t.Fatalf("changed = %q, want %q", got, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestWatcher_Create_FoldsToParent(t *testing.T) {
	w := newTestWatcher(t)
	w.fold(fsnotify.Event{Name: "/tmp/dir/new.txt", Op: fsnotify.Create})
	drain(t, w, "/tmp/dir")
}

func TestWatcher_Remove_FoldsToPathAndParent(t *testing.T) {
	w := newTestWatcher(t)
	w.fold(fsnotify.Event{Name: "/tmp/dir/gone.txt", Op: fsnotify.Remove})
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case got := <-w.Changed():
			seen[got] = true
		case <-time.After(200 * time.Millisecond):
			t.Fatal("timed out waiting for both paths")
		}
	}
	if !seen["/tmp/dir/gone.txt"] || !seen["/tmp/dir"] {
		t.Fatalf("seen = %v, want both the removed path and its parent", seen)
	}
}

func TestWatcher_Write_Ignored(t *testing.T) {
	w := newTestWatcher(t)
	w.fold(fsnotify.Event{Name: "/tmp/dir/file.txt", Op: fsnotify.Write})
	select {
	case got := <-w.Changed():
		t.Fatalf("plain write must not surface a change, got %q", got)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestWatcher_Trigger_ForcesRefreshRegardlessOfWatchState(t *testing.T) {
	w := newTestWatcher(t)
	w.Trigger("/some/unwatched/path")
	drain(t, w, "/some/unwatched/path")
}

func TestWatcher_RapidEvents_Debounced(t *testing.T) {
	w := newTestWatcher(t)
	for i := 0; i < 5; i++ {
		w.fold(fsnotify.Event{Name: "/tmp/dir/x.txt", Op: fsnotify.Create})
	}
	drain(t, w, "/tmp/dir")
	select {
	case got := <-w.Changed():
		t.Fatalf("expected exactly one coalesced signal, got extra %q", got)
	case <-time.After(30 * time.Millisecond):
	}
}
