package tab

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kujo-fm/kujo/internal/files"
)

type fakeInfo struct {
	name  string
	isDir bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.isDir }
func (f fakeInfo) Sys() interface{}   { return nil }

// fakeStat resolves paths against an in-memory directory set, avoiding
// any real filesystem access in tests.
func fakeStat(dirs map[string]bool) Stat {
	return func(path string) (files.File, error) {
		if _, ok := dirs[path]; !ok {
			return files.File{}, os.ErrNotExist
		}
		base := path
		for i := len(path) - 1; i >= 0; i-- {
			if path[i] == '/' {
				base = path[i+1:]
				break
			}
		}
		return files.FromInfo(path, fakeInfo{name: base, isDir: dirs[path]}, ""), nil
	}
}

func populate(tb *Tab, n int) {
	items := make([]files.File, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("/root/f%02d", i)
		items[i] = files.FromInfo(name, fakeInfo{name: fmt.Sprintf("f%02d", i)}, "")
	}
	tb.Current.Files.UpdateFull(items)
	tb.Current.SetViewportHeight(10)
}

func TestTab_EnterLeave_Symmetry(t *testing.T) {
	dirs := map[string]bool{"/root": true, "/root/sub": true, "/": true}
	tb := New("/root", fakeStat(dirs))
	tb.Current.Files.UpdateFull([]files.File{
		files.FromInfo("/root/sub", fakeInfo{name: "sub", isDir: true}, ""),
	})

	if !tb.Enter() {
		t.Fatal("enter into a directory should succeed")
	}
	if tb.Current.Cwd != "/root/sub" {
		t.Fatalf("cwd = %q, want /root/sub", tb.Current.Cwd)
	}

	if !tb.Leave() {
		t.Fatal("leave should succeed")
	}
	if tb.Current.Cwd != "/root" {
		t.Fatalf("cwd = %q, want /root after leave", tb.Current.Cwd)
	}
}

func TestTab_Enter_NonDirectory_NoOp(t *testing.T) {
	tb := New("/root", fakeStat(nil))
	tb.Current.Files.UpdateFull([]files.File{
		files.FromInfo("/root/file.txt", fakeInfo{name: "file.txt"}, ""),
	})
	if tb.Enter() {
		t.Fatal("entering a regular file must be a no-op")
	}
}

func TestTab_History_RestoresCursorOnReenter(t *testing.T) {
	dirs := map[string]bool{"/root": true, "/root/sub": true}
	tb := New("/root", fakeStat(dirs))
	tb.Current.Files.UpdateFull([]files.File{
		files.FromInfo("/root/sub", fakeInfo{name: "sub", isDir: true}, ""),
	})
	tb.Enter()
	tb.Current.Files.UpdateFull([]files.File{
		files.FromInfo("/root/sub/a", fakeInfo{name: "a"}, ""),
		files.FromInfo("/root/sub/b", fakeInfo{name: "b"}, ""),
	})
	tb.Current.SetViewportHeight(10)
	tb.Current.Next(1) // cursor -> 1 (b)

	tb.Leave()
	if !tb.Enter() {
		t.Fatal("re-entering a history-cached folder should succeed")
	}
	if tb.Current.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1 restored from history", tb.Current.Cursor())
	}
}

func TestTab_VisualMode_SelectsInclusiveRange(t *testing.T) {
	tb := New("/root", fakeStat(nil))
	populate(tb, 10)

	tb.VisualMode(false) // anchor at cursor 0, Select
	tb.Arrow(3)           // cursor -> 3

	sel := tb.Current.Files.Selected()
	if len(sel) != 4 {
		t.Fatalf("selected = %d, want 4 (cells 0..3 inclusive)", len(sel))
	}
}

func TestTab_VisualMode_RetreatDeselectsVacatedCells(t *testing.T) {
	tb := New("/root", fakeStat(nil))
	populate(tb, 10)

	tb.VisualMode(false)
	tb.Arrow(5) // selects 0..5
	tb.Arrow(-3) // retreats to cursor 2; 3..5 should be vacated

	sel := tb.Current.Files.Selected()
	if len(sel) != 3 {
		t.Fatalf("selected = %d, want 3 (cells 0..2 inclusive) after retreat", len(sel))
	}
}

func TestTab_Escape_LeavesVisualModeFirst(t *testing.T) {
	tb := New("/root", fakeStat(nil))
	populate(tb, 5)

	tb.VisualMode(false)
	tb.Arrow(2)
	if tb.ModeState.Kind == Normal {
		t.Fatal("expected to be in visual mode before escape")
	}

	tb.Escape()
	if tb.ModeState.Kind != Normal {
		t.Fatal("escape should clear visual mode")
	}
	// Selection made during visual mode survives the first Escape.
	if len(tb.Current.Files.Selected()) == 0 {
		t.Fatal("first escape should not clear the committed selection")
	}
}

func TestTab_Escape_ThenClearsSelection(t *testing.T) {
	tb := New("/root", fakeStat(nil))
	populate(tb, 5)

	tb.VisualMode(false)
	tb.Arrow(2)
	tb.Escape() // leaves visual mode
	tb.Escape() // clears selection

	if len(tb.Current.Files.Selected()) != 0 {
		t.Fatal("second escape should clear the selection")
	}
}

func TestTab_Cd_SameCwd_OnlyRehovers(t *testing.T) {
	dirs := map[string]bool{"/root": true}
	tb := New("/root", fakeStat(dirs))
	tb.Current.Files.UpdateFull([]files.File{
		files.FromInfo("/root/a", fakeInfo{name: "a"}, ""),
		files.FromInfo("/root/b", fakeInfo{name: "b"}, ""),
	})
	dirs["/root/b"] = false

	if !tb.Cd("/root/b") {
		t.Fatal("cd to a file within the same cwd should rehover")
	}
	hovered, ok := tb.Current.Hovered()
	if !ok || hovered.URL != "/root/b" {
		t.Fatalf("hovered = %+v, want /root/b", hovered)
	}
}

func TestTab_BeginSearch_RestoresOnStop(t *testing.T) {
	tb := New("/root", fakeStat(nil))
	populate(tb, 3)
	orig := tb.Current

	tb.BeginSearch(context.Background())
	if !tb.InSearch() {
		t.Fatal("expected to be in-search after BeginSearch")
	}

	tb.SearchStop()
	if tb.InSearch() {
		t.Fatal("expected to leave search state after SearchStop")
	}
	if tb.Current != orig {
		t.Fatal("SearchStop must restore the original folder pointer")
	}
}
