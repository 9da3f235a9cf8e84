package manager

import (
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

func noopStat(path string) (files.File, error) {
	return files.File{}, os.ErrNotExist
}

func populate(m *Manager, n int) {
	items := make([]files.File, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("/root/f%02d", i)
		items[i] = files.FromInfo(name, fakeInfo{name: fmt.Sprintf("f%02d", i)}, "")
	}
	m.Current().Files.UpdateFull(items)
	m.Current().SetViewportHeight(10)
}

func TestManager_Selected_FallsBackToHovered(t *testing.T) {
	m := New("/root", noopStat)
	populate(m, 3)

	sel := m.Selected()
	if len(sel) != 1 || sel[0].URL != "/root/f00" {
		t.Fatalf("selected = %+v, want fallback to hovered f00", sel)
	}
}

func TestManager_Yank_Paste_SkipsSameDir(t *testing.T) {
	m := New("/root", noopStat)
	populate(m, 2)
	m.Current().Files.Select("/root/f00", nil)

	m.Yank(false)
	jobs := m.Paste(false)
	if len(jobs) != 0 {
		t.Fatalf("pasting into the source dir without force must be a no-op, got %v", jobs)
	}

	jobs = m.Paste(true)
	if len(jobs) != 1 || jobs[0].Src != "/root/f00" {
		t.Fatalf("forced paste should schedule the job, got %v", jobs)
	}
}

func TestManager_UpdateFiles_RoutesToCurrentFolder(t *testing.T) {
	m := New("/root", noopStat)
	changed := m.UpdateFiles("/root", func(fs *files.Files) bool {
		fs.UpdateFull([]files.File{files.FromInfo("/root/a", fakeInfo{name: "a"}, "")})
		return true
	})
	if !changed {
		t.Fatal("updating the current folder's own cwd should report change")
	}
	if m.Current().Files.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Current().Files.Len())
	}
}

func TestManager_UpdateFiles_RoutesToHistory(t *testing.T) {
	m := New("/root", noopStat)
	const other = "/elsewhere"
	m.UpdateFiles(other, func(fs *files.Files) bool {
		fs.UpdateFull([]files.File{files.FromInfo(other+"/x", fakeInfo{name: "x"}, "")})
		return true
	})
	fd, ok := m.Active().History[other]
	if !ok {
		t.Fatal("expected a history folder to be created for the unrelated path")
	}
	if fd.Files.Len() != 1 {
		t.Fatalf("history folder len = %d, want 1", fd.Files.Len())
	}
	if m.Current().Cwd != "/root" {
		t.Fatal("updating a history path must not disturb the current folder")
	}
}

func TestManager_UpdateMimetype_ReturnsOnlyChanged(t *testing.T) {
	m := New("/root", noopStat)
	changed, any := m.UpdateMimetype(map[string]string{"/root/a": "text/plain"})
	if !any || changed["/root/a"] != "text/plain" {
		t.Fatalf("expected new mime to be reported changed, got %v", changed)
	}

	changed, any = m.UpdateMimetype(map[string]string{"/root/a": "text/plain"})
	if any || len(changed) != 0 {
		t.Fatal("re-applying the same mime must report no change")
	}
}

func TestManager_WatchSet_UnionsCwdParentAndHoveredDir(t *testing.T) {
	m := New("/root/sub", noopStat)
	m.Current().Files.UpdateFull([]files.File{
		files.FromInfo("/root/sub/child", fakeInfo{name: "child", isDir: true}, ""),
	})

	set := m.WatchSet()
	for _, want := range []string{"/root/sub", "/root", "/root/sub/child"} {
		if !set[want] {
			t.Fatalf("watch set %v missing %q", set, want)
		}
	}
}

func TestManager_Rename_FallsThroughToBulkWhenMultiSelected(t *testing.T) {
	m := New("/root", noopStat)
	populate(m, 3)
	m.Current().Files.Select("/root/f00", nil)
	m.Current().Files.Select("/root/f01", nil)

	_, bulk, ok := m.Rename()
	if !ok || !bulk {
		t.Fatal("renaming with multiple files selected should fall through to bulk rename")
	}
}
