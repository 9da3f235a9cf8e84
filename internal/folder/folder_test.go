package folder

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kujo-fm/kujo/internal/files"
)

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() interface{}   { return nil }

func populated(n int) *Folder {
	fd := New("/tmp/x")
	items := make([]files.File, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("/tmp/x/f%02d", i)
		items[i] = files.FromInfo(name, fakeInfo{name: name}, "")
	}
	fd.Files.UpdateFull(items)
	fd.SetViewportHeight(10)
	return fd
}

func TestFolder_NextAtEnd_NoMutation(t *testing.T) {
	fd := populated(3)
	fd.Next(100)
	if fd.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", fd.Cursor())
	}
	if fd.Next(1) {
		t.Fatal("Next at end must return false")
	}
}

func TestFolder_PrevAtStart_NoMutation(t *testing.T) {
	fd := populated(3)
	if fd.Prev(1) {
		t.Fatal("Prev at start must return false")
	}
}

func TestFolder_ViewportInvariant(t *testing.T) {
	fd := populated(50)
	fd.SetViewportHeight(10)
	fd.Next(49)
	if fd.Cursor() < fd.Offset() {
		t.Fatalf("cursor %d must be >= offset %d", fd.Cursor(), fd.Offset())
	}
	if fd.Cursor()-fd.Offset() >= 10 {
		t.Fatalf("cursor %d must be within viewport of offset %d", fd.Cursor(), fd.Offset())
	}
}

func TestFolder_Hover(t *testing.T) {
	fd := populated(20)
	if !fd.Hover("/tmp/x/f15") {
		t.Fatal("hover should move cursor")
	}
	if fd.Cursor() != 15 {
		t.Fatalf("cursor = %d, want 15", fd.Cursor())
	}
	if fd.Hover("/tmp/x/f15") {
		t.Fatal("re-hovering the same file should report no movement")
	}
}

func TestFolder_HoverMatchesCursorFile(t *testing.T) {
	fd := populated(5)
	fd.Hover("/tmp/x/f03")
	hovered, ok := fd.Hovered()
	if !ok || hovered.URL != "/tmp/x/f03" {
		t.Fatalf("hovered = %+v, want f03", hovered)
	}
}
