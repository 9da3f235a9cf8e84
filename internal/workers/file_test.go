package workers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kujo-fm/kujo/internal/scheduler"
)

func newFileWorker(t *testing.T) (*File, *scheduler.Running) {
	t.Helper()
	running := scheduler.NewRunning()
	return NewFile(running, func(path string) error { return os.RemoveAll(path) }), running
}

func TestFile_Paste_SameFilesystemRenamesOnCut(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "a.txt")
	to := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(from, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, running := newFileWorker(t)
	id := running.Add("cut")
	if err := w.Paste(id, from, to, true, false); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if _, err := os.Stat(from); !os.IsNotExist(err) {
		t.Fatalf("expected source removed after rename-cut")
	}
	if got, err := os.ReadFile(to); err != nil || string(got) != "hi" {
		t.Fatalf("expected destination to contain source content, got %q err=%v", got, err)
	}
}

func TestFile_Paste_CopyLeavesSourceIntact(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "a.txt")
	to := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(from, []byte("copy me"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, running := newFileWorker(t)
	id := running.Add("copy")
	if err := w.Paste(id, from, to, false, false); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if _, err := os.Stat(from); err != nil {
		t.Fatalf("expected source to survive a copy, got %v", err)
	}
	if got, err := os.ReadFile(to); err != nil || string(got) != "copy me" {
		t.Fatalf("unexpected destination content: %q err=%v", got, err)
	}
}

func TestFile_Paste_RecursesIntoDirectories(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src")
	to := filepath.Join(dir, "dst")
	if err := os.MkdirAll(filepath.Join(from, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(from, "nested", "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, running := newFileWorker(t)
	id := running.Add("copy dir")
	if err := w.Paste(id, from, to, false, false); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if _, err := os.Stat(filepath.Join(to, "nested", "f.txt")); err != nil {
		t.Fatalf("expected nested file copied, got %v", err)
	}
}

func TestFile_Paste_StopsWhenCancelledMidDirectory(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "src")
	to := filepath.Join(dir, "dst")
	if err := os.MkdirAll(from, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(from, "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, running := newFileWorker(t)
	id := running.Add("copy dir")
	running.Cancel(id)

	if err := w.Paste(id, from, to, false, false); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if _, err := os.Stat(filepath.Join(to, "f.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected copy to stop once the task was cancelled")
	}
}

func TestFile_Delete_RemovesFileAndReportsSize(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(target, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, running := newFileWorker(t)
	id := running.Add("delete")
	if err := w.Delete(id, target); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected file removed")
	}
	task, ok := running.Get(id)
	if !ok {
		t.Fatalf("expected task to still be tracked after Delete (caller calls Done)")
	}
	if task.Done != 5 {
		t.Fatalf("expected 5 bytes reported done, got %d", task.Done)
	}
}

func TestFile_Delete_RecursesAndRemovesDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tree")
	if err := os.MkdirAll(filepath.Join(target, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "sub", "f.txt"), []byte("ab"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, running := newFileWorker(t)
	id := running.Add("delete tree")
	if err := w.Delete(id, target); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected whole tree removed")
	}
}

func TestFile_Trash_InvokesInjectedBackend(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(target, []byte("xx"), 0o644); err != nil {
		t.Fatal(err)
	}

	var gotPath string
	running := scheduler.NewRunning()
	w := NewFile(running, func(path string) error {
		gotPath = path
		return os.Remove(path)
	})
	id := running.Add("trash")
	if err := w.Trash(id, target); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	if gotPath != target {
		t.Fatalf("expected injected trash backend called with %q, got %q", target, gotPath)
	}
}

func TestRemoveEmptyDirs_DeletesLeafFirst(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	RemoveEmptyDirs(filepath.Join(dir, "a"))
	if _, err := os.Stat(filepath.Join(dir, "a")); !os.IsNotExist(err) {
		t.Fatalf("expected empty directory tree fully removed")
	}
}

func TestRemoveEmptyDirs_KeepsNonEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a", "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	RemoveEmptyDirs(filepath.Join(dir, "a"))
	if _, err := os.Stat(filepath.Join(dir, "a", "keep.txt")); err != nil {
		t.Fatalf("expected non-empty directory to survive, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a", "b")); !os.IsNotExist(err) {
		t.Fatalf("expected the empty sibling subdirectory removed")
	}
}
