// Package workers implements the scheduler's three worker domains
// (§2 Task Scheduler, §4.7): file (copy/cut/delete/trash/link),
// precache (size/mime/image/video), and process (opener execution).
// Each worker runs synchronously inside one pooled goroutine handed to
// it by internal/scheduler.Spawn, reporting progress through the
// Running table it's given.
package workers

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/kujo-fm/kujo/internal/scheduler"
)

// copyBufSize matches the original's streamed-copy chunking; progress
// is reported once per buffer, same granularity as `copy_with_progress`.
const copyBufSize = 1 << 20

// File is the copy/cut/delete/trash/link worker (§4.7 File tasks).
type File struct {
	running *scheduler.Running
	trash   func(path string) error
}

// NewFile constructs a File worker. trash performs the actual
// move-to-trash for one path; if nil, Trash uses the freedesktop
// fallback in trash.go.
func NewFile(running *scheduler.Running, trash func(path string) error) *File {
	if trash == nil {
		trash = freedesktopTrash
	}
	return &File{running: running, trash: trash}
}

// Paste copies (or, when cut, moves) from to to, recursing into
// directories. Matches the original's `File::paste`: a same-filesystem
// cut tries an atomic rename first; everything else streams through a
// buffered copy with one Adv report per chunk, and a cut additionally
// removes each source file once its copy lands.
func (w *File) Paste(id uint64, from, to string, cut, follow bool) error {
	if cut {
		switch err := os.Rename(from, to); {
		case err == nil:
			w.running.Adv(id, 1, 0)
			return nil
		case errors.Is(err, os.ErrNotExist):
			// source vanished underneath us — the original treats this
			// as already-done rather than an error.
			w.running.Adv(id, 1, 0)
			return nil
		case !isEXDEV(err):
			return err
		}
	}

	info, err := w.stat(from, follow)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		w.running.New(id, int(info.Size()))
		if info.Mode()&os.ModeSymlink != 0 {
			if err := w.link(from, to); err != nil {
				return err
			}
		} else if err := w.copyFile(id, from, to); err != nil {
			return err
		}
		if cut {
			os.Remove(from)
		}
		w.running.Adv(id, 1, 0)
		return nil
	}

	type dir struct{ from, to string }
	queue := []dir{{from, to}}
	for len(queue) > 0 {
		if !w.running.Exists(id) {
			return nil
		}
		d := queue[0]
		queue = queue[1:]

		if err := os.MkdirAll(d.to, 0o755); err != nil {
			continue
		}
		entries, err := os.ReadDir(d.from)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !w.running.Exists(id) {
				return nil
			}
			childFrom := filepath.Join(d.from, e.Name())
			childTo := filepath.Join(d.to, e.Name())
			info, err := w.stat(childFrom, follow)
			if err != nil {
				continue
			}
			if info.IsDir() {
				queue = append(queue, dir{childFrom, childTo})
				continue
			}
			w.running.New(id, int(info.Size()))
			if info.Mode()&os.ModeSymlink != 0 {
				w.link(childFrom, childTo)
			} else {
				w.copyFile(id, childFrom, childTo)
			}
			if cut {
				os.Remove(childFrom)
			}
		}
	}
	w.running.Adv(id, 1, 0)
	return nil
}

func (w *File) copyFile(id uint64, from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return err
	}
	out, err := os.Create(to)
	if err != nil {
		return err
	}
	defer out.Close()

	buf := make([]byte, copyBufSize)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			w.running.Adv(id, 0, n)
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

func (w *File) link(from, to string) error {
	target, err := os.Readlink(from)
	if err != nil {
		return err
	}
	os.Remove(to)
	return os.Symlink(target, to)
}

func (w *File) stat(path string, follow bool) (os.FileInfo, error) {
	if follow {
		if info, err := os.Stat(path); err == nil {
			return info, nil
		}
	}
	return os.Lstat(path)
}

// Delete recursively removes target, reporting one Adv per file
// (§4.7). Matches `File::delete`'s leaf-first walk.
func (w *File) Delete(id uint64, target string) error {
	info, err := os.Lstat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		w.running.New(id, int(info.Size()))
		if err := os.Remove(target); err != nil {
			return err
		}
		w.running.Adv(id, 1, int(info.Size()))
		return nil
	}

	queue := []string{target}
	for len(queue) > 0 {
		if !w.running.Exists(id) {
			return nil
		}
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.IsDir() {
				queue = append(queue, path)
				continue
			}
			w.running.New(id, int(info.Size()))
			if err := os.Remove(path); err == nil {
				w.running.Adv(id, 1, int(info.Size()))
			}
		}
	}
	os.RemoveAll(target)
	return nil
}

// Trash moves target to the system trash (§4.7 Trash task).
func (w *File) Trash(id uint64, target string) error {
	size := dirSize(target)
	w.running.New(id, size)
	if err := w.trash(target); err != nil {
		return err
	}
	w.running.Adv(id, 1, size)
	return nil
}

func dirSize(path string) int {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return int(info.Size())
	}
	total := 0
	filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += int(info.Size())
		}
		return nil
	})
	return total
}

// RemoveEmptyDirs recursively deletes dir and every now-empty
// subdirectory, leaf-first — the cut/delete completion hook (§8
// scenario 5: "Partial contents... remove_empty_dirs is not invoked"
// on cancellation, so callers only invoke this when !cancelled).
// Grounded on `workers/file.rs`'s `remove_empty_dirs`.
func RemoveEmptyDirs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			RemoveEmptyDirs(filepath.Join(dir, e.Name()))
		}
	}
	os.Remove(dir)
}

// isEXDEV reports whether err is a cross-device-link failure, the
// trigger for the copy+remove fallback (§9 Supplemented features
// "EXDEV fallback").
func isEXDEV(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}
