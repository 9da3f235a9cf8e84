// Package folder wraps a files.Files with the cursor/offset/cwd state a
// single directory view needs (§3 Folder, §4.2).
package folder

import (
	"path/filepath"

	"github.com/kujo-fm/kujo/internal/files"
)

// edgeMargin is how close the cursor can get to the viewport edge before
// the offset shifts to keep it in view (§4.2: "within 5 of top/bottom").
const edgeMargin = 5

// Folder is one directory's navigable state: its Files plus the cursor
// position a Tab renders around.
type Folder struct {
	Cwd      string
	Files    *files.Files
	offset   int
	cursor   int
	InSearch bool

	viewportHeight int
}

// New creates an empty Folder rooted at cwd.
func New(cwd string) *Folder {
	return &Folder{Cwd: filepath.Clean(cwd), Files: files.New(), viewportHeight: 1}
}

// SetViewportHeight configures the visible row count used by the
// offset/cursor invariants; callers set this from the render size.
func (f *Folder) SetViewportHeight(h int) {
	if h < 1 {
		h = 1
	}
	f.viewportHeight = h
	f.clampOffset()
}

// Cursor returns the absolute index of the hovered row.
func (f *Folder) Cursor() int { return f.cursor }

// Offset returns the first visible row index.
func (f *Folder) Offset() int { return f.offset }

// Hovered returns the file under the cursor, if any.
func (f *Folder) Hovered() (files.File, bool) {
	return f.Files.Get(f.cursor)
}

// clampOffset restores the invariants from §3: cursor <= len-1 (when
// non-empty), offset <= cursor, cursor - offset < viewport height.
func (f *Folder) clampOffset() {
	n := f.Files.Len()
	if n == 0 {
		f.cursor, f.offset = 0, 0
		return
	}
	if f.cursor > n-1 {
		f.cursor = n - 1
	}
	if f.offset > f.cursor {
		f.offset = f.cursor
	}
	if f.cursor-f.offset >= f.viewportHeight {
		f.offset = f.cursor - f.viewportHeight + 1
	}
	if f.offset < 0 {
		f.offset = 0
	}
}

// Next moves the cursor forward by step rows, bounded at the last row,
// shifting the viewport once the cursor nears the bottom edge. Returns
// false if the cursor did not move (§4.2, §8 boundary at folder end).
func (f *Folder) Next(step int) bool {
	n := f.Files.Len()
	if n == 0 {
		return false
	}
	old := f.cursor
	f.cursor += step
	if f.cursor > n-1 {
		f.cursor = n - 1
	}
	if f.cursor >= f.offset+f.viewportHeight-edgeMargin {
		f.offset += f.cursor - old
		if max := n - f.viewportHeight; max >= 0 && f.offset > max {
			f.offset = max
		}
	}
	if f.offset < 0 {
		f.offset = 0
	}
	return old != f.cursor
}

// Prev moves the cursor backward by step rows, bounded at zero.
func (f *Folder) Prev(step int) bool {
	old := f.cursor
	f.cursor -= step
	if f.cursor < 0 {
		f.cursor = 0
	}
	if f.cursor < f.offset+edgeMargin {
		f.offset -= old - f.cursor
		if f.offset < 0 {
			f.offset = 0
		}
	}
	return old != f.cursor
}

// Hover moves the cursor to path, if present, preserving the viewport
// invariant. Returns whether the cursor moved.
func (f *Folder) Hover(path string) bool {
	if h, ok := f.Hovered(); ok && h.URL == path {
		return false
	}
	idx := f.Files.Position(path)
	if idx < 0 {
		return false
	}
	if idx > f.cursor {
		return f.Next(idx - f.cursor)
	}
	return f.Prev(f.cursor - idx)
}

// Update applies a files-level mutation and reports whether any visible
// change resulted, re-clamping the cursor/offset invariants afterward.
func (f *Folder) Update(apply func(*files.Files) bool) bool {
	changed := apply(f.Files)
	f.Files.Catchup()
	f.clampOffset()
	return changed
}
