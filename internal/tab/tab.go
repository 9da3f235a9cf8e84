package tab

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kujo-fm/kujo/internal/files"
	"github.com/kujo-fm/kujo/internal/folder"
	"github.com/kujo-fm/kujo/internal/preview"
)

// Stat abstracts filesystem probing so Tab is testable without touching a
// real disk; production code wires this to os.Lstat + symlink resolution.
type Stat func(path string) (files.File, error)

// Tab is one navigable pane: a current folder, its parent (for the
// three-column layout), an LRU-free history of previously visited
// folders keyed by cwd, a Mode for visual selection, and the preview
// pipeline state for the hovered file (§3 Tab).
type Tab struct {
	ModeState Mode
	Current   *folder.Folder
	Parent    *folder.Folder
	History   map[string]*folder.Folder
	Preview   preview.Preview

	stat    Stat
	search  *searchState
	maxHist int
}

type searchState struct {
	cancel context.CancelFunc
	saved  *folder.Folder // the pre-search Current, restored on stop
}

// New creates a Tab rooted at cwd with an unbounded history;
// SetMaxHistory sets a bound and TrimHistory enforces it.
func New(cwd string, stat Stat) *Tab {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		abs = cwd
	}
	t := &Tab{
		Current: folder.New(abs),
		History: make(map[string]*folder.Folder),
		stat:    stat,
	}
	if parent := filepath.Dir(abs); parent != abs {
		t.Parent = folder.New(parent)
	}
	return t
}

// historyTake removes and returns the cached Folder for path, or a fresh
// one if none is cached (§4.3: "history.take(hovered) or new").
func (t *Tab) historyTake(path string) *folder.Folder {
	if f, ok := t.History[path]; ok {
		delete(t.History, path)
		return f
	}
	return folder.New(path)
}

func (t *Tab) stash(f *folder.Folder) {
	if f == nil || f.InSearch {
		return
	}
	t.History[f.Cwd] = f
}

// Enter descends into the hovered directory (§4.3). Requires the hovered
// entry to be a directory; no-op otherwise.
func (t *Tab) Enter() bool {
	hovered, ok := t.Current.Hovered()
	if !ok || !hovered.IsDir() {
		return false
	}

	rep := t.historyTake(hovered.URL)
	old := t.Current
	t.Current = rep
	t.stash(old)

	if t.Parent != nil {
		t.stash(t.Parent)
	}
	t.Parent = t.historyTake(filepath.Dir(hovered.URL))
	return true
}

// Leave ascends one level, symmetric with Enter (§4.3).
func (t *Tab) Leave() bool {
	cur := t.Current.Cwd
	target := filepath.Dir(cur)
	if hovered, ok := t.Current.Hovered(); ok {
		if p := filepath.Dir(hovered.URL); p != cur {
			target = p
		}
	}
	if target == cur {
		return false
	}

	if t.Parent != nil {
		t.stash(t.Parent)
	}
	if gp := filepath.Dir(target); gp != target {
		t.Parent = t.historyTake(gp)
	}

	rep := t.historyTake(target)
	old := t.Current
	t.Current = rep
	t.stash(old)
	return true
}

// Cd resolves path (a file target hovers its parent) and navigates there.
// If already at that cwd, it only repositions the hover (§4.3).
func (t *Tab) Cd(path string) bool {
	f, err := t.stat(path)
	if err != nil {
		return false
	}

	target := path
	var hoverTarget string
	if !f.IsDir() {
		hoverTarget = path
		target = filepath.Dir(path)
	}

	if t.Current.Cwd == target {
		if hoverTarget != "" {
			return t.Current.Hover(hoverTarget)
		}
		return false
	}

	if t.Parent != nil {
		t.stash(t.Parent)
	}

	rep := t.historyTake(target)
	old := t.Current
	t.Current = rep
	t.stash(old)

	if gp := filepath.Dir(target); gp != target {
		t.Parent = t.historyTake(gp)
	}
	if hoverTarget != "" {
		t.Current.Hover(hoverTarget)
	}
	return true
}

// Back and Forward are reserved: the original leaves them as TODO no-ops,
// and §9 leaves their exact semantics (directory-history vs selection-
// history navigation) an open question. kujo keeps the no-op contract so
// callers may bind the keys without the Executor special-casing them.
func (t *Tab) Back() bool    { return false }
func (t *Tab) Forward() bool { return false }

// Arrow moves the cursor by step and, in a visual mode, adjusts the
// selection delta so that exactly [min(anchor,cursor), max(anchor,cursor)]
// ends up selected (Select) or deselected (Unset), per §4.3/§8.
func (t *Tab) Arrow(step int) bool {
	before := t.Current.Cursor()
	var ok bool
	if step > 0 {
		ok = t.Current.Next(step)
	} else {
		ok = t.Current.Prev(-step)
	}
	if !ok {
		return false
	}

	if start := t.ModeState.Start(); start >= 0 {
		after := t.Current.Cursor()
		state := t.ModeState.Kind == Select

		// The cells that were covered by [start,before] but are no longer
		// covered by [start,after] revert to the opposite of `state`.
		if (after > before && before < start) || (after < before && before > start) {
			lo, hi := before, start
			if start < before {
				lo, hi = start, before
			}
			for i := lo; i <= hi; i++ {
				inNewRange := i >= min(start, after) && i <= max(start, after)
				if !inNewRange {
					t.selectAt(i, !state)
				}
			}
		}

		lo, hi := start, after
		if after < start {
			lo, hi = after, start
		}
		for i := lo; i <= hi; i++ {
			t.selectAt(i, state)
		}
	}
	return true
}

func (t *Tab) selectAt(idx int, state bool) {
	t.Current.Update(func(fs *files.Files) bool { return fs.Select(pathAt(fs, idx), &state) })
}

func pathAt(fs *files.Files, idx int) string {
	f, ok := fs.Get(idx)
	if !ok {
		return ""
	}
	return f.URL
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Select toggles (state == nil) or sets the hovered file's selection.
func (t *Tab) Select(state *bool) bool {
	idx := t.Current.Cursor()
	return t.Current.Update(func(fs *files.Files) bool { return fs.Select(pathAt(fs, idx), state) })
}

// SelectAll applies state to every visible file in Current.
func (t *Tab) SelectAll(state *bool) bool {
	return t.Current.Update(func(fs *files.Files) bool { return fs.SelectAll(state) })
}

// VisualMode enters Select (unset=false) or Unset (unset=true) mode,
// anchored at the current cursor, and immediately applies the anchor
// cell's own selection state.
func (t *Tab) VisualMode(unset bool) bool {
	idx := t.Current.Cursor()
	if unset {
		t.ModeState = Mode{Kind: Unset, Anchor: idx}
		f := false
		t.selectAt(idx, f)
	} else {
		t.ModeState = Mode{Kind: Select, Anchor: idx}
		tt := true
		t.selectAt(idx, tt)
	}
	return true
}

// Escape leaves a visual mode, else clears the full selection, else stops
// an active search — whichever applies first (mirrors the original's
// layered escape handler).
func (t *Tab) Escape() bool {
	if t.ModeState.Kind != Normal {
		t.ModeState = Mode{}
		return true
	}
	falseState := false
	if t.SelectAll(&falseState) {
		return true
	}
	return t.SearchStop()
}

// BeginSearch saves Current for SearchStop to restore (History is not
// touched) and switches to a fresh, in-search Folder, returning a context the caller should cancel via
// SearchStop (§4.3 search/search_stop).
func (t *Tab) BeginSearch(ctx context.Context) context.Context {
	t.SearchStop()
	cctx, cancel := context.WithCancel(ctx)
	saved := t.Current

	searching := folder.New(t.Current.Cwd)
	searching.InSearch = true
	t.Current = searching

	t.search = &searchState{cancel: cancel, saved: saved}
	return cctx
}

// StreamSearch feeds one batch of matches into the in-search folder via
// Files.UpdatePart, keyed by the folder's own ticket.
func (t *Tab) StreamSearch(batch []files.File) {
	if t.search == nil {
		return
	}
	ticket := t.Current.Files.Ticket()
	t.Current.Update(func(fs *files.Files) bool {
		fs.UpdatePart(batch, ticket)
		return len(batch) > 0
	})
}

// SearchStop aborts any active search and restores the pre-search folder.
func (t *Tab) SearchStop() bool {
	if t.search == nil {
		return false
	}
	s := t.search
	t.search = nil
	s.cancel()
	if t.Current.InSearch {
		t.Current = s.saved
		return true
	}
	return false
}

// InSearch reports whether Current is presently an in-search overlay.
func (t *Tab) InSearch() bool { return t.Current.InSearch }

// SetMaxHistory bounds how many folders History retains; 0 means
// unbounded. TrimHistory evicts arbitrarily (Go maps carry no visit
// order) once the bound is exceeded — acceptable since history is a
// best-effort cache, not a correctness requirement (§3 lifecycle).
func (t *Tab) SetMaxHistory(n int) { t.maxHist = n }

// TrimHistory drops entries until History is within the configured bound.
func (t *Tab) TrimHistory() {
	if t.maxHist <= 0 {
		return
	}
	for path := range t.History {
		if len(t.History) <= t.maxHist {
			break
		}
		delete(t.History, path)
	}
}

// DefaultStat is the production Stat: os.Lstat plus symlink-target probe,
// matching §3's "follows symlinks for meta but records link_to".
func DefaultStat(path string) (files.File, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return files.File{}, err
	}
	linkTo := ""
	target := info
	if info.Mode()&os.ModeSymlink != 0 {
		if real, err := os.Stat(path); err == nil {
			target = real
			if dest, err := os.Readlink(path); err == nil {
				linkTo = dest
			}
		}
	}
	return files.FromInfo(path, target, linkTo), nil
}
