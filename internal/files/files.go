package files

import "regexp"

// Files is an insertion-ordered mapping from absolute path to File, split
// internally into a visible partition and a hidden/filtered-out partition
// (§3). Every mutation that can affect display order or content bumps
// Revision; version records the Revision at the last sort, and Catchup
// re-sorts only when the two differ. UpdateFull, UpdatePart, SetSorter,
// SetFilter and SetShowHidden sort immediately; UpdateCreating appends
// unsorted and leaves the ordering to the next Catchup.
type Files struct {
	items  map[string]int // path -> index into order
	order  []File         // visible, in insertion/sorted order
	hidden map[string]File

	selected map[string]bool

	sorter     Sorter
	filter     *regexp.Regexp
	filterSrc  string
	showHidden bool

	Revision uint64
	version  uint64
	ticket   uint64
}

// New returns an empty Files with the default sorter (SortNone, dirs
// first): with no sort key every comparison falls through to the path
// tiebreak, so entries are ordered by path.
func New() *Files {
	return &Files{
		items:      make(map[string]int),
		hidden:     make(map[string]File),
		selected:   make(map[string]bool),
		sorter:     Sorter{DirFirst: true},
		showHidden: false,
	}
}

// Ticket returns the current reload generation.
func (fs *Files) Ticket() uint64 { return fs.ticket }

// Len returns the number of visible files.
func (fs *Files) Len() int { return len(fs.order) }

// Get returns the visible file at idx and whether idx was in range.
func (fs *Files) Get(idx int) (File, bool) {
	if idx < 0 || idx >= len(fs.order) {
		return File{}, false
	}
	return fs.order[idx], true
}

// Position returns the index of path among visible files, or -1.
func (fs *Files) Position(path string) int {
	if idx, ok := fs.items[path]; ok {
		return idx
	}
	return -1
}

// All returns the visible files in display order. Callers must not mutate
// the returned slice's Files in place; use Select instead.
func (fs *Files) All() []File { return fs.order }

// bump marks a display-affecting mutation.
func (fs *Files) bump() { fs.Revision++ }

// UpdateFull replaces contents wholesale: bumps the ticket (invalidating
// any in-flight UpdatePart for the old generation) and the revision, and
// discards all prior selection/partition state (§4.1 update_full).
func (fs *Files) UpdateFull(items []File) {
	fs.ticket++
	fs.items = make(map[string]int, len(items))
	fs.hidden = make(map[string]File)
	fs.selected = make(map[string]bool)
	fs.order = nil

	for _, f := range items {
		fs.classify(f)
	}
	fs.resort()
	fs.bump()
}

// UpdatePart appends items if ticket matches the current generation,
// otherwise silently drops them (§4.1 update_part: streaming large dirs).
func (fs *Files) UpdatePart(items []File, ticket uint64) {
	if ticket != fs.ticket {
		return
	}
	if len(items) == 0 {
		return
	}
	for _, f := range items {
		fs.classify(f)
	}
	fs.resort()
	fs.bump()
}

// classify inserts or replaces a single file into the visible/hidden
// partition according to the current filter and show-hidden settings.
func (fs *Files) classify(f File) {
	visible := fs.passesFilter(f) && (fs.showHidden || !f.IsHidden)

	if idx, ok := fs.items[f.URL]; ok {
		f.selected = fs.order[idx].selected
		fs.order[idx] = f
		if !visible {
			fs.removeVisible(f.URL)
			fs.hidden[f.URL] = f
		}
		return
	}
	if old, ok := fs.hidden[f.URL]; ok {
		f.selected = old.selected
	}
	if visible {
		delete(fs.hidden, f.URL)
		fs.items[f.URL] = len(fs.order)
		fs.order = append(fs.order, f)
	} else {
		fs.hidden[f.URL] = f
	}
}

func (fs *Files) passesFilter(f File) bool {
	if fs.filter == nil {
		return true
	}
	return fs.filter.MatchString(baseName(f.URL))
}

func (fs *Files) removeVisible(path string) {
	idx, ok := fs.items[path]
	if !ok {
		return
	}
	fs.order = append(fs.order[:idx], fs.order[idx+1:]...)
	delete(fs.items, path)
	for p, i := range fs.items {
		if i > idx {
			fs.items[p] = i - 1
		}
	}
	delete(fs.selected, path)
}

func (fs *Files) resort() {
	sortFiles(fs.order, fs.sorter)
	fs.items = make(map[string]int, len(fs.order))
	for i, f := range fs.order {
		fs.items[f.URL] = i
	}
	fs.version = fs.Revision
}

// Catchup re-sorts only if a mutation has bumped Revision since the last
// sort. internal/folder.Folder.Update calls it after every mutation it
// applies.
func (fs *Files) Catchup() {
	if fs.version == fs.Revision {
		return
	}
	fs.resort()
}

// UpdateCreating inserts newly created files (watcher diff, §4.1).
func (fs *Files) UpdateCreating(newFiles []File) bool {
	changed := false
	for _, f := range newFiles {
		if _, exists := fs.items[f.URL]; exists {
			continue
		}
		if _, exists := fs.hidden[f.URL]; exists {
			continue
		}
		fs.classify(f)
		changed = true
	}
	if changed {
		fs.bump()
	}
	return changed
}

// UpdateDeleting removes files by URL (watcher diff, §4.1). URLs absent
// from the listing are ignored (§8 boundary: "Remove event for a file not
// in current listings").
func (fs *Files) UpdateDeleting(urls []string) bool {
	changed := false
	for _, u := range urls {
		if _, ok := fs.items[u]; ok {
			fs.removeVisible(u)
			changed = true
			continue
		}
		if _, ok := fs.hidden[u]; ok {
			delete(fs.hidden, u)
			changed = true
		}
	}
	if changed {
		fs.bump()
	}
	return changed
}

// UpdateUpdating replaces files by URL, preserving IsSelected and Length
// from the prior entry when present (§4.1).
func (fs *Files) UpdateUpdating(updated []File) bool {
	changed := false
	for _, f := range updated {
		if idx, ok := fs.items[f.URL]; ok {
			old := fs.order[idx]
			f.selected = old.selected
			if f.Length == nil {
				f.Length = old.Length
			}
			fs.classify(f)
			changed = true
			continue
		}
		if old, ok := fs.hidden[f.URL]; ok {
			f.selected = old.selected
			if f.Length == nil {
				f.Length = old.Length
			}
			fs.classify(f)
			changed = true
		}
	}
	if changed {
		fs.bump()
	}
	return changed
}

// Select toggles (state == nil) or sets the selection of path. Returns
// whether the selection actually changed.
func (fs *Files) Select(path string, state *bool) bool {
	idx, ok := fs.items[path]
	if !ok {
		return false
	}
	cur := fs.order[idx].selected
	var next bool
	if state == nil {
		next = !cur
	} else {
		next = *state
	}
	if next == cur {
		return false
	}
	fs.order[idx].selected = next
	if next {
		fs.selected[path] = true
	} else {
		delete(fs.selected, path)
	}
	return true
}

// SelectAll applies state (or toggles, if nil) to every visible file.
func (fs *Files) SelectAll(state *bool) bool {
	applied := false
	for _, f := range fs.order {
		if fs.Select(f.URL, state) {
			applied = true
		}
	}
	return applied
}

// Selected returns the selected paths in display order.
func (fs *Files) Selected() []string {
	out := make([]string, 0, len(fs.selected))
	for _, f := range fs.order {
		if f.selected {
			out = append(out, f.URL)
		}
	}
	return out
}

// SetSorter installs a new Sorter and re-sorts if it differs.
func (fs *Files) SetSorter(s Sorter) {
	if s == fs.sorter {
		return
	}
	fs.sorter = s
	fs.resort()
	fs.bump()
}

// Sorter returns the active Sorter.
func (fs *Files) Sorter() Sorter { return fs.sorter }

// SetFilter installs (or clears, for nil/empty) a name filter. A filter
// supersedes hidden classification: a non-matching file moves to hidden
// regardless of its dot-prefix (§4.1).
func (fs *Files) SetFilter(pattern string) error {
	if pattern == fs.filterSrc {
		return nil
	}
	if pattern == "" {
		fs.filter = nil
		fs.filterSrc = ""
		fs.reclassifyAll()
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	fs.filter = re
	fs.filterSrc = pattern
	fs.reclassifyAll()
	return nil
}

// SetShowHidden toggles hidden-file visibility, reconciling partitions.
func (fs *Files) SetShowHidden(show bool) {
	if show == fs.showHidden {
		return
	}
	fs.showHidden = show
	fs.reclassifyAll()
}

// ShowHidden reports the current hidden-file visibility.
func (fs *Files) ShowHidden() bool { return fs.showHidden }

func (fs *Files) reclassifyAll() {
	all := make([]File, 0, len(fs.order)+len(fs.hidden))
	all = append(all, fs.order...)
	for _, f := range fs.hidden {
		all = append(all, f)
	}

	fs.items = make(map[string]int)
	fs.hidden = make(map[string]File)
	fs.order = nil
	for _, f := range all {
		fs.classify(f)
	}
	fs.resort()
	fs.bump()
}
