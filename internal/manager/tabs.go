package manager

import (
	"github.com/kujo-fm/kujo/internal/tab"
)

// MaxTabs bounds how many tabs a Manager may hold open at once.
const MaxTabs = 9

// Tabs is an ordered collection of Tab with one active index.
type Tabs struct {
	idx   int
	items []*tab.Tab
}

func newTabs(cwd string, stat tab.Stat) *Tabs {
	return &Tabs{items: []*tab.Tab{tab.New(cwd, stat)}}
}

// Idx returns the active tab's index.
func (t *Tabs) Idx() int { return t.idx }

// Len returns the number of open tabs.
func (t *Tabs) Len() int { return len(t.items) }

// All returns every tab in display order.
func (t *Tabs) All() []*tab.Tab { return t.items }

// Active returns the currently focused tab.
func (t *Tabs) Active() *tab.Tab { return t.items[t.idx] }

// Create opens a new tab at path immediately after the active one and
// focuses it. Returns false once MaxTabs is reached.
func (t *Tabs) Create(path string, stat tab.Stat) bool {
	if len(t.items) >= MaxTabs {
		return false
	}
	nt := tab.New(path, stat)
	at := t.idx + 1
	t.items = append(t.items, nil)
	copy(t.items[at+1:], t.items[at:])
	t.items[at] = nt
	t.setIdx(at)
	return true
}

// Switch focuses idx (absolute) or the tab rel steps away (relative),
// clamped to the open range. Returns false if the target is out of
// range or already active.
func (t *Tabs) Switch(idx int, rel bool) bool {
	target := idx
	if rel {
		target = t.absolute(idx)
	}
	if target == t.idx || target < 0 || target >= len(t.items) {
		return false
	}
	t.setIdx(target)
	return true
}

// Swap exchanges the active tab with the one rel steps away and focuses
// the destination index.
func (t *Tabs) Swap(rel int) bool {
	target := t.absolute(rel)
	if target == t.idx {
		return false
	}
	t.items[t.idx], t.items[target] = t.items[target], t.items[t.idx]
	t.setIdx(target)
	return true
}

// Close removes the tab at idx, refusing to close the last remaining
// tab. When idx is at or before the active index, the active index moves
// one past its old value, clamped to the last tab: closing the active tab
// focuses the tab that followed it (or the new last tab).
func (t *Tabs) Close(idx int) bool {
	if len(t.items) < 2 || idx < 0 || idx >= len(t.items) {
		return false
	}
	t.items = append(t.items[:idx], t.items[idx+1:]...)
	if idx <= t.idx {
		t.setIdx(t.absolute(1))
	}
	return true
}

func (t *Tabs) absolute(rel int) int {
	if rel > 0 {
		n := t.idx + rel
		if n > len(t.items)-1 {
			n = len(t.items) - 1
		}
		return n
	}
	n := t.idx + rel // rel is negative or zero
	if n < 0 {
		n = 0
	}
	return n
}

func (t *Tabs) setIdx(idx int) { t.idx = idx }
