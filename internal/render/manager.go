package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/kujo-fm/kujo/internal/files"
	"github.com/kujo-fm/kujo/internal/folder"
	"github.com/kujo-fm/kujo/internal/manager"
)

// Manager draws the pieces of a Manager's view (§4.2/§4.4): one folder
// column per Pane call, a tab bar and a status line. cmd/kujo places the
// parent and current panes side by side; no preview column is drawn.
// It owns no state of its own — every call takes the Styles to draw
// with and the geometry to fill.
type Manager struct {
	Styles *Styles
}

// NewManager builds a Manager renderer bound to st.
func NewManager(st *Styles) *Manager { return &Manager{Styles: st} }

// Pane renders one folder column: file rows (dir/link markers, size,
// selection/hover highlight), clipped to width x height; no scrollbar
// is drawn. active controls whether the pane border is the focused or
// unfocused style.
func (m *Manager) Pane(f *folder.Folder, width, height int, active bool) string {
	if width < 4 {
		width = 4
	}
	rowsHeight := height - 2 // border top/bottom
	if rowsHeight < 1 {
		rowsHeight = 1
	}
	f.SetViewportHeight(rowsHeight)

	all := f.Files.All()
	start := f.Offset()
	end := start + rowsHeight
	if end > len(all) {
		end = len(all)
	}

	var body strings.Builder
	for i := start; i < end; i++ {
		body.WriteString(m.row(all[i], i == f.Cursor(), width-2))
		if i < end-1 {
			body.WriteString("\n")
		}
	}
	for pad := end - start; pad < rowsHeight; pad++ {
		if pad > 0 || end > start {
			body.WriteString("\n")
		}
	}

	box := m.Styles.PaneInactive
	if active {
		box = m.Styles.PaneActive
	}
	return box.Width(width - 2).Height(rowsHeight).Render(body.String())
}

func (m *Manager) row(f files.File, hovered bool, width int) string {
	name := f.URL
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if f.IsDir() {
		name += "/"
	} else if f.IsLink {
		name += " -> " + f.LinkTo
	}

	size := ""
	if !f.IsDir() && f.Length != nil {
		size = humanize.Bytes(uint64(*f.Length))
	}

	avail := width - len(size) - 1
	if avail < 1 {
		avail = 1
	}
	name = ansi.Truncate(name, avail, "…")
	pad := width - len(name) - len(size)
	if pad < 1 {
		pad = 1
	}
	line := name + strings.Repeat(" ", pad) + size

	style := m.Styles.RowNormal
	switch {
	case hovered:
		style = m.Styles.RowHovered
	case f.IsSelected():
		style = m.Styles.RowSelected
	}
	return style.Render(line)
}

// TabBar renders the open tab titles, highlighting the active one
// (§4.4 "tab_create/tab_switch/tab_swap/tab_close").
func (m *Manager) TabBar(mgr *manager.Manager) string {
	var b strings.Builder
	for i, t := range mgr.Tabs.All() {
		label := t.Current.Cwd
		if j := strings.LastIndexByte(label, '/'); j >= 0 && len(label) > 1 {
			label = label[j+1:]
		}
		chip := m.Styles.StatusBarChip
		if i == mgr.Tabs.Idx() {
			chip = m.Styles.OptionFocused
		}
		b.WriteString(chip.Render(label))
		if i < mgr.Tabs.Len()-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// StatusBar renders the footer line: cwd, selection count, task
// progress percent (from the scheduler's Progress ticker).
func (m *Manager) StatusBar(cwd string, selected int, percent, left int) string {
	var b strings.Builder
	b.WriteString(m.Styles.StatusBar.Render(cwd))
	if selected > 0 {
		b.WriteString("  ")
		b.WriteString(m.Styles.StatusBarChip.Render(humanize.Comma(int64(selected)) + " selected"))
	}
	if left > 0 {
		b.WriteString("  ")
		b.WriteString(m.Styles.ProgressAccent.Render(humanize.Comma(int64(percent)) + "% · " + humanize.Comma(int64(left)) + " left"))
	}
	return b.String()
}
