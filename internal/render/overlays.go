package render

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kujo-fm/kujo/internal/input"
	"github.com/kujo-fm/kujo/internal/overlay"
	"github.com/kujo-fm/kujo/internal/which"
)

// Select renders the picker overlay: title and the visible window of the
// option list with the highlighted row focused; no scrollbar is drawn
// (§4.9 Select event).
func Select(st *Styles, s *overlay.Select) string {
	var b strings.Builder
	b.WriteString(st.OverlayTitle.Render(s.Title))
	b.WriteString("\n")

	start, end := s.Window()
	for i := start; i < end; i++ {
		opt := s.Options[i]
		style := ResolveOptionStyle(st, s.Cursor(), i)
		b.WriteString(style.Render(opt.Title))
		b.WriteString("\n")
	}
	return st.OverlayBox.Render(strings.TrimRight(b.String(), "\n"))
}

// Help renders the which-key-style full bindings listing: chord plus
// description, one per row, filtered by the overlay's own regex (§4.8).
func Help(st *Styles, h *overlay.Help) string {
	var b strings.Builder
	b.WriteString(st.OverlayTitle.Render("Help"))
	b.WriteString("\n")

	start, end := h.Window()
	entries := h.Entries()
	for i := start; i < end; i++ {
		e := entries[i]
		b.WriteString(st.WhichKey.Render(e.Chord))
		b.WriteString("  ")
		b.WriteString(st.WhichDesc.Render(e.Desc))
		b.WriteString("\n")
	}
	return st.OverlayBox.Render(strings.TrimRight(b.String(), "\n"))
}

// Tasks renders only the highlighted task's row: name, done/found counts,
// and a spinner while spin is active; with no rows it renders "no running
// tasks" (§2 "Tasks-UI").
func Tasks(st *Styles, t *overlay.Tasks, spin *Spinner) string {
	var b strings.Builder
	b.WriteString(st.OverlayTitle.Render("Tasks"))
	b.WriteString("\n")

	start, end := t.Window()
	_ = start
	_ = end
	if sel, ok := t.Selected(); ok {
		line := sel.Name + "  " + humanize.Comma(int64(sel.Done)) + "/" + humanize.Comma(int64(sel.Found))
		if spin != nil && spin.Active() {
			line = spin.View(st) + " " + line
		}
		b.WriteString(st.Body.Render(line))
	} else {
		b.WriteString(st.Muted.Render("no running tasks"))
	}
	return st.OverlayBox.Render(b.String())
}

// Which renders the in-progress chord's still-live candidates (§4.8).
func Which(st *Styles, w *which.Resolver) string {
	var b strings.Builder
	for _, c := range w.Candidates() {
		b.WriteString(st.WhichKey.Render(c.Next))
		b.WriteString(" ")
		b.WriteString(st.WhichDesc.Render(c.Desc))
		b.WriteString("\n")
	}
	return st.OverlayBox.Render(strings.TrimRight(b.String(), "\n"))
}

// Input renders the modal prompt box: title plus the buffer's visible
// slice (§4.6); the cursor column is not marked.
func Input(st *Styles, in *input.Input) string {
	var b strings.Builder
	b.WriteString(st.OverlayTitle.Render(in.Title))
	b.WriteString("\n")
	b.WriteString(st.Body.Render(in.VisibleValue()))
	return st.OverlayBox.Render(b.String())
}
