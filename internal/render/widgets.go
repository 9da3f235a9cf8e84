package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spinner renders an animated braille dot pattern for an in-flight
// preview or task row. It is passive — it does not generate its own
// ticks; the caller advances it from whatever tick msg drives redraws.
// Adapted from the teacher's internal/ui.BrailleSpinner.
type Spinner struct {
	frame  int
	active bool
}

var brailleFrames = []string{
	"⠋ ⠙ ⠹ ⠸",
	"⠙ ⠹ ⠸ ⠼",
	"⠹ ⠸ ⠼ ⠴",
	"⠸ ⠼ ⠴ ⠦",
	"⠼ ⠴ ⠦ ⠧",
	"⠴ ⠦ ⠧ ⠇",
	"⠦ ⠧ ⠇ ⠏",
	"⠧ ⠇ ⠏ ⠋",
	"⠇ ⠏ ⠋ ⠙",
	"⠏ ⠋ ⠙ ⠹",
}

func (s *Spinner) Start() { s.active, s.frame = true, 0 }
func (s *Spinner) Stop()  { s.active = false }
func (s Spinner) Active() bool { return s.active }
func (s *Spinner) Tick() {
	if s.active {
		s.frame++
	}
}

// View renders the current frame styled with st.SpinnerAccent, or "" if
// stopped.
func (s Spinner) View(st *Styles) string {
	if !s.active {
		return ""
	}
	return st.SpinnerAccent.Render(brailleFrames[s.frame%len(brailleFrames)])
}

// ScrollbarParams configures a vertical scrollbar render over a list
// viewport. Adapted from the teacher's internal/ui.RenderScrollbar.
type ScrollbarParams struct {
	TotalItems   int
	ScrollOffset int
	VisibleItems int
	TrackHeight  int
}

// Scrollbar returns a single-column, newline-joined string with exactly
// TrackHeight rows: a thumb over the visible range, or a blank spacer
// column when everything fits (keeps layout from jittering).
func Scrollbar(st *Styles, p ScrollbarParams) string {
	if p.TrackHeight < 1 {
		return ""
	}
	if p.TotalItems <= p.VisibleItems {
		lines := make([]string, p.TrackHeight)
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := (p.VisibleItems * p.TrackHeight) / p.TotalItems
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > p.TrackHeight {
		thumbSize = p.TrackHeight
	}

	maxOffset := p.TotalItems - p.VisibleItems
	if maxOffset < 1 {
		maxOffset = 1
	}
	thumbPos := (p.ScrollOffset * (p.TrackHeight - thumbSize)) / maxOffset
	if thumbPos < 0 {
		thumbPos = 0
	}
	if thumbPos > p.TrackHeight-thumbSize {
		thumbPos = p.TrackHeight - thumbSize
	}

	track := st.Scrollbar.Render("│")
	thumb := st.ScrollbarThumb.Render("┃")

	lines := make([]string, p.TrackHeight)
	for i := range p.TrackHeight {
		if i >= thumbPos && i < thumbPos+thumbSize {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return strings.Join(lines, "\n")
}

// Divider renders a vertical rule between panes, height rows tall.
// Adapted from the teacher's internal/ui.RenderDivider.
func Divider(st *Styles, height int) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = st.Divider.Render("│")
	}
	return strings.Join(lines, "\n")
}

// ResolveOptionStyle picks the focused or normal option style for a
// Select overlay row. Adapted from the teacher's
// internal/ui.ResolveButtonStyle, generalized from a fixed confirm/
// cancel pair to an arbitrary option index.
func ResolveOptionStyle(st *Styles, focusIdx, rowIdx int) lipgloss.Style {
	if focusIdx == rowIdx {
		return st.OptionFocused
	}
	return st.OptionNormal
}
