package overlay

import "regexp"

// HelpEntry is one row of the help listing: a rendered chord plus its
// description, sourced from the active layer's keymap.
type HelpEntry struct {
	Chord string
	Desc  string
}

// Help is the toggleable bindings listing for the current layer (§4.8):
// arrow scroll plus a regex filter over chord and description text.
type Help struct {
	Visible bool

	entries  []HelpEntry
	filtered []HelpEntry
	pattern  string

	scroller
}

// NewHelp constructs a Help with a reasonable default viewport.
func NewHelp() *Help {
	return &Help{scroller: scroller{maxVisible: 20}}
}

// Toggle shows the overlay (seeded with entries, filter cleared) if
// hidden, or hides it if already shown. Returns the new Visible state.
func (h *Help) Toggle(entries []HelpEntry) bool {
	if h.Visible {
		h.Visible = false
		return false
	}
	h.entries = entries
	h.pattern = ""
	h.filtered = entries
	h.reset()
	h.setCount(len(h.filtered))
	h.Visible = true
	return true
}

// Close hides the overlay unconditionally.
func (h *Help) Close() { h.Visible = false }

// SetFilter recompiles the regex filter and re-narrows entries. An
// invalid pattern leaves the previous filter in effect and reports the
// compile error.
func (h *Help) SetFilter(pattern string) error {
	if pattern == "" {
		h.pattern = ""
		h.filtered = h.entries
		h.reset()
		h.setCount(len(h.filtered))
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	h.pattern = pattern
	filtered := make([]HelpEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if re.MatchString(e.Chord) || re.MatchString(e.Desc) {
			filtered = append(filtered, e)
		}
	}
	h.filtered = filtered
	h.reset()
	h.setCount(len(h.filtered))
	return nil
}

// Move shifts the cursor by delta, clamping and following the viewport.
func (h *Help) Move(delta int) { h.move(delta) }

// Entries returns the currently filtered listing.
func (h *Help) Entries() []HelpEntry { return h.filtered }

// Window returns the visible [start, end) index range into Entries().
func (h *Help) Window() (start, end int) {
	end = h.offset + h.maxVisible
	if end > len(h.filtered) {
		end = len(h.filtered)
	}
	return h.offset, end
}
