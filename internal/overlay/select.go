package overlay

// Option is a single choice offered by a Select prompt (e.g. one
// candidate opener rule for "open with...").
type Option struct {
	Title string
	Value string
}

// Select is the passive picker overlay behind the original's
// `Select(opt, tx)` event (§4.9): present a list, let the user move the
// cursor and confirm or cancel, then report back through callback —
// a synchronous stand-in for the original's oneshot reply channel, per
// the two-phase shaping already used by internal/manager.
type Select struct {
	Visible bool
	Title   string
	Options []Option

	scroller
	callback func(idx int, ok bool)
}

// NewSelect constructs a Select with a reasonable default viewport.
func NewSelect() *Select {
	return &Select{scroller: scroller{maxVisible: 15}}
}

// Show opens the prompt, first canceling any prior one.
func (s *Select) Show(title string, options []Option, callback func(idx int, ok bool)) {
	s.Close(false)
	s.Visible = true
	s.Title = title
	s.Options = options
	s.reset()
	s.setCount(len(options))
	s.callback = callback
}

// Close fires the callback (if not already taken) and hides the prompt.
func (s *Select) Close(ok bool) {
	if s.callback == nil {
		s.Visible = false
		return
	}
	cb := s.callback
	s.callback = nil
	if ok && s.cursor >= 0 && s.cursor < len(s.Options) {
		cb(s.cursor, true)
	} else {
		cb(-1, false)
	}
	s.Visible = false
}

// Confirm accepts the currently highlighted option, or is a no-op on an
// empty list.
func (s *Select) Confirm() bool {
	if len(s.Options) == 0 {
		return false
	}
	s.Close(true)
	return true
}

// Cancel dismisses the prompt without a selection.
func (s *Select) Cancel() { s.Close(false) }

// Move shifts the cursor by delta, clamping and following the viewport.
func (s *Select) Move(delta int) { s.move(delta) }

// Cursor returns the currently highlighted index.
func (s *Select) Cursor() int { return s.cursor }

// Window returns the visible [start, end) index range into Options.
func (s *Select) Window() (start, end int) {
	end = s.offset + s.maxVisible
	if end > len(s.Options) {
		end = len(s.Options)
	}
	return s.offset, end
}

// SetMaxVisible adjusts the viewport height (e.g. on terminal resize).
func (s *Select) SetMaxVisible(n int) {
	if n < 1 {
		n = 1
	}
	s.maxVisible = n
	s.clampOffset()
}
