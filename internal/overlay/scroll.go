// Package overlay implements the passive Help, Select, and Tasks-UI
// overlays (§4.8, §2 "Help / Select / Tasks-UI"). Each is pure state —
// cursor, scroll offset, filter — with no rendering of its own; drawing
// lives in internal/render.
package overlay

// scroller is the shared cursor/viewport-follow bookkeeping used by all
// three overlays, grounded on the teacher's command palette
// (internal/palette.Model.moveCursor: clamp cursor to [0,len), then
// adjust the scroll offset only enough to keep it in view).
type scroller struct {
	cursor, offset, maxVisible, count int
}

func (s *scroller) setCount(n int) {
	s.count = n
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.clampOffset()
}

func (s *scroller) move(delta int) {
	s.cursor += delta
	if s.count == 0 {
		s.cursor = 0
		s.offset = 0
		return
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= s.count {
		s.cursor = s.count - 1
	}
	s.clampOffset()
}

func (s *scroller) clampOffset() {
	if s.maxVisible <= 0 {
		return
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.maxVisible {
		s.offset = s.cursor - s.maxVisible + 1
	}
}

func (s *scroller) reset() {
	s.cursor, s.offset = 0, 0
}
