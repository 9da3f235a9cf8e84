package image

import (
	"fmt"

	"github.com/blacktop/go-termimg"
)

// TermImg is the go-termimg-backed Renderer: it auto-detects the
// terminal's image protocol (Kitty, iTerm2, Sixel) at construction and
// renders through whichever one is available.
type TermImg struct {
	capable bool
}

// NewTermImg probes the current terminal for image protocol support.
func NewTermImg() *TermImg {
	return &TermImg{capable: termimg.IsSupported()}
}

func (t *TermImg) Capable() bool { return t.capable }

// Show rasterizes path into region using go-termimg's builder API,
// writing the resulting escape sequence straight to stdout (the
// terminal's own image protocol, not kujo's own render stream).
func (t *TermImg) Show(path string, region Rect) error {
	if !t.capable {
		return nil
	}
	img, err := termimg.Open(path)
	if err != nil {
		return fmt.Errorf("open image %s: %w", path, err)
	}
	defer img.Close()

	return img.
		Width(region.W).
		Height(region.H).
		Print()
}

// Hide clears whatever placement Show last drew at region. go-termimg
// has no explicit "clear" primitive beyond redrawing; kujo relies on
// the next full-screen render to paint over stale cells, matching how
// the teacher's own TUI repaints rather than diffing image cells.
func (t *TermImg) Hide(Rect) error { return nil }
