// Package image is the capability boundary between a rendered preview
// and the terminal's actual image protocol (§1 "image protocol adapters
// ... image.Renderer interface only"). internal/preview decides *what*
// to show (a cache path); this package decides *how* to put pixels on
// screen for whatever protocol the terminal actually speaks.
package image

// Rect is the terminal cell region a Renderer draws into.
type Rect struct {
	X, Y, W, H int
}

// Renderer shows or hides an already-rasterized image file at a given
// cell region. Kitty/iTerm2/Sixel adapters all reduce to this shape:
// emit protocol-specific escape sequences for Show, and clear the
// region's prior placement for Hide.
type Renderer interface {
	// Capable reports whether the terminal this Renderer was built for
	// actually supports an image protocol; cmd/kujo replaces the
	// Renderer with Noop when it is false.
	Capable() bool
	Show(path string, region Rect) error
	Hide(region Rect) error
}

// noop is the fallback Renderer for terminals with no image protocol
// support (or when go-termimg's own capability probe fails at startup).
type noop struct{}

func (noop) Capable() bool             { return false }
func (noop) Show(string, Rect) error   { return nil }
func (noop) Hide(Rect) error           { return nil }

// Noop returns a Renderer that never draws, for terminals without an
// image protocol.
func Noop() Renderer { return noop{} }
