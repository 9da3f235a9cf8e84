package preview

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
)

// minWidthForMarkdown is the narrowest terminal width glamour is worth
// invoking at; below it, markdown falls back to plain-text wrapping.
const minWidthForMarkdown = 30

// maxMarkdownCacheEntries bounds the rendered-line cache before a
// whole-cache eviction, matching the teacher's renderer.
const maxMarkdownCacheEntries = 100

// markdownRenderer wraps glamour with a width-keyed render cache, so
// repeatedly hovering the same file at a stable terminal width doesn't
// re-render it every frame. Adapted from the teacher's
// internal/markdown.Renderer.
type markdownRenderer struct {
	mu        sync.RWMutex
	style     string
	renderer  *glamour.TermRenderer
	lastWidth int
	cache     map[uint64][]string
	log       *slog.Logger
}

func newMarkdownRenderer(style string, log *slog.Logger) *markdownRenderer {
	if log == nil {
		log = slog.Default()
	}
	return &markdownRenderer{style: style, cache: make(map[uint64][]string), log: log}
}

// render returns content rendered to styled lines wrapped at width,
// from cache when possible.
func (r *markdownRenderer) render(content string, width int) []string {
	if width < minWidthForMarkdown {
		return wrapText(content, width)
	}
	if content == "" {
		return nil
	}

	key := r.cacheKey(content, width)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.getOrCreateRenderer(width)
	if err != nil {
		r.log.Debug("markdown renderer init failed", "err", err)
		return wrapText(content, width)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		r.log.Debug("markdown render failed", "err", err)
		return wrapText(content, width)
	}

	rendered = strings.TrimRight(rendered, "\n\r\t ")
	lines := strings.Split(rendered, "\n")

	if len(r.cache) >= maxMarkdownCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

func (r *markdownRenderer) cacheKey(content string, width int) uint64 {
	h := xxhash.New()
	h.WriteString(content)
	h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

func (r *markdownRenderer) getOrCreateRenderer(width int) (*glamour.TermRenderer, error) {
	if r.renderer != nil && r.lastWidth == width {
		return r.renderer, nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style != "" {
		opts = append(opts, glamour.WithStylePath(r.style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	r.renderer = renderer
	r.lastWidth = width
	r.cache = make(map[uint64][]string)
	return renderer, nil
}

// wrapText is the plain-text fallback for narrow widths or a broken
// glamour renderer.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	text = strings.ReplaceAll(text, "\n", " ")

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= maxWidth {
			cur += " " + w
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
