package preview

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/kujo-fm/kujo/internal/workers"
)

// maxTextPreviewBytes bounds how much of a file the text/markdown
// dispatch paths read, so previewing a multi-gigabyte log doesn't stall
// the render loop (§4.4 preview contract is silent on a cap; this
// mirrors the original's own capped read in `src/core/manager/preview.rs`).
const maxTextPreviewBytes = 512 * 1024

// Dispatcher resolves a hovered file's mime type to rendered preview
// data: syntax-highlighted text (chroma), rendered markdown (glamour,
// via markdownRenderer), or a cache-path handle for an already-
// thumbnailed image (precomputed by internal/workers.Precache.Image).
type Dispatcher struct {
	markdown       *markdownRenderer
	highlightStyle string
	cacheDir       string
	log            *slog.Logger
}

// NewDispatcher builds a Dispatcher. markdownStyle/highlightStyle name
// glamour/chroma style identifiers (from theme.toml's
// markdown_theme/syntax_theme keys); cacheDir is where
// internal/workers.Precache.Image writes its downsized copies.
func NewDispatcher(markdownStyle, highlightStyle, cacheDir string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		markdown:       newMarkdownRenderer(markdownStyle, log),
		highlightStyle: highlightStyle,
		cacheDir:       cacheDir,
		log:            log,
	}
}

// Render dispatches on mime and returns the Data a Manager should
// Resolve against the Preview whose Lock still matches (path, mime).
func (d *Dispatcher) Render(path, mime string, width int) (Data, error) {
	switch {
	case isMarkdown(path, mime):
		content, err := readCapped(path, maxTextPreviewBytes)
		if err != nil {
			return Data{}, err
		}
		lines := d.markdown.render(content, width)
		return Data{Kind: Text, Text: strings.Join(lines, "\n")}, nil

	case strings.HasPrefix(mime, "text/") || mime == "application/json" || mime == "application/xml":
		content, err := readCapped(path, maxTextPreviewBytes)
		if err != nil {
			return Data{}, err
		}
		highlighted, err := d.highlight(content, path)
		if err != nil {
			d.log.Debug("syntax highlight failed, falling back to plain text", "path", path, "err", err)
			return Data{Kind: Text, Text: content}, nil
		}
		return Data{Kind: Text, Text: highlighted}, nil

	case strings.HasPrefix(mime, "image/"):
		return Data{Kind: Image, CachePath: workers.CachePath(d.cacheDir, path)}, nil

	case strings.HasPrefix(mime, "video/"):
		return Data{Kind: Image, CachePath: workers.CachePath(d.cacheDir, path)}, nil

	default:
		return Data{}, nil
	}
}

func (d *Dispatcher) highlight(content, path string) (string, error) {
	var b strings.Builder
	style := d.highlightStyle
	if style == "" {
		style = "monokai"
	}
	if err := quick.Highlight(&b, content, lexerNameFor(path), "terminal256", style); err != nil {
		return "", err
	}
	return b.String(), nil
}

func isMarkdown(path, mime string) bool {
	if mime == "text/markdown" {
		return true
	}
	return strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".markdown")
}

// lexerNameFor lets chroma's quick.Highlight pick a lexer from the file
// extension itself; chroma's own registry handles the "" fallback
// (plaintext) when it doesn't recognize one.
func lexerNameFor(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return ""
}

func readCapped(path string, max int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
