// Package render draws every layer the Executor can make active —
// manager panes, the tasks/select/help/which overlays, and the input
// box — as plain strings (§"internal/render" DOMAIN MODEL). It is the
// one piece of terminal I/O the core owns: producing lipgloss-styled
// text, never touching raw mode or the screen buffer itself.
package render

import "github.com/charmbracelet/lipgloss"

// Palette is the trimmed color set a file manager actually draws with,
// decoded from theme.toml by internal/config. It keeps the shape of
// the teacher's ColorPalette but drops every field with no manager/
// overlay/preview consumer (gradients, diff colors, blame-age ramps,
// the community-browser's worktree indicator, and so on).
type Palette struct {
	Primary string
	Accent  string

	Success string
	Warning string
	Error   string

	TextPrimary string
	TextMuted   string
	TextSubtle  string

	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	BorderNormal string
	BorderActive string

	SyntaxTheme   string
	MarkdownTheme string
}

// DefaultPalette is the built-in dark theme, used when no theme.toml is
// present or a key is left unset (§AMBIENT "configuration").
var DefaultPalette = Palette{
	Primary: "#7C3AED",
	Accent:  "#F59E0B",

	Success: "#10B981",
	Warning: "#F59E0B",
	Error:   "#EF4444",

	TextPrimary: "#F9FAFB",
	TextMuted:   "#6B7280",
	TextSubtle:  "#4B5563",

	BgPrimary:   "#111827",
	BgSecondary: "#1F2937",
	BgTertiary:  "#374151",

	BorderNormal: "#374151",
	BorderActive: "#7C3AED",

	SyntaxTheme:   "monokai",
	MarkdownTheme: "dark",
}

// Merge returns base with each field replaced by override's value
// wherever override's is non-empty, matching theme.toml's "only set what you want
// to change" contract.
func (base Palette) Merge(override Palette) Palette {
	out := base
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&out.Primary, override.Primary},
		{&out.Accent, override.Accent},
		{&out.Success, override.Success},
		{&out.Warning, override.Warning},
		{&out.Error, override.Error},
		{&out.TextPrimary, override.TextPrimary},
		{&out.TextMuted, override.TextMuted},
		{&out.TextSubtle, override.TextSubtle},
		{&out.BgPrimary, override.BgPrimary},
		{&out.BgSecondary, override.BgSecondary},
		{&out.BgTertiary, override.BgTertiary},
		{&out.BorderNormal, override.BorderNormal},
		{&out.BorderActive, override.BorderActive},
		{&out.SyntaxTheme, override.SyntaxTheme},
		{&out.MarkdownTheme, override.MarkdownTheme},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return out
}

// Styles is the set of lipgloss styles every render function pulls
// from, rebuilt once per Palette (teacher's rebuildStyles, trimmed to
// what a manager/overlay/preview layer draws).
type Styles struct {
	PaneActive   lipgloss.Style
	PaneInactive lipgloss.Style

	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style

	RowNormal   lipgloss.Style
	RowSelected lipgloss.Style
	RowHovered  lipgloss.Style
	RowCursor   lipgloss.Style

	Scrollbar       lipgloss.Style
	ScrollbarThumb  lipgloss.Style
	Divider         lipgloss.Style
	StatusBar       lipgloss.Style
	StatusBarChip   lipgloss.Style
	ProgressAccent  lipgloss.Style
	SpinnerAccent   lipgloss.Style
	OverlayBox      lipgloss.Style
	OverlayTitle    lipgloss.Style
	OptionNormal    lipgloss.Style
	OptionFocused   lipgloss.Style
	WhichKey        lipgloss.Style
	WhichDesc       lipgloss.Style
}

// NewStyles builds a Styles from p, the Go stand-in for the teacher's
// rebuildStyles() global rebuild.
func NewStyles(p Palette) *Styles {
	return &Styles{
		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.BorderActive)).
			Padding(0, 1),
		PaneInactive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.BorderNormal)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.TextPrimary)),
		Body:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextMuted)),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),

		RowNormal:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)),
		RowSelected: lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)).Background(lipgloss.Color(p.BgTertiary)),
		RowHovered:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)).Background(lipgloss.Color(p.Primary)),
		RowCursor:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Primary)).Bold(true),

		Scrollbar:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.BorderNormal)),
		ScrollbarThumb: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Primary)),
		Divider:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.BorderNormal)),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextMuted)).Background(lipgloss.Color(p.BgSecondary)),
		StatusBarChip:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)).Background(lipgloss.Color(p.BgTertiary)).Padding(0, 1),
		ProgressAccent: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		SpinnerAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),

		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Primary)).
			Background(lipgloss.Color(p.BgSecondary)).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)).Bold(true).MarginBottom(1),

		OptionNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)),
		OptionFocused: lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)).Background(lipgloss.Color(p.Primary)).Bold(true),

		WhichKey:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		WhichDesc: lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextMuted)),
	}
}
