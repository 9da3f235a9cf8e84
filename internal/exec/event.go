// Package exec is the event loop and key-dispatch layer (§4.9): it
// defines the Event union the rest of the program communicates through,
// and Executor, which resolves a keystroke against the active layer and
// runs the resulting command list against internal/manager,
// internal/scheduler, and the internal/overlay/internal/input passive
// state machines.
package exec

import (
	"github.com/kujo-fm/kujo/internal/files"
)

// Layer is the event-loop's notion of "what currently owns the
// keyboard", in the priority order Handle resolves them (§4.9: "Which >
// Input > Help > Tasks > Select > Manager").
type Layer int

const (
	ManagerLayer Layer = iota
	TasksLayer
	SelectLayer
	InputLayer
	HelpLayer
	WhichLayer
)

// Control is the small set of terminal-control signals a Ctrl event can
// carry (§5 "BLOCKER... while held, the UI is in the stopped state").
type Control int

const (
	CtrlSuspend Control = iota
	CtrlResume
)

// FilesOp is a watcher- or worker-driven mutation to apply to whichever
// folder owns Path, mirroring internal/manager.Manager.UpdateFiles's own
// (path, apply) shape exactly so a Files event can be routed with no
// translation step.
type FilesOp struct {
	Path  string
	Apply func(*files.Files) bool
}

// Event is the sum type the original names in full (§4.9): `Quit | Key |
// Paste(str) | Render(src) | Resize | Stop(state, ack) | Ctrl(Control,
// Layer) | Cd | Refresh | Files(FilesOp) | Pages | Mimetype |
// Hover(Option<File>) | Preview | Select(opt, tx) | Input(opt, tx) |
// Open | Progress`. Each variant below is its own type (any value is a
// valid tea.Msg, so these need no common interface) rather than one
// tagged struct, the idiomatic Go rendering of the original's enum.
type (
	QuitEvent    struct{}
	KeyEvent     struct{ Key string }
	PasteEvent   struct{ Text string }
	RenderEvent  struct{ Src string }
	ResizeEvent  struct{ Width, Height int }
	StopEvent    struct {
		Stop bool
		Ack  chan<- struct{}
	}
	CtrlEvent struct {
		Control Control
		Layer   Layer
	}
	CdEvent       struct{ Path string }
	RefreshEvent  struct{}
	FilesEvent    struct{ Op FilesOp }
	PagesEvent    struct{}
	MimetypeEvent struct{ Mimes map[string]string }
	HoverEvent    struct {
		File files.File
		Ok   bool
	}
	PreviewEvent struct{}
	SelectEvent  struct {
		Title   string
		Options []string
		Reply   chan<- int
	}
	InputEvent struct {
		Title, Prefill string
		Reply          chan<- string
	}
	OpenEvent     struct{}
	ProgressEvent struct {
		Percent int
		Left    int
	}
)
