package exec

import (
	"strconv"

	"github.com/kujo-fm/kujo/internal/input"
	"github.com/kujo-fm/kujo/internal/manager"
	"github.com/kujo-fm/kujo/internal/overlay"
	"github.com/kujo-fm/kujo/internal/scheduler"
	"github.com/kujo-fm/kujo/internal/which"
	"github.com/kujo-fm/kujo/internal/workers"
)

// Executor resolves a keystroke to a Layer and runs its command list
// (§4.9 Executor.handle). It owns no rendering state of its own beyond
// the render-coalescing flag: everything it mutates lives in Manager,
// Scheduler, or one of the overlay/input passive state machines.
type Executor struct {
	Manager   *manager.Manager
	Scheduler *scheduler.Scheduler
	Select    *overlay.Select
	Help      *overlay.Help
	Tasks     *overlay.Tasks
	Input     *input.Input
	Which     *which.Resolver
	Files     *workers.File

	keymaps map[Layer][]which.Binding
	tables  map[Layer]map[string]Command

	whichLayer Layer // the layer that opened the active which chord

	pendingRender bool
	lastErr       error
	quit          bool
}

// Quit reports whether the "quit" command has fired.
func (cx *Executor) Quit() bool { return cx.quit }

// setErr records a command failure for cmd/kujo to surface as an
// ErrMsg (§7 "errors... surfaced as tea.Msg values"); TakeErr drains it.
func (cx *Executor) setErr(err error) {
	if err != nil {
		cx.lastErr = err
	}
}

// TakeErr reports the last command error (if any) and clears it.
func (cx *Executor) TakeErr() error {
	err := cx.lastErr
	cx.lastErr = nil
	return err
}

// New builds an Executor with the default command tables wired to the
// given components. keymaps supplies the per-layer bindings the Which
// resolver narrows against; internal/keymap's TOML loader is what
// produces this map in the running program.
func New(m *manager.Manager, sch *scheduler.Scheduler, sel *overlay.Select, help *overlay.Help, tasks *overlay.Tasks, in *input.Input, files *workers.File, keymaps map[Layer][]which.Binding) *Executor {
	cx := &Executor{
		Manager:   m,
		Scheduler: sch,
		Select:    sel,
		Help:      help,
		Tasks:     tasks,
		Input:     in,
		Which:     which.New(nil),
		Files:     files,
		keymaps:   keymaps,
		tables:    defaultTables(),
	}
	return cx
}

// activeLayer computes the layer in priority order (§4.9 step 1):
// "Which > Input > Help > Tasks > Select > Manager".
func (cx *Executor) activeLayer() Layer {
	switch {
	case cx.Which.Active():
		return WhichLayer
	case cx.Input.Visible:
		return InputLayer
	case cx.Help.Visible:
		return HelpLayer
	case cx.Tasks.Visible:
		return TasksLayer
	case cx.Select.Visible:
		return SelectLayer
	default:
		return ManagerLayer
	}
}

// RequestRender marks a render as pending; TakeRender drains it. This
// is the Go stand-in for the original's coalescing channel: "multiple
// renders between frames collapse to one" (§5).
func (cx *Executor) RequestRender() { cx.pendingRender = true }

// TakeRender reports whether a render is pending and clears the flag.
func (cx *Executor) TakeRender() bool {
	v := cx.pendingRender
	cx.pendingRender = false
	return v
}

// Handle resolves key against the active layer and runs its effect,
// returning whether anything changed (§4.9 Executor.handle).
func (cx *Executor) Handle(key string) bool {
	layer := cx.activeLayer()

	if layer == WhichLayer {
		return cx.handleWhich(key)
	}

	if layer == InputLayer && cx.consumePrintable(key) {
		return true
	}
	if layer == HelpLayer && cx.handleHelpFilter(key) {
		return true
	}

	bindings := cx.keymaps[layer]
	for _, b := range bindings {
		if len(b.Chord) == 0 || b.Chord[0] != key {
			continue
		}
		if len(b.Chord) > 1 {
			cx.whichLayer = layer
			cx.Which = which.New(bindings)
			cx.Which.Press(key)
			return false
		}
		return cx.dispatch(layer, ParseExec(b.Exec))
	}
	return false
}

func (cx *Executor) handleWhich(key string) bool {
	if key == "esc" {
		cx.Which.Reset()
		return true
	}
	exec, matched, cancelled := cx.Which.Press(key)
	if cancelled {
		return true
	}
	if matched {
		return cx.dispatch(cx.whichLayer, ParseExec(exec))
	}
	return false
}

// consumePrintable lets Input eat ordinary characters before any
// keymap lookup (§4.9 step 3), returning whether it did.
func (cx *Executor) consumePrintable(key string) bool {
	switch key {
	case "esc":
		return cx.Input.Escape()
	case "enter":
		return cx.Input.Close(true)
	case "backspace":
		return cx.Input.Backspace()
	case "left":
		return cx.Input.Move(-1)
	case "right":
		return cx.Input.Move(1)
	}
	if len(key) == 1 {
		return cx.Input.Type(key)
	}
	return false
}

func (cx *Executor) handleHelpFilter(key string) bool {
	switch key {
	case "esc":
		cx.Help.Close()
		return true
	case "up":
		cx.Help.Move(-1)
		return true
	case "down":
		cx.Help.Move(1)
		return true
	}
	if len(key) == 1 {
		cx.Help.SetFilter(key)
		return true
	}
	return false
}

func (cx *Executor) dispatch(layer Layer, e Exec) bool {
	table, ok := cx.tables[layer]
	if !ok {
		return false
	}
	redraw := runDispatch(table, cx, []Exec{e})
	if redraw {
		cx.RequestRender()
	}
	return redraw
}

// helpEntries flattens the Manager layer's keymap into the Help
// overlay's listing — the layer a user actually spends their time in,
// and the one the which-key chords mostly live on.
func (cx *Executor) helpEntries() []overlay.HelpEntry {
	bindings := cx.keymaps[ManagerLayer]
	entries := make([]overlay.HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		chord := ""
		for i, k := range b.Chord {
			if i > 0 {
				chord += " "
			}
			chord += k
		}
		entries = append(entries, overlay.HelpEntry{Chord: chord, Desc: b.Desc})
	}
	return entries
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
