// Package keymap loads keymap.toml into the per-layer chord tables
// internal/exec.Executor and internal/which.Resolver dispatch against
// (§6 Config files, §4.8/§4.9). It owns both the TOML decode and the
// chord-string parsing ("g g" -> []string{"g","g"}), grounded on the
// teacher's own tea.KeyMsg-to-string normalization (keyToString below),
// adapted from bubbletea key events into the plain strings a TOML
// file's chord entries are written in.
package keymap

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kujo-fm/kujo/internal/exec"
	"github.com/kujo-fm/kujo/internal/which"
)

// entry is one `[[manager]]` (or `[[tasks]]`, `[[select]]`) row in
// keymap.toml.
type entry struct {
	Key  string `toml:"key"`  // e.g. "g g", "ctrl+a", "enter"
	Exec string `toml:"exec"` // e.g. "paste --force", "arrow -1"
	Desc string `toml:"desc"`
}

// file is keymap.toml's root shape: one table of entries per layer
// that can own the keyboard (§4.9's priority list, minus Which itself —
// the resolver is built from whichever layer's own entries have a
// multi-key Chord, not a layer of its own).
type file struct {
	Manager []entry `toml:"manager"`
	Tasks   []entry `toml:"tasks"`
	Select  []entry `toml:"select"`
	Help    []entry `toml:"help"`
	Input   []entry `toml:"input"`
}

// layerOf maps a TOML table name to the exec.Layer it feeds. Help and
// Input are listed here too, although internal/exec's defaultTables
// only has command tables for Manager, Tasks and Select.
var layerOf = map[string]exec.Layer{
	"manager": exec.ManagerLayer,
	"tasks":   exec.TasksLayer,
	"select":  exec.SelectLayer,
	"help":    exec.HelpLayer,
	"input":   exec.InputLayer,
}

// Default is the built-in keymap used when keymap.toml is absent or a
// table within it is empty, giving a fresh install a working set of
// bindings without requiring the user to author one first.
func Default() map[exec.Layer][]which.Binding {
	return map[exec.Layer][]which.Binding{
		exec.ManagerLayer: {
			{Chord: []string{"j"}, Exec: "arrow 1", Desc: "down"},
			{Chord: []string{"k"}, Exec: "arrow -1", Desc: "up"},
			{Chord: []string{"down"}, Exec: "arrow 1", Desc: "down"},
			{Chord: []string{"up"}, Exec: "arrow -1", Desc: "up"},
			{Chord: []string{"g", "g"}, Exec: "arrow -999999", Desc: "top"},
			{Chord: []string{"g", "e"}, Exec: "arrow 999999", Desc: "bottom"},
			{Chord: []string{"l"}, Exec: "enter", Desc: "open / enter dir"},
			{Chord: []string{"enter"}, Exec: "enter", Desc: "open / enter dir"},
			{Chord: []string{"h"}, Exec: "leave", Desc: "parent dir"},
			{Chord: []string{"v"}, Exec: "visual_mode", Desc: "visual select"},
			{Chord: []string{"space"}, Exec: "select", Desc: "toggle select"},
			{Chord: []string{"ctrl+a"}, Exec: "select_all", Desc: "select all"},
			{Chord: []string{"esc"}, Exec: "escape", Desc: "escape"},
			{Chord: []string{"y", "y"}, Exec: "yank", Desc: "copy"},
			{Chord: []string{"d", "d"}, Exec: "yank --cut=true", Desc: "cut"},
			{Chord: []string{"p"}, Exec: "paste", Desc: "paste"},
			{Chord: []string{"ctrl+v"}, Exec: "paste --force=true", Desc: "paste (overwrite)"},
			{Chord: []string{"x"}, Exec: "remove", Desc: "trash"},
			{Chord: []string{"D"}, Exec: "remove --permanently=true", Desc: "delete permanently"},
			{Chord: []string{"a"}, Exec: "create", Desc: "create file/dir"},
			{Chord: []string{"r"}, Exec: "rename", Desc: "rename"},
			{Chord: []string{"t"}, Exec: "tab_create", Desc: "new tab"},
			{Chord: []string{"tab"}, Exec: "tab_switch 1 --rel=true", Desc: "next tab"},
			{Chord: []string{"shift+tab"}, Exec: "tab_swap -1", Desc: "swap tab left"},
			{Chord: []string{"ctrl+w"}, Exec: "tab_close", Desc: "close tab"},
			{Chord: []string{"?"}, Exec: "toggle_help", Desc: "help"},
			{Chord: []string{"w"}, Exec: "toggle_tasks", Desc: "tasks"},
			{Chord: []string{"q"}, Exec: "quit", Desc: "quit"},
		},
		exec.TasksLayer: {
			{Chord: []string{"esc"}, Exec: "escape", Desc: "close"},
			{Chord: []string{"j"}, Exec: "arrow 1", Desc: "down"},
			{Chord: []string{"k"}, Exec: "arrow -1", Desc: "up"},
			{Chord: []string{"x"}, Exec: "cancel", Desc: "cancel task"},
		},
		exec.SelectLayer: {
			{Chord: []string{"esc"}, Exec: "escape", Desc: "cancel"},
			{Chord: []string{"j"}, Exec: "arrow 1", Desc: "down"},
			{Chord: []string{"k"}, Exec: "arrow -1", Desc: "up"},
			{Chord: []string{"enter"}, Exec: "confirm", Desc: "confirm"},
		},
	}
}

// Load decodes dir/keymap.toml and returns the per-layer binding map
// Executor.New expects, falling back to Default()'s entries for any
// layer the file leaves empty. A keymap.toml that doesn't exist yields
// the pure default; one that exists but fails to parse is a hard error.
func Load(dir string) (map[exec.Layer][]which.Binding, error) {
	out := Default()

	path := dir + "/keymap.toml"
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	tables := map[string][]entry{
		"manager": f.Manager,
		"tasks":   f.Tasks,
		"select":  f.Select,
		"help":    f.Help,
		"input":   f.Input,
	}
	for name, entries := range tables {
		if len(entries) == 0 {
			continue
		}
		layer := layerOf[name]
		bindings := make([]which.Binding, 0, len(entries))
		for _, e := range entries {
			chord := strings.Fields(e.Key)
			if len(chord) == 0 {
				continue
			}
			bindings = append(bindings, which.Binding{Chord: chord, Exec: e.Exec, Desc: e.Desc})
		}
		out[layer] = bindings
	}
	return out, nil
}

// keyToString normalizes a bubbletea key event into the plain-string
// chord vocabulary keymap.toml entries are written in — ctrl+<letter>,
// named keys (tab, enter, esc, space, arrows, ...), or the literal rune
// typed. cmd/kujo feeds every tea.KeyMsg through this before calling
// Executor.Handle.
func keyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyCtrlA:
		return "ctrl+a"
	case tea.KeyCtrlB:
		return "ctrl+b"
	case tea.KeyCtrlC:
		return "ctrl+c"
	case tea.KeyCtrlD:
		return "ctrl+d"
	case tea.KeyCtrlE:
		return "ctrl+e"
	case tea.KeyCtrlF:
		return "ctrl+f"
	case tea.KeyCtrlG:
		return "ctrl+g"
	case tea.KeyCtrlH:
		return "ctrl+h"
	case tea.KeyTab:
		return "tab"
	case tea.KeyCtrlJ:
		return "ctrl+j"
	case tea.KeyCtrlK:
		return "ctrl+k"
	case tea.KeyCtrlL:
		return "ctrl+l"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyCtrlN:
		return "ctrl+n"
	case tea.KeyCtrlO:
		return "ctrl+o"
	case tea.KeyCtrlP:
		return "ctrl+p"
	case tea.KeyCtrlQ:
		return "ctrl+q"
	case tea.KeyCtrlR:
		return "ctrl+r"
	case tea.KeyCtrlS:
		return "ctrl+s"
	case tea.KeyCtrlT:
		return "ctrl+t"
	case tea.KeyCtrlU:
		return "ctrl+u"
	case tea.KeyCtrlV:
		return "ctrl+v"
	case tea.KeyCtrlW:
		return "ctrl+w"
	case tea.KeyCtrlX:
		return "ctrl+x"
	case tea.KeyCtrlY:
		return "ctrl+y"
	case tea.KeyCtrlZ:
		return "ctrl+z"
	case tea.KeyEsc:
		return "esc"
	case tea.KeySpace:
		return "space"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	case tea.KeyDelete:
		return "delete"
	case tea.KeyShiftTab:
		return "shift+tab"
	case tea.KeyRunes:
		return string(key.Runes)
	default:
		return key.String()
	}
}

// KeyToString exports keyToString for cmd/kujo's event loop.
func KeyToString(key tea.KeyMsg) string { return keyToString(key) }
