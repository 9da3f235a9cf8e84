package exec

import "strings"

// Exec is one parsed command invocation from a keymap entry (§6 Config
// files: "`exec` tokenized into `cmd`, positional `args`, and `named`
// flags (`--k=v` or `--k`)").
type Exec struct {
	Cmd   string
	Args  []string
	Named map[string]string
}

// ParseExec tokenizes a raw `exec` string from a keymap TOML entry
// (e.g. "paste --force arg") into its command name, positional
// arguments, and named flags. A bare `--flag` (no `=`) maps to "true".
func ParseExec(raw string) Exec {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Exec{}
	}
	e := Exec{Cmd: fields[0], Named: make(map[string]string)}
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "--") {
			flag := strings.TrimPrefix(f, "--")
			if k, v, ok := strings.Cut(flag, "="); ok {
				e.Named[k] = v
			} else {
				e.Named[flag] = "true"
			}
			continue
		}
		e.Args = append(e.Args, f)
	}
	return e
}

// Command is one named, layer-scoped action. It returns whether
// anything changed that needs a re-render (§4.9 Dispatch: "the OR of
// returned redraw flags determines whether a render tick is
// enqueued").
type Command func(cx *Executor, e Exec) bool

// runDispatch executes every cmd in cmds against table, OR-ing their redraw
// results — the direct port of §4.9's Dispatch semantics. Unknown
// command names are silently skipped (the original tolerates a stale
// user keymap entry the same way).
func runDispatch(table map[string]Command, cx *Executor, cmds []Exec) bool {
	redraw := false
	for _, e := range cmds {
		if fn, ok := table[e.Cmd]; ok {
			if fn(cx, e) {
				redraw = true
			}
		}
	}
	return redraw
}
