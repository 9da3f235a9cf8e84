package exec

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kujo-fm/kujo/internal/files"
	"github.com/kujo-fm/kujo/internal/input"
	"github.com/kujo-fm/kujo/internal/manager"
	"github.com/kujo-fm/kujo/internal/overlay"
	"github.com/kujo-fm/kujo/internal/scheduler"
	"github.com/kujo-fm/kujo/internal/which"
	"github.com/kujo-fm/kujo/internal/workers"
)

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() interface{}   { return nil }

func noopStat(path string) (files.File, error) { return files.File{}, os.ErrNotExist }

func newTestExecutor(t *testing.T, keymaps map[Layer][]which.Binding) *Executor {
	t.Helper()
	m := manager.New("/root", noopStat)
	items := make([]files.File, 3)
	for i := range items {
		name := fmt.Sprintf("/root/f%02d", i)
		items[i] = files.FromInfo(name, fakeInfo{name: fmt.Sprintf("f%02d", i)}, "")
	}
	m.Current().Files.UpdateFull(items)
	m.Current().SetViewportHeight(10)

	sch := scheduler.New()
	t.Cleanup(sch.Close)

	return New(m, sch, overlay.NewSelect(), overlay.NewHelp(), overlay.NewTasks(), input.New(), workers.NewFile(sch.Running(), nil), keymaps)
}

func TestExecutor_ActiveLayer_PrefersWhichOverEverything(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		ManagerLayer: {{Chord: []string{"g", "g"}, Exec: "cd /root"}},
	})
	cx.Handle("g")
	if cx.activeLayer() != WhichLayer {
		t.Fatalf("expected Which to take priority once a chord is in progress")
	}
}

func TestExecutor_Handle_DispatchesSingleKeyBinding(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		ManagerLayer: {{Chord: []string{"j"}, Exec: "arrow 1"}},
	})
	before := cx.Manager.Active().Current.Cursor()
	redraw := cx.Handle("j")
	if !redraw {
		t.Fatalf("expected arrow to report redraw")
	}
	if cx.Manager.Active().Current.Cursor() != before+1 {
		t.Fatalf("expected cursor to move forward by one")
	}
}

func TestExecutor_Handle_MultiKeyChordNarrowsThenDispatches(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		ManagerLayer: {
			{Chord: []string{"g", "g"}, Exec: "arrow -99"},
			{Chord: []string{"g", "e"}, Exec: "arrow 99"},
		},
	})
	cx.Manager.Active().Arrow(1)

	if redraw := cx.Handle("g"); redraw {
		t.Fatalf("expected opening a chord to not redraw by itself")
	}
	if !cx.Which.Active() {
		t.Fatalf("expected the which resolver to be mid-chord after 'g'")
	}
	cx.Handle("e")
	if cx.Manager.Active().Current.Cursor() != 2 {
		t.Fatalf("expected the cursor clamped to the last row, got %d", cx.Manager.Active().Current.Cursor())
	}
}

func TestExecutor_Handle_DeadEndChordCancelsQuietly(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		ManagerLayer: {{Chord: []string{"g", "g"}, Exec: "arrow 1"}},
	})
	cx.Handle("g")
	cx.Handle("z")
	if cx.Which.Active() {
		t.Fatalf("expected the chord to be cancelled after a non-matching keystroke")
	}
}

func TestExecutor_Handle_InputLayerConsumesPrintableFirst(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		ManagerLayer: {{Chord: []string{"x"}, Exec: "quit"}},
	})
	cx.Input.Show(input.Opt{Title: "Rename:"}, func(string, bool) {})
	cx.Handle("x")
	if cx.Input.Value() != "x" {
		t.Fatalf("expected 'x' typed into the input rather than dispatched as a manager command, got %q", cx.Input.Value())
	}
}

func TestExecutor_Handle_SelectLayerConfirms(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		SelectLayer: {{Chord: []string{"enter"}, Exec: "confirm"}},
	})
	var gotIdx int
	var gotOk bool
	cx.Select.Show("Open with", []overlay.Option{{Title: "vim"}, {Title: "less"}}, func(idx int, ok bool) {
		gotIdx, gotOk = idx, ok
	})
	cx.Handle("enter")
	if !gotOk || gotIdx != 0 {
		t.Fatalf("expected confirm to report idx=0 ok=true, got idx=%d ok=%v", gotIdx, gotOk)
	}
}

func TestExecutor_TakeRender_CoalescesMultipleChanges(t *testing.T) {
	cx := newTestExecutor(t, map[Layer][]which.Binding{
		ManagerLayer: {{Chord: []string{"j"}, Exec: "arrow 1"}},
	})
	cx.Handle("j")
	cx.Handle("j")
	if !cx.TakeRender() {
		t.Fatalf("expected a render pending after two state changes")
	}
	if cx.TakeRender() {
		t.Fatalf("expected TakeRender to drain the flag, collapsing repeated renders into one")
	}
}

func TestParseExec_SplitsCmdArgsAndNamedFlags(t *testing.T) {
	e := ParseExec("paste --force arg1")
	if e.Cmd != "paste" || len(e.Args) != 1 || e.Args[0] != "arg1" || e.Named["force"] != "true" {
		t.Fatalf("unexpected parse result: %+v", e)
	}
}

func TestParseExec_NamedFlagWithValue(t *testing.T) {
	e := ParseExec("cd --path=/tmp")
	if e.Named["path"] != "/tmp" {
		t.Fatalf("expected named flag value parsed, got %+v", e.Named)
	}
}
