package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kujo-fm/kujo/internal/config"
	"github.com/kujo-fm/kujo/internal/exec"
	"github.com/kujo-fm/kujo/internal/external"
	"github.com/kujo-fm/kujo/internal/files"
	"github.com/kujo-fm/kujo/internal/image"
	"github.com/kujo-fm/kujo/internal/input"
	"github.com/kujo-fm/kujo/internal/keymap"
	"github.com/kujo-fm/kujo/internal/manager"
	"github.com/kujo-fm/kujo/internal/overlay"
	"github.com/kujo-fm/kujo/internal/preview"
	"github.com/kujo-fm/kujo/internal/render"
	"github.com/kujo-fm/kujo/internal/scheduler"
	"github.com/kujo-fm/kujo/internal/tab"
	"github.com/kujo-fm/kujo/internal/watcher"
	"github.com/kujo-fm/kujo/internal/which"
	"github.com/kujo-fm/kujo/internal/workers"
)

// ErrMsg carries a command failure to the view layer (§7 "errors...
// surfaced as tea.Msg values"), matching the teacher's FileOpErrorMsg.
type ErrMsg struct{ Err error }

const cacheDirName = "kujo"

// Model is kujo's tea.Model: it owns every long-lived component and
// translates bubbletea messages into internal/exec.Executor calls plus
// its own housekeeping (watcher polling, progress polling, preview
// dispatch).
type Model struct {
	cfg    *config.Config
	log    *slog.Logger
	cx     *exec.Executor
	render *render.Manager

	manager   *manager.Manager
	scheduler *scheduler.Scheduler
	watch     *watcher.Watcher
	files     *workers.File
	precache  *workers.Precache
	process   *workers.Process
	preview   *preview.Dispatcher
	image     image.Renderer

	width, height int
	progress      scheduler.Progress
	lastErr       error
	quitting      bool
}

func newModel(cfg *config.Config, keymaps map[exec.Layer][]which.Binding, cwd string, log *slog.Logger) (*Model, error) {
	mgr := manager.New(cwd, tab.DefaultStat)
	if err := loadInto(mgr.Current(), cwd); err != nil {
		return nil, err
	}
	if mgr.Parent() != nil {
		_ = loadInto(mgr.Parent(), mgr.Parent().Cwd)
	}

	w, err := watcher.New()
	if err != nil {
		return nil, err
	}
	w.Watch(mgr.WatchSet())

	sch := scheduler.New()
	running := sch.Running()

	cacheDir := filepath.Join(os.TempDir(), cacheDirName)
	fileWorker := workers.NewFile(running, nil)
	precache := workers.NewPrecache(running, cacheDir, cfg.Yazi.Tasks.PrecacheW, cfg.Yazi.Tasks.PrecacheH, external.MimeType)
	process := workers.NewProcess(running, nil)

	var img image.Renderer = image.NewTermImg()
	if !img.Capable() {
		img = image.Noop()
	}

	dispatcher := preview.NewDispatcher(cfg.Theme.MarkdownTheme, cfg.Theme.SyntaxTheme, cacheDir, log)

	sel := overlay.NewSelect()
	help := overlay.NewHelp()
	tasks := overlay.NewTasks()
	in := input.New()

	cx := exec.New(mgr, sch, sel, help, tasks, in, fileWorker, keymaps)

	styles := render.NewStyles(render.DefaultPalette.Merge(render.Palette{
		Primary: cfg.Theme.Primary, Accent: cfg.Theme.Accent,
		Success: cfg.Theme.Success, Warning: cfg.Theme.Warning, Error: cfg.Theme.Error,
		TextPrimary: cfg.Theme.TextPrimary, TextMuted: cfg.Theme.TextMuted, TextSubtle: cfg.Theme.TextSubtle,
		BgPrimary: cfg.Theme.BgPrimary, BgSecondary: cfg.Theme.BgSecondary, BgTertiary: cfg.Theme.BgTertiary,
		BorderNormal: cfg.Theme.BorderNormal, BorderActive: cfg.Theme.BorderActive,
	}))

	return &Model{
		cfg:       cfg,
		log:       log,
		cx:        cx,
		render:    render.NewManager(styles),
		manager:   mgr,
		scheduler: sch,
		watch:     w,
		files:     fileWorker,
		precache:  precache,
		process:   process,
		preview:   dispatcher,
		image:     img,
	}, nil
}

// Close releases the watcher and worker pool; called once at shutdown.
func (m *Model) Close() {
	m.watch.Close()
	m.scheduler.Close()
}

// loadInto lists dir and installs the result as f's full listing —
// used for the initial load; refreshChanged does its own listing for a
// watcher-driven refresh.
func loadInto(f interface{ Update(func(*files.Files) bool) bool }, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	items := make([]files.File, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		ff, err := tab.DefaultStat(path)
		if err != nil {
			continue
		}
		items = append(items, ff)
	}
	f.Update(func(fs *files.Files) bool {
		fs.UpdateFull(items)
		return true
	})
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.watch), waitForProgress(m.scheduler), tickRender())
}

type changeMsg struct{ path string }
type progressMsg struct{ p scheduler.Progress }
type renderTickMsg struct{}

func waitForChange(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Changed()
		if !ok {
			return nil
		}
		return changeMsg{path: path}
	}
}

func waitForProgress(s *scheduler.Scheduler) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-s.Progress()
		if !ok {
			return nil
		}
		return progressMsg{p: p}
	}
}

func tickRender() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return renderTickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		key := keymap.KeyToString(msg)
		m.cx.Handle(key)
		if err := m.cx.TakeErr(); err != nil {
			m.lastErr = err
			m.log.Warn("command failed", "err", err)
		}
		if m.cx.Quit() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case changeMsg:
		m.refreshChanged(msg.path)
		return m, waitForChange(m.watch)

	case progressMsg:
		m.progress = msg.p
		return m, waitForProgress(m.scheduler)

	case renderTickMsg:
		m.reconcileWatch()
		return m, tickRender()

	case ErrMsg:
		m.lastErr = msg.Err
		return m, nil
	}
	return m, nil
}

// refreshChanged re-lists path and folds it into whichever folder(s)
// own it via Manager.UpdateFiles (§4.5's watcher->state pipeline).
func (m *Model) refreshChanged(path string) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return
	}
	items := make([]files.File, 0, len(entries))
	for _, e := range entries {
		p := filepath.Join(path, e.Name())
		f, err := tab.DefaultStat(p)
		if err != nil {
			continue
		}
		items = append(items, f)
	}
	m.manager.UpdateFiles(path, func(fs *files.Files) bool {
		fs.UpdateFull(items)
		return true
	})
}

// reconcileWatch recomputes the watch set and resolves any pending
// preview request, both of which can change after a redraw-worthy
// command (cd, enter, hover move) without their own dedicated message.
func (m *Model) reconcileWatch() {
	m.watch.Watch(m.manager.WatchSet())

	req, ok := m.manager.Preview(context.Background())
	if !ok || req.NeedsMime {
		return
	}
	data, err := m.preview.Render(req.Path, req.Mime, m.width/3)
	if err != nil {
		m.log.Debug("preview render failed", "path", req.Path, "err", err)
		return
	}
	m.manager.ResolvePreview(req.Path, req.Mime, data)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting kujo..."
	}

	colWidth := m.width / 3
	paneHeight := m.height - 2

	var b strings.Builder
	b.WriteString(m.render.TabBar(m.manager))
	b.WriteString("\n")

	left := m.render.Pane(m.manager.Parent(), colWidth, paneHeight, false)
	mid := m.render.Pane(m.manager.Current(), colWidth, paneHeight, true)
	b.WriteString(joinHorizontal(left, mid))
	b.WriteString("\n")

	sel := len(m.manager.Selected())
	b.WriteString(m.render.StatusBar(m.manager.Current().Cwd, sel, m.progress.Percent, m.progress.Left))

	if m.lastErr != nil {
		b.WriteString("\n" + m.lastErr.Error())
	}

	if cx := m.cx; cx.Help != nil && cx.Help.Visible {
		b.WriteString("\n")
	}
	return b.String()
}

// joinHorizontal pastes two already-rendered panes side by side.
func joinHorizontal(a, b string) string {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	n := len(al)
	if len(bl) > n {
		n = len(bl)
	}
	var out strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			out.WriteString("\n")
		}
		if i < len(al) {
			out.WriteString(al[i])
		}
		if i < len(bl) {
			out.WriteString(bl[i])
		}
	}
	return out.String()
}
