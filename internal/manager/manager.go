// Package manager implements per-tab navigation, the yank register, the
// mimetype cache, watch-set computation, and preview dispatch (§4.4 Manager).
package manager

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/kujo-fm/kujo/internal/files"
	"github.com/kujo-fm/kujo/internal/folder"
	"github.com/kujo-fm/kujo/internal/preview"
	"github.com/kujo-fm/kujo/internal/tab"
)

// MimeDir is the sentinel mime string used for directories, matching
// every opener/preview rule keyed by mimetype.
const MimeDir = "inode/directory"

// Yank is the single global cut/copy register.
type Yank struct {
	Cut   bool
	Paths map[string]bool
}

// Manager owns every open Tab, the yank register and the resolved-mimetype
// cache. It computes the set of directories to watch (WatchSet); the
// watcher itself is owned by cmd/kujo.
type Manager struct {
	Tabs     *Tabs
	Yanked   Yank
	Mimetype map[string]string

	stat         tab.Stat
	clipboardSet func(string) error
}

// New creates a Manager with a single tab rooted at cwd.
func New(cwd string, stat tab.Stat) *Manager {
	return &Manager{
		Tabs:         newTabs(cwd, stat),
		Yanked:       Yank{Paths: make(map[string]bool)},
		Mimetype:     make(map[string]string),
		stat:         stat,
		clipboardSet: clipboard.WriteAll,
	}
}

// CreateTab opens a new tab at path using the same Stat every other
// tab was built with, focusing it (§4.4 "tab_create").
func (m *Manager) CreateTab(path string) bool { return m.Tabs.Create(path, m.stat) }

func (m *Manager) Active() *tab.Tab        { return m.Tabs.Active() }
func (m *Manager) Current() *folder.Folder { return m.Active().Current }
func (m *Manager) Parent() *folder.Folder  { return m.Active().Parent }

func (m *Manager) Hovered() (files.File, bool) { return m.Current().Hovered() }

// WatchSet computes the union of every tab's cwd, parent cwd, and
// hovered directory — the exact set the Watcher should track (§4.5).
func (m *Manager) WatchSet() map[string]bool {
	set := make(map[string]bool)
	for _, tb := range m.Tabs.All() {
		set[tb.Current.Cwd] = true
		if tb.Parent != nil {
			set[tb.Parent.Cwd] = true
		}
		if h, ok := tb.Current.Hovered(); ok && h.IsDir() {
			set[h.URL] = true
		}
	}
	return set
}

// Selected returns the active tab's selection, falling back to the
// hovered file alone when nothing is explicitly selected (§4.4).
func (m *Manager) Selected() []files.File {
	fs := m.Current().Files
	sel := fs.Selected()
	if len(sel) == 0 {
		if h, ok := m.Hovered(); ok {
			return []files.File{h}
		}
		return nil
	}
	out := make([]files.File, 0, len(sel))
	for _, path := range sel {
		if idx := fs.Position(path); idx >= 0 {
			if f, ok := fs.Get(idx); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// InSelecting reports whether there is an active visual-mode session or
// any file is explicitly selected (§4.4's "in_selecting").
func (m *Manager) InSelecting() bool {
	return m.Active().ModeState.Kind != tab.Normal || len(m.Current().Files.Selected()) > 0
}

// Yank snapshots the current selection into the register, and mirrors
// the paths (newline-joined) onto the system clipboard so a paste into
// another program picks up the same selection (§5 "Clipboard" shared
// resource — the register is the source of truth inside kujo, the
// system clipboard is a best-effort mirror for the world outside it).
func (m *Manager) Yank(cut bool) bool {
	m.Yanked.Cut = cut
	m.Yanked.Paths = make(map[string]bool)
	paths := make([]string, 0, len(m.Selected()))
	for _, f := range m.Selected() {
		m.Yanked.Paths[f.URL] = true
		paths = append(paths, f.URL)
	}
	if m.clipboardSet != nil {
		m.clipboardSet(strings.Join(paths, "\n"))
	}
	return false
}

// PasteJob describes one source->destination copy/move the caller
// (internal/workers) should schedule.
type PasteJob struct {
	Src  string
	Dest string
	Cut  bool
}

// Paste builds the set of jobs to schedule for the current yank
// register against the active cwd, skipping no-op self-copies unless
// force is set (§4.4 "paste(force, follow)").
func (m *Manager) Paste(force bool) []PasteJob {
	dest := m.Current().Cwd
	jobs := make([]PasteJob, 0, len(m.Yanked.Paths))
	for src := range m.Yanked.Paths {
		if !force && filepath.Dir(src) == dest {
			continue
		}
		jobs = append(jobs, PasteJob{Src: src, Dest: dest, Cut: m.Yanked.Cut})
	}
	return jobs
}

// RemoveJob describes one path to delete, permanently or to trash.
type RemoveJob struct {
	Path        string
	Permanently bool
}

// Remove builds the removal jobs for the current selection.
func (m *Manager) Remove(permanently bool) []RemoveJob {
	sel := m.Selected()
	jobs := make([]RemoveJob, 0, len(sel))
	for _, f := range sel {
		jobs = append(jobs, RemoveJob{Path: f.URL, Permanently: permanently})
	}
	return jobs
}

// OpenFile pairs a selected path with its resolved mimetype, if known.
type OpenFile struct {
	Path string
	Mime string
}

// Open gathers the selected files and whatever mimes are already cached;
// the returned needMime slice lists paths the caller must resolve (via
// `file -bL --mime-type`) before an opener can be chosen, and can record
// in the cache with UpdateMimetype.
func (m *Manager) Open() (known []OpenFile, needMime []string) {
	for _, f := range m.Selected() {
		if f.IsDir() {
			known = append(known, OpenFile{Path: f.URL, Mime: MimeDir})
			continue
		}
		if mime, ok := m.Mimetype[f.URL]; ok {
			known = append(known, OpenFile{Path: f.URL, Mime: mime})
			continue
		}
		needMime = append(needMime, f.URL)
	}
	return known, needMime
}

// CreatePlan is what Manager.Create asks the exec layer to prompt for;
// ApplyCreate finishes the job once the user answers.
type CreatePlan struct{ Prompt string }

func (m *Manager) Create() CreatePlan { return CreatePlan{Prompt: "Create:"} }

// ApplyCreate resolves name against the active cwd: a trailing slash
// creates a directory, otherwise it creates parent directories and an
// empty file. Returns the path that should become hovered.
func ApplyCreate(cwd, name string, mkdirAll func(string) error, createFile func(string) error) (string, error) {
	path := filepath.Join(cwd, name)
	if len(name) > 0 && name[len(name)-1] == '/' {
		return path, mkdirAll(path)
	}
	if err := mkdirAll(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, createFile(path)
}

// RenamePlan is what Manager.Rename asks the exec layer to prompt for.
type RenamePlan struct {
	Prompt  string
	Prefill string
	Target  string
}

// Rename prepares a rename prompt for the hovered file, or reports that
// bulk rename should run instead when multiple files are selected
// (§4.4: "if multiple selected, fall through to bulk-rename").
func (m *Manager) Rename() (plan RenamePlan, bulk bool, ok bool) {
	if m.InSelecting() && len(m.Current().Files.Selected()) > 1 {
		return RenamePlan{}, true, true
	}
	h, has := m.Hovered()
	if !has {
		return RenamePlan{}, false, false
	}
	return RenamePlan{Prompt: "Rename:", Prefill: filepath.Base(h.URL), Target: h.URL}, false, true
}

// ApplyRename resolves a new name against target's parent directory and
// renames it with the given rename func, returning the destination path
// on success. There is no EXDEV copy fallback here: internal/exec passes
// os.Rename, so a cross-device rename fails with its error.
func ApplyRename(target, name string, rename func(from, to string) error) (string, error) {
	dest := filepath.Join(filepath.Dir(target), name)
	if err := rename(target, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// UpdateFiles routes a Files mutation to whichever folder owns path:
// the current folder, the parent folder, or a history entry — then
// re-anchors the hover to whatever was hovered before, per §4.4
// "update_files... after update, re-anchor hovered".
func (m *Manager) UpdateFiles(path string, apply func(*files.Files) bool) bool {
	active := m.Active()
	cur := active.Current
	hoveredBefore, hadHover := cur.Hovered()

	var changed bool
	switch {
	case cur.Cwd == path && !cur.InSearch:
		changed = cur.Update(apply)
	case active.Parent != nil && active.Parent.Cwd == path:
		changed = active.Parent.Update(apply)
	default:
		fd, ok := active.History[path]
		if !ok {
			fd = folder.New(path)
			active.History[path] = fd
		}
		fd.Update(apply)
		changed = hadHover && hoveredBefore.URL == path
	}

	if active.Parent != nil {
		changed = active.Parent.Hover(cur.Cwd) || changed
	}
	if hadHover {
		changed = cur.Hover(hoveredBefore.URL) || changed
	}
	return changed
}

// UpdateMimetype merges newly resolved mimes into the cache, returning
// the subset that actually changed (for the caller to hand to the
// precache workers) and whether anything changed at all.
func (m *Manager) UpdateMimetype(mimes map[string]string) (changed map[string]string, any bool) {
	changed = make(map[string]string)
	for path, mime := range mimes {
		if m.Mimetype[path] != mime {
			changed[path] = mime
		}
	}
	if len(changed) == 0 {
		return changed, false
	}
	for path, mime := range changed {
		m.Mimetype[path] = mime
	}
	return changed, true
}

// PreviewRequest tells the caller what preview computation to run for
// the hovered file; IsDir/Mime/NeedsMime decide the dispatch per §4.4's preview
// contract.
type PreviewRequest struct {
	Ctx       context.Context
	Path      string
	Mime      string
	IsDir     bool
	NeedsMime bool
}

// Preview decides what the hovered file needs previewed, aborting any
// stale in-flight computation first (the handle is dropped whenever
// hover changes, per §3 lifecycle).
func (m *Manager) Preview(ctx context.Context) (PreviewRequest, bool) {
	active := m.Active()
	h, ok := m.Hovered()
	if !ok {
		active.Preview.Abort()
		return PreviewRequest{}, false
	}

	if h.IsDir() {
		active.Preview.Begin(preview.Lock{Path: h.URL, Mime: MimeDir}, func() {})
		return PreviewRequest{Path: h.URL, Mime: MimeDir, IsDir: true}, true
	}

	if mime, ok := m.Mimetype[h.URL]; ok {
		cctx, cancel := context.WithCancel(ctx)
		active.Preview.Begin(preview.Lock{Path: h.URL, Mime: mime}, cancel)
		return PreviewRequest{Ctx: cctx, Path: h.URL, Mime: mime}, true
	}

	return PreviewRequest{Ctx: ctx, Path: h.URL, NeedsMime: true}, true
}

// ResolvePreview applies a completed preview computation if the hover
// hasn't moved on since it was requested.
func (m *Manager) ResolvePreview(path, mime string, data preview.Data) bool {
	return m.Active().Preview.Resolve(preview.Lock{Path: path, Mime: mime}, data)
}
