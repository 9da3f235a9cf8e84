package exec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kujo-fm/kujo/internal/external"
	"github.com/kujo-fm/kujo/internal/input"
	"github.com/kujo-fm/kujo/internal/manager"
	"github.com/kujo-fm/kujo/internal/workers"
)

// defaultTables builds the per-layer command tables Handle dispatches
// into (§4.9 step 4). Names match what a keymap TOML entry's `exec`
// field names as its `cmd` (§6).
func defaultTables() map[Layer]map[string]Command {
	return map[Layer]map[string]Command{
		ManagerLayer: managerCommands(),
		TasksLayer:   tasksCommands(),
		SelectLayer:  selectCommands(),
	}
}

func managerCommands() map[string]Command {
	return map[string]Command{
		"arrow": func(cx *Executor, e Exec) bool {
			step := 1
			if len(e.Args) > 0 {
				step = atoi(e.Args[0], 1)
			}
			return cx.Manager.Active().Arrow(step)
		},
		"enter": func(cx *Executor, e Exec) bool { return cx.Manager.Active().Enter() },
		"leave": func(cx *Executor, e Exec) bool { return cx.Manager.Active().Leave() },
		"cd": func(cx *Executor, e Exec) bool {
			if len(e.Args) == 0 {
				return false
			}
			return cx.Manager.Active().Cd(e.Args[0])
		},
		"visual_mode": func(cx *Executor, e Exec) bool {
			return cx.Manager.Active().VisualMode(e.Named["unset"] == "true")
		},
		"select": func(cx *Executor, e Exec) bool { return cx.Manager.Active().Select(nil) },
		"select_all": func(cx *Executor, e Exec) bool {
			return cx.Manager.Active().SelectAll(nil)
		},
		"escape": func(cx *Executor, e Exec) bool { return cx.Manager.Active().Escape() },
		"yank": func(cx *Executor, e Exec) bool {
			cx.Manager.Yank(e.Named["cut"] == "true")
			return false
		},
		"paste": func(cx *Executor, e Exec) bool {
			jobs := cx.Manager.Paste(e.Named["force"] == "true")
			for _, j := range jobs {
				job := j
				var hook func(cancelled bool)
				if job.Cut {
					hook = func(cancelled bool) {
						if !cancelled {
							workers.RemoveEmptyDirs(job.Src)
						}
					}
				}
				cx.Scheduler.Spawn("paste", hook, func(id uint64) {
					dest := filepath.Join(job.Dest, filepath.Base(job.Src))
					if err := cx.Files.Paste(id, job.Src, dest, job.Cut, false); err != nil {
						cx.Scheduler.Running().Log(id, err.Error())
					}
				})
			}
			return len(jobs) > 0
		},
		"remove": func(cx *Executor, e Exec) bool {
			jobs := cx.Manager.Remove(e.Named["permanently"] == "true")
			for _, j := range jobs {
				job := j
				cx.Scheduler.Spawn("remove", nil, func(id uint64) {
					var err error
					if job.Permanently {
						err = cx.Files.Delete(id, job.Path)
					} else {
						err = cx.Files.Trash(id, job.Path)
					}
					if err != nil {
						cx.Scheduler.Running().Log(id, err.Error())
					}
				})
			}
			return len(jobs) > 0
		},
		"create": func(cx *Executor, e Exec) bool {
			plan := cx.Manager.Create()
			cwd := cx.Manager.Active().Current.Cwd
			cx.Input.Show(input.Opt{Title: plan.Prompt}, func(value string, ok bool) {
				if !ok || value == "" {
					return
				}
				_, err := manager.ApplyCreate(cwd, value, func(p string) error {
					return os.MkdirAll(p, 0o755)
				}, func(p string) error {
					f, err := os.Create(p)
					if err != nil {
						return err
					}
					return f.Close()
				})
				if err != nil {
					cx.setErr(fmt.Errorf("create %s: %w", value, err))
				}
				cx.RequestRender()
			})
			return true
		},
		"rename": func(cx *Executor, e Exec) bool {
			plan, bulk, ok := cx.Manager.Rename()
			if !ok {
				return false
			}
			if bulk {
				return cx.runBulkRename()
			}
			target := plan.Target
			cx.Input.Show(input.Opt{Title: plan.Prompt, Value: plan.Prefill}, func(value string, ok bool) {
				if !ok || value == "" || value == plan.Prefill {
					return
				}
				cx.Scheduler.Spawn("rename", nil, func(id uint64) {
					dest, err := manager.ApplyRename(target, value, os.Rename)
					if err != nil {
						cx.Scheduler.Running().Log(id, err.Error())
						return
					}
					_ = dest
				})
				cx.RequestRender()
			})
			return true
		},
		"tab_create": func(cx *Executor, e Exec) bool {
			return cx.Manager.CreateTab(cx.Manager.Active().Current.Cwd)
		},
		"tab_switch": func(cx *Executor, e Exec) bool {
			idx := atoi(firstArg(e), 0)
			return cx.Manager.Tabs.Switch(idx, e.Named["rel"] == "true")
		},
		"tab_swap": func(cx *Executor, e Exec) bool {
			return cx.Manager.Tabs.Swap(atoi(firstArg(e), 0))
		},
		"tab_close": func(cx *Executor, e Exec) bool {
			return cx.Manager.Tabs.Close(cx.Manager.Tabs.Idx())
		},
		"toggle_help":  func(cx *Executor, e Exec) bool { return cx.Help.Toggle(cx.helpEntries()) },
		"toggle_tasks": func(cx *Executor, e Exec) bool { return cx.Tasks.Toggle(cx.Scheduler.Running().Snapshot()) },
		"quit": func(cx *Executor, e Exec) bool { cx.quit = true; return true },
	}
}

func tasksCommands() map[string]Command {
	return map[string]Command{
		"escape": func(cx *Executor, e Exec) bool { cx.Tasks.Close(); return true },
		"arrow": func(cx *Executor, e Exec) bool {
			cx.Tasks.Move(atoi(firstArg(e), 1))
			return true
		},
		"cancel": func(cx *Executor, e Exec) bool {
			row, ok := cx.Tasks.Selected()
			if !ok {
				return false
			}
			cx.Scheduler.Cancel(row.ID)
			cx.Tasks.Refresh(cx.Scheduler.Running().Snapshot())
			return true
		},
	}
}

func selectCommands() map[string]Command {
	return map[string]Command{
		"escape": func(cx *Executor, e Exec) bool { cx.Select.Cancel(); return true },
		"arrow": func(cx *Executor, e Exec) bool {
			cx.Select.Move(atoi(firstArg(e), 1))
			return true
		},
		"confirm": func(cx *Executor, e Exec) bool { return cx.Select.Confirm() },
	}
}

func firstArg(e Exec) string {
	if len(e.Args) == 0 {
		return ""
	}
	return e.Args[0]
}

// runBulkRename collects the current selection and hands it to
// external.BulkRename, which shells out to $EDITOR and returns the
// old->new mapping for every changed line (§9 Supplemented features
// "Bulk rename"). This blocks the calling goroutine for as long as the
// editor is open. No CtrlSuspend/CtrlResume signal is sent around it:
// cmd/kujo calls Handle directly, so bubbletea keeps the terminal while
// the editor runs.
func (cx *Executor) runBulkRename() bool {
	paths := cx.Manager.Selected()
	if len(paths) == 0 {
		return false
	}
	names := make([]string, len(paths))
	for i, f := range paths {
		names[i] = f.URL
	}
	renames, err := external.BulkRename(names)
	if err != nil {
		cx.setErr(fmt.Errorf("bulk rename: %w", err))
		return true
	}
	for old, replacement := range renames {
		old, replacement := old, replacement
		cx.Scheduler.Spawn("rename", nil, func(id uint64) {
			if _, err := manager.ApplyRename(old, filepath.Base(replacement), os.Rename); err != nil {
				cx.Scheduler.Running().Log(id, err.Error())
			}
		})
	}
	return true
}
