// Command kujo is the terminal file manager's entrypoint: flag parsing,
// logging, config/keymap loading, and tea.Program startup, in the shape
// of the teacher's own cmd/sidecar/main.go.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kujo-fm/kujo/internal/config"
	"github.com/kujo-fm/kujo/internal/keymap"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = ""

var (
	configDir  = flag.String("config", "", "path to config directory (theme.toml, keymap.toml, yazi.toml)")
	cwdFile    = flag.String("cwd-file", "", "write the final working directory to this path on exit, for shell cd-on-quit integration")
	debugFlag  = flag.Bool("debug", false, "enable debug logging")
	versionFlg = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlg {
		fmt.Printf("kujo version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dir := *configDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve config dir: %v\n", err)
			os.Exit(1)
		}
		dir = d
	}

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	keymaps, err := keymap.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load keymap: %v\n", err)
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		os.Exit(1)
	}
	cwd, err = filepath.Abs(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve cwd: %v\n", err)
		os.Exit(1)
	}

	model, err := newModel(cfg, keymaps, cwd, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start kujo: %v\n", err)
		os.Exit(1)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "run kujo: %v\n", err)
		os.Exit(1)
	}

	if *cwdFile != "" {
		if m, ok := finalModel.(*Model); ok {
			if err := os.WriteFile(*cwdFile, []byte(m.manager.Current().Cwd), 0o644); err != nil {
				logger.Warn("write cwd-file failed", "err", err)
			}
		}
	}
}

// effectiveVersion falls back to the module's own build info (the
// VCS revision embedded by `go build`) when no ldflags version is set.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kujo [options]\n\nA terminal file manager.\n\nOptions:\n")
		flag.PrintDefaults()
	}
}
