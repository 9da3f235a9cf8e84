// Package config decodes kujo's three TOML configuration files —
// theme.toml, keymap.toml, yazi.toml (§6, §AMBIENT "Configuration") —
// from the user's config directory. keymap.toml's own decode lives in
// internal/keymap, which also does the chord-string parsing; this
// package owns theme.toml and yazi.toml (manager/preview/tasks
// settings) plus locating the config directory itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
)

// Theme is theme.toml's decoded shape: a color palette plus the two
// third-party style names chroma/glamour select by (§DOMAIN STACK).
type Theme struct {
	Primary string `toml:"primary"`
	Accent  string `toml:"accent"`

	Success string `toml:"success"`
	Warning string `toml:"warning"`
	Error   string `toml:"error"`

	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	TextSubtle  string `toml:"text_subtle"`

	BgPrimary   string `toml:"bg_primary"`
	BgSecondary string `toml:"bg_secondary"`
	BgTertiary  string `toml:"bg_tertiary"`

	BorderNormal string `toml:"border_normal"`
	BorderActive string `toml:"border_active"`

	SyntaxTheme   string `toml:"syntax_theme"`
	MarkdownTheme string `toml:"markdown_theme"`
}

// OpenerRule is one entry in yazi.toml's `[[opener]]` list: which mime
// glob it matches, and the command line to run, expressed in the
// original's own substitution grammar (§"Opener spread semantics"):
// `$0`..`$9` are positional args, `$*` is every matched file, `spread`
// picks one-invocation-per-file vs one-invocation-with-all-files, and
// `block` marks an opener that must hold the BLOCKER semaphore
// (internal/workers.Process) because it takes over the terminal.
type OpenerRule struct {
	Mime   string `toml:"mime"`
	Cmd    string `toml:"cmd"`
	Args   []string `toml:"args"`
	Spread bool   `toml:"spread"`
	Block  bool   `toml:"block"`
}

// Expand substitutes $0..$9 and $* in Args against files, returning the
// argument list for one invocation. If Spread is false, files should be
// exactly one path (the caller invokes once per file); if true, files
// is the full matched set and $* expands to all of them.
func (o OpenerRule) Expand(files []string) []string {
	out := make([]string, 0, len(o.Args))
	for _, a := range o.Args {
		switch {
		case a == "$*":
			out = append(out, files...)
		case len(a) == 2 && a[0] == '$' && a[1] >= '0' && a[1] <= '9':
			idx := int(a[1] - '0')
			if idx < len(files) {
				out = append(out, files[idx])
			}
		default:
			out = append(out, a)
		}
	}
	return out
}

// Tasks is yazi.toml's `[tasks]` table: worker pool sizing and the
// bizarre-retry errno allowlist (§"Bizarre retry set").
type Tasks struct {
	PoolSize     int      `toml:"pool_size"`
	RetryErrnos  []string `toml:"retry_errnos"`
	PrecacheW    uint     `toml:"precache_width"`
	PrecacheH    uint     `toml:"precache_height"`
}

// defaultRetryErrnoNames is the original's hardcoded bizarre-retry list
// (EINTR, ENOATTR, EPERM in some sandboxes), used when yazi.toml omits
// `tasks.retry_errnos`.
var defaultRetryErrnoNames = []string{"EINTR", "ENOATTR", "EPERM"}

// RetryErrnoSet resolves Tasks.RetryErrnos (or the default list) to
// syscall.Errno values, the set shape internal/scheduler.Retryable takes.
// Nothing in kujo calls it; workers do not retry failed operations.
func (t Tasks) RetryErrnoSet() []syscall.Errno {
	names := t.RetryErrnos
	if len(names) == 0 {
		names = defaultRetryErrnoNames
	}
	out := make([]syscall.Errno, 0, len(names))
	for _, n := range names {
		if e, ok := errnoByName[strings.ToUpper(n)]; ok {
			out = append(out, e)
		}
	}
	return out
}

var errnoByName = map[string]syscall.Errno{
	"EINTR":  syscall.EINTR,
	"ENOATTR": syscall.ENODATA,
	"EPERM":  syscall.EPERM,
	"EAGAIN": syscall.EAGAIN,
	"EBUSY":  syscall.EBUSY,
}

// Yazi is yazi.toml's root shape: manager/preview/tasks settings plus
// the opener table, named after the original's own config file the
// distilled spec borrows the schema from.
type Yazi struct {
	Openers []OpenerRule `toml:"opener"`
	Tasks   Tasks        `toml:"tasks"`

	MaxHistory     int `toml:"max_history"`
	ViewportMargin int `toml:"viewport_margin"`
}

// Config is everything kujo decodes at startup, minus keymap.toml
// (internal/keymap.Load owns that file directly).
type Config struct {
	Dir   string
	Theme Theme
	Yazi  Yazi
}

// Default returns hardcoded fallbacks for every file missing from Dir,
// matching the teacher's own Config.Default pattern.
func Default() *Config {
	return &Config{
		Theme: Theme{
			Primary: "#7C3AED", Accent: "#F59E0B",
			Success: "#10B981", Warning: "#F59E0B", Error: "#EF4444",
			TextPrimary: "#F9FAFB", TextMuted: "#6B7280", TextSubtle: "#4B5563",
			BgPrimary: "#111827", BgSecondary: "#1F2937", BgTertiary: "#374151",
			BorderNormal: "#374151", BorderActive: "#7C3AED",
			SyntaxTheme: "monokai", MarkdownTheme: "dark",
		},
		Yazi: Yazi{
			Tasks:          Tasks{PoolSize: 10, PrecacheW: 600, PrecacheH: 600},
			MaxHistory:     200,
			ViewportMargin: 5,
		},
	}
}

// Dir locates kujo's config directory: $XDG_CONFIG_HOME/kujo, falling
// back to os.UserConfigDir()/kujo, matching the teacher's
// config.ConfigPath() layout.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kujo"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "kujo"), nil
}

// Load reads theme.toml and yazi.toml from dir, falling back to
// Default()'s values for any file that doesn't exist. A malformed file
// that does exist is a hard error (§7: fatal startup failures).
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.Dir = dir

	if err := decodeInto(filepath.Join(dir, "theme.toml"), &cfg.Theme); err != nil {
		return nil, err
	}
	if err := decodeInto(filepath.Join(dir, "yazi.toml"), &cfg.Yazi); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeInto(path string, v any) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// expandHome expands a leading "~" to the user's home directory, the
// same small helper the teacher's config package carries for path
// fields a user might type by hand.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
