package workers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// freedesktopTrash implements the XDG trash spec's simplest case
// (files/$basename + a matching .trashinfo record under
// ~/.local/share/Trash) as the default Trash backend. No Go library in
// the retrieval pack wraps platform trash APIs (the original uses
// Rust's `trash` crate, which has no Go analogue here), so this is
// stdlib-only by necessity — see DESIGN.md.
func freedesktopTrash(path string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	root := filepath.Join(home, ".local", "share", "Trash")
	filesDir := filepath.Join(root, "files")
	infoDir := filepath.Join(root, "info")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return err
	}
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return err
	}

	base := filepath.Base(path)
	dest := filepath.Join(filesDir, base)
	info := filepath.Join(infoDir, base+".trashinfo")
	for n := 1; ; n++ {
		if _, err := os.Lstat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(filesDir, fmt.Sprintf("%s.%d", base, n))
		info = filepath.Join(infoDir, fmt.Sprintf("%s.%d.trashinfo", base, n))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n", abs, time.Now().Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(info, []byte(content), 0o600); err != nil {
		return err
	}
	return os.Rename(path, dest)
}
