// Package external wraps the handful of subprocesses kujo shells out to
// rather than reimplementing (§1 "external search tools (fd/rg/fzf/
// zoxide — invoked as subprocesses, not reimplemented)"): fd/rg for
// search, fzf for fuzzy filtering, zoxide for frecency jumps, file(1)
// for mime detection, and $EDITOR for bulk rename. Every function here
// is a thin os/exec wrapper; none of it is business logic — callers
// (cmd/kujo hands MimeType to internal/workers.Precache; internal/exec
// calls BulkRename) own what happens with the output.
package external

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// MimeType shells out to `file -bL --mime-type` for each path and
// returns one mime string per input, in order, empty for anything file
// couldn't classify. This is the mimeDetect callback
// internal/workers.Precache expects.
func MimeType(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	if len(paths) == 0 {
		return out, nil
	}
	args := append([]string{"-bL", "--mime-type"}, paths...)
	cmd := exec.Command("file", args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		return out, fmt.Errorf("file --mime-type: %w", err)
	}
	sc := bufio.NewScanner(&buf)
	for i := 0; sc.Scan() && i < len(out); i++ {
		out[i] = strings.TrimSpace(sc.Text())
	}
	return out, nil
}

// Find runs `fd` rooted at dir matching pattern (a regex, fd's native
// pattern language), returning matched paths (§4.3 search). Nothing in
// kujo calls it; internal/tab's BeginSearch/StreamSearch take their
// results from the caller.
func Find(ctx context.Context, dir, pattern string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "fd", "--hidden", "--no-ignore-vcs", pattern, dir)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("fd: %w", err)
	}
	return splitLines(buf.String()), nil
}

// Grep runs `rg --files-with-matches` rooted at dir for pattern,
// returning matched file paths. Used for content search the same way
// Find is used for name search.
func Grep(ctx context.Context, dir, pattern string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "rg", "--hidden", "--files-with-matches", pattern, dir)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		// rg exits 1 when it finds nothing; that's not a failure.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("rg: %w", err)
	}
	return splitLines(buf.String()), nil
}

// Fuzzy filters candidates through fzf's filter mode (`--filter`), which
// fuzzy-matches query against stdin lines and prints the surviving ones
// in ranked order without opening fzf's own TUI.
func Fuzzy(query string, candidates []string) ([]string, error) {
	cmd := exec.Command("fzf", "--filter", query)
	cmd.Stdin = strings.NewReader(strings.Join(candidates, "\n"))
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("fzf: %w", err)
	}
	return splitLines(buf.String()), nil
}

// ZoxideAdd records a visited directory with zoxide so future jumps
// weight it by frecency.
func ZoxideAdd(path string) error {
	if err := exec.Command("zoxide", "add", path).Run(); err != nil {
		return fmt.Errorf("zoxide add: %w", err)
	}
	return nil
}

// ZoxideQuery asks zoxide for its best-matching directory for query,
// for a jump-to-directory command.
func ZoxideQuery(query string) (string, error) {
	cmd := exec.Command("zoxide", "query", query)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("zoxide query: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// EditFile opens path in $EDITOR (falling back to vi), blocking until
// the editor exits, inheriting the calling process's stdio so the
// editor gets the real terminal (§9 Supplemented features "Bulk
// rename"). The caller is expected to have already suspended the TUI's
// raw-mode rendering (internal/exec's CtrlSuspend/CtrlResume signal).
func EditFile(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("edit %s: %w", path, err)
	}
	return nil
}

// BulkRename writes one path per line to a temp file, opens it in
// $EDITOR via EditFile, then diffs the edited lines 1:1 against the
// original paths and returns the old->new mapping for every changed
// line. A line count mismatch (lines added or removed) aborts with an
// error rather than guessing at an alignment (§9 "mismatched line
// counts abort with a user error").
func BulkRename(paths []string) (map[string]string, error) {
	tmp, err := os.CreateTemp("", "kujo-bulk-rename-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create bulk rename scratch file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(paths, "\n") + "\n"); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write bulk rename scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close bulk rename scratch file: %w", err)
	}

	if err := EditFile(tmp.Name()); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("read bulk rename scratch file: %w", err)
	}
	lines := splitLines(string(edited))
	if len(lines) != len(paths) {
		return nil, fmt.Errorf("bulk rename: expected %d lines, got %d", len(paths), len(lines))
	}

	renames := make(map[string]string)
	for i, old := range paths {
		if lines[i] != old {
			renames[old] = lines[i]
		}
	}
	return renames, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
