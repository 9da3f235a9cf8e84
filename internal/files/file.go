// Package files implements the ordered file collection that backs every
// directory view: natural sort, hidden/filter partitioning, selection
// tracking and the revision counter that drives redraws.
package files

import (
	"os"
	"strings"
	"time"
)

// Metadata mirrors the subset of os.FileInfo kujo actually consults,
// captured once at listing time so sorting never re-stats the disk.
type Metadata struct {
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
}

// File is one entry in a directory listing.
type File struct {
	URL      string
	Meta     Metadata
	Length   *int64
	LinkTo   string
	IsLink   bool
	IsHidden bool
	selected bool
}

// FromInfo builds a File from a path and a stat result, classifying
// hidden-ness from the Unix dot-prefix convention (§3: "platform-defined
// elsewhere" — kujo's core only targets Unix).
func FromInfo(path string, info os.FileInfo, linkTo string) File {
	f := File{
		URL: path,
		Meta: Metadata{
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
			IsDir:   info.IsDir(),
		},
		LinkTo:   linkTo,
		IsLink:   linkTo != "",
		IsHidden: isHiddenName(baseName(path)),
	}
	if !info.IsDir() {
		n := info.Size()
		f.Length = &n
	}
	return f
}

// IsSelected reports the current selection state of the file.
func (f File) IsSelected() bool { return f.selected }

// IsDir reports whether the entry is a directory (following symlinks, since
// Meta is probed post-readlink per §4.1 "follows symlinks for meta").
func (f File) IsDir() bool { return f.Meta.IsDir }

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func baseName(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return path
	}
	return path[i+1:]
}
