package files

import (
	"sort"
	"time"
)

// SortBy selects the comparison key used by a Sorter.
type SortBy int

const (
	SortNone SortBy = iota
	SortAlphabetical
	SortNatural
	SortCreated
	SortModified
	SortSize
)

// Sorter configures Files.sort (§4.1). dirFirst groups directories ahead
// of files before any other comparison is applied; reverse flips the whole
// ordering after that grouping, not before it.
type Sorter struct {
	By        SortBy
	Reverse   bool
	DirFirst  bool
	Sensitive bool
}

// less implements the total order described in §4.1: dir-first grouping,
// then the configured key, then a path tiebreak, then reverse.
func (s Sorter) less(a, b File) bool {
	if s.DirFirst && a.IsDir() != b.IsDir() {
		return a.IsDir()
	}

	cmp := s.compareKey(a, b)
	if cmp == 0 {
		cmp = NatCompare(a.URL, b.URL, s.Sensitive == false)
	}
	if s.Reverse {
		return cmp > 0
	}
	return cmp < 0
}

func (s Sorter) compareKey(a, b File) int {
	switch s.By {
	case SortAlphabetical:
		if s.Sensitive {
			return byteCompare(baseName(a.URL), baseName(b.URL))
		}
		return byteCompare(lowerStr(baseName(a.URL)), lowerStr(baseName(b.URL)))
	case SortNatural:
		return NatCompare(baseName(a.URL), baseName(b.URL), !s.Sensitive)
	case SortCreated:
		// Birth time isn't available cross-platform via os.FileInfo; fall
		// back to ModTime, matching the original's behavior when the
		// platform metadata call fails (ties compare equal).
		return timeCompare(a.Meta.ModTime, b.Meta.ModTime)
	case SortModified:
		return timeCompare(a.Meta.ModTime, b.Meta.ModTime)
	case SortSize:
		return sizeCompare(a, b)
	default:
		return 0
	}
}

func sizeCompare(a, b File) int {
	var as, bs int64
	if a.Length != nil {
		as = *a.Length
	}
	if b.Length != nil {
		bs = *b.Length
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func timeCompare(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func byteCompare(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func lowerStr(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = lower(s[i])
	}
	return string(out)
}

// sortFiles sorts a slice of File in place per Sorter's ordering.
func sortFiles(items []File, s Sorter) {
	sort.SliceStable(items, func(i, j int) bool { return s.less(items[i], items[j]) })
}
