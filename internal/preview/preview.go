// Package preview holds the per-tab preview pipeline state: what's being
// previewed, the rendered data for it, and the handle to cancel an
// in-flight preview computation (§3 Preview).
package preview

// Kind discriminates the PreviewData variants.
type Kind int

const (
	None Kind = iota
	Folder
	Text
	Image
)

// Lock identifies the file+mime a Preview's data currently corresponds
// to, so a late-arriving result for a since-abandoned hover can be
// recognized and dropped.
type Lock struct {
	Path string
	Mime string
}

// Data is the rendered preview payload. Exactly one of Text/CachePath is
// meaningful, selected by Kind; Folder previews reuse the hovered
// directory's own listing and carry no payload here.
type Data struct {
	Kind      Kind
	Text      string
	CachePath string
}

// Preview is a Tab's preview pipeline state.
type Preview struct {
	Lock   *Lock
	Data   Data
	cancel func()
}

// Abort cancels any in-flight preview computation and clears the lock,
// matching "handle is dropped whenever hovered file changes" (§3).
func (p *Preview) Abort() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.Lock = nil
	p.Data = Data{}
}

// Begin records the lock for a new in-flight computation and its cancel
// func, aborting any prior one first.
func (p *Preview) Begin(lock Lock, cancel func()) {
	p.Abort()
	p.Lock = &lock
	p.cancel = cancel
}

// Resolve applies a completed computation's result if its lock still
// matches the current one (i.e. the hover hasn't moved on since).
func (p *Preview) Resolve(lock Lock, data Data) bool {
	if p.Lock == nil || *p.Lock != lock {
		return false
	}
	p.Data = data
	p.cancel = nil
	return true
}
