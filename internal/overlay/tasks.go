package overlay

// TaskSummary is the read-only projection of a running task the
// overlay needs to render a row and let the user cancel it — decoupled
// from internal/scheduler's own Task/Running types so this package has
// no dependency on the scheduler.
type TaskSummary struct {
	ID    uint64
	Name  string
	Found int
	Done  int
}

// Tasks is the toggleable running-task listing (§2 "Tasks-UI"): arrow
// scroll over the Running table's current snapshot, with a cancel
// command for the highlighted row.
type Tasks struct {
	Visible bool
	rows    []TaskSummary

	scroller
}

// NewTasks constructs a Tasks overlay with a reasonable default viewport.
func NewTasks() *Tasks {
	return &Tasks{scroller: scroller{maxVisible: 20}}
}

// Toggle shows or hides the overlay, returning the new Visible state.
// Showing always reseeds rows from the caller's current snapshot.
func (t *Tasks) Toggle(rows []TaskSummary) bool {
	if t.Visible {
		t.Visible = false
		return false
	}
	t.Refresh(rows)
	t.Visible = true
	return true
}

// Close hides the overlay unconditionally.
func (t *Tasks) Close() { t.Visible = false }

// Refresh replaces the displayed rows (called by Toggle when showing the
// overlay and by the cancel command), preserving the cursor where possible.
func (t *Tasks) Refresh(rows []TaskSummary) {
	t.rows = rows
	t.setCount(len(rows))
}

// Move shifts the cursor by delta, clamping and following the viewport.
func (t *Tasks) Move(delta int) { t.move(delta) }

// Selected returns the highlighted task, if any.
func (t *Tasks) Selected() (TaskSummary, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return TaskSummary{}, false
	}
	return t.rows[t.cursor], true
}

// Window returns the visible [start, end) index range into the rows
// passed to the last Refresh/Toggle.
func (t *Tasks) Window() (start, end int) {
	end = t.offset + t.maxVisible
	if end > len(t.rows) {
		end = len(t.rows)
	}
	return t.offset, end
}
