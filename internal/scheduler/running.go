package scheduler

import (
	"sort"
	"sync"

	"github.com/kujo-fm/kujo/internal/overlay"
)

// Running is the scheduler's task table (§3 Running): `counter` mints
// fresh IDs monotonically, `all` holds live tasks, `hooks` holds each
// task's optional completion callback. Grounded on
// `original_source/core/src/tasks/{tasks.rs,scheduler.rs}`'s
// `Running`/`Scheduler.cancel`/`try_remove`, simplified from the
// original's three-stage Pending/Dispatched/Hooked handshake (a
// continuation-future bookkeeping device the async Rust needed to
// re-post work onto its channel) down to a single table mutation plus
// an immediate hook call, since Go workers already run a task's whole
// job synchronously within one pooled goroutine rather than needing to
// re-enqueue a continuation — see DESIGN.md.
type Running struct {
	mu      sync.RWMutex
	counter uint64
	all     map[uint64]*Task
	hooks   map[uint64]func(cancelled bool)
}

// NewRunning constructs an empty table.
func NewRunning() *Running {
	return &Running{all: make(map[uint64]*Task), hooks: make(map[uint64]func(bool))}
}

// Add registers a new task and returns its ID.
func (r *Running) Add(name string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	id := r.counter
	r.all[id] = &Task{ID: id, CorrID: newCorrID(), Name: name}
	return id
}

// SetHook attaches a completion callback to an existing task. A no-op
// if the task has already finished or been cancelled.
func (r *Running) SetHook(id uint64, hook func(cancelled bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.all[id]; ok {
		r.hooks[id] = hook
	}
}

// Get returns the task for reading/mutation, or ok=false if it no
// longer exists (finished, or cancelled out from under a worker).
func (r *Running) Get(id uint64) (*Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.all[id]
	return t, ok
}

// Exists reports whether id is still live — workers poll this between
// recursive steps to notice cancellation without aborting a syscall
// mid-flight (§5 Cancellation & timeouts).
func (r *Running) Exists(id uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.all[id]
	return ok
}

// New records that a recursive operation discovered size more bytes
// (TaskOp::New). A no-op if the task has been removed.
func (r *Running) New(id uint64, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.all[id]; ok {
		t.Found++
		t.Todo += size
	}
}

// Adv records that size bytes and processed whole items completed
// (TaskOp::Adv). A no-op if the task has been removed.
func (r *Running) Adv(id uint64, processed, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.all[id]; ok {
		t.Processed += processed
		t.Done += size
	}
}

// Log appends a captured output line (TaskOp::Log).
func (r *Running) Log(id uint64, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.all[id]; ok {
		t.Log(line)
	}
}

// Done marks a task complete, removes it, and runs its hook (if any)
// with cancelled=false.
func (r *Running) Done(id uint64) { r.finish(id, false) }

// Cancel removes a task immediately and runs its hook (if any) with
// cancelled=true. Returns whether the task existed.
func (r *Running) Cancel(id uint64) bool { return r.finish(id, true) }

func (r *Running) finish(id uint64, cancelled bool) bool {
	r.mu.Lock()
	_, existed := r.all[id]
	delete(r.all, id)
	hook := r.hooks[id]
	delete(r.hooks, id)
	r.mu.Unlock()

	if hook != nil {
		go hook(cancelled)
	}
	return existed
}

// Len returns the number of live tasks.
func (r *Running) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// IDs returns every live task ID in ascending (insertion) order.
func (r *Running) IDs() []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint64, 0, len(r.all))
	for id := range r.all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IDAt returns the id of the nth task in ascending order, for the
// Tasks overlay's cursor-to-task mapping.
func (r *Running) IDAt(n int) (uint64, bool) {
	ids := r.IDs()
	if n < 0 || n >= len(ids) {
		return 0, false
	}
	return ids[n], true
}

// Snapshot returns every live task's overlay projection, ordered by ID.
func (r *Running) Snapshot() []overlay.TaskSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint64, 0, len(r.all))
	for id := range r.all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]overlay.TaskSummary, len(ids))
	for i, id := range ids {
		out[i] = r.all[id].Summary()
	}
	return out
}

// Totals aggregates Found/Processed/Done/Todo across every live task,
// for the progress ticker's percent/left computation.
func (r *Running) Totals() (found, processed, done, todo int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.all {
		found += t.Found
		processed += t.Processed
		done += t.Done
		todo += t.Todo
	}
	return
}
