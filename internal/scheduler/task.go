// Package scheduler implements the cancelable work queue (§2 Task
// Scheduler, §4.7): a running-task table, a pooled set of workers
// draining one FIFO job queue (jobs carry no priority), a 1-second
// progress ticker, and cancellation.
package scheduler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kujo-fm/kujo/internal/overlay"
)

// Task is one entry in the Running table (§3 Running). Found/Todo
// track discovery (how many sub-items and bytes a recursive operation
// has found so far); Processed/Done track completion of the same.
// CorrID is a correlation id minted once per task purely for log lines
// (the table itself is keyed by the much cheaper uint64 ID) so a task's
// scattered log output can be grepped back together across workers.
type Task struct {
	ID     uint64
	CorrID string
	Name   string

	Found, Todo     int
	Processed, Done int
	logs            strings.Builder
}

func newCorrID() string { return uuid.NewString() }

// Summary projects a Task into the narrow view internal/overlay's
// Tasks listing renders, without overlay needing to import this
// package's richer Task type.
func (t *Task) Summary() overlay.TaskSummary {
	return overlay.TaskSummary{ID: t.ID, Name: t.Name, Found: t.Found, Done: t.Processed}
}

// Log appends one line to the task's captured output (internal/exec
// logs a failed paste, remove or rename this way), prefixed with the
// task's correlation id
// so output interleaved across a worker pool can be told apart.
func (t *Task) Log(line string) {
	t.logs.WriteString("[" + t.CorrID + "] ")
	t.logs.WriteString(line)
	t.logs.WriteByte('\n')
}

// Logs returns everything captured by Log so far.
func (t *Task) Logs() string { return t.logs.String() }
