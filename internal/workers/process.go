package workers

import (
	"context"
	"os/exec"

	"github.com/kujo-fm/kujo/internal/scheduler"
)

// Process runs opener commands (§4.7 Process task, §5 "Shared
// resources: BLOCKER (process semaphore, permits=1)"). A non-blocking
// open (e.g. a GUI viewer) runs detached and is killed if ctx is
// cancelled before it exits. A blocking open (an editor, a pager)
// acquires the single-permit blocker first, so only one foreground
// process owns the terminal at a time, and calls suspend(true) /
// suspend(false) around the run so the caller can stop and resume its
// own rendering while the child has the terminal.
type Process struct {
	running *scheduler.Running
	blocker chan struct{}
	suspend func(stopped bool)
}

// NewProcess constructs a Process worker. suspend is called with true
// just before a blocking command starts and false right after it
// exits; a nil suspend is a no-op.
func NewProcess(running *scheduler.Running, suspend func(stopped bool)) *Process {
	if suspend == nil {
		suspend = func(bool) {}
	}
	p := &Process{running: running, blocker: make(chan struct{}, 1), suspend: suspend}
	p.blocker <- struct{}{}
	return p
}

// Open runs name with args. Matches `Process::work`: a non-blocking
// open just runs to completion or cancellation; a blocking open waits
// its turn on the blocker and wraps the run in suspend/resume calls.
func (p *Process) Open(ctx context.Context, id uint64, name string, args []string, block bool) error {
	p.running.New(id, 0)
	defer p.running.Adv(id, 1, 0)

	if !block {
		return exec.CommandContext(ctx, name, args...).Run()
	}

	select {
	case <-p.blocker:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { p.blocker <- struct{}{} }()

	p.suspend(true)
	defer p.suspend(false)

	return exec.CommandContext(ctx, name, args...).Run()
}
