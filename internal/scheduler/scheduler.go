package scheduler

import "time"

// poolSize mirrors the original's N_micro + N_macro worker count (5
// lightweight + 5 heavier tasks); Go's single shared job queue makes
// the micro/macro split itself unnecessary — see DESIGN.md.
const poolSize = 10

const tickInterval = time.Second

// Scheduler pools workers over a job queue, owns the Running table,
// and ticks progress once a second (§2 Task Scheduler, §4.7).
type Scheduler struct {
	running *Running
	jobs    chan func()
	prog    chan Progress
	stop    chan struct{}
}

// New starts a Scheduler with poolSize workers and a running progress
// ticker. Callers must Close it when done.
func New() *Scheduler {
	s := &Scheduler{
		running: NewRunning(),
		jobs:    make(chan func(), 256),
		prog:    make(chan Progress, 1),
		stop:    make(chan struct{}),
	}
	for range poolSize {
		go s.worker()
	}
	go runProgressTicker(s.running, tickInterval, s.prog, s.stop)
	return s
}

func (s *Scheduler) worker() {
	for {
		select {
		case <-s.stop:
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			job()
		}
	}
}

// Running exposes the task table for workers and overlays.
func (s *Scheduler) Running() *Running { return s.running }

// Progress is the channel progress ticks arrive on.
func (s *Scheduler) Progress() <-chan Progress { return s.prog }

// Spawn registers a task named name, optionally with a completion
// hook, then schedules work to run it on the pool. work receives the
// task's ID so it can call Running methods (New/Adv/Log) and poll
// Running.Exists to notice cancellation.
func (s *Scheduler) Spawn(name string, hook func(cancelled bool), work func(id uint64)) uint64 {
	id := s.running.Add(name)
	if hook != nil {
		s.running.SetHook(id, hook)
	}
	s.jobs <- func() {
		work(id)
		s.running.Done(id)
	}
	return id
}

// Cancel removes a task and fires its hook with cancelled=true; the
// in-flight worker observes the task's absence on its next
// Running.Exists poll and stops doing further work, without aborting
// whatever syscall it's mid-way through (§5 Cancellation & timeouts).
func (s *Scheduler) Cancel(id uint64) bool { return s.running.Cancel(id) }

// Close stops the worker pool and progress ticker. In-flight jobs run
// to completion; jobs still queued, and jobs spawned after Close, are
// never run.
func (s *Scheduler) Close() {
	close(s.stop)
}
