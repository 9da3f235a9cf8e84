package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kujo-fm/kujo/internal/scheduler"
)

func TestProcess_Open_NonBlockingRunsAndAdvances(t *testing.T) {
	running := scheduler.NewRunning()
	p := NewProcess(running, nil)
	id := running.Add("open")
	if err := p.Open(context.Background(), id, "true", nil, false); err != nil {
		t.Fatalf("Open: %v", err)
	}
	task, ok := running.Get(id)
	if !ok || task.Processed != 1 {
		t.Fatalf("expected task advanced by one, got %+v ok=%v", task, ok)
	}
}

func TestProcess_Open_NonBlockingKilledOnCancel(t *testing.T) {
	running := scheduler.NewRunning()
	p := NewProcess(running, nil)
	id := running.Add("open")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Open(ctx, id, "sleep", []string{"5"}, false) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected an error from a killed process")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected cancellation to kill the child promptly")
	}
}

func TestProcess_Open_BlockingSerializesAndSuspends(t *testing.T) {
	running := scheduler.NewRunning()

	var mu sync.Mutex
	var events []bool
	p := NewProcess(running, func(stopped bool) {
		mu.Lock()
		events = append(events, stopped)
		mu.Unlock()
	})

	id1 := running.Add("open1")
	id2 := running.Add("open2")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.Open(context.Background(), id1, "true", nil, true)
	}()
	go func() {
		defer wg.Done()
		p.Open(context.Background(), id2, "true", nil, true)
	}()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 4 {
		t.Fatalf("expected 4 suspend events (true,false per open), got %d: %+v", len(events), events)
	}
	for i := 0; i < len(events); i += 2 {
		if events[i] != true || events[i+1] != false {
			t.Fatalf("expected alternating true/false suspend pairs, got %+v", events)
		}
	}
}
