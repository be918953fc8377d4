package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingWorker struct {
	runs atomic.Int32
	err  error
}

func (w *countingWorker) Name() string { return "counting" }

func (w *countingWorker) Run(ctx context.Context) error {
	w.runs.Add(1)
	return w.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPeriodicWorker_RunsOnStartAndOnTick(t *testing.T) {
	w := &countingWorker{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pw := NewPeriodicWorker(w, 10*time.Millisecond)
	pw.Start(ctx)

	waitFor(t, func() bool { return w.runs.Load() >= 3 })

	cancel()
	if !pw.Stop(time.Second) {
		t.Error("worker did not stop in time")
	}
}

func TestPeriodicWorker_WithoutInitialRun(t *testing.T) {
	w := &countingWorker{}
	ctx, cancel := context.WithCancel(context.Background())

	pw := NewPeriodicWorker(w, time.Hour, WithoutInitialRun())
	pw.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	cancel()
	pw.Stop(time.Second)

	if n := w.runs.Load(); n != 0 {
		t.Errorf("expected no runs before first tick, got %d", n)
	}
}

func TestPeriodicWorker_ContinuesAfterError(t *testing.T) {
	w := &countingWorker{err: errors.New("boom")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pw := NewPeriodicWorker(w, 5*time.Millisecond)
	pw.Start(ctx)

	waitFor(t, func() bool { return w.runs.Load() >= 2 })

	cancel()
	pw.Stop(time.Second)
}

func TestGroup_StartStop(t *testing.T) {
	first, second := &countingWorker{}, &countingWorker{}

	g := NewGroup(context.Background())
	g.Add(first, time.Hour)
	g.Add(second, time.Hour)

	if g.Len() != 2 {
		t.Fatalf("expected 2 workers, got %d", g.Len())
	}

	g.Start()
	waitFor(t, func() bool { return first.runs.Load() == 1 && second.runs.Load() == 1 })
	g.Stop(time.Second)
}
