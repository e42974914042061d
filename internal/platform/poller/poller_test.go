package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func runInBackground(ctx context.Context, p *Poller) <-chan struct{} {
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		p.Run(ctx)
	}()
	return exited
}

func TestPoller_RunsImmediatelyThenOnTick(t *testing.T) {
	var calls atomic.Int32
	p := New("fixtures", func(context.Context) error {
		calls.Add(1)
		return nil
	}, 5*time.Millisecond, logging.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	exited := runInBackground(ctx, p)

	waitFor(t, func() bool { return calls.Load() >= 3 })
	cancel()
	<-exited

	status := p.Status()
	if !status.IsReady() {
		t.Fatalf("expected ready status, got %+v", status)
	}
	if status.LastSuccess.IsZero() || status.ConsecutiveFailures != 0 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestPoller_FailuresDoNotStopTheLoop(t *testing.T) {
	var calls atomic.Int32
	p := New("standings", func(context.Context) error {
		calls.Add(1)
		return errors.New("upstream 503")
	}, 2*time.Millisecond, logging.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	exited := runInBackground(ctx, p)

	waitFor(t, func() bool { return calls.Load() >= 4 })
	cancel()
	<-exited

	status := p.Status()
	if status.ConsecutiveFailures < 4 {
		t.Fatalf("expected consecutive failures to accumulate, got %+v", status)
	}
	if status.LastError != "upstream 503" {
		t.Fatalf("unexpected last error %q", status.LastError)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after repeated failures")
	}
}

func TestPoller_RecoversFromPanics(t *testing.T) {
	var calls atomic.Int32
	p := New("teams", func(context.Context) error {
		if calls.Add(1) == 1 {
			panic("bad document")
		}
		return nil
	}, 2*time.Millisecond, logging.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	exited := runInBackground(ctx, p)

	waitFor(t, func() bool { return calls.Load() >= 2 && p.Status().IsReady() })
	cancel()
	<-exited
}

func TestPoller_StopHaltsAndIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	p := New("scorers", func(context.Context) error {
		calls.Add(1)
		return nil
	}, 2*time.Millisecond, logging.NewNop())

	exited := runInBackground(t.Context(), p)
	waitFor(t, func() bool { return calls.Load() >= 1 })

	p.Stop()
	p.Stop()
	<-exited

	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != after {
		t.Fatalf("expected no cycles after stop; before=%d after=%d", after, calls.Load())
	}
}

func TestPoller_CyclesDoNotOverlap(t *testing.T) {
	var inFlight, maxInFlight, calls atomic.Int32
	p := New("fixtures", func(context.Context) error {
		n := inFlight.Add(1)
		for {
			cur := maxInFlight.Load()
			if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		calls.Add(1)
		return nil
	}, time.Millisecond, logging.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	exited := runInBackground(ctx, p)
	waitFor(t, func() bool { return calls.Load() >= 3 })
	cancel()
	<-exited

	if maxInFlight.Load() != 1 {
		t.Fatalf("expected sequential cycles, saw %d concurrent", maxInFlight.Load())
	}
}

func TestStatus_NotReadyBeforeFirstSuccess(t *testing.T) {
	if (Status{}).IsReady() {
		t.Fatalf("expected zero status to be not ready")
	}
	ready := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !ready.IsReady() {
		t.Fatalf("expected two failures to still be ready")
	}
}
