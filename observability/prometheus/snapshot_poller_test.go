package prometheus

import (
	"context"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mkwren/go-defer-scheduler/core"
)

type schedulerStub struct {
	state   core.SchedulerState
	pending int
}

func (s schedulerStub) State() core.SchedulerState { return s.state }
func (s schedulerStub) PendingCount() int          { return s.pending }

func TestSnapshotPoller_CollectsSchedulerStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddScheduler("sched-a", schedulerStub{
		state:   core.StateRunning,
		pending: 3,
	})
	poller.AddScheduler("sched-b", schedulerStub{
		state:   core.StateAccepting,
		pending: 5,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		pendingA := testutil.ToFloat64(poller.schedulerPending.WithLabelValues("sched-a"))
		pendingB := testutil.ToFloat64(poller.schedulerPending.WithLabelValues("sched-b"))
		return pendingA == 3 && pendingB == 5
	})

	if got := testutil.ToFloat64(poller.schedulerRunning.WithLabelValues("sched-a")); got != 1 {
		t.Fatalf("running gauge for sched-a = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.schedulerRunning.WithLabelValues("sched-b")); got != 0 {
		t.Fatalf("running gauge for sched-b = %v, want 0", got)
	}
}

func TestSnapshotPoller_LiveScheduler(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	s := core.NewScheduler("live")
	if err := s.Submit(func() {}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	poller.AddScheduler(s.Name(), s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		return testutil.ToFloat64(poller.schedulerPending.WithLabelValues("live")) == 1
	})
}

func TestSnapshotPoller_StartStop_Idempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}

func assertEventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
