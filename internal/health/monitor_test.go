package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (f *fakePinger) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakePinger) set(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type recordingSink struct {
	mu       sync.Mutex
	statuses []string
}

func (r *recordingSink) SetRendererStatus(_ context.Context, status string) error {
	r.mu.Lock()
	r.statuses = append(r.statuses, status)
	r.mu.Unlock()
	return nil
}

func (r *recordingSink) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

func waitForStatus(t *testing.T, m *Monitor, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.Current().Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("monitor never reached status %q, stuck at %q", want, m.Current().Status)
}

func TestMonitor_StartsChecking(t *testing.T) {
	m := NewMonitor(&fakePinger{}, nil, time.Hour, zap.NewNop())

	snap := m.Current()
	assert.Equal(t, StatusChecking, snap.Status)
	assert.True(t, snap.CheckedAt.IsZero())
}

func TestMonitor_TracksReachability(t *testing.T) {
	pinger := &fakePinger{}
	sink := &recordingSink{}
	m := NewMonitor(pinger, sink, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	waitForStatus(t, m, StatusReachable)
	require.False(t, m.Current().CheckedAt.IsZero())

	pinger.set(errors.New("connection refused"))
	waitForStatus(t, m, StatusUnreachable)

	pinger.set(nil)
	waitForStatus(t, m, StatusReachable)

	assert.Equal(t, StatusReachable, sink.last())
}

// blockingPinger holds the probe open until its context is canceled, the way
// a hung collaborator does during shutdown.
type blockingPinger struct{}

func (blockingPinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestMonitor_InterruptedProbeDoesNotPublish(t *testing.T) {
	m := NewMonitor(blockingPinger{}, nil, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	// Let the first check block inside the probe, then shut down.
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	// The probe failed only because of the shutdown; that must not be
	// recorded as the service being unreachable.
	assert.Equal(t, StatusChecking, m.Current().Status)
}

func TestMonitor_StopDiscardsLateResults(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(pinger, nil, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	waitForStatus(t, m, StatusReachable)

	cancel()
	time.Sleep(50 * time.Millisecond)

	// A probe that would change the status must not publish after stop.
	pinger.set(errors.New("connection refused"))
	before := m.Current()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, m.Current())
}
