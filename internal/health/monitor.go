// Package health tracks reachability of the external rendering service.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	StatusChecking    = "checking"
	StatusReachable   = "reachable"
	StatusUnreachable = "unreachable"
)

// Pinger is the liveness probe contract.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusSink receives each fresh status, e.g. to mirror it into the cache.
type StatusSink interface {
	SetRendererStatus(ctx context.Context, status string) error
}

// Snapshot is the last observed probe result.
type Snapshot struct {
	Status    string    `json:"status"`
	CheckedAt time.Time `json:"checked_at"`
}

// Monitor polls a Pinger on a fixed interval. It stops when its context is
// canceled, and a probe still in flight at that point has its result
// discarded: each check records the generation it started under, and a result
// may only publish while the context is live and the generation current.
type Monitor struct {
	pinger   Pinger
	sink     StatusSink
	interval time.Duration
	logger   *zap.Logger

	mu         sync.Mutex
	generation uint64
	snapshot   Snapshot
}

func NewMonitor(pinger Pinger, sink StatusSink, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		sink:     sink,
		interval: interval,
		logger:   logger,
		snapshot: Snapshot{Status: StatusChecking},
	}
}

// Start blocks until ctx is canceled. Callers run it in a goroutine.
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("renderer liveness monitor started",
		zap.Duration("interval", m.interval),
	)

	m.check(ctx)

	for {
		select {
		case <-ctx.Done():
			m.invalidate()
			m.logger.Info("renderer liveness monitor stopped")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// Current returns the last published probe result.
func (m *Monitor) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *Monitor) check(ctx context.Context) {
	m.mu.Lock()
	gen := m.generation
	m.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	status := StatusReachable
	if err := m.pinger.Ping(probeCtx); err != nil {
		status = StatusUnreachable
		m.logger.Warn("renderer unreachable", zap.Error(err))
	}

	if !m.publish(ctx, gen, status) {
		m.logger.Debug("discarding stale probe result", zap.String("status", status))
		return
	}

	if m.sink != nil {
		if err := m.sink.SetRendererStatus(ctx, status); err != nil {
			m.logger.Debug("failed to mirror renderer status", zap.Error(err))
		}
	}
}

// publish records the result unless the monitor stopped or moved on since
// the probe started. The context check matters when cancellation interrupts
// a probe in flight: the probe's own failure must not land as "unreachable".
func (m *Monitor) publish(ctx context.Context, gen uint64, status string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil || gen != m.generation {
		return false
	}

	m.snapshot = Snapshot{Status: status, CheckedAt: time.Now()}
	return true
}

func (m *Monitor) invalidate() {
	m.mu.Lock()
	m.generation++
	m.mu.Unlock()
}
