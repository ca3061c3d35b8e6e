package notify_health

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Prober interface {
	Probe(ctx context.Context) error
}

// Monitor keeps the advisory healthy flag for the managed channel.
// Writers may race; last-writer-wins is acceptable because at worst a
// healthy channel is skipped for one cycle.
type Monitor struct {
	mu        sync.Mutex
	healthy   bool
	lastProbe time.Time

	prober   Prober
	interval time.Duration
	timeout  time.Duration

	logger *slog.Logger
}

type MonitorOption func(*Monitor)

func WithLogger(logger *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		m.logger = logger
	}
}

func New(prober Prober, interval, timeout time.Duration, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		healthy:  true, // optimistic until the first probe says otherwise
		prober:   prober,
		interval: interval,
		timeout:  timeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureFreshProbe re-probes the managed channel once the cooldown has
// elapsed. Probe errors are absorbed into the boolean; this never fails.
func (m *Monitor) EnsureFreshProbe(ctx context.Context) {
	m.mu.Lock()
	if time.Since(m.lastProbe) < m.interval {
		m.mu.Unlock()
		return
	}
	m.lastProbe = time.Now()
	m.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.Probe(probeCtx)

	m.mu.Lock()
	m.healthy = err == nil
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn("managed channel probe failed", slog.String("error", err.Error()))
	}
}

func (m *Monitor) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

// MarkUnhealthy trips the flag eagerly on a systemic publish failure,
// without waiting for the next scheduled probe. lastProbe is left alone so
// recovery detection stays bounded by one interval.
func (m *Monitor) MarkUnhealthy() {
	m.mu.Lock()
	m.healthy = false
	m.mu.Unlock()
}

func (m *Monitor) Snapshot() (healthy bool, lastProbe time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy, m.lastProbe
}
