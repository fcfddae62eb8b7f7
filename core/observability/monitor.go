// Package observability tracks serving metrics for the workload
// servers: per-route request counts, errors, and latency.
package observability

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// Monitor records requests with atomic counters; recording never blocks
// the serving path.
type Monitor struct {
	routes sync.Map // path -> *RouteMetrics

	global struct {
		requests atomic.Uint64
		errors   atomic.Uint64
		duration atomic.Uint64 // ns
	}

	started time.Time
}

// RouteMetrics stores per-route metrics.
type RouteMetrics struct {
	Path          string
	Count         atomic.Uint64
	Errors        atomic.Uint64
	TotalDuration atomic.Uint64 // ns
	MaxDuration   atomic.Uint64 // ns
}

// NewMonitor creates a monitor.
func NewMonitor() *Monitor {
	return &Monitor{started: time.Now()}
}

// Record records one served request. The path may alias a reused read
// buffer, so it is cloned before being retained as a map key.
func (m *Monitor) Record(path string, duration time.Duration, isError bool) {
	val, ok := m.routes.Load(path)
	if !ok {
		key := strings.Clone(path)
		val, _ = m.routes.LoadOrStore(key, &RouteMetrics{Path: key})
	}
	metrics := val.(*RouteMetrics)

	durationNs := uint64(duration.Nanoseconds())

	metrics.Count.Add(1)
	metrics.TotalDuration.Add(durationNs)
	updateMax(&metrics.MaxDuration, durationNs)
	if isError {
		metrics.Errors.Add(1)
	}

	m.global.requests.Add(1)
	m.global.duration.Add(durationNs)
	if isError {
		m.global.errors.Add(1)
	}
}

func updateMax(max *atomic.Uint64, d uint64) {
	for {
		cur := max.Load()
		if d <= cur || max.CompareAndSwap(cur, d) {
			return
		}
	}
}

// Requests returns the total request count.
func (m *Monitor) Requests() uint64 {
	return m.global.requests.Load()
}

// Snapshot renders the current metrics as a structpb value ready for
// the stats codec.
func (m *Monitor) Snapshot() (*structpb.Struct, error) {
	routes := map[string]interface{}{}
	m.routes.Range(func(_, value interface{}) bool {
		rm := value.(*RouteMetrics)
		count := rm.Count.Load()
		if count == 0 {
			return true
		}
		routes[rm.Path] = map[string]interface{}{
			"count":  float64(count),
			"errors": float64(rm.Errors.Load()),
			"avg_ms": float64(rm.TotalDuration.Load()) / float64(count) / 1e6,
			"max_ms": float64(rm.MaxDuration.Load()) / 1e6,
		}
		return true
	})

	return structpb.NewStruct(map[string]interface{}{
		"uptime_seconds": time.Since(m.started).Seconds(),
		"requests":       float64(m.global.requests.Load()),
		"errors":         float64(m.global.errors.Load()),
		"routes":         routes,
	})
}

// Summary renders the one-line shutdown summary.
func (m *Monitor) Summary() string {
	return fmt.Sprintf("served %d requests (%d errors) in %s",
		m.global.requests.Load(), m.global.errors.Load(),
		time.Since(m.started).Round(time.Millisecond))
}
