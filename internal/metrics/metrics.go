// Package metrics tracks rolling latency samples for core operations so
// the API can report how expensive builds, searches and extractions are.
package metrics

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// Snapshot is a point-in-time aggregate of one operation's samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Registry tracks latencies per operation name within a rolling window.
type Registry struct {
	mu     sync.Mutex
	ops    map[string][]sample
	maxAge time.Duration
}

func NewRegistry(maxAge time.Duration) *Registry {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Registry{
		ops:    make(map[string][]sample),
		maxAge: maxAge,
	}
}

// Observe records one call of the named operation.
func (r *Registry) Observe(op string, d time.Duration) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops[op] = append(prune(r.ops[op], now, r.maxAge), sample{
		timestamp:  now,
		durationMs: ms,
	})
}

// Time runs fn and records its duration under op.
func (r *Registry) Time(op string, fn func()) {
	start := time.Now()
	fn()
	r.Observe(op, time.Since(start))
}

// Snapshots returns per-operation aggregates of the current window.
func (r *Registry) Snapshots() map[string]Snapshot {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Snapshot, len(r.ops))
	for op, samples := range r.ops {
		samples = prune(samples, now, r.maxAge)
		r.ops[op] = samples
		if len(samples) == 0 {
			continue
		}

		values := make([]int64, 0, len(samples))
		var sum int64
		for _, sm := range samples {
			values = append(values, sm.durationMs)
			sum += sm.durationMs
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		out[op] = Snapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
			P99Ms: percentile(values, 99),
		}
	}
	return out
}

func prune(samples []sample, now time.Time, maxAge time.Duration) []sample {
	cutoff := now.Add(-maxAge)
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	return samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
