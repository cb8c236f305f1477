package metrics

import (
	"testing"
	"time"
)

func TestRegistrySnapshot(t *testing.T) {
	reg := NewRegistry(time.Hour)

	for i := 1; i <= 100; i++ {
		reg.Observe("search", time.Duration(i)*time.Millisecond)
	}

	snaps := reg.Snapshots()
	snap, ok := snaps["search"]
	if !ok {
		t.Fatal("expected a search snapshot")
	}

	if snap.Count != 100 {
		t.Fatalf("expected count 100, got %d", snap.Count)
	}
	if snap.MinMs != 1 {
		t.Fatalf("expected min 1, got %d", snap.MinMs)
	}
	if snap.MaxMs != 100 {
		t.Fatalf("expected max 100, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 50.5 {
		t.Fatalf("expected avg 50.5, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 50.5 {
		t.Fatalf("expected p50 50.5, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 95.05 {
		t.Fatalf("expected p95 95.05, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 99.01 {
		t.Fatalf("expected p99 99.01, got %f", snap.P99Ms)
	}
}

func TestRegistryPerOperation(t *testing.T) {
	reg := NewRegistry(time.Hour)

	reg.Observe("build", 10*time.Millisecond)
	reg.Observe("build", 20*time.Millisecond)
	reg.Observe("extract", 5*time.Millisecond)

	snaps := reg.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(snaps))
	}
	if snaps["build"].Count != 2 {
		t.Fatalf("expected 2 build samples, got %d", snaps["build"].Count)
	}
	if snaps["extract"].Count != 1 {
		t.Fatalf("expected 1 extract sample, got %d", snaps["extract"].Count)
	}
}

func TestRegistryNegativeDurationClamped(t *testing.T) {
	reg := NewRegistry(time.Hour)

	reg.Observe("build", -5*time.Millisecond)

	snap := reg.Snapshots()["build"]
	if snap.Count != 1 || snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected single clamped zero sample, got %+v", snap)
	}
}

func TestRegistryWindowPruning(t *testing.T) {
	reg := NewRegistry(20 * time.Millisecond)

	reg.Observe("search", 1*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	reg.Observe("search", 2*time.Millisecond)

	snap := reg.Snapshots()["search"]
	if snap.Count != 1 {
		t.Fatalf("expected old sample pruned, got count %d", snap.Count)
	}
	if snap.MinMs != 2 {
		t.Fatalf("expected the recent sample to remain, got min %d", snap.MinMs)
	}
}

func TestRegistryEmpty(t *testing.T) {
	reg := NewRegistry(time.Hour)
	if snaps := reg.Snapshots(); len(snaps) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(snaps))
	}
}

func TestRegistryTime(t *testing.T) {
	reg := NewRegistry(time.Hour)

	var ran bool
	reg.Time("build", func() { ran = true })

	if !ran {
		t.Fatal("expected wrapped function to run")
	}
	if reg.Snapshots()["build"].Count != 1 {
		t.Fatal("expected one recorded sample")
	}
}

func TestPercentileSingleSample(t *testing.T) {
	reg := NewRegistry(time.Hour)
	reg.Observe("x", 7*time.Millisecond)

	snap := reg.Snapshots()["x"]
	if snap.P50Ms != 7 || snap.P95Ms != 7 || snap.P99Ms != 7 {
		t.Fatalf("expected all percentiles 7 for single sample, got %+v", snap)
	}
}
