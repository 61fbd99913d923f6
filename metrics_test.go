package authui

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricSigninSuccess)

	if got := m.Value(MetricSigninSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricSigninSuccess)
	m.Inc(MetricSigninSuccess)
	m.Inc(MetricSigninSuccess)

	if got := m.Value(MetricSigninSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricOTPRequested)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricOTPRequested); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		25 * time.Millisecond,
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		700 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricActionLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricActionLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsObserveIgnoresCounterIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Observe(MetricSigninSuccess, time.Second)

	snap := m.Snapshot()
	if len(snap.Histograms) != 1 {
		t.Fatalf("expected only the action latency histogram, got %d", len(snap.Histograms))
	}
	for _, v := range snap.Histograms[MetricActionLatency] {
		if v != 0 {
			t.Fatal("expected no observations recorded for a counter id")
		}
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricSigninSuccess)
	m.Inc(MetricSigninFailure)
	m.Inc(MetricSigninFailure)
	m.Observe(MetricActionLatency, 2*time.Millisecond)

	snap := m.Snapshot()

	if snap.Counters[MetricSigninSuccess] != 1 {
		t.Fatalf("expected MetricSigninSuccess=1 got %d", snap.Counters[MetricSigninSuccess])
	}
	if snap.Counters[MetricSigninFailure] != 2 {
		t.Fatalf("expected MetricSigninFailure=2 got %d", snap.Counters[MetricSigninFailure])
	}
	if len(snap.Histograms[MetricActionLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricActionLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricActionLatency][0])
	}
}

func TestMetricsDisabledSnapshotEmpty(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricSignout)

	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatal("expected an empty snapshot from a disabled collector")
	}
}
