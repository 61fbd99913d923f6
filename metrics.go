package authui

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one in-process counter.
type MetricID uint16

const (
	// MetricInitSuccess counts completed initializations.
	MetricInitSuccess MetricID = iota
	// MetricInitFailure counts permanently failed initializations.
	MetricInitFailure
	// MetricSigninSuccess counts completed sign-ins.
	MetricSigninSuccess
	// MetricSigninFailure counts rejected or failed sign-ins.
	MetricSigninFailure
	// MetricSignupSuccess counts completed sign-ups.
	MetricSignupSuccess
	// MetricSignupFailure counts rejected or failed sign-ups.
	MetricSignupFailure
	// MetricOTPRequested counts OTP send requests across all intents.
	MetricOTPRequested
	// MetricOTPContinue counts invocations of the OTP continue action.
	MetricOTPContinue
	// MetricLostPasswordRequest counts started password recoveries.
	MetricLostPasswordRequest
	// MetricResetPasswordSuccess counts completed password resets.
	MetricResetPasswordSuccess
	// MetricResetPasswordFailure counts failed password resets.
	MetricResetPasswordFailure
	// MetricInviteRequest counts started invite verifications.
	MetricInviteRequest
	// MetricInviteComplete counts completed invite account updates.
	MetricInviteComplete
	// MetricProfileUpdateSuccess counts completed profile updates.
	MetricProfileUpdateSuccess
	// MetricProfileUpdateFailure counts failed profile updates.
	MetricProfileUpdateFailure
	// MetricEmailChangeSuccess counts completed email changes.
	MetricEmailChangeSuccess
	// MetricEmailChangeFailure counts failed email changes.
	MetricEmailChangeFailure
	// MetricPasswordChangeSuccess counts completed password changes.
	MetricPasswordChangeSuccess
	// MetricPasswordChangeFailure counts failed password changes.
	MetricPasswordChangeFailure
	// MetricPhotoUploadSuccess counts completed profile photo uploads.
	MetricPhotoUploadSuccess
	// MetricPhotoUploadFailure counts failed profile photo uploads.
	MetricPhotoUploadFailure
	// MetricSignout counts sign-outs.
	MetricSignout
	// MetricActionLatency is the action duration histogram.
	MetricActionLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

// paddedCounter keeps each counter on its own cache line.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free action counters plus an optional latency histogram.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a Metrics collector per the given configuration.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are collected.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments a counter. Disabled collectors and unknown IDs are no-ops.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records an action duration in the latency histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricActionLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current value of a counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and the latency histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricActionLatency].buckets[i])
		}
		s.Histograms[MetricActionLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
