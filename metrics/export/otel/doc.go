// Package otel provides OpenTelemetry metric bindings for the widget's
// counters and histograms.
//
// [NewOTelExporter] registers an Int64ObservableCounter per counter and an
// Int64ObservableGauge per histogram bucket. A single callback reads the
// controller's metrics snapshot on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider. Callers supply the Meter.
//   - Mutate controller state.
package otel
