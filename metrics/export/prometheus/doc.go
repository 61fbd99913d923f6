// Package prometheus renders widget metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts an [authui.Controller] and exposes an
// [net/http.Handler] that renders every counter and histogram. Counter names
// are prefixed authui_*_total; the single histogram is
// authui_action_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the
//     Handler.
//   - Mutate controller state.
package prometheus
