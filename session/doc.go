// Package session provides Redis-backed persistence for widget controller
// snapshots, so a server-side embedding can resume an in-progress
// authentication flow across requests or replicas.
//
// Snapshots are stored as JSON under a prefixed key per widget instance
// with a TTL. The encoding is deliberately schema-light: controller state
// is plain serializable data (the pending OTP action is a tagged value,
// never a closure), so an ordinary JSON round trip is sufficient.
//
// # What this package must NOT do
//
//   - Import authui (no upward imports); it persists opaque values.
//   - Store credentials: callers must strip password fields before saving.
//   - Make authentication decisions.
package session
