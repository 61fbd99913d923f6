// Package password evaluates and describes password policies.
//
// A [Policy] mirrors the policy descriptor delivered by the remote
// authentication service: inclusive length bounds plus flags for required
// character classes. Unset fields fall back to the defaults (length 8–64,
// numbers and symbols required).
//
// [Check] validates a candidate password against a policy, reporting the
// first violated rule in the fixed order length, numbers, symbols,
// lowercase, uppercase. [Describe] renders the merged policy as a single
// human-readable requirements sentence for UI hint text.
//
// # What this package must NOT do
//
//   - Hash, store, or transmit passwords.
//   - Import any other authui package.
package password
