// Package internal contains helper utilities that are intentionally private to authui:
// nested-map access and merging, bounded condition polling, and loose boolean coercion.
//
// # What this package must NOT do
//
//   - Export types that appear in the public authui API.
//   - Be imported by any package outside the authui module.
package internal
