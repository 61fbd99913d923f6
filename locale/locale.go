// Package locale holds per-language translation bundles and resolves
// translation keys by dotted path.
package locale

import (
	"github.com/singlebase/authui/internal"
)

// DefaultLang is the language used when none is configured.
const DefaultLang = "en"

// Store keeps the active language and the known bundles. Bundles are
// nested maps keyed by translation segments; lookups never chain into a
// fallback language.
type Store struct {
	lang    string
	bundles map[string]map[string]any
}

// NewStore builds a store seeded with the built-in English bundle and
// the given overlays merged on top, language by language.
func NewStore(lang string, overlays map[string]map[string]any) *Store {
	if lang == "" {
		lang = DefaultLang
	}

	s := &Store{
		lang: lang,
		bundles: map[string]map[string]any{
			DefaultLang: internal.CloneMap(builtinEN),
		},
	}
	for code, overlay := range overlays {
		s.Merge(code, overlay)
	}
	return s
}

// Lang returns the active language code.
func (s *Store) Lang() string {
	return s.lang
}

// SetLang switches the active language. Unknown languages are allowed;
// lookups in them simply miss.
func (s *Store) SetLang(lang string) {
	if lang != "" {
		s.lang = lang
	}
}

// Merge deep-merges an overlay into one language's bundle without
// touching sibling languages or the caller's map.
func (s *Store) Merge(lang string, overlay map[string]any) {
	if lang == "" || overlay == nil {
		return
	}
	s.bundles[lang] = internal.Merge(s.bundles[lang], overlay)
}

// Translate resolves a dot-separated path in the active language's
// bundle. The boolean is false when the path is missing or does not
// resolve to a string.
func (s *Store) Translate(path string) (string, bool) {
	v, ok := internal.GetPath(s.bundles[s.lang], path)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}
