package pairing

import "github.com/cory-johannsen/tilegrow/internal/tile"

// AdmissionPredicate lets the caller veto a candidate template or adjust its
// tile weight before its doorways are considered.
type AdmissionPredicate interface {
	// Admit reports whether next may follow prev. prev is nil for the first
	// tile. weight points at the provisional tile weight and may be rewritten.
	Admit(prev *tile.PlacedTile, prevRef string, next *tile.Template, nextRef string, weight *float64) bool
}

// AdmissionFunc adapts a function to AdmissionPredicate.
type AdmissionFunc func(prev *tile.PlacedTile, prevRef string, next *tile.Template, nextRef string, weight *float64) bool

// Admit calls f.
func (f AdmissionFunc) Admit(prev *tile.PlacedTile, prevRef string, next *tile.Template, nextRef string, weight *float64) bool {
	return f(prev, prevRef, next, nextRef, weight)
}

// TemplateResolver maps a candidate's template reference to its template.
// *tile.Library satisfies it.
type TemplateResolver interface {
	Resolve(ref string) (*tile.Template, error)
}

// ResolverFunc adapts a function to TemplateResolver.
type ResolverFunc func(ref string) (*tile.Template, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ref string) (*tile.Template, error) { return f(ref) }
