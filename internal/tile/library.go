package tile

import (
	"fmt"
	"sort"
	"strings"
)

// TileSetEntry is one weighted template in a tile set.
type TileSetEntry struct {
	Template string
	Chance   Chance
}

// TileSet is a named, weighted collection of templates.
type TileSet struct {
	ID      string
	Entries []TileSetEntry
}

// Validate checks that the tile set has an ID, its entries name templates,
// no template appears twice, and every weight is non-negative.
func (ts *TileSet) Validate() error {
	if ts.ID == "" {
		return fmt.Errorf("tileset id must not be empty")
	}
	seen := make(map[string]bool, len(ts.Entries))
	for i, e := range ts.Entries {
		if e.Template == "" {
			return fmt.Errorf("tileset %q entry[%d] must name a template", ts.ID, i)
		}
		if seen[e.Template] {
			return fmt.Errorf("tileset %q lists template %q twice", ts.ID, e.Template)
		}
		seen[e.Template] = true
		if err := e.Chance.Validate(); err != nil {
			return fmt.Errorf("tileset %q entry %q: %w", ts.ID, e.Template, err)
		}
	}
	return nil
}

// Candidates returns one Candidate per entry, tagged with the tile set ID.
func (ts *TileSet) Candidates() []Candidate {
	out := make([]Candidate, 0, len(ts.Entries))
	for _, e := range ts.Entries {
		out = append(out, Candidate{Ref: e.Template, TileSet: ts.ID, Weight: e.Chance.Weight})
	}
	return out
}

// Library indexes loaded templates and tile sets and resolves template refs.
type Library struct {
	templates map[string]*Template
	tileSets  map[string]*TileSet
}

// NewLibrary builds a Library and cross-checks that every tile set entry
// names a known template.
//
// Postcondition: Returns a non-nil Library or an error naming every duplicate
// or dangling reference.
func NewLibrary(templates []*Template, tileSets []*TileSet) (*Library, error) {
	lib := &Library{
		templates: make(map[string]*Template, len(templates)),
		tileSets:  make(map[string]*TileSet, len(tileSets)),
	}
	var errs []string
	for _, t := range templates {
		if _, dup := lib.templates[t.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate template id %q", t.ID))
			continue
		}
		lib.templates[t.ID] = t
	}
	for _, ts := range tileSets {
		if _, dup := lib.tileSets[ts.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate tileset id %q", ts.ID))
			continue
		}
		lib.tileSets[ts.ID] = ts
		for _, e := range ts.Entries {
			if _, ok := lib.templates[e.Template]; !ok {
				errs = append(errs, fmt.Sprintf("tileset %q references unknown template %q", ts.ID, e.Template))
			}
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("building tile library: %s", strings.Join(errs, "; "))
	}
	return lib, nil
}

// Resolve returns the template for ref.
//
// Postcondition: Returns (template, nil) or (nil, error) for an unknown ref.
func (l *Library) Resolve(ref string) (*Template, error) {
	t, ok := l.templates[ref]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", ref)
	}
	return t, nil
}

// TemplateCount returns the number of templates in the library.
func (l *Library) TemplateCount() int { return len(l.templates) }

// TileSet returns the tile set with the given ID.
func (l *Library) TileSet(id string) (*TileSet, bool) {
	ts, ok := l.tileSets[id]
	return ts, ok
}

// TileSetIDs returns every tile set ID in lexical order.
func (l *Library) TileSetIDs() []string {
	ids := make([]string, 0, len(l.tileSets))
	for id := range l.tileSets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Candidates concatenates the candidates of the named tile sets, in order.
//
// Postcondition: returns an error if any tile set is unknown.
func (l *Library) Candidates(tileSetIDs ...string) ([]Candidate, error) {
	var out []Candidate
	for _, id := range tileSetIDs {
		ts, ok := l.tileSets[id]
		if !ok {
			return nil, fmt.Errorf("unknown tileset %q", id)
		}
		out = append(out, ts.Candidates()...)
	}
	return out, nil
}
