package pairing_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/pairing"
	"github.com/cory-johannsen/tilegrow/internal/random"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// countingSource counts the draws taken from a seeded source.
type countingSource struct {
	src   random.Source
	draws int
}

func newCountingSource(seed uint64) *countingSource {
	return &countingSource{src: random.NewSeededSource(seed)}
}

func (c *countingSource) Intn(n int) int   { c.draws++; return c.src.Intn(n) }
func (c *countingSource) Float64() float64 { c.draws++; return c.src.Float64() }

func door(id string, socket tile.SocketGroup, forward geom.Vec3) *tile.Doorway {
	return &tile.Doorway{ID: id, Socket: socket, Forward: forward, Up: geom.Up}
}

// crossroads has a doorway on each horizontal side.
func crossroads(id string) *tile.Template {
	return &tile.Template{
		ID:            id,
		AllowRotation: true,
		Doorways: []*tile.Doorway{
			door("north", tile.DefaultSocket, geom.Forward),
			door("east", tile.DefaultSocket, geom.Right),
			door("south", tile.DefaultSocket, geom.Back),
			door("west", tile.DefaultSocket, geom.Left),
		},
	}
}

// corridorTemplate runs north-south.
func corridorTemplate(id string) *tile.Template {
	return &tile.Template{
		ID:            id,
		AllowRotation: true,
		Doorways: []*tile.Doorway{
			door("north", tile.DefaultSocket, geom.Forward),
			door("south", tile.DefaultSocket, geom.Back),
		},
	}
}

// mapResolver resolves refs from a fixed map of templates.
func mapResolver(templates ...*tile.Template) pairing.ResolverFunc {
	byID := make(map[string]*tile.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}
	return func(ref string) (*tile.Template, error) {
		t, ok := byID[ref]
		if !ok {
			return nil, fmt.Errorf("no template %q", ref)
		}
		return t, nil
	}
}

func constWeight(w float64) tile.WeightFunc {
	return func(bool, float64) float64 { return w }
}

// candidatesFor builds one candidate per template with weight 1.
func candidatesFor(tileSet string, templates ...*tile.Template) []tile.Candidate {
	out := make([]tile.Candidate, 0, len(templates))
	for _, t := range templates {
		out = append(out, tile.Candidate{Ref: t.ID, TileSet: tileSet, Weight: constWeight(1)})
	}
	return out
}

// enteredFromSouth places a corridor and marks its south doorway used, as if
// the path arrived from the south.
func enteredFromSouth(t testing.TB, tmpl *tile.Template) *tile.PlacedTile {
	t.Helper()
	p := tile.Place(tmpl, 0, geom.Up)
	south, ok := p.DoorwayByID("south")
	require.True(t, ok)
	require.NoError(t, p.Connect(south))
	return p
}

func collect(t testing.TB, f *pairing.Finder) []pairing.DoorwayPair {
	t.Helper()
	var out []pairing.DoorwayPair
	for p, err := range f.Enumerate() {
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
