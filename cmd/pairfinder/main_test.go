package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/pairing"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

func TestWriteQueue(t *testing.T) {
	tmpl := &tile.Template{ID: "hall", AllowRotation: true, Doorways: []*tile.Doorway{
		{ID: "a", Forward: geom.Forward, Up: geom.Up},
	}}
	prev := tile.Place(tmpl, 0, geom.Up)
	pairs := []pairing.DoorwayPair{
		pairing.NewDoorwayPair(nil, nil, tmpl, tmpl.Doorways[0], "crypt", 2, 0.5),
		pairing.NewDoorwayPair(prev, prev.Doorways[0], tmpl, tmpl.Doorways[0], "crypt", 1, 0.25),
	}

	var buf bytes.Buffer
	require.NoError(t, writeQueue(&buf, pairing.NewPairQueue(pairs)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "hall")
	assert.Contains(t, lines[0], " - ")
	assert.Contains(t, lines[0], "tile=2.0000 door=0.5000")
	assert.Contains(t, lines[1], "tile=1.0000 door=0.2500")
}
