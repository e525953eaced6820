// Package pairing decides which doorway pairs a dungeon layout grower should
// try when attaching the next tile, and in what order.
//
// A Finder orders the candidate table by weighted shuffle, enumerates every
// compatible (previous doorway, next template doorway) pairing, weights each
// one, and ranks the result into a FIFO PairQueue. Placement, overlap
// resolution, and backtracking stay with the caller.
//
// All randomness comes from the injected random.Source. The package holds no
// global state and never mutates caller-owned tiles, templates, or tables.
package pairing

import (
	"fmt"

	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// DoorwayPair is one candidate connection. It is an immutable value; the
// previous side is nil only when pairing the first tile of a dungeon.
type DoorwayPair struct {
	previousTile    *tile.PlacedTile
	previousDoorway *tile.Doorway
	nextTemplate    *tile.Template
	nextDoorway     *tile.Doorway
	nextTileSet     string
	tileWeight      float64
	doorwayWeight   float64
}

// NewDoorwayPair constructs a DoorwayPair with every field set.
func NewDoorwayPair(
	previousTile *tile.PlacedTile,
	previousDoorway *tile.Doorway,
	nextTemplate *tile.Template,
	nextDoorway *tile.Doorway,
	nextTileSet string,
	tileWeight, doorwayWeight float64,
) DoorwayPair {
	return DoorwayPair{
		previousTile:    previousTile,
		previousDoorway: previousDoorway,
		nextTemplate:    nextTemplate,
		nextDoorway:     nextDoorway,
		nextTileSet:     nextTileSet,
		tileWeight:      tileWeight,
		doorwayWeight:   doorwayWeight,
	}
}

// PreviousTile returns the tile being extended, or nil for a first tile.
func (p DoorwayPair) PreviousTile() *tile.PlacedTile { return p.previousTile }

// PreviousDoorway returns the doorway on the previous tile, or nil for a first tile.
func (p DoorwayPair) PreviousDoorway() *tile.Doorway { return p.previousDoorway }

// NextTemplate returns the template to place.
func (p DoorwayPair) NextTemplate() *tile.Template { return p.nextTemplate }

// NextDoorway returns the doorway of NextTemplate used for the connection.
func (p DoorwayPair) NextDoorway() *tile.Doorway { return p.nextDoorway }

// NextTileSet returns the tile set tag of the candidate that produced the pair.
func (p DoorwayPair) NextTileSet() string { return p.nextTileSet }

// TileWeight returns the tile-level ranking key.
func (p DoorwayPair) TileWeight() float64 { return p.tileWeight }

// DoorwayWeight returns the doorway-level ranking key.
func (p DoorwayPair) DoorwayWeight() float64 { return p.doorwayWeight }

// IsFirst reports whether the pair has no previous side.
func (p DoorwayPair) IsFirst() bool { return p.previousTile == nil }

// String renders the pair for logs and the CLI.
func (p DoorwayPair) String() string {
	next := "<nil>"
	if p.nextTemplate != nil {
		next = p.nextTemplate.ID
	}
	if p.IsFirst() {
		return fmt.Sprintf("%s.%s [%s] tile=%.4f door=%.4f",
			next, p.nextDoorway, p.nextTileSet, p.tileWeight, p.doorwayWeight)
	}
	return fmt.Sprintf("%s -> %s.%s [%s] tile=%.4f door=%.4f",
		p.previousDoorway, next, p.nextDoorway, p.nextTileSet, p.tileWeight, p.doorwayWeight)
}
