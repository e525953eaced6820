package pairing

import (
	"github.com/cory-johannsen/tilegrow/internal/random"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// StraightenMultiplier scales the doorway weight of a straight main-path
// continuation when the archetype's straighten roll succeeds.
const StraightenMultiplier = 100.0

// DoorwayWeight returns a random weight for using doorway, biased toward
// continuing the main path in a straight line.
//
// The base weight is one uniform draw. When generating the main path with a
// non-zero straighten chance, and the previous tile has exactly one used
// doorway facing exactly opposite to doorway, a second draw below the
// straighten chance multiplies the weight by StraightenMultiplier. The second
// draw is only taken when those conditions hold.
//
// Postcondition: the result is in [0, StraightenMultiplier).
func DoorwayWeight(
	doorway *tile.Doorway,
	onMainPath bool,
	previous *tile.PlacedTile,
	archetype *tile.Archetype,
	src random.Source,
) float64 {
	weight := src.Float64()

	straightenChance := 0.0
	if archetype != nil {
		straightenChance = archetype.StraightenChance
	}
	if straightenChance > 0 && onMainPath && continuesStraight(previous, doorway) {
		if src.Float64() < straightenChance {
			weight *= StraightenMultiplier
		}
	}
	return weight
}

// continuesStraight reports whether entering through doorway keeps the line
// set by previous's single used doorway.
func continuesStraight(previous *tile.PlacedTile, doorway *tile.Doorway) bool {
	if previous == nil || previous.UsedCount() != 1 {
		return false
	}
	return previous.Used()[0].Forward.ApproxEqual(doorway.Forward.Neg())
}
