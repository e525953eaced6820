// Package tile holds the dungeon tile model consumed by the pair finder:
// templates and their doorways, socket rules, weighted candidates, placed
// tiles, and the archetype settings, plus YAML loaders for all of them.
package tile

import (
	"fmt"

	"github.com/cory-johannsen/tilegrow/internal/geom"
)

// Doorway is a connection point on a template or placed tile. Forward and Up
// are expressed in the coordinate space of the owner. Identity is by pointer.
type Doorway struct {
	// ID names the doorway uniquely within its owner.
	ID string
	// Socket is the socket group used for compatibility checks.
	Socket SocketGroup
	// Forward points out of the tile through the doorway.
	Forward geom.Vec3
	// Up is the doorway's up direction.
	Up geom.Vec3
}

// String returns the doorway ID and its forward direction.
func (d *Doorway) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s%v", d.ID, d.Forward)
}

// Template is an immutable placeable dungeon piece.
type Template struct {
	// ID uniquely identifies the template.
	ID string
	// Doorways lists every connection point in template space.
	Doorways []*Doorway
	// AllowRotation permits rotating the template about the up axis when placed.
	AllowRotation bool
	// Entrance, when non-nil, is the only doorway a following tile may enter through.
	Entrance *Doorway
}

// DoorwayByID returns the doorway with the given ID.
//
// Postcondition: Returns (doorway, true) if found, or (nil, false) otherwise.
func (t *Template) DoorwayByID(id string) (*Doorway, bool) {
	for _, d := range t.Doorways {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// HasDoorway reports whether d is one of t's doorways (by identity).
func (t *Template) HasDoorway(d *Doorway) bool {
	for _, own := range t.Doorways {
		if own == d {
			return true
		}
	}
	return false
}

// Validate checks the template invariants.
//
// Postcondition: Returns nil iff ID is non-empty, there is at least one
// doorway, doorway IDs are unique and non-empty, every forward vector is
// non-zero, and Entrance (if set) is one of the template's doorways.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template id must not be empty")
	}
	if len(t.Doorways) == 0 {
		return fmt.Errorf("template %q: must have at least one doorway", t.ID)
	}
	seen := make(map[string]bool, len(t.Doorways))
	for i, d := range t.Doorways {
		if d == nil {
			return fmt.Errorf("template %q: doorway[%d] is nil", t.ID, i)
		}
		if d.ID == "" {
			return fmt.Errorf("template %q: doorway[%d] must have a non-empty id", t.ID, i)
		}
		if seen[d.ID] {
			return fmt.Errorf("template %q: duplicate doorway id %q", t.ID, d.ID)
		}
		seen[d.ID] = true
		if d.Forward.IsZero() {
			return fmt.Errorf("template %q: doorway %q has a zero forward vector", t.ID, d.ID)
		}
	}
	if t.Entrance != nil && !t.HasDoorway(t.Entrance) {
		return fmt.Errorf("template %q: entrance %q is not one of its doorways", t.ID, t.Entrance.ID)
	}
	return nil
}
