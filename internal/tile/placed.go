package tile

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/tilegrow/internal/geom"
)

// PlacedTile is a tile the dungeon driver has already instantiated. Its
// doorways are in world space. The driver owns it; the pair finder only reads.
type PlacedTile struct {
	// ID uniquely identifies this placement.
	ID uuid.UUID
	// Template is the template the tile was placed from.
	Template *Template
	// Doorways lists every world-space doorway in template order.
	Doorways []*Doorway
	// Exit, when non-nil, is the doorway the next main-path tile must attach to.
	Exit *Doorway

	used mapset.Set[*Doorway]
	// usedOrder records connection order; Used()[0] is the first connection.
	usedOrder []*Doorway
}

// Place instantiates tmpl rotated yawDegrees about up. Doorway IDs, sockets,
// and order are preserved; directions are rotated into world space.
//
// Precondition: tmpl must have passed Validate; up must be non-zero.
// Postcondition: every doorway is unused and Exit is nil.
func Place(tmpl *Template, yawDegrees float64, up geom.Vec3) *PlacedTile {
	p := &PlacedTile{
		ID:       uuid.New(),
		Template: tmpl,
		Doorways: make([]*Doorway, 0, len(tmpl.Doorways)),
		used:     mapset.New[*Doorway](),
	}
	for _, d := range tmpl.Doorways {
		p.Doorways = append(p.Doorways, &Doorway{
			ID:      d.ID,
			Socket:  d.Socket,
			Forward: d.Forward.RotateAbout(up, yawDegrees),
			Up:      d.Up.RotateAbout(up, yawDegrees),
		})
	}
	return p
}

// DoorwayByID returns the world-space doorway with the given ID.
func (p *PlacedTile) DoorwayByID(id string) (*Doorway, bool) {
	for _, d := range p.Doorways {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// Connect marks d as used.
//
// Precondition: d must be one of p's doorways.
// Postcondition: d appears in Used and no longer in Unused.
func (p *PlacedTile) Connect(d *Doorway) error {
	if !slices.Contains(p.Doorways, d) {
		return fmt.Errorf("doorway %v does not belong to tile %s", d, p.ID)
	}
	if p.used.Has(d) {
		return fmt.Errorf("doorway %q of tile %s is already connected", d.ID, p.ID)
	}
	if len(p.usedOrder) == 0 {
		p.used = mapset.New[*Doorway]()
	}
	p.used.Put(d)
	p.usedOrder = append(p.usedOrder, d)
	return nil
}

// SetExit designates d as the required exit.
//
// Precondition: d must be nil or one of p's doorways.
func (p *PlacedTile) SetExit(d *Doorway) error {
	if d != nil && !slices.Contains(p.Doorways, d) {
		return fmt.Errorf("exit doorway %v does not belong to tile %s", d, p.ID)
	}
	p.Exit = d
	return nil
}

// IsUsed reports whether d is already connected.
func (p *PlacedTile) IsUsed(d *Doorway) bool { return p.used.Has(d) }

// Used returns the connected doorways in connection order.
func (p *PlacedTile) Used() []*Doorway {
	return slices.Clone(p.usedOrder)
}

// UsedCount returns the number of connected doorways.
func (p *PlacedTile) UsedCount() int { return p.used.Size() }

// Unused returns the unconnected doorways in template order.
func (p *PlacedTile) Unused() []*Doorway {
	out := make([]*Doorway, 0, len(p.Doorways)-p.used.Size())
	for _, d := range p.Doorways {
		if !p.used.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// RequiredExit returns the exit a following tile must use, if any. An exit
// that has already been connected no longer constrains anything.
func (p *PlacedTile) RequiredExit() (*Doorway, bool) {
	if p.Exit == nil || p.used.Has(p.Exit) {
		return nil, false
	}
	return p.Exit, true
}
