package pairing

import (
	"errors"
	"iter"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// Enumerate returns the unranked candidate pairs as a lazy sequence.
//
// Each range over the sequence reorders the candidates and draws fresh
// weights, so two ranges yield different pairs and stopping early keeps the
// draws already taken. On a contract violation the sequence yields a single
// (DoorwayPair{}, err) and stops.
func (f *Finder) Enumerate() iter.Seq2[DoorwayPair, error] {
	return func(yield func(DoorwayPair, error) bool) {
		if err := f.validate(); err != nil {
			yield(DoorwayPair{}, err)
			return
		}
		order, err := OrderCandidates(f.Candidates, f.OnMainPath, f.NormalizedDepth, f.Random)
		if err != nil {
			yield(DoorwayPair{}, err)
			return
		}
		f.logger().Debug("ordered tile candidates",
			zap.Int("table", len(f.Candidates)),
			zap.Int("ordered", order.Len()),
			zap.Bool("main_path", f.OnMainPath),
			zap.Float64("depth", f.NormalizedDepth),
		)

		e := &enumeration{Finder: f, order: order, templates: make(map[int]*tile.Template)}
		if f.PreviousTile == nil {
			e.firstTile(yield)
		} else {
			e.nextTile(yield)
		}
	}
}

// enumeration is the per-range state behind Enumerate.
type enumeration struct {
	*Finder
	order     *Order
	templates map[int]*tile.Template
}

// firstTile yields every doorway of every ordered candidate. The tile weight
// is the candidate's base weight scaled by a uniform draw.
func (e *enumeration) firstTile(yield func(DoorwayPair, error) bool) {
	for i, c := range e.Candidates {
		if !e.order.Contains(c.Key()) {
			continue
		}
		tmpl, err := e.resolve(i, c)
		if err != nil {
			yield(DoorwayPair{}, err)
			return
		}
		weight := c.Weight(e.OnMainPath, e.NormalizedDepth) * e.Random.Float64()
		if !e.admit(nil, tmpl, c, &weight) {
			continue
		}
		for _, next := range tmpl.Doorways {
			doorWeight := DoorwayWeight(next, e.OnMainPath, nil, e.Archetype, e.Random)
			if !yield(NewDoorwayPair(nil, nil, tmpl, next, c.TileSet, weight, doorWeight), nil) {
				return
			}
		}
	}
}

// nextTile yields every compatible pairing between the previous tile's
// unused doorways and the ordered candidates' doorways. The tile weight is
// the candidate's rank counted from the end of the order.
//
// A required exit on the previous tile, or a required entrance on a
// template, excludes every other doorway on that side with no fallback.
func (e *enumeration) nextTile(yield func(DoorwayPair, error) bool) {
	prev := e.PreviousTile
	up := e.up()
	exit, requiresExit := prev.RequiredExit()

	for _, prevDoor := range prev.Unused() {
		if requiresExit && prevDoor != exit {
			continue
		}
		for i, c := range e.Candidates {
			rank, ok := e.order.Rank(c.Key())
			if !ok {
				continue
			}
			tmpl, err := e.resolve(i, c)
			if err != nil {
				yield(DoorwayPair{}, err)
				return
			}
			weight := float64(e.order.Len() - rank)
			if !e.admit(prev, tmpl, c, &weight) {
				continue
			}
			for _, next := range tmpl.Doorways {
				if tmpl.Entrance != nil && tmpl.Entrance != next {
					continue
				}
				if !CheckCompatibility(prevDoor, next, tmpl.AllowRotation, up, e.AllowRotation, e.Sockets) {
					continue
				}
				doorWeight := DoorwayWeight(next, e.OnMainPath, prev, e.Archetype, e.Random)
				if !yield(NewDoorwayPair(prev, prevDoor, tmpl, next, c.TileSet, weight, doorWeight), nil) {
					return
				}
			}
		}
	}
}

// resolve maps a candidate to its template, once per enumeration.
func (e *enumeration) resolve(index int, c tile.Candidate) (*tile.Template, error) {
	if tmpl, ok := e.templates[index]; ok {
		return tmpl, nil
	}
	tmpl, err := e.Resolver.Resolve(c.Ref)
	if err == nil && tmpl == nil {
		err = errors.New("resolver returned no template")
	}
	if err == nil {
		err = tmpl.Validate()
	}
	if err != nil {
		return nil, &CandidateError{Kind: ErrUnresolvableTemplate, Index: index, Ref: c.Ref, Err: err}
	}
	e.templates[index] = tmpl
	return tmpl, nil
}

// admit runs the admission predicate, if any. A rewritten weight that is
// negative or NaN is clamped to zero.
func (e *enumeration) admit(prev *tile.PlacedTile, tmpl *tile.Template, c tile.Candidate, weight *float64) bool {
	if e.Admission == nil {
		return true
	}
	if !e.Admission.Admit(prev, e.PreviousRef, tmpl, c.Ref, weight) {
		e.logger().Debug("candidate rejected by admission predicate",
			zap.String("template", c.Ref),
			zap.String("tileset", c.TileSet),
		)
		return false
	}
	if math.IsNaN(*weight) || *weight < 0 {
		e.logger().Debug("admission predicate weight clamped to zero",
			zap.String("template", c.Ref),
			zap.Float64("weight", *weight),
		)
		*weight = 0
	}
	return true
}
