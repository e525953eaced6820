package pairing

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/random"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// Finder holds the inputs for one round of doorway pair selection. The
// driver fills it in and calls DoorwayPairs (or Enumerate for lazy access).
//
// A Finder and its Random source must not be used from more than one
// goroutine at a time: every enumeration advances the shared source.
type Finder struct {
	// Random supplies every draw. Required.
	Random random.Source
	// Candidates is the weighted candidate table, in table order. Read-only.
	Candidates []tile.Candidate
	// PreviousTile is the tile being extended; nil selects first-tile mode.
	PreviousTile *tile.PlacedTile
	// PreviousRef is passed through to the admission predicate untouched.
	PreviousRef string
	// OnMainPath reports whether the dungeon's main path is being grown.
	OnMainPath bool
	// NormalizedDepth is the depth along the current path, in [0, 1].
	NormalizedDepth float64
	// Archetype supplies the straighten chance; nil disables straightening.
	Archetype *tile.Archetype
	// AllowRotation overrides every template's rotation flag when it is set
	// to false. nil defers to the templates.
	AllowRotation *bool
	// Up is the dungeon's vertical axis. The zero value means geom.Up.
	Up geom.Vec3
	// Admission optionally vetoes candidates or rewrites their tile weight.
	Admission AdmissionPredicate
	// Resolver maps candidate refs to templates. Required.
	Resolver TemplateResolver
	// Sockets decides socket compatibility; nil means equal groups only.
	Sockets *tile.SocketRules
	// Logger receives debug diagnostics; nil disables logging.
	Logger *zap.Logger
}

// DoorwayPairs enumerates every candidate pair, ranks them, and returns at
// most maxCount of them (NoLimit for all) as a FIFO queue.
//
// Postcondition: Returns a non-nil queue, or a non-nil error that matches
// ErrInvalidCandidateTable or ErrUnresolvableTemplate under errors.Is (or
// reports a missing Random or Resolver).
func (f *Finder) DoorwayPairs(maxCount int) (*PairQueue, error) {
	var pairs []DoorwayPair
	for p, err := range f.Enumerate() {
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	ranked := RankPairs(pairs, maxCount)
	f.logger().Debug("ranked doorway pairs",
		zap.Bool("first_tile", f.PreviousTile == nil),
		zap.Int("candidates", len(pairs)),
		zap.Int("returned", len(ranked)),
		zap.Int("max_count", maxCount),
	)
	return NewPairQueue(ranked), nil
}

func (f *Finder) validate() error {
	if f.Random == nil {
		return errors.New("pairing: finder has no random source")
	}
	if f.Resolver == nil {
		return errors.New("pairing: finder has no template resolver")
	}
	return ValidateCandidates(f.Candidates)
}

func (f *Finder) up() geom.Vec3 {
	if f.Up.IsZero() {
		return geom.Up
	}
	return f.Up
}

func (f *Finder) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}
