package pairing

import (
	"math"
	"slices"

	"github.com/cory-johannsen/tilegrow/internal/random"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// Order is the result of a weighted shuffle: every candidate with a positive
// weight, most likely first.
type Order struct {
	seq  []tile.Candidate
	rank map[tile.Key]int
}

// Len returns the number of ordered candidates.
func (o *Order) Len() int { return len(o.seq) }

// Candidates returns the ordered candidates.
func (o *Order) Candidates() []tile.Candidate { return slices.Clone(o.seq) }

// Rank returns the position of the candidate with key k.
//
// Postcondition: ok is false for candidates excluded by a zero weight.
func (o *Order) Rank(k tile.Key) (rank int, ok bool) {
	rank, ok = o.rank[k]
	return rank, ok
}

// Contains reports whether the candidate with key k was ordered.
func (o *Order) Contains(k tile.Key) bool {
	_, ok := o.rank[k]
	return ok
}

type weightedCandidate struct {
	candidate tile.Candidate
	weight    float64
}

// OrderCandidates performs a weighted shuffle without replacement. Each step
// draws one remaining candidate with probability proportional to its weight
// and removes it, until none remain. Weights are evaluated once for the given
// context; candidates weighing zero are excluded.
//
// Precondition: candidates has passed ValidateCandidates.
// Postcondition: the order is reproducible for the same src state, and an
// error wrapping ErrInvalidCandidateTable is returned for any negative, NaN,
// or infinite weight.
func OrderCandidates(candidates []tile.Candidate, onMainPath bool, depth float64, src random.Source) (*Order, error) {
	remaining := make([]weightedCandidate, 0, len(candidates))
	for i, c := range candidates {
		w := c.Weight(onMainPath, depth)
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, invalidCandidate(i, c.Ref, "weight must be a finite non-negative number, got %g", w)
		}
		if w > 0 {
			remaining = append(remaining, weightedCandidate{candidate: c, weight: w})
		}
	}

	order := &Order{
		seq:  make([]tile.Candidate, 0, len(remaining)),
		rank: make(map[tile.Key]int, len(remaining)),
	}
	for len(remaining) > 0 {
		total := 0.0
		for _, e := range remaining {
			total += e.weight
		}
		r := src.Float64() * total

		// Float rounding can leave r at or past the final cumulative sum.
		picked := len(remaining) - 1
		cumulative := 0.0
		for i, e := range remaining {
			cumulative += e.weight
			if r < cumulative {
				picked = i
				break
			}
		}

		c := remaining[picked].candidate
		order.rank[c.Key()] = len(order.seq)
		order.seq = append(order.seq, c)
		remaining = slices.Delete(remaining, picked, picked+1)
	}
	return order, nil
}

// ValidateCandidates checks the structural invariants of a candidate table.
//
// Postcondition: Returns nil, or a *CandidateError wrapping
// ErrInvalidCandidateTable for the first empty ref, nil weight function, or
// duplicate (ref, tile set) entry.
func ValidateCandidates(candidates []tile.Candidate) error {
	seen := make(map[tile.Key]int, len(candidates))
	for i, c := range candidates {
		if c.Ref == "" {
			return invalidCandidate(i, c.Ref, "template ref must not be empty")
		}
		if c.Weight == nil {
			return invalidCandidate(i, c.Ref, "weight function must not be nil")
		}
		if first, dup := seen[c.Key()]; dup {
			return invalidCandidate(i, c.Ref, "duplicates candidate[%d] in tile set %q", first, c.TileSet)
		}
		seen[c.Key()] = i
	}
	return nil
}
