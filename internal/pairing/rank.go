package pairing

import (
	"cmp"
	"slices"
)

// NoLimit passed as maxCount returns every pair.
const NoLimit = -1

// RankPairs orders pairs by descending TileWeight, then descending
// DoorwayWeight, keeping input order among full ties, and truncates the
// result to maxCount unless maxCount is negative.
//
// Postcondition: pairs is not modified; len(result) == min(maxCount, len(pairs))
// for maxCount >= 0.
func RankPairs(pairs []DoorwayPair, maxCount int) []DoorwayPair {
	ranked := slices.Clone(pairs)
	slices.SortStableFunc(ranked, comparePairs)
	if maxCount >= 0 && maxCount < len(ranked) {
		ranked = ranked[:maxCount]
	}
	return ranked
}

func comparePairs(a, b DoorwayPair) int {
	if c := cmp.Compare(b.tileWeight, a.tileWeight); c != 0 {
		return c
	}
	return cmp.Compare(b.doorwayWeight, a.doorwayWeight)
}

// PairQueue is the FIFO consumption order handed to the driver. The driver
// pops pairs until one places successfully.
type PairQueue struct {
	pairs []DoorwayPair
	head  int
}

// NewPairQueue wraps already-ranked pairs.
func NewPairQueue(ranked []DoorwayPair) *PairQueue {
	return &PairQueue{pairs: ranked}
}

// Len returns the number of pairs not yet popped.
func (q *PairQueue) Len() int { return len(q.pairs) - q.head }

// Peek returns the next pair without removing it.
func (q *PairQueue) Peek() (DoorwayPair, bool) {
	if q.Len() == 0 {
		return DoorwayPair{}, false
	}
	return q.pairs[q.head], true
}

// Pop removes and returns the next pair.
func (q *PairQueue) Pop() (DoorwayPair, bool) {
	p, ok := q.Peek()
	if ok {
		q.head++
	}
	return p, ok
}

// Remaining returns a copy of the pairs not yet popped, in order.
func (q *PairQueue) Remaining() []DoorwayPair {
	return slices.Clone(q.pairs[q.head:])
}
