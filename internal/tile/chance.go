package tile

import (
	"fmt"
	"math"
	"sort"
)

// WeightFunc returns a candidate's base weight for a generation context.
// depth is the normalized depth along the current path, in [0, 1].
//
// Postcondition: the result is >= 0; a zero weight excludes the candidate.
type WeightFunc func(onMainPath bool, depth float64) float64

// Candidate pairs a template reference with the tile set it was drawn from
// and its weight function. Candidates are read-only to the pair finder.
type Candidate struct {
	// Ref is the opaque template reference understood by the resolver.
	Ref string
	// TileSet tags the tile set this candidate came from.
	TileSet string
	// Weight evaluates the candidate's base weight.
	Weight WeightFunc
}

// Key identifies a candidate within a table.
type Key struct {
	Ref     string
	TileSet string
}

// Key returns the (Ref, TileSet) identity of c.
func (c Candidate) Key() Key { return Key{Ref: c.Ref, TileSet: c.TileSet} }

// Keyframe is one point on a depth curve.
type Keyframe struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

// Curve is a piecewise-linear function over [0, 1], clamped at both ends.
type Curve struct {
	keys []Keyframe
}

// NewCurve builds a curve from keyframes in any order.
//
// Postcondition: returns an error if there are no keyframes, a T lies outside
// [0, 1], two keyframes share a T, or any V is negative.
func NewCurve(keys ...Keyframe) (*Curve, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("curve must have at least one keyframe")
	}
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	for i, k := range sorted {
		if k.T < 0 || k.T > 1 {
			return nil, fmt.Errorf("curve keyframe t must be in [0, 1], got %g", k.T)
		}
		if k.V < 0 {
			return nil, fmt.Errorf("curve keyframe v must be >= 0, got %g", k.V)
		}
		if i > 0 && sorted[i-1].T == k.T {
			return nil, fmt.Errorf("curve has duplicate keyframe at t=%g", k.T)
		}
	}
	return &Curve{keys: sorted}, nil
}

// Evaluate returns the curve value at t.
func (c *Curve) Evaluate(t float64) float64 {
	keys := c.keys
	if t <= keys[0].T {
		return keys[0].V
	}
	last := keys[len(keys)-1]
	if t >= last.T {
		return last.V
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].T >= t })
	a, b := keys[i-1], keys[i]
	f := (t - a.T) / (b.T - a.T)
	return a.V + (b.V-a.V)*f
}

// Chance is the usual weight source: a fixed weight for main-path and
// branch-path generation, optionally scaled by a depth curve.
type Chance struct {
	MainPathWeight   float64
	BranchPathWeight float64
	// DepthCurve scales the weight by normalized depth. nil means no scaling.
	DepthCurve *Curve
}

// Weight implements WeightFunc.
func (c Chance) Weight(onMainPath bool, depth float64) float64 {
	w := c.BranchPathWeight
	if onMainPath {
		w = c.MainPathWeight
	}
	if c.DepthCurve != nil {
		w *= c.DepthCurve.Evaluate(math.Max(0, math.Min(1, depth)))
	}
	return w
}

// Validate checks that both weights are non-negative.
func (c Chance) Validate() error {
	if c.MainPathWeight < 0 {
		return fmt.Errorf("main_path_weight must be >= 0, got %g", c.MainPathWeight)
	}
	if c.BranchPathWeight < 0 {
		return fmt.Errorf("branch_path_weight must be >= 0, got %g", c.BranchPathWeight)
	}
	return nil
}
