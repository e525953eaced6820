package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tilegrow/internal/geom"
)

func TestAngle_Axes(t *testing.T) {
	assert.InDelta(t, 0, geom.Up.Angle(geom.Up), 1e-9)
	assert.InDelta(t, 180, geom.Up.Angle(geom.Down), 1e-9)
	assert.InDelta(t, 90, geom.Forward.Angle(geom.Right), 1e-9)
	assert.InDelta(t, 45, geom.Forward.Angle(geom.V(1, 0, 1)), 1e-9)
}

func TestAngle_ZeroVectorIsZero(t *testing.T) {
	assert.Equal(t, 0.0, geom.Zero.Angle(geom.Up))
}

func TestAngle_ScaleInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := geom.V(
			rapid.Float64Range(-10, 10).Draw(rt, "x"),
			rapid.Float64Range(-10, 10).Draw(rt, "y"),
			rapid.Float64Range(-10, 10).Draw(rt, "z"),
		)
		if v.Len() < 1e-3 {
			rt.Skip("degenerate vector")
		}
		s := rapid.Float64Range(0.1, 100).Draw(rt, "scale")
		assert.InDelta(rt, v.Angle(geom.Up), v.Scale(s).Angle(geom.Up), 1e-6)
	})
}

func TestRotateAbout_QuarterTurns(t *testing.T) {
	got := geom.Forward.RotateAbout(geom.Up, 90)
	assert.True(t, got.ApproxEqual(geom.Right), "got %v", got)

	got = geom.Forward.RotateAbout(geom.Up, 180)
	assert.True(t, got.ApproxEqual(geom.Back), "got %v", got)

	got = geom.Up.RotateAbout(geom.Up, 37)
	assert.True(t, got.ApproxEqual(geom.Up), "rotation about own axis must be identity")
}

func TestRotateAbout_PreservesLength(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := geom.V(
			rapid.Float64Range(-5, 5).Draw(rt, "x"),
			rapid.Float64Range(-5, 5).Draw(rt, "y"),
			rapid.Float64Range(-5, 5).Draw(rt, "z"),
		)
		deg := rapid.Float64Range(-360, 360).Draw(rt, "deg")
		assert.InDelta(rt, v.Len(), v.RotateAbout(geom.Up, deg).Len(), 1e-9)
	})
}

func TestNormalized(t *testing.T) {
	n := geom.V(3, 0, 4).Normalized()
	assert.InDelta(t, 1, n.Len(), 1e-12)
	assert.Equal(t, geom.Zero, geom.Zero.Normalized())
}

func TestFromSlice(t *testing.T) {
	v, err := geom.FromSlice([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, geom.V(1, 2, 3), v)

	_, err = geom.FromSlice([]float64{1, 2})
	assert.Error(t, err)
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, geom.Forward.ApproxEqual(geom.V(0, 1e-7, 1)))
	assert.False(t, geom.Forward.ApproxEqual(geom.V(0, 0.01, 1)))
	assert.True(t, geom.Back.Neg().ApproxEqual(geom.Forward))
}

func TestCross_RightHanded(t *testing.T) {
	assert.Equal(t, geom.Forward, geom.Right.Cross(geom.Up))
	assert.InDelta(t, 0, geom.Right.Cross(geom.Up).Dot(geom.Up), 1e-12)
	assert.False(t, math.IsNaN(geom.Zero.Cross(geom.Up).Len()))
}
