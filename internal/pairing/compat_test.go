package pairing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/pairing"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

func TestCheckCompatibility_SocketMismatch(t *testing.T) {
	a := door("a", "wide", geom.Forward)
	b := door("b", "narrow", geom.Back)
	assert.False(t, pairing.CheckCompatibility(a, b, true, geom.Up, nil, nil))

	rules := tile.NewSocketRules()
	rules.Accept("narrow", "wide")
	assert.True(t, pairing.CheckCompatibility(a, b, true, geom.Up, nil, rules))
}

func TestCheckCompatibility_RotationAllowedAcceptsAnyHorizontal(t *testing.T) {
	prev := door("p", tile.DefaultSocket, geom.Forward)
	for _, fwd := range []geom.Vec3{geom.Forward, geom.Back, geom.Left, geom.Right} {
		assert.True(t, pairing.CheckCompatibility(prev, door("n", tile.DefaultSocket, fwd), true, geom.Up, nil, nil), "forward %v", fwd)
	}
}

func TestCheckCompatibility_RotationDisallowedForcesOpposite(t *testing.T) {
	prev := door("p", tile.DefaultSocket, geom.Forward)
	opposite := door("o", tile.DefaultSocket, geom.Back)
	side := door("s", tile.DefaultSocket, geom.Right)

	// Template forbids rotation.
	assert.True(t, pairing.CheckCompatibility(prev, opposite, false, geom.Up, nil, nil))
	assert.False(t, pairing.CheckCompatibility(prev, side, false, geom.Up, nil, nil))

	// Globally disallowed overrides a rotatable template.
	assert.True(t, pairing.CheckCompatibility(prev, opposite, true, geom.Up, boolPtr(false), nil))
	assert.False(t, pairing.CheckCompatibility(prev, side, true, geom.Up, boolPtr(false), nil))

	// Globally allowed does not override a template that forbids rotation.
	assert.False(t, pairing.CheckCompatibility(prev, side, false, geom.Up, boolPtr(true), nil))
}

func TestCheckCompatibility_VerticalAlwaysForced(t *testing.T) {
	upDoor := door("p", tile.DefaultSocket, geom.Up)
	downDoor := door("d", tile.DefaultSocket, geom.Down)
	side := door("s", tile.DefaultSocket, geom.Forward)

	assert.True(t, pairing.CheckCompatibility(upDoor, downDoor, true, geom.Up, boolPtr(true), nil))
	assert.False(t, pairing.CheckCompatibility(upDoor, side, true, geom.Up, boolPtr(true), nil))
	assert.True(t, pairing.CheckCompatibility(downDoor, upDoor, true, geom.Up, nil, nil))
	assert.False(t, pairing.CheckCompatibility(downDoor, downDoor, true, geom.Up, nil, nil))
}

func TestCheckCompatibility_AngleTolerance(t *testing.T) {
	prev := door("p", tile.DefaultSocket, geom.Forward)
	halfDegree := door("h", tile.DefaultSocket, geom.Back.RotateAbout(geom.Up, 0.5))
	twoDegrees := door("t", tile.DefaultSocket, geom.Back.RotateAbout(geom.Up, 2))
	assert.True(t, pairing.CheckCompatibility(prev, halfDegree, false, geom.Up, nil, nil))
	assert.False(t, pairing.CheckCompatibility(prev, twoDegrees, false, geom.Up, nil, nil))

	// A doorway tilted less than a degree off vertical still counts as vertical.
	nearlyUp := door("n", tile.DefaultSocket, geom.Up.RotateAbout(geom.Right, 0.5))
	assert.False(t, pairing.CheckCompatibility(nearlyUp, door("f", tile.DefaultSocket, geom.Back), true, geom.Up, nil, nil))
}

func TestCheckCompatibility_CustomUpAxis(t *testing.T) {
	prev := door("p", tile.DefaultSocket, geom.Forward)
	// With +Z as up, a +Z doorway is vertical and forces -Z.
	assert.True(t, pairing.CheckCompatibility(prev, door("n", tile.DefaultSocket, geom.Back), true, geom.Forward, nil, nil))
	assert.False(t, pairing.CheckCompatibility(prev, door("n", tile.DefaultSocket, geom.Right), true, geom.Forward, nil, nil))
}

func TestForcedDirection(t *testing.T) {
	dir, ok := pairing.ForcedDirection(geom.Forward, geom.Up, false)
	assert.False(t, ok)
	assert.Equal(t, geom.Vec3{}, dir)

	dir, ok = pairing.ForcedDirection(geom.Forward, geom.Up, true)
	assert.True(t, ok)
	assert.Equal(t, geom.Back, dir)

	dir, ok = pairing.ForcedDirection(geom.Down, geom.Up, false)
	assert.True(t, ok)
	assert.Equal(t, geom.Up, dir)
}

// TestCheckCompatibility_Soundness verifies that an accepted pairing always
// meets the forced direction within AngleEpsilon and matches sockets.
func TestCheckCompatibility_Soundness(t *testing.T) {
	dirs := []geom.Vec3{geom.Up, geom.Down, geom.Forward, geom.Back, geom.Left, geom.Right, geom.V(1, 0, 1), geom.V(0, 1, 1)}
	sockets := []tile.SocketGroup{"a", "b", tile.DefaultSocket}
	rapid.Check(t, func(rt *rapid.T) {
		prev := door("p", rapid.SampledFrom(sockets).Draw(rt, "prevSocket"), rapid.SampledFrom(dirs).Draw(rt, "prevFwd"))
		next := door("n", rapid.SampledFrom(sockets).Draw(rt, "nextSocket"), rapid.SampledFrom(dirs).Draw(rt, "nextFwd"))
		allowsRotation := rapid.Bool().Draw(rt, "templateRotation")
		global := rapid.SampledFrom([]*bool{nil, boolPtr(true), boolPtr(false)}).Draw(rt, "globalRotation")

		if !pairing.CheckCompatibility(prev, next, allowsRotation, geom.Up, global, nil) {
			return
		}
		assert.Equal(rt, prev.Socket, next.Socket)
		if forced, ok := pairing.ForcedDirection(prev.Forward, geom.Up, pairing.RotationDisallowed(global, allowsRotation)); ok {
			assert.LessOrEqual(rt, forced.Angle(next.Forward), pairing.AngleEpsilon)
		}
	})
}
