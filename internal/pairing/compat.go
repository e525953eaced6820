package pairing

import (
	"github.com/cory-johannsen/tilegrow/internal/geom"
	"github.com/cory-johannsen/tilegrow/internal/tile"
)

// AngleEpsilon is the tolerance, in degrees, for treating a doorway as
// vertical and for accepting a doorway against a forced direction.
const AngleEpsilon = 1.0

// ForcedDirection returns the direction the next doorway must face to connect
// to a doorway facing prevForward.
//
// A doorway facing along up (or -up) always forces the exact opposite
// vertical direction, whatever the rotation settings. Otherwise a direction is
// forced only when rotation is disallowed, and it is -prevForward.
func ForcedDirection(prevForward, up geom.Vec3, disallowRotation bool) (geom.Vec3, bool) {
	switch {
	case prevForward.Angle(up) < AngleEpsilon:
		return up.Neg(), true
	case prevForward.Angle(up.Neg()) < AngleEpsilon:
		return up, true
	case disallowRotation:
		return prevForward.Neg(), true
	default:
		return geom.Vec3{}, false
	}
}

// RotationDisallowed resolves the tri-state global rotation setting against a
// template's own flag. A nil allowRotation defers to the template.
func RotationDisallowed(allowRotation *bool, templateAllowsRotation bool) bool {
	return (allowRotation != nil && !*allowRotation) || !templateAllowsRotation
}

// CheckCompatibility reports whether next (on a template that may or may not
// rotate) can connect to prev. Socket groups must match under rules, and any
// forced direction must be met within AngleEpsilon.
//
// Postcondition: pure; draws no randomness.
func CheckCompatibility(
	prev, next *tile.Doorway,
	nextAllowsRotation bool,
	up geom.Vec3,
	allowRotation *bool,
	rules *tile.SocketRules,
) bool {
	if !rules.Matches(prev.Socket, next.Socket) {
		return false
	}
	forced, ok := ForcedDirection(prev.Forward, up, RotationDisallowed(allowRotation, nextAllowsRotation))
	if !ok {
		return true
	}
	return forced.Angle(next.Forward) <= AngleEpsilon
}
