package geometry

import (
	"math"

	"github.com/lixenwraith/laser-lock/parameter"
)

// NormalizeAngle wraps an angle in degrees into [0, 360)
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SlotToAngle returns the angular position of a slot in degrees.
// Slot k sits at 15 + 30k so it faces the midpoint of an edge.
func SlotToAngle(slot int) float64 {
	slot = ((slot % parameter.SlotCount) + parameter.SlotCount) % parameter.SlotCount
	return parameter.SlotAngleOffset + float64(slot)*parameter.SlotDegrees
}

// AngleToSlot snaps an angle in degrees to the nearest slot index.
// Inverse of SlotToAngle for all 12 slots.
func AngleToSlot(angleDeg float64) int {
	a := NormalizeAngle(angleDeg - parameter.SlotAngleOffset)
	slot := int(math.Round(a / parameter.SlotDegrees))
	return slot % parameter.SlotCount
}

// AngularDistance returns the smallest separation between two angles
// in degrees, in [0, 180].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SameOrOppositeSlot reports whether two angular positions coincide or
// face each other across the center, within tol degrees.
func SameOrOppositeSlot(a, b, tol float64) bool {
	return AngularDistance(a, b) <= tol || AngularDistance(a, b+180) <= tol
}
