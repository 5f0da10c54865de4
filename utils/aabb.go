package utils

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Penetration describes how far, and along which axis, a moving box has to be pushed to stop overlapping a
// stationary one.
type Penetration struct {
	// Axis is the index of the separating axis (0=X, 1=Y, 2=Z).
	Axis int
	// Direction is the unit vector along Axis that moving should be pushed in.
	Direction mgl32.Vec3
	// Depth is the overlap along Axis.
	Depth float32
}

// BBPenetration computes the minimal translation that separates moving from stationary. The returned bool is
// false if the boxes do not overlap (touching faces are not an overlap) or if stationary has no volume.
func BBPenetration(stationary, moving cube.BBox) (Penetration, bool) {
	if BBHasZeroVolume(stationary) {
		return Penetration{}, false
	}

	result := Penetration{Depth: math32.MaxFloat32}
	for i := 0; i < 3; i++ {
		minPenetration := moving.Max()[i] - stationary.Min()[i]
		maxPenetration := stationary.Max()[i] - moving.Min()[i]

		if minPenetration <= 1e-7 || maxPenetration <= 1e-7 {
			return Penetration{}, false
		}

		depth, normalDir := maxPenetration, float32(1)
		if minPenetration < maxPenetration {
			depth, normalDir = minPenetration, -1
		}
		if depth < result.Depth {
			result.Axis = i
			result.Depth = depth
			result.Direction = mgl32.Vec3{}
			result.Direction[i] = normalDir
		}
	}
	return result, true
}

// BBClearance returns the signed gap between two boxes: the largest per-axis separation. A negative value means
// the boxes overlap on every axis.
func BBClearance(a, b cube.BBox) float32 {
	clearance := float32(-math32.MaxFloat32)
	for i := 0; i < 3; i++ {
		gap := math32.Max(a.Min()[i]-b.Max()[i], b.Min()[i]-a.Max()[i])
		clearance = math32.Max(clearance, gap)
	}
	return clearance
}

// BBHasZeroVolume returns true if the box collapses to a single point.
func BBHasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}

// BBCenter returns the center point of the box.
func BBCenter(bb cube.BBox) mgl32.Vec3 {
	return bb.Min().Add(bb.Max()).Mul(0.5)
}
