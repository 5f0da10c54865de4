package probe

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// LayerDefault is the layer of plain solid geometry.
	LayerDefault = 0
	// LayerClimbable is the layer of surfaces that can be grabbed.
	LayerClimbable = 6
	// LayerAnchor is the layer of discrete hop targets such as rungs.
	LayerAnchor = 7
)

// LayerMask is a bit set of collision layers.
type LayerMask uint32

// Layers returns a mask containing every layer passed.
func Layers(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << uint(l)
	}
	return m
}

// Contains returns true if the layer is part of the mask.
func (m LayerMask) Contains(layer int) bool {
	return layer >= 0 && layer < 32 && m&(1<<uint(layer)) != 0
}

// ColliderID is an opaque handle to a collider in the physics scene.
type ColliderID uint64

// NoCollider is the zero handle, never assigned to a real collider.
const NoCollider ColliderID = 0

// Hit is the contact data of a successful cast. Hits are produced fresh by every query.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
	Collider ColliderID
	Layer    int
}

// Capsule is an upright capsule shape relative to a character pivot.
type Capsule struct {
	// Center is the offset of the capsule center from the pivot.
	Center mgl32.Vec3
	Radius float32
	Height float32
}

// Points returns the centers of the bottom and top spheres of the capsule placed at pos.
func (c Capsule) Points(pos mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	half := c.Height/2 - c.Radius
	if half < 0 {
		half = 0
	}
	center := pos.Add(c.Center)
	return center.Sub(mgl32.Vec3{0, half, 0}), center.Add(mgl32.Vec3{0, half, 0})
}

// Deflate returns the capsule with its radius reduced by margin.
func (c Capsule) Deflate(margin float32) Capsule {
	c.Radius -= margin
	return c
}

// Physics is the collision query backend. Every query is a synchronous point-in-time query against the latest
// committed scene state. Casts ignore colliders that already overlap the shape at its origin.
type Physics interface {
	// Raycast casts a ray from origin along the normalised dir up to dist.
	Raycast(origin, dir mgl32.Vec3, dist float32, mask LayerMask) (Hit, bool)
	// SphereCast sweeps a sphere from origin along dir up to dist.
	SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask LayerMask) (Hit, bool)
	// CapsuleCast sweeps the capsule spanned by the sphere centers p0 and p1 along dir up to dist.
	CapsuleCast(p0, p1 mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask LayerMask) (Hit, bool)
	// CheckSphere returns true if any collider in the mask overlaps the sphere.
	CheckSphere(center mgl32.Vec3, radius float32, mask LayerMask) bool
	// OverlapSphere returns every collider in the mask that overlaps the sphere.
	OverlapSphere(center mgl32.Vec3, radius float32, mask LayerMask) []ColliderID
	// ComputePenetration returns the direction and depth that the capsule placed at pos has to be moved by to
	// stop overlapping the collider.
	ComputePenetration(c Capsule, pos mgl32.Vec3, collider ColliderID) (mgl32.Vec3, float32, bool)
}
