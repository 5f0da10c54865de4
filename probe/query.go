package probe

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

// Probe wraps a Physics backend. Queries with a degenerate direction, a non-positive distance or an empty mask
// miss without reaching the backend, so every query fails closed.
type Probe struct {
	phys  Physics
	log   logrus.FieldLogger
	trace bool
}

// New returns a Probe querying phys. If trace is set, every query is logged at debug level.
func New(phys Physics, log logrus.FieldLogger, trace bool) *Probe {
	return &Probe{phys: phys, log: utils.LoggerOrNop(log), trace: trace}
}

// Physics returns the backend of the probe.
func (p *Probe) Physics() Physics {
	return p.phys
}

// Ray casts a ray. dir does not need to be normalised.
func (p *Probe) Ray(origin, dir mgl32.Vec3, dist float32, mask LayerMask) (Hit, bool) {
	dir, ok := castable(dir, dist, mask)
	if !ok {
		return Hit{}, false
	}
	hit, ok := p.phys.Raycast(origin, dir, dist, mask)
	p.traceCast("ray", origin, dir, dist, hit, ok)
	return hit, ok
}

// Sphere sweeps a sphere. dir does not need to be normalised.
func (p *Probe) Sphere(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask LayerMask) (Hit, bool) {
	dir, ok := castable(dir, dist, mask)
	if !ok || radius <= 0 {
		return Hit{}, false
	}
	hit, ok := p.phys.SphereCast(origin, radius, dir, dist, mask)
	p.traceCast("sphere", origin, dir, dist, hit, ok)
	return hit, ok
}

// Capsule sweeps the capsule c placed at pos. dir does not need to be normalised.
func (p *Probe) Capsule(c Capsule, pos, dir mgl32.Vec3, dist float32, mask LayerMask) (Hit, bool) {
	dir, ok := castable(dir, dist, mask)
	if !ok || c.Radius <= 0 {
		return Hit{}, false
	}
	p0, p1 := c.Points(pos)
	hit, ok := p.phys.CapsuleCast(p0, p1, c.Radius, dir, dist, mask)
	p.traceCast("capsule", pos, dir, dist, hit, ok)
	return hit, ok
}

// Overlaps returns true if the sphere overlaps anything in the mask.
func (p *Probe) Overlaps(center mgl32.Vec3, radius float32, mask LayerMask) bool {
	if radius <= 0 || mask == 0 {
		return false
	}
	return p.phys.CheckSphere(center, radius, mask)
}

// Touches returns true if the sphere overlaps the collider passed.
func (p *Probe) Touches(center mgl32.Vec3, radius float32, mask LayerMask, collider ColliderID) bool {
	if collider == NoCollider || radius <= 0 || mask == 0 {
		return false
	}
	for _, id := range p.phys.OverlapSphere(center, radius, mask) {
		if id == collider {
			return true
		}
	}
	return false
}

// Penetration returns how far the capsule placed at pos has to be pushed out of the collider. A zero depth means
// there is no overlap.
func (p *Probe) Penetration(c Capsule, pos mgl32.Vec3, collider ColliderID) (mgl32.Vec3, float32) {
	if collider == NoCollider {
		return mgl32.Vec3{}, 0
	}
	dir, depth, ok := p.phys.ComputePenetration(c, pos, collider)
	if !ok || depth <= 0 || math32.IsNaN(depth) {
		return mgl32.Vec3{}, 0
	}
	return dir, depth
}

func (p *Probe) traceCast(kind string, origin, dir mgl32.Vec3, dist float32, hit Hit, ok bool) {
	if !p.trace {
		return
	}
	if !ok {
		p.log.Debugf("probe: %s origin=%v dir=%v dist=%.3f miss", kind, origin, dir, dist)
		return
	}
	p.log.Debugf("probe: %s origin=%v dir=%v dist=%.3f hit collider=%d point=%v normal=%v at=%.3f",
		kind, origin, dir, dist, hit.Collider, hit.Point, hit.Normal, hit.Distance)
}

func castable(dir mgl32.Vec3, dist float32, mask LayerMask) (mgl32.Vec3, bool) {
	if mask == 0 || !(dist > 0) {
		return dir, false
	}
	l := dir.Len()
	if !(l > 1e-6) {
		return dir, false
	}
	return dir.Mul(1 / l), true
}
