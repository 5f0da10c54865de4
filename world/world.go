package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sasha-s/go-deadlock"
)

// Collider is a static axis-aligned box in the scene.
type Collider struct {
	ID    probe.ColliderID
	Name  string
	Box   cube.BBox
	Layer int
}

// World is a static scene of box colliders. It implements probe.Physics. Sphere and capsule casts are computed
// against the box grown by the cast shape, so rounded edges are treated as square.
type World struct {
	colliders *orderedmap.OrderedMap[probe.ColliderID, Collider]
	nextID    probe.ColliderID

	deadlock.RWMutex
}

// New returns an empty World.
func New() *World {
	return &World{colliders: orderedmap.NewOrderedMap[probe.ColliderID, Collider]()}
}

// AddBox adds a box collider on the layer passed and returns its handle.
func (w *World) AddBox(name string, box cube.BBox, layer int) probe.ColliderID {
	w.Lock()
	defer w.Unlock()

	w.nextID++
	w.colliders.Set(w.nextID, Collider{ID: w.nextID, Name: name, Box: box, Layer: layer})
	return w.nextID
}

// Remove removes a collider from the scene. It returns false if no such collider exists.
func (w *World) Remove(id probe.ColliderID) bool {
	w.Lock()
	defer w.Unlock()
	return w.colliders.Delete(id)
}

// Translate moves a collider by delta.
func (w *World) Translate(id probe.ColliderID, delta mgl32.Vec3) bool {
	w.Lock()
	defer w.Unlock()

	c, ok := w.colliders.Get(id)
	if !ok {
		return false
	}
	c.Box = c.Box.Translate(delta)
	w.colliders.Set(id, c)
	return true
}

// Collider returns the collider with the handle passed.
func (w *World) Collider(id probe.ColliderID) (Collider, bool) {
	w.RLock()
	defer w.RUnlock()
	return w.colliders.Get(id)
}

// Colliders returns every collider in insertion order.
func (w *World) Colliders() []Collider {
	w.RLock()
	defer w.RUnlock()

	list := make([]Collider, 0, w.colliders.Len())
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		list = append(list, el.Value)
	}
	return list
}

// Raycast implements probe.Physics.
func (w *World) Raycast(origin, dir mgl32.Vec3, dist float32, mask probe.LayerMask) (probe.Hit, bool) {
	return w.sweep(origin, dir, dist, mask, func(bb cube.BBox) cube.BBox {
		return bb
	}, func(bb cube.BBox, at, _ mgl32.Vec3) mgl32.Vec3 {
		return at
	})
}

// SphereCast implements probe.Physics.
func (w *World) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask probe.LayerMask) (probe.Hit, bool) {
	return w.sweep(origin, dir, dist, mask, func(bb cube.BBox) cube.BBox {
		return bb.Grow(radius)
	}, func(bb cube.BBox, at, normal mgl32.Vec3) mgl32.Vec3 {
		return game.AABBClosestPoint(bb, at.Sub(normal.Mul(radius)))
	})
}

// CapsuleCast implements probe.Physics.
func (w *World) CapsuleCast(p0, p1 mgl32.Vec3, radius float32, dir mgl32.Vec3, dist float32, mask probe.LayerMask) (probe.Hit, bool) {
	seg := p1.Sub(p0)
	return w.sweep(p0, dir, dist, mask, func(bb cube.BBox) cube.BBox {
		return minkowskiSegment(bb, seg).Grow(radius)
	}, func(bb cube.BBox, at, normal mgl32.Vec3) mgl32.Vec3 {
		closest := closestOnSegment(at, at.Add(seg), utils.BBCenter(bb))
		return game.AABBClosestPoint(bb, closest.Sub(normal.Mul(radius)))
	})
}

// CheckSphere implements probe.Physics.
func (w *World) CheckSphere(center mgl32.Vec3, radius float32, mask probe.LayerMask) bool {
	return len(w.overlapSphere(center, radius, mask, true)) != 0
}

// OverlapSphere returns the colliders overlapping the sphere, in insertion order.
func (w *World) OverlapSphere(center mgl32.Vec3, radius float32, mask probe.LayerMask) []probe.ColliderID {
	return w.overlapSphere(center, radius, mask, false)
}

// ComputePenetration tests the bounding box of the capsule against the collider.
func (w *World) ComputePenetration(c probe.Capsule, pos mgl32.Vec3, collider probe.ColliderID) (mgl32.Vec3, float32, bool) {
	col, ok := w.Collider(collider)
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	pen, ok := utils.BBPenetration(col.Box, CapsuleBounds(c, pos))
	if !ok {
		return mgl32.Vec3{}, 0, false
	}
	return pen.Direction, pen.Depth, true
}

// CapsuleBounds returns the bounding box of the capsule placed at pos.
func CapsuleBounds(c probe.Capsule, pos mgl32.Vec3) cube.BBox {
	return game.AABBFromDimensions(c.Radius*2, c.Height).Translate(pos.Add(c.Center).Sub(mgl32.Vec3{0, c.Height / 2}))
}

func (w *World) overlapSphere(center mgl32.Vec3, radius float32, mask probe.LayerMask, first bool) []probe.ColliderID {
	w.RLock()
	defer w.RUnlock()

	var ids []probe.ColliderID
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		c := el.Value
		if !mask.Contains(c.Layer) {
			continue
		}
		if game.AABBVectorDistance(c.Box, center) <= radius {
			ids = append(ids, c.ID)
			if first {
				break
			}
		}
	}
	return ids
}

// sweep casts the reference point of a shape against every collider grown by expand, skipping colliders that
// already contain the origin. contact maps the hit position back to a point on the original box.
func (w *World) sweep(
	origin, dir mgl32.Vec3, dist float32, mask probe.LayerMask,
	expand func(cube.BBox) cube.BBox,
	contact func(bb cube.BBox, at, normal mgl32.Vec3) mgl32.Vec3,
) (probe.Hit, bool) {
	w.RLock()
	defer w.RUnlock()

	end := origin.Add(dir.Mul(dist))
	var (
		best  probe.Hit
		found bool
	)
	for el := w.colliders.Front(); el != nil; el = el.Next() {
		c := el.Value
		if !mask.Contains(c.Layer) {
			continue
		}
		grown := expand(c.Box)
		if grown.Vec3Within(origin) {
			continue
		}
		res, ok := trace.BBoxIntercept(grown, origin, end)
		if !ok {
			continue
		}
		at := res.Position()
		d := at.Sub(origin).Len()
		if found && d >= best.Distance {
			continue
		}
		normal := game.AABBFaceNormal(grown, at, dir)
		best = probe.Hit{
			Point:    contact(c.Box, at, normal),
			Normal:   normal,
			Distance: d,
			Collider: c.ID,
			Layer:    c.Layer,
		}
		found = true
	}
	return best, found
}

// minkowskiSegment returns the set of points p for which p+s*seg lies in bb for some s in [0, 1].
func minkowskiSegment(bb cube.BBox, seg mgl32.Vec3) cube.BBox {
	lo, hi := bb.Min(), bb.Max()
	for i := 0; i < 3; i++ {
		if seg[i] > 0 {
			lo[i] -= seg[i]
		} else {
			hi[i] -= seg[i]
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

func closestOnSegment(a, b, p mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	l := ab.LenSqr()
	if l == 0 {
		return a
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/l, 0, 1)
	return a.Add(ab.Mul(t))
}
