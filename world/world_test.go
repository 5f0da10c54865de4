package world

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/player"
	"github.com/oomph-ac/traverse/probe"
	"github.com/stretchr/testify/require"
)

var solid = probe.Layers(probe.LayerDefault, probe.LayerClimbable)

// Body is moved by target matching and read by the climbing controller.
var (
	_ anim.RootTransform = (*Body)(nil)
	_ player.Transform   = (*Body)(nil)
	_ player.Body        = (*Body)(nil)
)

func TestRaycast(t *testing.T) {
	w := New()
	id := w.AddBox("crate", cube.Box(0, 0, 0, 1, 1, 1), probe.LayerClimbable)
	w.AddBox("far", cube.Box(0, -5, 0, 1, -4, 1), probe.LayerClimbable)

	hit, ok := w.Raycast(mgl32.Vec3{0.5, 3, 0.5}, mgl32.Vec3{0, -1, 0}, 10, solid)
	require.True(t, ok)
	require.Equal(t, id, hit.Collider)
	require.InDelta(t, 2, hit.Distance, 1e-4)
	require.Equal(t, mgl32.Vec3{0, 1, 0}, hit.Normal)
	require.InDelta(t, 1, hit.Point.Y(), 1e-4)

	_, ok = w.Raycast(mgl32.Vec3{0.5, 3, 0.5}, mgl32.Vec3{0, -1, 0}, 1.5, solid)
	require.False(t, ok, "collider beyond the cast distance")

	_, ok = w.Raycast(mgl32.Vec3{0.5, 3, 0.5}, mgl32.Vec3{0, -1, 0}, 10, probe.Layers(probe.LayerAnchor))
	require.False(t, ok, "layer mask filters the collider")
}

func TestRaycastIgnoresColliderContainingOrigin(t *testing.T) {
	w := New()
	w.AddBox("inside", cube.Box(0, 0, 0, 1, 1, 1), probe.LayerDefault)
	below := w.AddBox("below", cube.Box(0, -3, 0, 1, -2, 1), probe.LayerDefault)

	hit, ok := w.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, -1, 0}, 10, solid)
	require.True(t, ok)
	require.Equal(t, below, hit.Collider)
}

func TestSphereCast(t *testing.T) {
	w := New()
	w.AddBox("crate", cube.Box(0, 0, 0, 1, 1, 1), probe.LayerDefault)

	hit, ok := w.SphereCast(mgl32.Vec3{0.5, 3, 0.5}, 0.25, mgl32.Vec3{0, -1, 0}, 10, solid)
	require.True(t, ok)
	require.InDelta(t, 1.75, hit.Distance, 1e-4)
	require.InDelta(t, 1, hit.Point.Y(), 1e-4)
	require.Equal(t, mgl32.Vec3{0, 1, 0}, hit.Normal)

	// The sphere grazes the side of the box.
	_, ok = w.SphereCast(mgl32.Vec3{1.2, 3, 0.5}, 0.25, mgl32.Vec3{0, -1, 0}, 10, solid)
	require.True(t, ok)
	_, ok = w.SphereCast(mgl32.Vec3{1.3, 3, 0.5}, 0.25, mgl32.Vec3{0, -1, 0}, 10, solid)
	require.False(t, ok)
}

func TestCapsuleCast(t *testing.T) {
	w := New()
	wall := w.AddBox("wall", cube.Box(0, 0, 0, 1, 1, 1), probe.LayerDefault)

	// The top sphere of the capsule is above the wall, the bottom one is level with it.
	hit, ok := w.CapsuleCast(mgl32.Vec3{-2, 0.5, 0.5}, mgl32.Vec3{-2, 1.5, 0.5}, 0.25, mgl32.Vec3{1, 0, 0}, 5, solid)
	require.True(t, ok)
	require.Equal(t, wall, hit.Collider)
	require.InDelta(t, 1.75, hit.Distance, 1e-4)
	require.Equal(t, mgl32.Vec3{-1, 0, 0}, hit.Normal)

	// Entirely above the wall.
	_, ok = w.CapsuleCast(mgl32.Vec3{-2, 1.5, 0.5}, mgl32.Vec3{-2, 2.5, 0.5}, 0.25, mgl32.Vec3{1, 0, 0}, 5, solid)
	require.False(t, ok)
}

func TestOverlapAndPenetration(t *testing.T) {
	w := New()
	ledge := w.AddBox("ledge", cube.Box(0, 0, 0, 2, 1, 2), probe.LayerClimbable)

	require.True(t, w.CheckSphere(mgl32.Vec3{1, 1.1, 1}, 0.15, solid))
	require.False(t, w.CheckSphere(mgl32.Vec3{1, 1.3, 1}, 0.15, solid))
	require.Equal(t, []probe.ColliderID{ledge}, w.OverlapSphere(mgl32.Vec3{1, 1, 1}, 0.01, solid))

	capsule := probe.Capsule{Center: mgl32.Vec3{0, 0.9, 0}, Radius: 0.3, Height: 1.8}
	dir, depth, ok := w.ComputePenetration(capsule, mgl32.Vec3{1, 0.9, 1}, ledge)
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{0, 1, 0}, dir)
	require.InDelta(t, 0.1, depth, 1e-4)

	_, _, ok = w.ComputePenetration(capsule, mgl32.Vec3{1, 1.01, 1}, ledge)
	require.False(t, ok)

	require.True(t, w.Remove(ledge))
	require.False(t, w.CheckSphere(mgl32.Vec3{1, 1, 1}, 0.5, solid))
}

func TestBodyFallsOntoGround(t *testing.T) {
	w := New()
	w.AddBox("ground", cube.Box(-5, -1, -5, 5, 0, 5), probe.LayerDefault)
	capsule := probe.Capsule{Center: mgl32.Vec3{0, 0.9, 0}, Radius: 0.3, Height: 1.8}
	b := NewBody(w, capsule, solid, game.PoseAt(mgl32.Vec3{0, 1, 0}))

	for i := 0; i < 100; i++ {
		b.Step(0.02)
	}
	require.InDelta(t, 0, b.Pose().Position.Y(), 1e-3)
	require.InDelta(t, 0, b.Velocity().Y(), 0.25)

	b.SetKinematic(true)
	b.AddForce(mgl32.Vec3{0, 10, 0}, player.ForceModeVelocityChange)
	b.Step(0.02)
	require.InDelta(t, 0, b.Pose().Position.Y(), 1e-3, "kinematic bodies ignore forces")

	b.SetKinematic(false)
	b.AddForce(mgl32.Vec3{0, 5, 0}, player.ForceModeVelocityChange)
	b.Step(0.02)
	require.Greater(t, b.Pose().Position.Y(), float32(0.05))
}
