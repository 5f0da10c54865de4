package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/player"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/utils"
)

// Gravity is the acceleration applied to bodies using gravity.
const Gravity float32 = -9.81

// maxResolveIterations is the amount of passes made to push a body out of the scene in a single step.
const maxResolveIterations = 4

// Body is a capsule rigid body moving through a World. It implements player.Transform and player.Body.
type Body struct {
	world   *World
	capsule probe.Capsule
	mask    probe.LayerMask

	pose      game.Pose
	vel       mgl32.Vec3
	force     mgl32.Vec3
	mass      float32
	kinematic bool
	gravity   bool
}

// NewBody returns a dynamic body using gravity, placed at pose. Collisions are resolved against colliders in
// mask.
func NewBody(w *World, capsule probe.Capsule, mask probe.LayerMask, pose game.Pose) *Body {
	return &Body{world: w, capsule: capsule, mask: mask, pose: pose, mass: 1, gravity: true}
}

// Pose returns the current pose of the body.
func (b *Body) Pose() game.Pose { return b.pose }

// SetPose teleports the body.
func (b *Body) SetPose(p game.Pose) { b.pose = p }

func (b *Body) Kinematic() bool { return b.kinematic }

// SetKinematic toggles whether the body is moved by the simulation. Pending forces are discarded when the body
// becomes kinematic.
func (b *Body) SetKinematic(v bool) {
	b.kinematic = v
	if v {
		b.force = mgl32.Vec3{}
	}
}

func (b *Body) UseGravity() bool     { return b.gravity }
func (b *Body) SetUseGravity(v bool) { b.gravity = v }

func (b *Body) Velocity() mgl32.Vec3     { return b.vel }
func (b *Body) SetVelocity(v mgl32.Vec3) { b.vel = v }

// AddForce applies f to the body. Kinematic bodies ignore forces.
func (b *Body) AddForce(f mgl32.Vec3, mode player.ForceMode) {
	if b.kinematic {
		return
	}
	switch mode {
	case player.ForceModeForce:
		b.force = b.force.Add(f.Mul(1 / b.mass))
	case player.ForceModeAcceleration:
		b.force = b.force.Add(f)
	case player.ForceModeImpulse:
		b.vel = b.vel.Add(f.Mul(1 / b.mass))
	case player.ForceModeVelocityChange:
		b.vel = b.vel.Add(f)
	}
}

// Step integrates the body by dt seconds and pushes it out of any collider it ends up overlapping.
func (b *Body) Step(dt float32) {
	if b.kinematic {
		return
	}
	b.vel = b.vel.Add(b.force.Mul(dt))
	b.force = mgl32.Vec3{}
	if b.gravity {
		b.vel[1] += Gravity * dt
	}
	b.pose.Position = b.pose.Position.Add(b.vel.Mul(dt))

	for i := 0; i < maxResolveIterations; i++ {
		if !b.resolve() {
			return
		}
	}
}

// resolve pushes the body out of the deepest collider it overlaps. It returns false once nothing overlaps.
func (b *Body) resolve() bool {
	bounds := CapsuleBounds(b.capsule, b.pose.Position)
	var (
		deepest utils.Penetration
		found   bool
	)
	for _, c := range b.world.Colliders() {
		if !b.mask.Contains(c.Layer) {
			continue
		}
		pen, ok := utils.BBPenetration(c.Box, bounds)
		if !ok || (found && pen.Depth <= deepest.Depth) {
			continue
		}
		deepest, found = pen, true
	}
	if !found {
		return false
	}
	b.pose.Position = b.pose.Position.Add(deepest.Direction.Mul(deepest.Depth))
	if into := b.vel.Dot(deepest.Direction); into < 0 {
		b.vel = b.vel.Sub(deepest.Direction.Mul(into))
	}
	return true
}
