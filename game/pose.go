package game

import "github.com/go-gl/mathgl/mgl32"

// Pose is a position and orientation in world space. It is used both for the character's own
// transform and for target-matching goals.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewPose returns a pose at pos facing rot.
func NewPose(pos mgl32.Vec3, rot mgl32.Quat) Pose {
	return Pose{Position: pos, Rotation: rot}
}

// PoseAt returns an unrotated pose at pos.
func PoseAt(pos mgl32.Vec3) Pose {
	return Pose{Position: pos, Rotation: mgl32.QuatIdent()}
}

// TransformPoint converts a point local to the pose into world space.
func (p Pose) TransformPoint(local mgl32.Vec3) mgl32.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// TransformDirection rotates a local direction into world space.
func (p Pose) TransformDirection(local mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Rotate(local)
}

// InverseTransformPoint converts a world space point into the local space of the pose.
func (p Pose) InverseTransformPoint(world mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Conjugate().Rotate(world.Sub(p.Position))
}

// Forward returns the forward axis of the pose.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Rotation.Rotate(Forward)
}

// Right returns the right axis of the pose.
func (p Pose) Right() mgl32.Vec3 {
	return p.Rotation.Rotate(Right)
}

// Up returns the up axis of the pose.
func (p Pose) Up() mgl32.Vec3 {
	return p.Rotation.Rotate(Up)
}
