package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
)

// ForceMode selects how a force passed to Body.AddForce changes the velocity of the body.
type ForceMode uint8

const (
	// ForceModeForce applies a continuous force, scaled by mass and the step duration.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration applies a continuous acceleration, ignoring mass.
	ForceModeAcceleration
	// ForceModeImpulse applies an instant impulse, scaled by mass.
	ForceModeImpulse
	// ForceModeVelocityChange applies an instant velocity change, ignoring mass.
	ForceModeVelocityChange
)

// Transform is the pose of the character in the scene.
type Transform interface {
	Pose() game.Pose
	SetPose(game.Pose)
}

// Body is the rigid body of the character. Its kinematic and gravity flags are owned by the climb controller,
// which toggles them at state boundaries only.
type Body interface {
	Kinematic() bool
	SetKinematic(bool)
	UseGravity() bool
	SetUseGravity(bool)
	Velocity() mgl32.Vec3
	SetVelocity(mgl32.Vec3)
	AddForce(f mgl32.Vec3, mode ForceMode)
}
