package anim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
)

// Animator is the animation playback backend. It runs the state graph, fires state events and applies target
// matching and IK goals to the skeleton.
type Animator interface {
	// ParamHandle resolves a parameter by name.
	ParamHandle(name string, kind ParamKind) (Handle, bool)
	SetFloat(h Handle, v float32)
	Float(h Handle) float32
	SetBool(h Handle, v bool)
	Bool(h Handle) bool
	SetTrigger(h Handle)
	ResetTrigger(h Handle)

	// CurrentState returns the state that is playing on the layer, or being blended into.
	CurrentState(layer int) StateInfo
	// IsInTransition returns true while the layer blends between two states.
	IsInTransition(layer int) bool
	// CrossFade starts a blend to the state over duration seconds.
	CrossFade(state StateID, duration float32, layer int)

	// IsMatchingTarget returns true from a successful MatchTarget until the match window ends or is interrupted.
	IsMatchingTarget() bool
	// MatchTarget starts a target match within the current state. Requests made while another match is in
	// flight or while the layer is in transition are ignored.
	MatchTarget(req MatchRequest)
	// InterruptMatchTarget stops the match in flight. If complete is set, the target is applied fully first.
	InterruptMatchTarget(complete bool)

	// BonePose returns the pose of a body part as last animated.
	BonePose(part BodyPart) game.Pose
	SetIKPosition(part BodyPart, pos mgl32.Vec3)
	SetIKRotation(part BodyPart, rot mgl32.Quat)
	SetIKPositionWeight(part BodyPart, w float32)
	SetIKRotationWeight(part BodyPart, w float32)
}
