package anim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/zeebo/xxh3"
)

// StateID is the stable identity of an animation state: the hash of its human-readable name.
type StateID uint64

// NoState is the identity of no state at all.
const NoState StateID = 0

var stateNames = map[StateID]string{}

// State returns the identity of the state with the name passed, registering the name for String. It is meant to
// be called once per state when a package is initialised, never per tick.
func State(name string) StateID {
	id := StateID(xxh3.HashString(name))
	stateNames[id] = name
	return id
}

// String returns a human-readable name.
func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%#x)", uint64(s))
}

// States of the locomotion and climbing graph.
var (
	Locomotion = State("Locomotion")
	Jumping    = State("Jump")
	InAir      = State("Falling")
	Landing    = State("Landing")

	FallingToBracedHang = State("Falling To Braced Hang")
	FallingToFreeHang   = State("Falling To Free Hang")
	BracedHang          = State("Hanging Blend Tree")
	FreeHang            = State("Free Hanging Blend Tree")
	BracedToFreeHang    = State("Braced To Free Hang")
	FreeToBracedHang    = State("Free To Braced Hang")
	ClimbingOver        = State("Climbing Over")
	Vaulting            = State("Vaulting")

	HopUp    = State("Braced Hang Hop Up")
	HopDown  = State("Braced Hang Hop Down")
	HopLeft  = State("Braced Hang Hop Left")
	HopRight = State("Braced Hang Hop Right")
)

// Phase is the point of a state visit that a state event is fired for.
type Phase uint8

const (
	PhaseEnter Phase = iota
	PhaseUpdate
	PhaseExit
)

// String returns a human-readable name.
func (p Phase) String() string {
	switch p {
	case PhaseEnter:
		return "enter"
	case PhaseUpdate:
		return "update"
	case PhaseExit:
		return "exit"
	}
	return "unknown"
}

// StateInfo describes the state a state event is fired for.
type StateInfo struct {
	ID StateID
	// NormalizedTime is the playback time of the state in clip lengths. Looping states keep counting up.
	NormalizedTime float32
	Layer          int
	// Visit is unique to one visit of the state: Enter, every Update and Exit of the visit share it.
	Visit uint64
	// DeltaTime is the time elapsed since the previous event of the visit.
	DeltaTime float32
}

// BodyPart selects the part of the body that a target match or IK goal applies to.
type BodyPart uint8

const (
	Root BodyPart = iota
	LeftHand
	RightHand
	LeftFoot
	RightFoot
)

// String returns a human-readable name.
func (b BodyPart) String() string {
	switch b {
	case Root:
		return "root"
	case LeftHand:
		return "left_hand"
	case RightHand:
		return "right_hand"
	case LeftFoot:
		return "left_foot"
	case RightFoot:
		return "right_foot"
	}
	return "unknown"
}

// WeightMask weights how strongly a target match moves each position axis and the rotation.
type WeightMask struct {
	Position mgl32.Vec3
	Rotation float32
}

var (
	// MaskFull locks both position and rotation onto the target.
	MaskFull = WeightMask{Position: mgl32.Vec3{1, 1, 1}, Rotation: 1}
	// MaskPosition matches position only.
	MaskPosition = WeightMask{Position: mgl32.Vec3{1, 1, 1}}
	// MaskRotation matches rotation only.
	MaskRotation = WeightMask{Rotation: 1}
)

// MatchRequest asks the animation layer to blend a body part onto a pose over the [Start, End] window of the
// current state, in normalized time.
type MatchRequest struct {
	Part   BodyPart
	Target game.Pose
	Mask   WeightMask
	Start  float32
	End    float32
}
