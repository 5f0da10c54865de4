package anim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
)

// DefaultBones returns the rest pose of a humanoid rig standing at the root. The feet are rotated so that their
// up axis points forward, which is the axis the hanging foot IK probes along.
func DefaultBones() map[BodyPart]game.Pose {
	foot := mgl32.QuatRotate(math32.Pi/2, game.Right)
	return map[BodyPart]game.Pose{
		Root:      game.PoseAt(mgl32.Vec3{}),
		LeftHand:  game.PoseAt(mgl32.Vec3{-0.25, 1.9, 0.2}),
		RightHand: game.PoseAt(mgl32.Vec3{0.25, 1.9, 0.2}),
		LeftFoot:  game.NewPose(mgl32.Vec3{-0.1, 0.1, 0}, foot),
		RightFoot: game.NewPose(mgl32.Vec3{0.1, 0.1, 0}, foot),
	}
}

// DefaultGraph returns the locomotion and climbing graph driven by the player and climbing controllers.
func DefaultGraph() Graph {
	airborne := []StateID{Locomotion, Jumping, InAir}
	hanging := []StateID{BracedHang, FreeHang}
	holding := []StateID{FallingToBracedHang, FallingToFreeHang, BracedHang, FreeHang, BracedToFreeHang, FreeToBracedHang}
	hop := Clip{Length: 0.7, Next: BracedHang, ExitBlend: 0.1}

	return Graph{
		Entry: Locomotion,
		Bones: DefaultBones(),
		Clips: map[StateID]Clip{
			Locomotion:          {Length: 1, Loop: true},
			Jumping:             {Length: 0.5, Next: InAir, ExitBlend: 0.1},
			InAir:               {Length: 1, Loop: true},
			Landing:             {Length: 0.4, Next: Locomotion, ExitBlend: 0.1},
			FallingToBracedHang: {Length: 0.8, Next: BracedHang, ExitBlend: 0.1},
			FallingToFreeHang:   {Length: 0.8, Next: FreeHang, ExitBlend: 0.1},
			BracedHang:          {Length: 1, Loop: true},
			FreeHang:            {Length: 1, Loop: true},
			BracedToFreeHang:    {Length: 0.5, Next: FreeHang, ExitBlend: 0.1},
			FreeToBracedHang:    {Length: 0.5, Next: BracedHang, ExitBlend: 0.1},
			ClimbingOver:        {Length: 1.6, Next: Locomotion, ExitBlend: 0.2},
			Vaulting:            {Length: 1, Next: Locomotion, ExitBlend: 0.2},
			HopUp:               hop,
			HopDown:             hop,
			HopLeft:             hop,
			HopRight:            hop,
		},
		Transitions: []Transition{
			{From: airborne, When: []Condition{{FallingHang, true}, {Braced, true}}, To: FallingToBracedHang, Duration: 0.1},
			{From: airborne, When: []Condition{{FallingHang, true}, {Braced, false}}, To: FallingToFreeHang, Duration: 0.1},
			{From: append(airborne, Landing), When: []Condition{{Vault, true}}, To: Vaulting, Duration: 0.1},
			{From: hanging, When: []Condition{{ClimbOver, true}}, To: ClimbingOver, Duration: 0.1},
			{From: holding, When: []Condition{{Drop, true}}, To: InAir, Duration: 0.2},
			{From: []StateID{BracedHang}, When: []Condition{{Braced, false}}, To: BracedToFreeHang, Duration: 0.1},
			{From: []StateID{FreeHang}, When: []Condition{{Braced, true}}, To: FreeToBracedHang, Duration: 0.1},
			{From: []StateID{Locomotion}, When: []Condition{{Jump, true}}, To: Jumping, Duration: 0.1},
			{From: []StateID{Locomotion}, When: []Condition{{Falling, true}}, To: InAir, Duration: 0.2},
			{From: []StateID{InAir}, When: []Condition{{Grounded, true}}, To: Landing, Duration: 0.1},
		},
	}
}
