package anim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/oomph-ac/traverse/game"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

type poseRoot struct {
	pose game.Pose
}

func (r *poseRoot) Pose() game.Pose {
	if r.pose.Rotation == (mgl32.Quat{}) {
		r.pose.Rotation = mgl32.QuatIdent()
	}
	return r.pose
}

func (r *poseRoot) SetPose(p game.Pose) { r.pose = p }

var _ RootTransform = (*poseRoot)(nil)

var idle = State("Idle Test")

func singleStateGraph() Graph {
	other := State("Other Test")
	return Graph{
		Entry: idle,
		Bones: DefaultBones(),
		Clips: map[StateID]Clip{
			idle:  {Length: 1, Loop: true},
			other: {Length: 1, Loop: true},
		},
	}
}

func TestHeadlessTransitionsAndEvents(t *testing.T) {
	rec := &recorder{}
	h := NewHeadless(DefaultGraph(), &poseRoot{}, rec, nil)
	p, err := ResolveParams(h)
	require.NoError(t, err)

	h.Advance(0.05)
	require.Equal(t, Locomotion, h.CurrentState(0).ID)
	require.Equal(t, []Phase{PhaseEnter}, rec.phases(Locomotion))

	p.SetTrigger(Jump)
	h.Advance(0.05)
	require.Equal(t, Jumping, h.CurrentState(0).ID)
	require.True(t, h.IsInTransition(0))
	require.False(t, p.Bool(Jump), "trigger must be consumed by the transition")
	// The state blended out of only exits once the blend is over.
	require.Equal(t, []Phase{PhaseEnter}, rec.phases(Locomotion))

	h.Advance(0.05)
	require.False(t, h.IsInTransition(0))
	require.Equal(t, []Phase{PhaseEnter, PhaseExit}, rec.phases(Locomotion))

	// Jumping is not looping, so it hands over to the falling state once played.
	for i := 0; i < 20 && h.CurrentState(0).ID == Jumping; i++ {
		h.Advance(0.05)
	}
	require.Equal(t, InAir, h.CurrentState(0).ID)

	p.SetBool(Grounded, true)
	for i := 0; i < 40 && h.CurrentState(0).ID != Locomotion; i++ {
		h.Advance(0.05)
	}
	require.Equal(t, Locomotion, h.CurrentState(0).ID)
	h.Advance(0.1)
	h.Advance(0.1)
	require.Equal(t, []Phase{PhaseEnter, PhaseExit}, rec.phases(Landing))
}

func TestHeadlessVisitsAreDistinct(t *testing.T) {
	rec := &recorder{}
	h := NewHeadless(singleStateGraph(), &poseRoot{}, rec, nil)
	h.Advance(0)
	first := h.CurrentState(0).Visit

	h.CrossFade(idle, 0, 0)
	require.NotEqual(t, first, h.CurrentState(0).Visit)
	require.Equal(t, []Phase{PhaseEnter, PhaseEnter, PhaseExit}, rec.phases(idle))
}

func TestHeadlessMatchTarget(t *testing.T) {
	root := &poseRoot{}
	h := NewHeadless(singleStateGraph(), root, nil, nil)
	h.Advance(0)

	target := mgl32.Vec3{1, 3, 2}
	h.MatchTarget(MatchRequest{Part: RightHand, Target: game.PoseAt(target), Mask: MaskPosition, End: 0.5})
	require.True(t, h.IsMatchingTarget())

	h.Advance(0.25)
	if diff := cmp.Diff(mgl32.Vec3{0.375, 0.55, 0.9}, root.Pose().Position, approx); diff != "" {
		t.Fatalf("unexpected halfway position (-want +got):\n%s", diff)
	}

	h.Advance(0.25)
	require.False(t, h.IsMatchingTarget())
	if diff := cmp.Diff(target, h.BonePose(RightHand).Position, approx); diff != "" {
		t.Fatalf("matched part is off target (-want +got):\n%s", diff)
	}
}

func TestHeadlessMatchRotationOnly(t *testing.T) {
	root := &poseRoot{}
	h := NewHeadless(singleStateGraph(), root, nil, nil)
	h.Advance(0)

	rot := mgl32.QuatRotate(math32.Pi/2, game.Up)
	h.MatchTarget(MatchRequest{Part: Root, Target: game.NewPose(mgl32.Vec3{5, 5, 5}, rot), Mask: MaskRotation, End: 1})
	h.Advance(1)

	require.Equal(t, mgl32.Vec3{}, root.Pose().Position)
	if diff := cmp.Diff(rot.Rotate(game.Forward), root.Pose().Forward(), approx); diff != "" {
		t.Fatalf("unexpected forward (-want +got):\n%s", diff)
	}
}

func TestHeadlessMatchTargetIgnoredAndDropped(t *testing.T) {
	root := &poseRoot{}
	h := NewHeadless(singleStateGraph(), root, nil, nil)
	h.Advance(0)

	req := MatchRequest{Part: Root, Target: game.PoseAt(mgl32.Vec3{0, 1, 0}), Mask: MaskPosition, End: 1}

	// Requests made during a transition are ignored.
	h.CrossFade(State("Other Test"), 0.5, 0)
	h.MatchTarget(req)
	require.False(t, h.IsMatchingTarget())
	h.Advance(0.5)
	require.False(t, h.IsInTransition(0))

	// A match in flight is dropped when its visit ends.
	h.MatchTarget(req)
	require.True(t, h.IsMatchingTarget())
	h.CrossFade(idle, 0, 0)
	h.Advance(0.1)
	require.False(t, h.IsMatchingTarget())
	require.Equal(t, mgl32.Vec3{}, root.Pose().Position)
}

func TestHeadlessInterruptMatchTarget(t *testing.T) {
	root := &poseRoot{}
	h := NewHeadless(singleStateGraph(), root, nil, nil)
	h.Advance(0)

	target := mgl32.Vec3{0, 2, 1}
	h.MatchTarget(MatchRequest{Part: Root, Target: game.PoseAt(target), Mask: MaskPosition, Start: 0.5, End: 1})
	h.InterruptMatchTarget(false)
	require.False(t, h.IsMatchingTarget())
	require.Equal(t, mgl32.Vec3{}, root.Pose().Position)

	h.MatchTarget(MatchRequest{Part: Root, Target: game.PoseAt(target), Mask: MaskPosition, Start: 0.5, End: 1})
	h.InterruptMatchTarget(true)
	if diff := cmp.Diff(target, root.Pose().Position, approx); diff != "" {
		t.Fatalf("completed match is off target (-want +got):\n%s", diff)
	}
}

func TestHeadlessIKGoals(t *testing.T) {
	h := NewHeadless(singleStateGraph(), &poseRoot{}, nil, nil)
	h.SetIKPosition(LeftHand, mgl32.Vec3{1, 2, 3})
	h.SetIKPositionWeight(LeftHand, 0.5)
	h.SetIKRotationWeight(LeftFoot, 1)

	require.Equal(t, IKGoal{Position: mgl32.Vec3{1, 2, 3}, PositionWeight: 0.5}, h.IKGoal(LeftHand))
	require.Equal(t, float32(1), h.IKGoal(LeftFoot).RotationWeight)

	// Feet probe along their up axis, which faces forward at rest.
	if diff := cmp.Diff(game.Forward, h.BonePose(LeftFoot).Up(), approx); diff != "" {
		t.Fatalf("unexpected foot up (-want +got):\n%s", diff)
	}
}
