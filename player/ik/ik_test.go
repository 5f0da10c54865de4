package ik

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/player/ledge"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/settings"
	"github.com/oomph-ac/traverse/world"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

type hanging bool

func (h hanging) IsHanging() bool { return bool(h) }

type fixture struct {
	c        *Controller
	headless *anim.Headless
	params   *anim.Params
	detector *ledge.Detector
	body     *world.Body
}

// newFixture places a character at pos in front of a climbable wall whose face is at z=0.6 and whose top is at
// y=2.
func newFixture(t *testing.T, s settings.Settings, pos mgl32.Vec3, h bool) *fixture {
	t.Helper()
	w := world.New()
	w.AddBox("ground", cube.Box(-10, -1, -10, 10, 0, 10), probe.LayerDefault)
	w.AddBox("wall", cube.Box(-3, 0, 0.6, 3, 2, 2.6), probe.LayerClimbable)

	p := probe.New(w, nil, false)
	body := world.NewBody(w, s.Player.Capsule(), s.Layers.Obstacle, game.PoseAt(pos))
	headless := anim.NewHeadless(anim.DefaultGraph(), body, nil, nil)
	params, err := anim.ResolveParams(headless)
	require.NoError(t, err)
	detector := ledge.NewDetector(s, p, nil)

	return &fixture{
		c:        New(s, p, detector, hanging(h), body, headless, params, nil),
		headless: headless,
		params:   params,
		detector: detector,
		body:     body,
	}
}

func requireVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("unexpected position (-want +got):\n%s", diff)
	}
}

func TestHandIK(t *testing.T) {
	f := newFixture(t, settings.DefaultSettings(), mgl32.Vec3{}, true)
	_, ok := f.detector.CanClimb(f.body.Pose())
	require.True(t, ok)
	f.params.SetFloat(anim.RightHandWeight, 0.7)
	f.params.SetFloat(anim.LeftHandWeight, 0.4)

	f.c.OnAnimatorIK(0)

	right := f.headless.IKGoal(anim.RightHand)
	requireVec(t, mgl32.Vec3{0.25, 1.9, 0.55}, right.Position)
	require.InDelta(t, 0.7, right.PositionWeight, 1e-6)

	left := f.headless.IKGoal(anim.LeftHand)
	requireVec(t, mgl32.Vec3{-0.25, 1.9, 0.55}, left.Position)
	require.InDelta(t, 0.4, left.PositionWeight, 1e-6)
}

func TestHandIKKeepsAnimatedPoseOnMiss(t *testing.T) {
	f := newFixture(t, settings.DefaultSettings(), mgl32.Vec3{}, true)
	// Past the edge of the ground, with no ledge found, the hand rays find nothing to rest on.
	f.body.SetPose(game.PoseAt(mgl32.Vec3{20, 0, 0}))
	f.params.SetFloat(anim.RightHandWeight, 1)

	f.c.OnAnimatorIK(0)
	requireVec(t, f.headless.BonePose(anim.RightHand).Position, f.headless.IKGoal(anim.RightHand).Position)
}

func TestNoHandIKUnlessHanging(t *testing.T) {
	f := newFixture(t, settings.DefaultSettings(), mgl32.Vec3{}, false)
	_, ok := f.detector.CanClimb(f.body.Pose())
	require.True(t, ok)
	f.params.SetFloat(anim.RightHandWeight, 1)

	f.c.OnAnimatorIK(0)
	require.Equal(t, anim.IKGoal{}, f.headless.IKGoal(anim.RightHand))
}

func TestHangingFootIK(t *testing.T) {
	s := settings.DefaultSettings()
	s.IK.HandIK = false
	f := newFixture(t, s, mgl32.Vec3{0, 0, 0.45}, true)

	f.c.OnAnimatorIK(0)

	// The soles face the wall: the rays start 0.1 behind the feet and hit the wall 0.15 in front of them.
	right := f.headless.IKGoal(anim.RightFoot)
	requireVec(t, mgl32.Vec3{0.1, 0.1, 0.5}, right.Position)
	require.Equal(t, float32(1), right.PositionWeight)
	left := f.headless.IKGoal(anim.LeftFoot)
	requireVec(t, mgl32.Vec3{-0.1, 0.1, 0.5}, left.Position)
	require.Equal(t, float32(1), left.PositionWeight)
	require.Equal(t, anim.IKGoal{}, f.headless.IKGoal(anim.RightHand))
}

func TestHangingFootIKOutOfReach(t *testing.T) {
	s := settings.DefaultSettings()
	s.IK.HandIK = false
	f := newFixture(t, s, mgl32.Vec3{}, true)

	f.c.OnAnimatorIK(0)
	right := f.headless.IKGoal(anim.RightFoot)
	requireVec(t, f.headless.BonePose(anim.RightFoot).Position, right.Position)
	require.Equal(t, float32(1), right.PositionWeight)
}

func TestGroundedFootIK(t *testing.T) {
	f := newFixture(t, settings.DefaultSettings(), mgl32.Vec3{}, false)
	f.params.SetFloat(anim.RightFootIKWeight, 0.5)
	f.params.SetFloat(anim.LeftFootIKWeight, 0.25)

	f.c.OnAnimatorIK(0)

	right := f.headless.IKGoal(anim.RightFoot)
	requireVec(t, mgl32.Vec3{0.1, 0.1, 0}, right.Position)
	if diff := cmp.Diff(mgl32.QuatIdent(), right.Rotation, approx); diff != "" {
		t.Fatalf("unexpected foot rotation (-want +got):\n%s", diff)
	}
	require.InDelta(t, 0.5, right.PositionWeight, 1e-6)
	require.InDelta(t, 0.5, right.RotationWeight, 1e-6)

	left := f.headless.IKGoal(anim.LeftFoot)
	requireVec(t, mgl32.Vec3{-0.1, 0.1, 0}, left.Position)
	require.InDelta(t, 0.25, left.RotationWeight, 1e-6)
}

func TestFootIKDisabled(t *testing.T) {
	s := settings.DefaultSettings()
	s.IK.FootIK = false
	f := newFixture(t, s, mgl32.Vec3{}, false)
	f.params.SetFloat(anim.RightFootIKWeight, 1)

	f.c.OnAnimatorIK(0)
	require.Equal(t, anim.IKGoal{}, f.headless.IKGoal(anim.RightFoot))
}
