package ik

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/player"
	"github.com/oomph-ac/traverse/player/ledge"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/settings"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

const (
	// raySlack is added to the length of the offset rays.
	raySlack = 0.2
	// handWallBack is how far back from the top of the ledge the hand wall ray starts.
	handWallBack = 0.5
	// handWallDrop is how far below the top of the ledge the hand wall ray is cast.
	handWallDrop = 0.1
	// groundRayLift is the height above a foot that its ground ray starts at.
	groundRayLift = 1
	groundRayDist = 1.3
)

// Ledges is the ledge context the hands are placed on. It is implemented by *ledge.Detector.
type Ledges interface {
	Context() ledge.Context
}

// Climber reports whether the character is holding onto a surface. It is implemented by *climb.Controller.
type Climber interface {
	IsHanging() bool
}

// limb is the IK goal, ray offset and IK offset of one hand or foot.
type limb struct {
	part      anim.BodyPart
	weight    anim.Param
	rayOffset mgl32.Vec3
	ikOffset  mgl32.Vec3
	rayDist   float32
}

// Controller corrects the hands and feet of the animated pose so that they rest on the geometry around them.
// It runs once per animation update, after the state machine handlers.
type Controller struct {
	log      logrus.FieldLogger
	settings settings.IK
	obstacle probe.LayerMask
	probe    *probe.Probe

	ledges    Ledges
	climber   Climber
	transform player.Transform
	animator  anim.Animator
	params    *anim.Params

	hands [2]limb
	feet  [2]limb
}

// New returns a Controller probing with p.
func New(s settings.Settings, p *probe.Probe, ledges Ledges, climber Climber, t player.Transform, a anim.Animator, params *anim.Params, log logrus.FieldLogger) *Controller {
	c := s.IK
	handDist := c.HandRayOffset.Len() + raySlack
	return &Controller{
		log:      utils.LoggerOrNop(log),
		settings: c,
		obstacle: s.Layers.Obstacle,
		probe:    p,

		ledges:    ledges,
		climber:   climber,
		transform: t,
		animator:  a,
		params:    params,

		hands: [2]limb{
			{part: anim.LeftHand, weight: anim.LeftHandWeight, ikOffset: c.LeftHandIKOffset, rayDist: handDist},
			{part: anim.RightHand, weight: anim.RightHandWeight, ikOffset: c.RightHandIKOffset, rayDist: handDist},
		},
		feet: [2]limb{
			{part: anim.LeftFoot, weight: anim.LeftFootIKWeight, rayOffset: c.LeftFootRayOffset, ikOffset: c.LeftFootIKOffset, rayDist: c.LeftFootRayOffset.Len() + raySlack},
			{part: anim.RightFoot, weight: anim.RightFootIKWeight, rayOffset: c.RightFootRayOffset, ikOffset: c.RightFootIKOffset, rayDist: c.RightFootRayOffset.Len() + raySlack},
		},
	}
}

// OnAnimatorIK sets the IK goals of the layer for the pose just evaluated.
func (c *Controller) OnAnimatorIK(int) {
	hanging := c.climber.IsHanging()
	if c.settings.HandIK && hanging {
		for _, l := range c.hands {
			c.handIK(l)
		}
	}
	if !c.settings.FootIK {
		return
	}
	for _, l := range c.feet {
		if hanging {
			c.hangingFootIK(l)
		} else {
			c.footIK(l)
		}
	}
}

// handIK places a hand on the top of the ledge, then against the wall just below it. The goal keeps the
// animated position if either ray misses.
func (c *Controller) handIK(l limb) {
	pose := c.transform.Pose()
	ctx := c.ledges.Context()
	c.animator.SetIKPositionWeight(l.part, 0)

	hitLocal := pose.InverseTransformPoint(ctx.Ledge.Forward.Point).Add(c.settings.HandRayOffset)
	handLocal := pose.InverseTransformPoint(c.animator.BonePose(l.part).Position)
	origin := pose.TransformPoint(mgl32.Vec3{handLocal.X(), hitLocal.Y(), hitLocal.Z()})

	goal := c.animator.BonePose(l.part).Position
	facing := game.LookRotation(pose.Forward(), game.Up)
	if top, ok := c.probe.Ray(origin, game.Up.Mul(-1), l.rayDist, c.obstacle); ok {
		from := top.Point.Add(facing.Rotate(game.Forward.Mul(-handWallBack)))
		from[1] -= handWallDrop
		if wall, ok := c.probe.Ray(from, pose.Forward(), l.rayDist, c.obstacle); ok {
			goal = wall.Point.Add(facing.Rotate(l.ikOffset))
		}
	}
	c.animator.SetIKPosition(l.part, goal)
	c.animator.SetIKPositionWeight(l.part, c.params.Float(l.weight))
}

// hangingFootIK plants a foot on the wall in front of its sole while hanging.
func (c *Controller) hangingFootIK(l limb) {
	foot := c.animator.BonePose(l.part)
	up := foot.Up()
	goal := foot.Position
	if hit, ok := c.probe.Ray(foot.TransformPoint(l.rayOffset), up, l.rayDist, c.obstacle); ok {
		goal = hit.Point.Add(game.LookRotation(up, game.Up).Rotate(l.ikOffset))
	}
	c.animator.SetIKPosition(l.part, goal)
	c.animator.SetIKPositionWeight(l.part, 1)
}

// footIK keeps a foot on the ground below it, aligned with the slope.
func (c *Controller) footIK(l limb) {
	foot := c.animator.BonePose(l.part)
	if hit, ok := c.probe.Ray(foot.Position.Add(game.Up.Mul(groundRayLift)), game.Up.Mul(-1), groundRayDist, c.obstacle); ok {
		goal := hit.Point
		goal[1] += c.settings.GroundDistance
		forward := game.ProjectOnPlane(c.transform.Pose().Forward(), hit.Normal)
		c.animator.SetIKPosition(l.part, goal)
		c.animator.SetIKRotation(l.part, game.LookRotation(forward, game.Up))
	}
	w := c.params.Float(l.weight)
	c.animator.SetIKPositionWeight(l.part, w)
	c.animator.SetIKRotationWeight(l.part, w)
}
