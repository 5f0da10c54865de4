package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/settings"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

// MovementState is the air state of the character, derived every fixed tick from the distance to the ground.
type MovementState uint8

const (
	// Grounded is set while the ground is closer than the grounding threshold.
	Grounded MovementState = iota
	// Airborne is set while the ground is between the grounding and falling thresholds.
	Airborne
	// Falling is set while the ground is further than the falling threshold, or out of reach entirely.
	Falling
)

func (s MovementState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	case Falling:
		return "falling"
	}
	return "unknown"
}

// Controller contains the air state and locomotion of a character.
type Controller struct {
	log      logrus.FieldLogger
	settings settings.Settings

	probe     *probe.Probe
	transform Transform
	body      Body
	params    *anim.Params

	state          MovementState
	groundDistance float32
	groundHit      bool

	// lastGrounded is the position of the character on the last grounded tick.
	lastGrounded mgl32.Vec3
	jumpPoint    mgl32.Vec3
	// tookOff is set by Jump until the character is grounded again, so that leaving the ground does not overwrite
	// the takeoff point.
	tookOff bool

	locomotion bool
	move       mgl32.Vec2
	smoothMove mgl32.Vec2
	sprint     bool
	speed      float32
}

// NewController returns a grounded Controller with locomotion enabled.
func NewController(s settings.Settings, p *probe.Probe, t Transform, b Body, params *anim.Params, log logrus.FieldLogger) *Controller {
	pos := t.Pose().Position
	return &Controller{
		log:      utils.LoggerOrNop(log),
		settings: s,

		probe:     p,
		transform: t,
		body:      b,
		params:    params,

		lastGrounded: pos,
		jumpPoint:    pos,
		locomotion:   true,
	}
}

// FixedTick classifies the air state of the character and moves it by its locomotion. It must run before any
// decision reading the air state in the same tick.
func (c *Controller) FixedTick(dt float32) {
	pose := c.transform.Pose()
	prev := c.state
	c.state, c.groundDistance, c.groundHit = c.classify(pose.Position)

	if c.state == Grounded {
		c.lastGrounded, c.tookOff = pose.Position, false
	} else if prev == Grounded && !c.tookOff {
		// Walked off an edge without jumping.
		c.jumpPoint = c.lastGrounded
	}
	if prev != c.state && utils.DebugEnabled(c.log) {
		c.log.Debugf("player: %s -> %s %s", prev, c.state, utils.KeyValsToString("distance", c.groundDistance, "hit", c.groundHit))
	}

	c.params.SetBool(anim.Grounded, c.state == Grounded)
	c.params.SetBool(anim.Falling, c.state == Falling)

	if !c.locomotion {
		return
	}
	if c.state == Grounded && !c.body.Kinematic() {
		v := c.body.Velocity()
		c.body.SetVelocity(mgl32.Vec3{0, v.Y(), 0})
	}
	c.tickMovement(dt)
}

// classify probes the ground below pos.
func (c *Controller) classify(pos mgl32.Vec3) (MovementState, float32, bool) {
	s := c.settings.Player
	origin := pos.Add(game.Up.Mul(s.GroundProbeHeight))
	hit, ok := c.probe.Sphere(origin, s.GroundProbeRadius, game.Up.Mul(-1), s.GroundProbeDistance, c.settings.Layers.Ground)
	if !ok {
		return Falling, 0, false
	}
	switch {
	case hit.Distance < s.GroundingThreshold:
		return Grounded, hit.Distance, true
	case hit.Distance > s.FallingThreshold:
		return Falling, hit.Distance, true
	}
	return Airborne, hit.Distance, true
}

// State returns the air state of the last fixed tick.
func (c *Controller) State() MovementState {
	return c.state
}

// GroundDistance returns the distance of the ground probe on the last fixed tick. False is returned if the ground
// was out of reach.
func (c *Controller) GroundDistance() (float32, bool) {
	return c.groundDistance, c.groundHit
}

// JumpPoint returns the position the character last left the ground from.
func (c *Controller) JumpPoint() mgl32.Vec3 {
	return c.jumpPoint
}

// Locomotion returns true if input moves the character.
func (c *Controller) Locomotion() bool {
	return c.locomotion
}

// SetLocomotion enables or disables input driven movement. Disabling it discards the smoothed movement.
func (c *Controller) SetLocomotion(v bool) {
	if c.locomotion == v {
		return
	}
	c.locomotion = v
	if !v {
		c.smoothMove, c.speed = mgl32.Vec2{}, 0
	}
}

// Jump is called by the jump animation at takeoff. It records the takeoff point and launches the body upwards.
func (c *Controller) Jump() {
	c.jumpPoint, c.tookOff = c.transform.Pose().Position, true
	c.body.AddForce(game.Up.Mul(c.settings.Player.JumpVelocity), ForceModeVelocityChange)
}
