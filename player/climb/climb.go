package climb

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/assert"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/player"
	"github.com/oomph-ac/traverse/player/ledge"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/settings"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

// Ledges is the ledge perception the controller decides on. It is implemented by *ledge.Detector.
type Ledges interface {
	CanClimb(pose game.Pose) (ledge.Ledge, bool)
	CanClimbOver(pose game.Pose) bool
	CheckLedgeInMoveDirection(dir float32) ledge.SideProbe
	IsLedgeBraced() bool
	HoldsSurface() bool
	FindAnchor(intent mgl32.Vec2) (probe.Hit, bool)

	HangPose(hand ledge.Hand, braced bool) game.Pose
	HitPointPose(hit probe.Hit, braced bool) game.Pose
	EndpointPose(kind ledge.EndpointKind) game.Pose

	Context() ledge.Context
	Grab(l ledge.Ledge)
	Rebase(anchor probe.Hit)
	Release()
}

// Mover is the air state and locomotion of the character. It is implemented by *player.Controller.
type Mover interface {
	State() player.MovementState
	JumpPoint() mgl32.Vec3
	Locomotion() bool
	SetLocomotion(bool)
}

// Intent is the movement and action intent of the character, as consumed by the fixed tick.
type Intent struct {
	// Target is the raw movement axis.
	Target mgl32.Vec2
	// Move is Target smoothed over time.
	Move     mgl32.Vec2
	JumpHeld bool
	// JumpPressed and DropPressed are latched until the next fixed tick.
	JumpPressed bool
	DropPressed bool
}

// Controller is the climb state machine of a character. It turns ledge perception and intent into animation
// triggers and body constraints, and resolves target matching from animation state events. Every method must be
// called from the goroutine ticking the character.
type Controller struct {
	log      logrus.FieldLogger
	settings settings.Settings

	ledges    Ledges
	mover     Mover
	transform player.Transform
	body      player.Body
	animator  anim.Animator
	params    *anim.Params

	state    State
	intent   Intent
	cooldown float32
	decision Decision

	target     game.Pose
	targetPart anim.BodyPart
	hasTarget  bool
	// matchedVisit is the state visit the last target match was requested in.
	matchedVisit uint64

	anchor probe.Hit
}

// New returns an idle Controller.
func New(s settings.Settings, ledges Ledges, mover Mover, t player.Transform, b player.Body, a anim.Animator, params *anim.Params, log logrus.FieldLogger) *Controller {
	return &Controller{
		log:      utils.LoggerOrNop(log),
		settings: s,

		ledges:    ledges,
		mover:     mover,
		transform: t,
		body:      b,
		animator:  a,
		params:    params,
	}
}

// State returns the current climb state.
func (c *Controller) State() State {
	return c.state
}

// IsHanging returns true while the character holds onto a surface.
func (c *Controller) IsHanging() bool {
	return c.state.IsHanging()
}

// Intent returns the current intent.
func (c *Controller) Intent() Intent {
	return c.intent
}

// LastDecision returns the outcome of the last decision pass that found a ledge.
func (c *Controller) LastDecision() Decision {
	return c.decision
}

// Target returns the pose the current climb move is matched and rotated towards.
func (c *Controller) Target() (game.Pose, anim.BodyPart, bool) {
	return c.target, c.targetPart, c.hasTarget
}

// Move sets the movement axis.
func (c *Controller) Move(v mgl32.Vec2) {
	c.intent.Target = mgl32.Vec2{mgl32.Clamp(v.X(), -1, 1), mgl32.Clamp(v.Y(), -1, 1)}
}

// Jump sets whether the jump button is held. A press is latched until the next fixed tick.
func (c *Controller) Jump(pressed bool) {
	c.intent.JumpHeld = pressed
	if pressed {
		c.intent.JumpPressed = true
	}
}

// Drop requests letting go of the ledge on the next fixed tick.
func (c *Controller) Drop() {
	c.intent.DropPressed = true
}

// FixedTick runs the climb decision pass. The air state must have been classified for this tick already.
func (c *Controller) FixedTick(dt float32) {
	defer func() {
		c.intent.JumpPressed, c.intent.DropPressed = false, false
	}()
	c.cooldown = math32.Max(c.cooldown-dt, 0)
	c.intent.Move = game.LerpVec2(c.intent.Move, c.intent.Target, c.settings.Climb.IntentLerpRate*dt)

	switch c.state.Kind {
	case Hanging:
		c.hangingTick(dt)
		return
	case Hopping, Vaulting, ClimbingOver:
		return
	}
	if !c.mover.Locomotion() {
		return
	}

	pose := c.transform.Pose()
	l, ok := c.ledges.CanClimb(pose)
	if !ok || c.cooldown > 0 {
		return
	}
	m := c.mover.State()
	d, jumpHeight := Classify(c.settings.Climb, m, l.Height(), pose.Position.Y(), c.mover.JumpPoint().Y(), c.intent.JumpHeld)
	c.decision = d

	if utils.DebugEnabled(c.log) {
		c.log.Debugf("climb: decision %s %s", d, utils.KeyValsToString("jump_height", jumpHeight, "ledge", l.Height(), "air", m, "collider", l.Down.Collider))
	}
	switch d {
	case Hang:
		c.hang(l)
	case Vault:
		c.vault()
	}
}

func (c *Controller) hang(l ledge.Ledge) {
	if grabbed := c.ledges.Context().Grabbed; grabbed != probe.NoCollider && grabbed == l.Down.Collider {
		c.log.Debugf("climb: already holding %d, not grabbing again", grabbed)
		return
	}
	c.ledges.Grab(l)
	braced := c.ledges.IsLedgeBraced()
	c.setTarget(anim.RightHand, c.ledges.HangPose(ledge.RightHand, braced))

	c.params.SetBool(anim.Braced, braced)
	c.params.ResetTrigger(anim.Jump)
	c.params.SetTrigger(anim.FallingHang)
	c.mover.SetLocomotion(false)

	c.body.SetVelocity(mgl32.Vec3{})
	c.body.SetUseGravity(false)
	c.body.SetKinematic(true)

	c.setState(State{Kind: Hanging, Braced: braced})
	c.cooldown = c.settings.Climb.RegrabCooldown
}

func (c *Controller) vault() {
	c.setTarget(anim.Root, c.ledges.EndpointPose(ledge.EndpointVault))
	c.params.ResetTrigger(anim.Jump)
	c.params.SetTrigger(anim.Vault)
	c.mover.SetLocomotion(false)
	c.setState(State{Kind: Vaulting})
	c.cooldown = c.settings.Climb.RegrabCooldown
}

// hangingTick runs a fixed tick while holding onto a ledge.
func (c *Controller) hangingTick(dt float32) {
	if !c.ledges.HoldsSurface() {
		c.log.Warnf("climb: lost grabbed surface %d, dropping", c.ledges.Context().Grabbed)
		c.release(false)
		return
	}
	if braced := c.ledges.IsLedgeBraced(); braced != c.state.Braced {
		c.params.SetBool(anim.Braced, braced)
		c.setState(State{Kind: Hanging, Braced: braced})
	}
	if c.intent.DropPressed {
		c.log.Debugf("climb: drop from %d", c.ledges.Context().Grabbed)
		c.release(true)
		return
	}
	if c.intent.JumpPressed && c.climbOver() {
		return
	}
	c.climbMovement(dt)
}

func (c *Controller) climbOver() bool {
	if id := c.animator.CurrentState(0).ID; id != anim.BracedHang && id != anim.FreeHang {
		c.log.Debugf("climb: climb over ignored in %s", id)
		return false
	}
	if !c.ledges.CanClimbOver(c.transform.Pose()) {
		c.log.Debugf("climb: no room to climb over")
		return false
	}
	c.params.SetTrigger(anim.ClimbOver)
	c.setTarget(anim.Root, c.ledges.EndpointPose(ledge.EndpointClimbOver))
	c.setState(State{Kind: ClimbingOver})
	return true
}

// climbMovement shuffles along the ledge, or hops around corners and onto anchors, following the smoothed intent.
func (c *Controller) climbMovement(dt float32) {
	s := c.settings.Climb
	move := c.intent.Move
	id := c.animator.CurrentState(0).ID
	settled := (id == anim.BracedHang || id == anim.FreeHang) && !c.animator.IsInTransition(0)
	speed := c.params.Float(anim.SpeedX)

	if settled && math32.Abs(move.X()) > s.MoveDeadzone {
		side := c.ledges.CheckLedgeInMoveDirection(move.X())
		switch {
		case side.Continues:
			c.params.SetFloat(anim.SpeedX, game.Lerp(speed, move.X(), s.IntentLerpRate*dt))
			c.shuffle(move.X() * s.ShuffleSpeed * dt)
			return
		case side.IsCorner:
			hit := side.SideHit
			hit.Point[1] = c.ledges.Context().Ledge.Height()
			c.hop(horizontalDirection(move.X()), hit)
			return
		}
	}
	c.params.SetFloat(anim.SpeedX, game.Lerp(speed, 0, s.IntentLerpRate*dt))

	if !settled || move.Len() <= s.MoveDeadzone {
		return
	}
	hit, ok := c.ledges.FindAnchor(move)
	if !ok || hit.Collider == c.ledges.Context().Grabbed {
		return
	}
	dir := horizontalDirection(move.X())
	if math32.Abs(move.Y()) > math32.Abs(move.X()) {
		dir = HopDown
		if move.Y() > 0 {
			dir = HopUp
		}
	}
	c.hop(dir, hit)
}

// shuffle moves the character sideways along the wall. The move is only made if the ledge is still found at the
// new position.
func (c *Controller) shuffle(dist float32) {
	pose := c.transform.Pose()
	moved := pose
	moved.Position = pose.TransformPoint(mgl32.Vec3{dist, 0, 0})
	l, ok := c.ledges.CanClimb(moved)
	if !ok {
		return
	}
	c.transform.SetPose(moved)
	c.ledges.Grab(l)
}

func (c *Controller) hop(dir Direction, hit probe.Hit) {
	if utils.DebugEnabled(c.log) {
		c.log.Debugf("climb: hop %s %s", dir, utils.KeyValsToString("collider", hit.Collider, "point", hit.Point))
	}
	c.anchor = hit
	c.setTarget(anim.RightHand, c.ledges.HitPointPose(hit, c.state.Braced))
	c.params.SetFloat(anim.SpeedX, 0)
	c.animator.CrossFade(dir.animState(), c.settings.Climb.HopCrossFade, 0)
	c.setState(State{Kind: Hopping, Braced: c.state.Braced, Hop: dir})
}

// landHop settles the grab once a hop has played. A ledge found from the new position is preferred over the hop
// target itself.
func (c *Controller) landHop() {
	if l, ok := c.ledges.CanClimb(c.transform.Pose()); ok {
		c.ledges.Grab(l)
	} else {
		c.ledges.Rebase(c.anchor)
	}
	braced := c.ledges.IsLedgeBraced()
	c.params.SetBool(anim.Braced, braced)
	c.setTarget(anim.RightHand, c.ledges.HangPose(ledge.RightHand, braced))
	c.setState(State{Kind: Hanging, Braced: braced})
}

// release lets go of the ledge and hands the body back to the simulation. The drop impulse pushes the character
// away from the wall.
func (c *Controller) release(impulse bool) {
	forward := game.Horizontal(c.transform.Pose().Forward())
	c.params.SetTrigger(anim.Drop)
	c.setState(State{Kind: Idle})
	c.animator.InterruptMatchTarget(false)
	c.hasTarget = false

	c.body.SetKinematic(false)
	c.body.SetUseGravity(true)
	if impulse {
		c.body.AddForce(game.SafeNormalize(forward).Mul(-c.settings.Climb.DropImpulse), player.ForceModeVelocityChange)
	}
	c.mover.SetLocomotion(true)
	c.cooldown = c.settings.Climb.RegrabCooldown
}

// finishScripted ends a vault or climb over once its animation is done.
func (c *Controller) finishScripted() {
	c.hasTarget = false
	c.body.SetKinematic(false)
	c.body.SetUseGravity(true)
	c.body.SetVelocity(mgl32.Vec3{})
	c.mover.SetLocomotion(true)
	c.setState(State{Kind: Idle})
}

// Reset forces the controller back to idle with dynamic physics, releasing any grabbed surface.
func (c *Controller) Reset() {
	c.state = State{Kind: Idle}
	c.hasTarget = false
	c.animator.InterruptMatchTarget(false)
	c.ledges.Release()
	c.body.SetKinematic(false)
	c.body.SetUseGravity(true)
	c.mover.SetLocomotion(true)
}

func (c *Controller) setTarget(part anim.BodyPart, pose game.Pose) {
	c.target, c.targetPart, c.hasTarget = pose, part, true
}

func (c *Controller) setState(next State) {
	assert.IsTrue(CanTransition(c.state.Kind, next.Kind), "illegal climb transition %s -> %s", c.state, next)
	assert.IsTrue(!next.IsHanging() || c.ledges.Context().Grabbed != probe.NoCollider, "%s without a grabbed surface", next)
	if next != c.state {
		c.log.Debugf("climb: %s -> %s", c.state, next)
	}
	c.state = next
}

func horizontalDirection(x float32) Direction {
	if x < 0 {
		return HopLeft
	}
	return HopRight
}
