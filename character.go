package traverse

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/oerror"
	"github.com/oomph-ac/traverse/player"
	"github.com/oomph-ac/traverse/player/climb"
	"github.com/oomph-ac/traverse/player/ik"
	"github.com/oomph-ac/traverse/player/ledge"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/settings"
	"github.com/oomph-ac/traverse/utils"
	"github.com/oomph-ac/traverse/world"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// sentryFlushTimeout is the longest a recovered panic waits for its report to be sent.
const sentryFlushTimeout = time.Second * 5

// Character is a climbing character in a World. It owns the body, the animation playback and every controller,
// and runs them in order on each tick. Inputs may be passed from any goroutine.
type Character struct {
	log      logrus.FieldLogger
	settings settings.Settings

	body     *world.Body
	animator *anim.Headless
	router   *anim.Router
	params   *anim.Params

	player *player.Controller
	ledges *ledge.Detector
	climb  *climb.Controller
	ik     *ik.Controller

	mu deadlock.Mutex
}

// New places a Character at spawn in w. An error is returned if the settings are invalid.
func New(s settings.Settings, w *world.World, spawn game.Pose, log logrus.FieldLogger) (*Character, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("character settings: %w", err)
	}
	log = utils.LoggerOrNop(log)

	c := &Character{
		log:      log,
		settings: s,
		body:     world.NewBody(w, s.Player.Capsule(), s.Layers.Obstacle, spawn),
		router:   anim.NewRouter(log, s.Debug),
	}
	c.animator = anim.NewHeadless(anim.DefaultGraph(), c.body, c.router, log)
	params, err := anim.ResolveParams(c.animator)
	if err != nil {
		return nil, fmt.Errorf("resolve animation parameters: %w", err)
	}
	c.params = params

	p := probe.New(w, log, s.Debug)
	c.player = player.NewController(s, p, c.body, c.body, params, log)
	c.ledges = ledge.NewDetector(s, p, log)
	c.climb = climb.New(s, c.ledges, c.player, c.body, c.body, c.animator, params, log)
	c.ik = ik.New(s, p, c.ledges, c.climb, c.body, c.animator, params, log)

	c.router.Subscribe(c.climb)
	c.router.Subscribe(anim.ListenerFunc(c.handleJump))
	return c, nil
}

// FixedTick runs one physics tick: the air state is classified, the climb decision is made on it, then the body
// is stepped.
func (c *Character) FixedTick(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverTick("fixed_tick")

	c.player.FixedTick(dt)
	c.climb.FixedTick(dt)
	c.body.Step(dt)
}

// Frame runs one animation update: the animation plays, firing its state events, then the limbs are corrected.
func (c *Character) Frame(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverTick("frame")

	c.animator.Advance(dt)
	c.ik.OnAnimatorIK(0)
}

// Move sets the movement axis, x to the right and y forward.
func (c *Character) Move(v mgl32.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.Move(v)
	c.climb.Move(v)
}

// Sprint sets whether the sprint button is held.
func (c *Character) Sprint(held bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player.Sprint(held)
}

// Jump sets whether the jump button is held. Pressing it jumps off the ground, vaults, or climbs over the ledge
// held.
func (c *Character) Jump(pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pressed {
		c.player.PressJump()
	}
	c.climb.Jump(pressed)
}

// Drop lets go of the ledge held.
func (c *Character) Drop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.climb.Drop()
}

// Pose returns the pose of the character.
func (c *Character) Pose() game.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body.Pose()
}

// MovementState returns the air state of the last physics tick.
func (c *Character) MovementState() player.MovementState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player.State()
}

// ClimbState returns the climb state.
func (c *Character) ClimbState() climb.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.climb.State()
}

// Ledge returns the ledge context.
func (c *Character) Ledge() ledge.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledges.Context()
}

// AnimationState returns the animation state playing.
func (c *Character) AnimationState() anim.StateInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animator.CurrentState(0)
}

// IKGoal returns the IK goal of a body part as set by the last frame.
func (c *Character) IKGoal(part anim.BodyPart) anim.IKGoal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animator.IKGoal(part)
}

// Subscribe adds a listener for animation state events. Listeners run within Frame and must not call back into
// the Character.
func (c *Character) Subscribe(l anim.Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.router.Subscribe(l)
}

// handleJump applies the jump velocity as the jump animation starts.
func (c *Character) handleJump(info anim.StateInfo, phase anim.Phase) {
	if info.ID == anim.Jumping && phase == anim.PhaseEnter {
		c.player.Jump()
	}
}

// recoverTick reports a panic raised by a tick and puts the character back into locomotion.
func (c *Character) recoverTick(phase string) {
	v := recover()
	if v == nil {
		return
	}
	c.log.Errorf("%s panic: %v", phase, v)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("phase", phase)
		scope.SetTag("climb_state", c.climb.State().String())
	})
	hub.Recover(oerror.New("%v", v))
	hub.Flush(sentryFlushTimeout)

	c.climb.Reset()
}
