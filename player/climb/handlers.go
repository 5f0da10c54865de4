package climb

import (
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
)

// stateHandler handles the events of the animation states it is registered for.
type stateHandler interface {
	Enter(c *Controller, info anim.StateInfo)
	Update(c *Controller, info anim.StateInfo)
	Exit(c *Controller, info anim.StateInfo)
}

// matchWindow is a target match issued from a state update.
type matchWindow struct {
	mask       anim.WeightMask
	start, end float32
}

// Handler singletons.
var (
	handleHangEntry   stateHandler = hangEntryState{window: matchWindow{mask: anim.MaskPosition, start: 0, end: 0.4}}
	handleHang        stateHandler = hangState{}
	handleBraceSwitch stateHandler = hangEntryState{window: matchWindow{mask: anim.MaskRotation, start: 0, end: 0.5}}
	handleHop         stateHandler = hopState{window: matchWindow{mask: anim.MaskFull, start: 0.1, end: 0.6}}
	handleClimbOver   stateHandler = scriptedState{kind: ClimbingOver, release: true, window: matchWindow{mask: anim.MaskFull, start: 0.1, end: 0.8}}
	handleVault       stateHandler = scriptedState{kind: Vaulting, window: matchWindow{mask: anim.MaskPosition, start: 0.1, end: 0.6}}
	handleLanding     stateHandler = landingState{}
)

var handlers = map[anim.StateID]stateHandler{
	anim.FallingToBracedHang: handleHangEntry,
	anim.FallingToFreeHang:   handleHangEntry,
	anim.BracedHang:          handleHang,
	anim.FreeHang:            handleHang,
	anim.BracedToFreeHang:    handleBraceSwitch,
	anim.FreeToBracedHang:    handleBraceSwitch,
	anim.HopUp:               handleHop,
	anim.HopDown:             handleHop,
	anim.HopLeft:             handleHop,
	anim.HopRight:            handleHop,
	anim.ClimbingOver:        handleClimbOver,
	anim.Vaulting:            handleVault,
	anim.Landing:             handleLanding,
}

// HandleStateEvent implements anim.Listener. Events of states without a handler are ignored.
func (c *Controller) HandleStateEvent(info anim.StateInfo, phase anim.Phase) {
	h, ok := handlers[info.ID]
	if !ok {
		return
	}
	switch phase {
	case anim.PhaseEnter:
		h.Enter(c, info)
	case anim.PhaseUpdate:
		h.Update(c, info)
	case anim.PhaseExit:
		h.Exit(c, info)
	}
}

// enterScripted takes the body out of the simulation for a scripted move and drops any match in flight.
func (c *Controller) enterScripted() {
	if c.state.Kind == Idle {
		return
	}
	c.body.SetKinematic(true)
	c.animator.InterruptMatchTarget(false)
}

// correct rotates the character towards the target and, once per state visit, matches the target over the window
// passed. No match is requested while the animator blends or matches.
func (c *Controller) correct(info anim.StateInfo, w matchWindow) {
	if !c.hasTarget || c.state.Kind == Idle {
		return
	}
	c.rotateTowardsTarget(info.DeltaTime)
	if info.Visit == c.matchedVisit || c.animator.IsInTransition(0) || c.animator.IsMatchingTarget() {
		return
	}
	c.matchedVisit = info.Visit
	c.animator.MatchTarget(anim.MatchRequest{
		Part:   c.targetPart,
		Target: c.target,
		Mask:   w.mask,
		Start:  w.start,
		End:    w.end,
	})
}

func (c *Controller) rotateTowardsTarget(dt float32) {
	if dt <= 0 {
		return
	}
	pose := c.transform.Pose()
	pose.Rotation = game.RotateTowards(pose.Rotation, c.target.Rotation, c.settings.Climb.RotateSpeed*dt)
	c.transform.SetPose(pose)
}

// hangEntryState handles the states blending into a hang, and between braced and free hangs.
type hangEntryState struct {
	window matchWindow
}

func (s hangEntryState) Enter(c *Controller, _ anim.StateInfo)     { c.enterScripted() }
func (s hangEntryState) Update(c *Controller, info anim.StateInfo) { c.correct(info, s.window) }
func (hangEntryState) Exit(*Controller, anim.StateInfo)            {}

// hangState handles the hanging blend trees.
type hangState struct{}

func (hangState) Enter(c *Controller, _ anim.StateInfo) { c.enterScripted() }
func (hangState) Update(c *Controller, info anim.StateInfo) {
	if c.hasTarget && c.state.IsHanging() {
		c.rotateTowardsTarget(info.DeltaTime)
	}
}
func (hangState) Exit(*Controller, anim.StateInfo) {}

// hopState handles the directional hops.
type hopState struct {
	window matchWindow
}

func (hopState) Enter(c *Controller, _ anim.StateInfo)       { c.enterScripted() }
func (s hopState) Update(c *Controller, info anim.StateInfo) { c.correct(info, s.window) }
func (hopState) Exit(c *Controller, _ anim.StateInfo) {
	if c.state.Kind == Hopping {
		c.landHop()
	}
}

// scriptedState handles vaults and climb overs. Both end in locomotion once their animation exits.
type scriptedState struct {
	kind    Kind
	release bool
	window  matchWindow
}

func (scriptedState) Enter(c *Controller, _ anim.StateInfo)       { c.enterScripted() }
func (s scriptedState) Update(c *Controller, info anim.StateInfo) { c.correct(info, s.window) }
func (s scriptedState) Exit(c *Controller, _ anim.StateInfo) {
	if s.release {
		c.ledges.Release()
	}
	if c.state.Kind == s.kind {
		c.finishScripted()
	}
}

// landingState releases the ledge context once back on the ground.
type landingState struct{}

func (landingState) Enter(*Controller, anim.StateInfo)    {}
func (landingState) Update(*Controller, anim.StateInfo)   {}
func (landingState) Exit(c *Controller, _ anim.StateInfo) { c.ledges.Release() }
