package anim

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

// RootTransform is the transform moved by target matching.
type RootTransform interface {
	Pose() game.Pose
	SetPose(game.Pose)
}

// Clip describes the playback of a single state.
type Clip struct {
	// Length is the duration of the clip in seconds.
	Length float32
	Loop   bool
	// Next is the state blended into once a non-looping clip finishes.
	Next StateID
	// ExitBlend is the duration of the blend into Next.
	ExitBlend float32
}

// Condition holds when a parameter has the value passed. For triggers, true means the trigger is set.
type Condition struct {
	Param Param
	Value bool
}

// Transition moves from any of the From states (or any state at all if From is empty) to To once every condition
// holds. Triggers in the conditions are consumed.
type Transition struct {
	From     []StateID
	When     []Condition
	To       StateID
	Duration float32
}

// Graph is a state graph for the Headless animator.
type Graph struct {
	Entry       StateID
	Clips       map[StateID]Clip
	Transitions []Transition
	// Bones holds the rest pose of every body part, relative to the root.
	Bones map[BodyPart]game.Pose
}

// IKGoal is the IK goal of a body part as last set.
type IKGoal struct {
	Position       mgl32.Vec3
	Rotation       mgl32.Quat
	PositionWeight float32
	RotationWeight float32
}

type visit struct {
	id    StateID
	time  float32
	visit uint64
}

type match struct {
	req     MatchRequest
	visit   uint64
	from    game.Pose
	started bool
}

// Headless is an Animator without a skeleton to render. It plays a Graph on a single layer, fires state events
// to a Listener, and applies target matches directly to the root transform. Clips carry no root motion.
type Headless struct {
	graph  Graph
	root   RootTransform
	events Listener
	log    logrus.FieldLogger

	names   map[string]Handle
	kinds   []ParamKind
	values  []float32
	handles [paramCount]Handle

	started       bool
	current       visit
	previous      *visit
	blend         float32
	blendDuration float32
	visits        uint64

	match *match
	ik    map[BodyPart]IKGoal
}

// NewHeadless returns a Headless animator playing g, moving root and firing state events to events.
func NewHeadless(g Graph, root RootTransform, events Listener, log logrus.FieldLogger) *Headless {
	h := &Headless{
		graph:  g,
		root:   root,
		events: events,
		log:    utils.LoggerOrNop(log),
		names:  make(map[string]Handle),
		ik:     make(map[BodyPart]IKGoal),
	}
	for el := params.Front(); el != nil; el = el.Next() {
		h.handles[el.Key], _ = h.ParamHandle(el.Value.name, el.Value.kind)
	}
	return h
}

// Advance plays the graph for dt seconds. The current state is updated, transitions are taken, and the target
// match in flight is applied to the root.
func (h *Headless) Advance(dt float32) {
	if !h.started {
		h.started = true
		h.visits++
		h.current = visit{id: h.graph.Entry, visit: h.visits}
		h.emit(h.current, PhaseEnter, 0)
	}
	if h.previous == nil {
		if t, ok := h.nextTransition(); ok {
			h.start(t.To, t.Duration)
		}
	}

	h.current.time += dt
	h.emit(h.current, PhaseUpdate, dt)
	if h.previous != nil {
		h.blend += dt
		if h.blend >= h.blendDuration {
			h.finishBlend()
		}
	}
	h.applyMatch()

	if h.previous == nil {
		clip := h.clip(h.current.id)
		if !clip.Loop && clip.Next != NoState && h.normalizedTime(h.current) >= 1 {
			h.start(clip.Next, clip.ExitBlend)
		}
	}
}

func (h *Headless) ParamHandle(name string, kind ParamKind) (Handle, bool) {
	if handle, ok := h.names[name]; ok {
		return handle, h.kinds[handle] == kind
	}
	handle := Handle(len(h.values))
	h.names[name] = handle
	h.kinds = append(h.kinds, kind)
	h.values = append(h.values, 0)
	return handle, true
}

func (h *Headless) SetFloat(handle Handle, v float32) { h.values[handle] = v }
func (h *Headless) Float(handle Handle) float32       { return h.values[handle] }
func (h *Headless) SetBool(handle Handle, v bool)     { h.values[handle] = boolValue(v) }
func (h *Headless) Bool(handle Handle) bool           { return h.values[handle] != 0 }
func (h *Headless) SetTrigger(handle Handle)          { h.values[handle] = 1 }
func (h *Headless) ResetTrigger(handle Handle)        { h.values[handle] = 0 }

// CurrentState returns the state being played, or blended into.
func (h *Headless) CurrentState(int) StateInfo {
	return StateInfo{ID: h.current.id, NormalizedTime: h.normalizedTime(h.current), Visit: h.current.visit}
}

func (h *Headless) IsInTransition(int) bool {
	return h.previous != nil
}

// CrossFade starts a visit of the state, blending out of the current one over duration seconds.
func (h *Headless) CrossFade(state StateID, duration float32, _ int) {
	h.start(state, duration)
}

func (h *Headless) IsMatchingTarget() bool {
	return h.match != nil
}

// MatchTarget starts a target match within the current visit.
func (h *Headless) MatchTarget(req MatchRequest) {
	if h.match != nil || h.previous != nil {
		h.log.Debugf("anim: ignored match of %s in %s (matching=%v transition=%v)", req.Part, h.current.id, h.match != nil, h.previous != nil)
		return
	}
	h.match = &match{req: req, visit: h.current.visit}
}

// InterruptMatchTarget stops the match in flight.
func (h *Headless) InterruptMatchTarget(complete bool) {
	m := h.match
	if m == nil {
		return
	}
	h.match = nil
	if complete {
		if !m.started {
			m.from = h.root.Pose()
		}
		h.root.SetPose(h.matchedPose(m, 1))
	}
}

// BonePose returns the rest pose of the part placed on the root.
func (h *Headless) BonePose(part BodyPart) game.Pose {
	root := h.root.Pose()
	bone, ok := h.graph.Bones[part]
	if !ok {
		return root
	}
	return game.Pose{Position: root.TransformPoint(bone.Position), Rotation: root.Rotation.Mul(bone.Rotation)}
}

func (h *Headless) SetIKPosition(part BodyPart, pos mgl32.Vec3) {
	g := h.ik[part]
	g.Position = pos
	h.ik[part] = g
}

func (h *Headless) SetIKRotation(part BodyPart, rot mgl32.Quat) {
	g := h.ik[part]
	g.Rotation = rot
	h.ik[part] = g
}

func (h *Headless) SetIKPositionWeight(part BodyPart, w float32) {
	g := h.ik[part]
	g.PositionWeight = w
	h.ik[part] = g
}

func (h *Headless) SetIKRotationWeight(part BodyPart, w float32) {
	g := h.ik[part]
	g.RotationWeight = w
	h.ik[part] = g
}

// IKGoal returns the IK goal of the body part as last set.
func (h *Headless) IKGoal(part BodyPart) IKGoal {
	return h.ik[part]
}

// start begins a visit of the state passed. The state being left exits once the blend is over, or immediately
// for a zero duration. Starting during a blend exits the state blended out of right away.
func (h *Headless) start(to StateID, duration float32) {
	if h.previous != nil {
		h.finishBlend()
	}
	h.visits++
	prev := h.current
	h.current = visit{id: to, visit: h.visits}
	h.emit(h.current, PhaseEnter, 0)
	if duration <= 0 {
		h.emit(prev, PhaseExit, 0)
		return
	}
	h.previous, h.blend, h.blendDuration = &prev, 0, duration
}

func (h *Headless) finishBlend() {
	prev := h.previous
	h.previous = nil
	h.emit(*prev, PhaseExit, 0)
}

func (h *Headless) nextTransition() (Transition, bool) {
	for _, t := range h.graph.Transitions {
		if t.To == h.current.id || (len(t.From) > 0 && !containsState(t.From, h.current.id)) {
			continue
		}
		if !h.holds(t.When) {
			continue
		}
		for _, c := range t.When {
			if c.Param.Kind() == KindTrigger && c.Value {
				h.values[h.handles[c.Param]] = 0
			}
		}
		return t, true
	}
	return Transition{}, false
}

func (h *Headless) holds(conditions []Condition) bool {
	for _, c := range conditions {
		if (h.values[h.handles[c.Param]] != 0) != c.Value {
			return false
		}
	}
	return true
}

func (h *Headless) applyMatch() {
	m := h.match
	if m == nil {
		return
	}
	if m.visit != h.current.visit {
		h.match = nil
		return
	}
	t := h.normalizedTime(h.current)
	if t < m.req.Start {
		return
	}
	if !m.started {
		m.started, m.from = true, h.root.Pose()
	}
	alpha := float32(1)
	if m.req.End > m.req.Start {
		alpha = game.Clamp01((t - m.req.Start) / (m.req.End - m.req.Start))
	}
	h.root.SetPose(h.matchedPose(m, alpha))
	if t >= m.req.End {
		h.match = nil
	}
}

// matchedPose returns the root pose that moves the matched part alpha of the way onto the target. Without a
// rotation weight, the rotation of the root is left to its owner.
func (h *Headless) matchedPose(m *match, alpha float32) game.Pose {
	rot := h.root.Pose().Rotation
	if w := m.req.Mask.Rotation * alpha; w > 0 {
		rot = mgl32.QuatSlerp(m.from.Rotation, m.req.Target.Rotation, w)
	}
	var local mgl32.Vec3
	if bone, ok := h.graph.Bones[m.req.Part]; ok {
		local = bone.Position
	}
	goal := m.req.Target.Position.Sub(rot.Rotate(local))
	pos := m.from.Position
	for i := 0; i < 3; i++ {
		pos[i] += (goal[i] - pos[i]) * m.req.Mask.Position[i] * alpha
	}
	return game.Pose{Position: pos, Rotation: rot}
}

func (h *Headless) normalizedTime(v visit) float32 {
	clip := h.clip(v.id)
	if clip.Length <= 0 {
		return 1
	}
	return v.time / clip.Length
}

func (h *Headless) clip(id StateID) Clip {
	if c, ok := h.graph.Clips[id]; ok {
		return c
	}
	return Clip{Loop: true}
}

func (h *Headless) emit(v visit, phase Phase, dt float32) {
	if h.events == nil || v.id == NoState {
		return
	}
	h.events.HandleStateEvent(StateInfo{ID: v.id, NormalizedTime: h.normalizedTime(v), Visit: v.visit, DeltaTime: dt}, phase)
}

func containsState(list []StateID, id StateID) bool {
	for _, s := range list {
		if s == id {
			return true
		}
	}
	return false
}

func boolValue(v bool) float32 {
	if v {
		return 1
	}
	return 0
}
