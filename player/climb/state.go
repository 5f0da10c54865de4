package climb

import (
	"github.com/oomph-ac/traverse/anim"
)

// Kind is the variant of a climb state.
type Kind uint8

const (
	Idle Kind = iota
	Hanging
	Vaulting
	ClimbingOver
	Hopping
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Hanging:
		return "hanging"
	case Vaulting:
		return "vaulting"
	case ClimbingOver:
		return "climbing_over"
	case Hopping:
		return "hopping"
	}
	return "unknown"
}

// Direction is the direction of a hop.
type Direction uint8

const (
	HopUp Direction = iota
	HopDown
	HopLeft
	HopRight
)

func (d Direction) String() string {
	switch d {
	case HopUp:
		return "up"
	case HopDown:
		return "down"
	case HopLeft:
		return "left"
	case HopRight:
		return "right"
	}
	return "unknown"
}

// animState returns the animation state played for a hop in the direction.
func (d Direction) animState() anim.StateID {
	switch d {
	case HopUp:
		return anim.HopUp
	case HopDown:
		return anim.HopDown
	case HopLeft:
		return anim.HopLeft
	}
	return anim.HopRight
}

// State is the climb state of a character. Braced is meaningful while hanging or hopping, Hop while hopping.
type State struct {
	Kind   Kind
	Braced bool
	Hop    Direction
}

// IsHanging returns true while the character holds onto a surface.
func (s State) IsHanging() bool {
	return s.Kind == Hanging || s.Kind == Hopping
}

func (s State) String() string {
	switch s.Kind {
	case Hanging:
		if s.Braced {
			return "hanging(braced)"
		}
		return "hanging(free)"
	case Hopping:
		return "hopping(" + s.Hop.String() + ")"
	}
	return s.Kind.String()
}

// transitions is the set of legal climb state changes.
var transitions = map[Kind][]Kind{
	Idle:         {Idle, Hanging, Vaulting},
	Hanging:      {Idle, Hanging, Hopping, ClimbingOver},
	Hopping:      {Idle, Hanging},
	Vaulting:     {Idle},
	ClimbingOver: {Idle},
}

// CanTransition returns true if the climb state may change from one kind to another.
func CanTransition(from, to Kind) bool {
	for _, k := range transitions[from] {
		if k == to {
			return true
		}
	}
	return false
}
