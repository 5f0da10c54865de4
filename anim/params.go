package anim

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/traverse/oerror"
)

// Param identifies an animation parameter. Params are resolved once, at startup, to backend handles.
type Param uint8

const (
	Speed Param = iota
	SpeedX
	SpeedZ
	Jump
	FallingHang
	Grounded
	Falling
	Braced
	ClimbOver
	Vault
	Drop
	LeftHandWeight
	RightHandWeight
	LeftFootIKWeight
	RightFootIKWeight

	paramCount
)

// ParamKind is the value type of a parameter.
type ParamKind uint8

const (
	KindFloat ParamKind = iota
	KindBool
	KindTrigger
)

type paramDef struct {
	name string
	kind ParamKind
}

// params is the name table of every parameter, in declaration order.
var params = func() *orderedmap.OrderedMap[Param, paramDef] {
	m := orderedmap.NewOrderedMap[Param, paramDef]()
	m.Set(Speed, paramDef{"Speed", KindFloat})
	m.Set(SpeedX, paramDef{"SpeedX", KindFloat})
	m.Set(SpeedZ, paramDef{"SpeedZ", KindFloat})
	m.Set(Jump, paramDef{"Jump", KindTrigger})
	m.Set(FallingHang, paramDef{"Falling Hang", KindTrigger})
	m.Set(Grounded, paramDef{"Grounded", KindBool})
	m.Set(Falling, paramDef{"Falling", KindBool})
	m.Set(Braced, paramDef{"Braced", KindBool})
	m.Set(ClimbOver, paramDef{"Climb Over", KindTrigger})
	m.Set(Vault, paramDef{"Vault", KindTrigger})
	m.Set(Drop, paramDef{"Drop", KindTrigger})
	m.Set(LeftHandWeight, paramDef{"LeftHandWeight", KindFloat})
	m.Set(RightHandWeight, paramDef{"RightHandWeight", KindFloat})
	m.Set(LeftFootIKWeight, paramDef{"LeftFootIKWeight", KindFloat})
	m.Set(RightFootIKWeight, paramDef{"RightFootIKWeight", KindFloat})
	return m
}()

// Name returns the name the parameter is known by in the animation backend.
func (p Param) Name() string {
	def, _ := params.Get(p)
	return def.name
}

// Kind returns the value type of the parameter.
func (p Param) Kind() ParamKind {
	def, _ := params.Get(p)
	return def.kind
}

// Handle is a backend specific reference to a parameter.
type Handle int32

// Params sets and reads parameters through handles resolved once by ResolveParams.
type Params struct {
	a       Animator
	handles [paramCount]Handle
}

// ResolveParams resolves every parameter against the animator passed. An error is returned if the animator does
// not know one of them.
func ResolveParams(a Animator) (*Params, error) {
	p := &Params{a: a}
	for el := params.Front(); el != nil; el = el.Next() {
		h, ok := a.ParamHandle(el.Value.name, el.Value.kind)
		if !ok {
			return nil, oerror.New("animator has no parameter %q", el.Value.name)
		}
		p.handles[el.Key] = h
	}
	return p, nil
}

func (p *Params) SetFloat(param Param, v float32) { p.a.SetFloat(p.handles[param], v) }
func (p *Params) Float(param Param) float32       { return p.a.Float(p.handles[param]) }
func (p *Params) SetBool(param Param, v bool)     { p.a.SetBool(p.handles[param], v) }
func (p *Params) Bool(param Param) bool           { return p.a.Bool(p.handles[param]) }
func (p *Params) SetTrigger(param Param)          { p.a.SetTrigger(p.handles[param]) }
func (p *Params) ResetTrigger(param Param)        { p.a.ResetTrigger(p.handles[param]) }
