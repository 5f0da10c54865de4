package ledge

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/probe"
)

// Hand selects which hand a hang pose is built for.
type Hand uint8

const (
	LeftHand Hand = iota
	RightHand
)

// EndpointKind selects the offset of an endpoint pose.
type EndpointKind uint8

const (
	EndpointVault EndpointKind = iota
	EndpointClimbOver
)

// HangPose returns the pose of a hand resting on the edge of the current ledge.
func (d *Detector) HangPose(hand Hand, braced bool) game.Pose {
	l := d.ctx.Ledge
	rot := game.FaceWall(l.Forward.Normal)
	return game.NewPose(l.Edge().Add(rot.Rotate(d.handOffset(hand, braced))), rot)
}

func (d *Detector) handOffset(hand Hand, braced bool) mgl32.Vec3 {
	s := d.settings.Ledge
	switch {
	case braced && hand == LeftHand:
		return s.BracedLeftHand
	case braced:
		return s.BracedRightHand
	case hand == LeftHand:
		return s.FreeLeftHand
	}
	return s.FreeRightHand
}

// HitPointPose returns the pose of the hands holding onto a hop target.
func (d *Detector) HitPointPose(hit probe.Hit, braced bool) game.Pose {
	s := d.settings.Ledge
	offset := s.FreeHop
	if braced {
		offset = s.BracedHop
	}
	rot := game.FaceWall(hit.Normal)
	return game.NewPose(hit.Point.Add(rot.Rotate(offset)), rot)
}

// EndpointPose returns the pose of the root at the landing point of the current ledge.
func (d *Detector) EndpointPose(kind EndpointKind) game.Pose {
	s, l := d.settings.Ledge, d.ctx.Ledge
	offset := s.ClimbOverOffset
	if kind == EndpointVault {
		offset = s.VaultOffset
	}
	rot := game.YawRotation(l.Direction)
	return game.NewPose(l.End.Add(rot.Rotate(offset)), rot)
}
