package ledge

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/settings"
	"github.com/oomph-ac/traverse/utils"
	"github.com/sirupsen/logrus"
)

// Ledge is the result of a successful CanClimb.
type Ledge struct {
	// Down is the hit of the downward probe on top of the ledge.
	Down probe.Hit
	// Forward is the hit of the horizontal probe against the wall below the ledge.
	Forward probe.Hit
	// Direction is the horizontal direction the ledge was probed along.
	Direction mgl32.Vec3
	// End is the landing point on top of the ledge.
	End mgl32.Vec3
}

// Height returns the height of the ledge surface.
func (l Ledge) Height() float32 {
	return l.Down.Point.Y()
}

// Edge returns the point of the wall at the height of the ledge surface.
func (l Ledge) Edge() mgl32.Vec3 {
	return mgl32.Vec3{l.Forward.Point.X(), l.Down.Point.Y(), l.Forward.Point.Z()}
}

// WallNormal returns the horizontal normal of the wall below the ledge.
func (l Ledge) WallNormal() mgl32.Vec3 {
	return game.SafeNormalize(game.Horizontal(l.Forward.Normal))
}

// Context is the ledge context of a Detector.
type Context struct {
	// Grabbed is the surface held by the character, or probe.NoCollider.
	Grabbed probe.ColliderID
	// Ledge is the last ledge found or grabbed.
	Ledge Ledge
	// Found is set once a ledge has been found.
	Found bool
	// Braced is the result of the last IsLedgeBraced.
	Braced bool
}

// Detector finds climbable ledges around a character and builds the poses used to match its body onto them.
// Every query fails closed on a missed probe.
type Detector struct {
	log      logrus.FieldLogger
	settings settings.Settings
	probe    *probe.Probe
	capsule  probe.Capsule

	ctx Context
}

// NewDetector returns a Detector probing with p.
func NewDetector(s settings.Settings, p *probe.Probe, log logrus.FieldLogger) *Detector {
	return &Detector{log: utils.LoggerOrNop(log), settings: s, probe: p, capsule: s.Player.Capsule()}
}

// CanClimb looks for a ledge in front of the character placed at pose. On success, the ledge is recorded as the
// current ledge context. Repeated calls against a static scene return the same result.
func (d *Detector) CanClimb(pose game.Pose) (Ledge, bool) {
	s, layers := d.settings.Ledge, d.settings.Layers

	origin := pose.TransformPoint(s.ClimbOriginDown)
	down, ok := d.probe.Sphere(origin, s.DownProbeRadius, game.Up.Mul(-1), s.ClimbOriginDown.Y()-s.MinStepHeight, layers.Climbable)
	if !ok {
		return Ledge{}, false
	}

	dir := game.SafeNormalize(game.Horizontal(pose.Forward()))
	if dir.LenSqr() == 0 {
		return Ledge{}, false
	}
	fwdOrigin := game.Horizontal(pose.Position).Sub(dir.Mul(s.ForwardProbeBack))
	fwdOrigin[1] = down.Point.Y() - s.ForwardProbeDrop
	fwd, ok := d.probe.Ray(fwdOrigin, dir, s.ForwardProbeDistance, layers.Obstacle)
	if !ok {
		return Ledge{}, false
	}

	groundAngle := game.Angle(down.Normal, game.Up)
	wallAngle := game.Angle(game.Horizontal(fwd.Normal).Mul(-1), dir)
	if wallAngle > s.WallAngleMax || groundAngle > s.GroundAngleMax {
		if utils.DebugEnabled(d.log) {
			d.log.Debugf("ledge: rejected by angle %s", utils.KeyValsToString("wall", wallAngle, "ground", groundAngle))
		}
		return Ledge{}, false
	}

	surface := game.ProjectOnPlane(dir, down.Normal)
	end := down.Point.Add(game.Up.Mul(s.EndVerticalBias)).Add(game.LookRotation(surface, game.Up).Rotate(s.EndOffset))
	if push, depth := d.probe.Penetration(d.capsule, end, down.Collider); depth > 0 {
		end = end.Add(push.Mul(depth + s.PenetrationMargin))
	}

	l := Ledge{Down: down, Forward: fwd, Direction: dir, End: end}
	d.ctx.Ledge, d.ctx.Found = l, true
	return l, true
}

// CanClimbOver checks that the character at pose has room to climb onto the current ledge: the capsule is swept
// up to the ledge height and then across to the landing point.
func (d *Detector) CanClimbOver(pose game.Pose) bool {
	if !d.ctx.Found {
		return false
	}
	s, l := d.settings.Ledge, d.ctx.Ledge
	c := d.capsule.Deflate(s.InflateMargin)
	mask := d.settings.Layers.Obstacle

	// Start a margin away from the wall, which the body rests against.
	from := pose.Position.Add(l.WallNormal().Mul(s.InflateMargin))
	top := l.Height() + s.EndVerticalBias
	if rise := top - from.Y(); rise > 0 {
		if hit, ok := d.probe.Capsule(c, from, game.Up, rise, mask); ok {
			if utils.DebugEnabled(d.log) {
				d.log.Debugf("ledge: no room to climb up %s", utils.KeyValsToString("collider", hit.Collider, "at", hit.Distance))
			}
			return false
		}
		from[1] = top
	}
	across := game.Horizontal(l.End.Sub(from))
	if dist := across.Len(); dist > 1e-4 {
		if hit, ok := d.probe.Capsule(c, from, across, dist, mask); ok {
			if utils.DebugEnabled(d.log) {
				d.log.Debugf("ledge: no room to climb across %s", utils.KeyValsToString("collider", hit.Collider, "at", hit.Distance))
			}
			return false
		}
	}
	return true
}

// IsLedgeBraced checks for a surface below the current ledge that the legs can rest against. The result is kept
// in the ledge context.
func (d *Detector) IsLedgeBraced() bool {
	if !d.ctx.Found {
		return false
	}
	s, fwd := d.settings.Ledge, d.ctx.Ledge.Forward
	rot := game.FaceWall(fwd.Normal)
	origin := fwd.Point.Add(rot.Rotate(s.BraceOffset))
	_, ok := d.probe.Sphere(origin, s.BraceRadius, rot.Rotate(game.Forward), s.BraceDistance, d.settings.Layers.Obstacle)
	d.ctx.Braced = ok
	return ok
}

// HoldsSurface checks that the grabbed surface is still at the held edge.
func (d *Detector) HoldsSurface() bool {
	if d.ctx.Grabbed == probe.NoCollider {
		return false
	}
	l := d.settings.Layers
	return d.probe.Touches(d.ctx.Ledge.Edge(), d.settings.Ledge.HoldRadius, l.Climbable|l.Obstacle|l.Anchor, d.ctx.Grabbed)
}

// Context returns the current ledge context.
func (d *Detector) Context() Context {
	return d.ctx
}

// Grab records the ledge as held by the character.
func (d *Detector) Grab(l Ledge) {
	d.ctx.Ledge, d.ctx.Found = l, true
	d.ctx.Grabbed = l.Down.Collider
}

// Rebase moves the grab onto an anchor hit, treating it as both the top and the face of the held surface.
func (d *Detector) Rebase(anchor probe.Hit) {
	dir := game.SafeNormalize(game.Horizontal(anchor.Normal)).Mul(-1)
	d.Grab(Ledge{Down: anchor, Forward: anchor, Direction: dir, End: anchor.Point})
}

// Release clears the held surface.
func (d *Detector) Release() {
	d.ctx.Grabbed = probe.NoCollider
}
