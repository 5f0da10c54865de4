package ledge

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/game"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/utils"
)

// Branch is the outcome of a side probe.
type Branch uint8

const (
	// Open is returned when nothing blocks the side: the ledge continues.
	Open Branch = iota
	// Wrap is returned when the ledge wraps onto a climbable surface right next to the hands.
	Wrap
	// Corner is returned when the wall turns by an angle that can be hopped around.
	Corner
	// Bend is returned when the wall turns by less than the minimum corner angle: the ledge continues.
	Bend
	// DeadEnd is returned when the ledge cannot be followed.
	DeadEnd
)

func (b Branch) String() string {
	switch b {
	case Open:
		return "open"
	case Wrap:
		return "wrap"
	case Corner:
		return "corner"
	case Bend:
		return "bend"
	case DeadEnd:
		return "dead_end"
	}
	return "unknown"
}

// SideProbe is the result of CheckLedgeInMoveDirection.
type SideProbe struct {
	// Continues is set if the character can keep shuffling along the ledge.
	Continues bool
	IsCorner  bool
	// CornerAngle is the angle in degrees between the wall and the surface found by the corner probe.
	CornerAngle float32
	// SideHit is the corner hit if IsCorner is set.
	SideHit probe.Hit
	Branch  Branch
}

// CheckLedgeInMoveDirection probes the current ledge to the right of the wall for a positive dir and to the left
// for a negative one. The wrap branch takes precedence over the corner branch, which takes precedence over a dead
// end.
func (d *Detector) CheckLedgeInMoveDirection(dir float32) SideProbe {
	if !d.ctx.Found || dir == 0 {
		return SideProbe{Branch: DeadEnd}
	}
	s, layers := d.settings.Ledge, d.settings.Layers
	fwd := d.ctx.Ledge.Forward
	n := d.ctx.Ledge.WallNormal()
	side := game.FaceWall(fwd.Normal).Rotate(game.Right).Mul(game.Sign(dir))
	height := game.Up.Mul(s.SideProbeHeight)

	origin := fwd.Point.Add(n.Mul(s.SideProbeStandoff)).Add(height)
	hit, ok := d.probe.Ray(origin, side, s.SideProbeDistance, layers.Obstacle)
	if !ok {
		return SideProbe{Continues: true, Branch: Open}
	}
	if layers.Climbable.Contains(hit.Layer) && d.probe.Overlaps(origin, s.WrapOverlapRadius, layers.Obstacle) {
		return SideProbe{Continues: true, SideHit: hit, Branch: Wrap}
	}

	cornerOrigin := fwd.Point.Add(n.Mul(s.SideProbeStandoff + s.CornerProbeBack)).Add(height)
	corner, ok := d.probe.Ray(cornerOrigin, side, s.CornerProbeDistance, layers.Obstacle)
	if !ok {
		if utils.DebugEnabled(d.log) {
			d.log.Debugf("ledge: dead end %s", utils.KeyValsToString("dir", dir, "side", hit.Collider))
		}
		return SideProbe{Branch: DeadEnd}
	}
	angle := game.Angle(game.Horizontal(fwd.Normal), game.Horizontal(corner.Normal))
	switch {
	case angle < s.MinCornerAngle:
		return SideProbe{Continues: true, CornerAngle: angle, Branch: Bend}
	case angle <= s.MaxCornerAngle:
		if utils.DebugEnabled(d.log) {
			d.log.Debugf("ledge: corner %s", utils.KeyValsToString("dir", dir, "angle", angle, "collider", corner.Collider))
		}
		return SideProbe{IsCorner: true, CornerAngle: angle, SideHit: corner, Branch: Corner}
	}
	if utils.DebugEnabled(d.log) {
		d.log.Debugf("ledge: dead end %s", utils.KeyValsToString("dir", dir, "angle", angle))
	}
	return SideProbe{CornerAngle: angle, Branch: DeadEnd}
}

// FindAnchor sweeps for a discrete anchor, such as a rung, along the move intent in the frame of the wall. The
// x axis of intent is the wall right and the y axis is up.
func (d *Detector) FindAnchor(intent mgl32.Vec2) (probe.Hit, bool) {
	if !d.ctx.Found || intent.Len() < 1e-4 {
		return probe.Hit{}, false
	}
	s, l := d.settings.Ledge, d.ctx.Ledge
	rot := game.FaceWall(l.Forward.Normal)
	origin := l.Edge().Add(l.WallNormal().Mul(s.AnchorStandoff))
	dir := rot.Rotate(mgl32.Vec3{intent.X(), intent.Y(), 0})
	return d.probe.Sphere(origin, s.AnchorRadius, dir, s.AnchorDistance, d.settings.Layers.Anchor)
}
