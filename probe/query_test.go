package probe

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var solid = Layers(LayerDefault, LayerClimbable)

// recorder answers every query with a hit and records the arguments it was called with.
type recorder struct {
	calls    int
	dir      mgl32.Vec3
	overlaps []ColliderID
	depth    float32
	penOK    bool
}

func (r *recorder) Raycast(_ mgl32.Vec3, dir mgl32.Vec3, _ float32, _ LayerMask) (Hit, bool) {
	r.calls++
	r.dir = dir
	return Hit{Collider: 1}, true
}

func (r *recorder) SphereCast(_ mgl32.Vec3, _ float32, dir mgl32.Vec3, _ float32, _ LayerMask) (Hit, bool) {
	r.calls++
	r.dir = dir
	return Hit{Collider: 1}, true
}

func (r *recorder) CapsuleCast(_, _ mgl32.Vec3, _ float32, dir mgl32.Vec3, _ float32, _ LayerMask) (Hit, bool) {
	r.calls++
	r.dir = dir
	return Hit{Collider: 1}, true
}

func (r *recorder) CheckSphere(mgl32.Vec3, float32, LayerMask) bool {
	r.calls++
	return true
}

func (r *recorder) OverlapSphere(mgl32.Vec3, float32, LayerMask) []ColliderID {
	r.calls++
	return r.overlaps
}

func (r *recorder) ComputePenetration(Capsule, mgl32.Vec3, ColliderID) (mgl32.Vec3, float32, bool) {
	r.calls++
	return mgl32.Vec3{0, 1, 0}, r.depth, r.penOK
}

func TestCastsFailClosed(t *testing.T) {
	capsule := Capsule{Center: mgl32.Vec3{0, 0.9, 0}, Radius: 0.3, Height: 1.8}
	forward := mgl32.Vec3{0, 0, 1}

	tests := []struct {
		name  string
		query func(p *Probe) bool
	}{
		{"ray with zero direction", func(p *Probe) bool { _, ok := p.Ray(mgl32.Vec3{}, mgl32.Vec3{}, 1, solid); return ok }},
		{"ray with zero distance", func(p *Probe) bool { _, ok := p.Ray(mgl32.Vec3{}, forward, 0, solid); return ok }},
		{"ray with negative distance", func(p *Probe) bool { _, ok := p.Ray(mgl32.Vec3{}, forward, -1, solid); return ok }},
		{"ray with NaN distance", func(p *Probe) bool { _, ok := p.Ray(mgl32.Vec3{}, forward, math32.NaN(), solid); return ok }},
		{"ray with empty mask", func(p *Probe) bool { _, ok := p.Ray(mgl32.Vec3{}, forward, 1, 0); return ok }},
		{"sphere with zero radius", func(p *Probe) bool { _, ok := p.Sphere(mgl32.Vec3{}, 0, forward, 1, solid); return ok }},
		{"sphere with negative radius", func(p *Probe) bool { _, ok := p.Sphere(mgl32.Vec3{}, -0.2, forward, 1, solid); return ok }},
		{"sphere with zero direction", func(p *Probe) bool { _, ok := p.Sphere(mgl32.Vec3{}, 0.2, mgl32.Vec3{}, 1, solid); return ok }},
		{"capsule with zero radius", func(p *Probe) bool {
			_, ok := p.Capsule(capsule.Deflate(0.3), mgl32.Vec3{}, forward, 1, solid)
			return ok
		}},
		{"capsule with empty mask", func(p *Probe) bool { _, ok := p.Capsule(capsule, mgl32.Vec3{}, forward, 1, 0); return ok }},
		{"overlap with zero radius", func(p *Probe) bool { return p.Overlaps(mgl32.Vec3{}, 0, solid) }},
		{"overlap with empty mask", func(p *Probe) bool { return p.Overlaps(mgl32.Vec3{}, 0.2, 0) }},
		{"touching no collider", func(p *Probe) bool { return p.Touches(mgl32.Vec3{}, 0.2, solid, NoCollider) }},
		{"touching with empty mask", func(p *Probe) bool { return p.Touches(mgl32.Vec3{}, 0.2, 0, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{overlaps: []ColliderID{1}}
			require.False(t, tt.query(New(r, nil, true)))
			require.Zero(t, r.calls, "backend queried")
		})
	}
}

func TestCastsNormaliseDirection(t *testing.T) {
	r := &recorder{}
	p := New(r, nil, false)
	unit := mgl32.Vec3{0.6, 0, 0.8}
	approx := cmpopts.EquateApprox(0, 1e-6)

	_, ok := p.Ray(mgl32.Vec3{}, mgl32.Vec3{3, 0, 4}, 2, solid)
	require.True(t, ok)
	if diff := cmp.Diff(unit, r.dir, approx); diff != "" {
		t.Fatalf("ray direction (-want +got):\n%s", diff)
	}

	_, ok = p.Sphere(mgl32.Vec3{}, 0.2, mgl32.Vec3{0, -0.01, 0}, 2, solid)
	require.True(t, ok)
	if diff := cmp.Diff(mgl32.Vec3{0, -1, 0}, r.dir, approx); diff != "" {
		t.Fatalf("sphere direction (-want +got):\n%s", diff)
	}

	_, ok = p.Capsule(Capsule{Radius: 0.3, Height: 1.8}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 10}, 2, solid)
	require.True(t, ok)
	if diff := cmp.Diff(mgl32.Vec3{0, 0, 1}, r.dir, approx); diff != "" {
		t.Fatalf("capsule direction (-want +got):\n%s", diff)
	}
	require.Equal(t, 3, r.calls)
}

func TestTouchesOnlyTheColliderPassed(t *testing.T) {
	r := &recorder{overlaps: []ColliderID{2, 3}}
	p := New(r, nil, false)
	require.True(t, p.Touches(mgl32.Vec3{}, 0.2, solid, 3))
	require.False(t, p.Touches(mgl32.Vec3{}, 0.2, solid, 4))
}

func TestPenetration(t *testing.T) {
	capsule := Capsule{Radius: 0.3, Height: 1.8}

	tests := []struct {
		name      string
		collider  ColliderID
		depth     float32
		ok        bool
		wantDepth float32
		wantCalls int
	}{
		{name: "overlapping", collider: 1, depth: 0.25, ok: true, wantDepth: 0.25, wantCalls: 1},
		{name: "no collider", collider: NoCollider, depth: 0.25, ok: true},
		{name: "backend reports no overlap", collider: 1, depth: 0.25, wantCalls: 1},
		{name: "zero depth", collider: 1, ok: true, wantCalls: 1},
		{name: "negative depth", collider: 1, depth: -0.1, ok: true, wantCalls: 1},
		{name: "NaN depth", collider: 1, depth: math32.NaN(), ok: true, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{depth: tt.depth, penOK: tt.ok}
			dir, depth := New(r, nil, false).Penetration(capsule, mgl32.Vec3{}, tt.collider)
			require.Equal(t, tt.wantCalls, r.calls)
			require.Equal(t, tt.wantDepth, depth)
			if tt.wantDepth == 0 {
				require.Equal(t, mgl32.Vec3{}, dir)
			}
		})
	}
}
