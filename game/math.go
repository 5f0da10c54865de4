package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// Up is the world up axis.
	Up = mgl32.Vec3{0, 1, 0}
	// Forward is the local forward axis of every pose.
	Forward = mgl32.Vec3{0, 0, 1}
	// Right is the local right axis of every pose.
	Right = mgl32.Vec3{1, 0, 0}
)

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}

// Lerp interpolates from a to b by t, with t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp01(t)
}

// LerpVec2 interpolates both axes of a towards b by t, with t clamped to [0, 1].
func LerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return mgl32.Vec2{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

// RemapClamped maps v from the range [in1, in2] onto [out1, out2], clamping at both ends.
func RemapClamped(v, in1, in2, out1, out2 float32) float32 {
	if in1 == in2 {
		return out1
	}
	t := Clamp01((v - in1) / (in2 - in1))
	return out1 + (out2-out1)*t
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// ProjectOnPlane removes the component of v that lies along the plane normal n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	lenSqr := n.LenSqr()
	if lenSqr < 1e-12 {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / lenSqr))
}

// Horizontal returns v projected onto the world up-plane.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// SafeNormalize normalizes v, returning the zero vector instead of NaNs for degenerate input.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Angle returns the unsigned angle in degrees between a and b. Zero vectors yield 0.
func Angle(a, b mgl32.Vec3) float32 {
	denom := math32.Sqrt(a.LenSqr() * b.LenSqr())
	if denom < 1e-12 {
		return 0
	}
	cos := mgl32.Clamp(a.Dot(b)/denom, -1, 1)
	return mgl32.RadToDeg(math32.Acos(cos))
}

// LookRotation returns the rotation whose forward axis points along forward and whose up axis is as
// close to up as possible. A zero forward vector yields the identity rotation.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	f := SafeNormalize(forward)
	if f.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	r := SafeNormalize(up.Cross(f))
	if r.LenSqr() == 0 {
		// forward is parallel to up; any perpendicular right axis will do.
		r = SafeNormalize(Forward.Cross(f))
		if r.LenSqr() == 0 {
			r = Right
		}
	}
	u := f.Cross(r)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(r, u, f).Mat4()).Normalize()
}

// YawRotation returns the yaw-only rotation whose forward axis is the horizontal projection of dir.
func YawRotation(dir mgl32.Vec3) mgl32.Quat {
	h := Horizontal(dir)
	if h.LenSqr() < 1e-12 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(math32.Atan2(h.X(), h.Z()), Up)
}

// FaceWall returns the yaw-only rotation that faces a surface with the given normal: its forward
// axis is the negated horizontal projection of the normal.
func FaceWall(normal mgl32.Vec3) mgl32.Quat {
	return YawRotation(normal.Mul(-1))
}

// QuatAngle returns the angle in degrees between two rotations.
func QuatAngle(a, b mgl32.Quat) float32 {
	d := math32.Min(math32.Abs(a.Dot(b)), 1)
	return mgl32.RadToDeg(2 * math32.Acos(d))
}

// RotateTowards rotates from towards to by at most maxDegrees.
func RotateTowards(from, to mgl32.Quat, maxDegrees float32) mgl32.Quat {
	angle := QuatAngle(from, to)
	if angle < 1e-4 || maxDegrees >= angle {
		return to
	}
	return mgl32.QuatSlerp(from, to, maxDegrees/angle).Normalize()
}
