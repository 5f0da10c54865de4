package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AABBFromDimensions returns a bounding box from the given dimensions, with the origin at the bottom center.
func AABBFromDimensions(width, height float32) cube.BBox {
	h := width / 2
	return cube.Box(
		-h, 0, -h,
		h, height, h,
	)
}

// AABBVectorDistance calculates the distance between an AABB and a vector. Points inside the box have a
// distance of zero.
func AABBVectorDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))

	return math32.Sqrt(x*x + y*y + z*z)
}

// AABBClosestPoint returns the point in the box closest to v.
func AABBClosestPoint(a cube.BBox, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v.X(), a.Min().X(), a.Max().X()),
		mgl32.Clamp(v.Y(), a.Min().Y(), a.Max().Y()),
		mgl32.Clamp(v.Z(), a.Min().Z(), a.Max().Z()),
	}
}

// AABBFaceNormal returns the outward normal of the face of the box that a point on its surface lies on. Faces
// that a ray travelling along dir could not have entered through are ignored.
func AABBFaceNormal(a cube.BBox, point, dir mgl32.Vec3) mgl32.Vec3 {
	var (
		normal = mgl32.Vec3{0, 1, 0}
		best   = float32(math32.MaxFloat32)
	)
	for i := 0; i < 3; i++ {
		if dir[i] > 0 || dir.LenSqr() == 0 {
			if d := math32.Abs(point[i] - a.Min()[i]); d < best {
				best = d
				normal = mgl32.Vec3{}
				normal[i] = -1
			}
		}
		if dir[i] < 0 || dir.LenSqr() == 0 {
			if d := math32.Abs(point[i] - a.Max()[i]); d < best {
				best = d
				normal = mgl32.Vec3{}
				normal[i] = 1
			}
		}
	}
	return normal
}
