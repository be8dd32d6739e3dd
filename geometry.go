package gocube3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// PlaneDistance returns the signed distance from point to the plane through
// planePoint with the given normal.
func PlaneDistance(point, normal, planePoint mgl64.Vec3) float64 {
	return point.Sub(planePoint).Dot(normal.Normalize())
}

// DirectionForLocalAxis maps an axis expressed in a local frame to a world
// direction using the frame's orientation.
func DirectionForLocalAxis(axis mgl64.Vec3, orientation mgl64.Quat) mgl64.Vec3 {
	return orientation.Rotate(axis).Normalize()
}

// RayPlaneIntersect returns where ray crosses the plane, if it does in front
// of the ray origin.
func RayPlaneIntersect(ray Ray, normal, planePoint mgl64.Vec3) (mgl64.Vec3, bool) {
	denom := normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return mgl64.Vec3{}, false
	}
	t := planePoint.Sub(ray.Origin).Dot(normal) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return ray.At(t), true
}

// AngleAxis decomposes a rotation into an angle in [0, pi] (radians) and a
// unit axis. The identity decomposes to (0, +X).
func AngleAxis(q mgl64.Quat) (float64, mgl64.Vec3) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	w := mgl64.Clamp(q.W, -1, 1)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return 0, mgl64.Vec3{1, 0, 0}
	}
	return 2 * math.Acos(w), q.V.Mul(1 / s)
}

// SnapPosition rounds every component to the nearest lattice coordinate.
func SnapPosition(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Round(v[0]), math.Round(v[1]), math.Round(v[2])}
}

// SnapOrientation rounds the rotation matrix of q to the nearest signed
// permutation matrix and converts it back.
func SnapOrientation(q mgl64.Quat) mgl64.Quat {
	m := q.Normalize().Mat4()
	snapped := mgl64.Ident4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			snapped.Set(row, col, math.Round(m.At(row, col)))
		}
	}
	return mgl64.Mat4ToQuat(snapped).Normalize()
}

// latticeAxis reports which coordinate axis v is parallel to.
func latticeAxis(v mgl64.Vec3, eps float64) (int, bool) {
	v = v.Normalize()
	for i := 0; i < 3; i++ {
		if math.Abs(math.Abs(v[i])-1) < eps {
			return i, true
		}
	}
	return -1, false
}

// sideForNormal maps a unit normal in a piece frame to the closest side.
func sideForNormal(n mgl64.Vec3) Side {
	best := SidePosX
	bestDot := math.Inf(-1)
	for s := SidePosX; s <= SideNegZ; s++ {
		if d := n.Dot(s.Normal()); d > bestDot {
			best, bestDot = s, d
		}
	}
	return best
}

// nearVec compares two vectors by absolute distance.
func nearVec(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}
