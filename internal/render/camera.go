package render

import (
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

const DefaultCameraDistance = 3.5

// Camera is a pinhole camera on the +Z axis looking at the origin.
type Camera struct {
	Width, Height float64
	Distance      float64
	Focal         float64
}

func NewCamera(w, h float64) Camera {
	return Camera{
		Width:    w,
		Height:   h,
		Distance: DefaultCameraDistance,
		Focal:    0.9 * math.Min(w, h),
	}
}

// Project maps a camera-space point to screen coordinates and its depth
// along the view axis.
func (c Camera) Project(v vmath.Vec3) (sx, sy, zc float64) {
	zc = c.Distance - v.Z
	if zc < 1e-6 {
		zc = 1e-6
	}
	inv := c.Focal / zc
	return c.Width*0.5 + v.X*inv, c.Height*0.5 - v.Y*inv, zc
}

// PickRay returns the camera-space ray through screen pixel (mx, my).
func (c Camera) PickRay(mx, my float64) (origin, dir vmath.Vec3) {
	f := math.Max(c.Focal, 1e-6)
	x := (mx - c.Width*0.5) / f
	y := -(my - c.Height*0.5) / f
	return vmath.Vec3{Z: c.Distance}, vmath.Vec3{X: x, Y: y, Z: -1}.Normalize()
}

// RaySphere returns the nearest hit of a ray with unit direction dir on a
// sphere of radius r at the origin. Hits behind the origin are misses.
func RaySphere(origin, dir vmath.Vec3, r float64) (vmath.Vec3, bool) {
	b := origin.Dot(dir)
	c := origin.Dot(origin) - r*r
	disc := b*b - c
	if disc < 0 {
		return vmath.Vec3{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		return vmath.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}

// PickSphere hit-tests screen pixel (mx, my) against the rotated sphere and
// returns the hit in object space.
func (c Camera) PickSphere(rot vmath.Mat3, mx, my, r float64) (vmath.Vec3, bool) {
	o, d := c.PickRay(mx, my)
	inv := rot.Transpose()
	return RaySphere(inv.Mul(o), inv.Mul(d), r)
}
