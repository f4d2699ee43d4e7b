package render

import (
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

// SpecularCutoff is the smallest specular alpha worth drawing.
const SpecularCutoff = 0.02

type Shading struct {
	DepthBoost        float64
	Lambert           float64
	SpecularPower     float64
	SpecularIntensity float64
	RimIntensity      float64
	RimPower          float64
	Light             vmath.Vec3
}

func DefaultShading() Shading {
	return Shading{
		DepthBoost:        0.65,
		Lambert:           0.4,
		SpecularPower:     24,
		SpecularIntensity: 0.55,
		RimIntensity:      0.2,
		RimPower:          2,
		Light:             vmath.Vec3{X: 0.4, Y: 0.6, Z: 1}.Normalize(),
	}
}

// Alpha shades a point with base opacity and unit camera-space normal n.
// Front-facing points (n.Z near 1) are brighter; lighting adds a Lambert
// term and a rim glow at the silhouette.
func (s Shading) Alpha(base float64, n vmath.Vec3, lit bool) float64 {
	front := vmath.Clamp01((n.Z + 1) * 0.5)
	alpha := base * (0.25 + s.DepthBoost*front)
	if lit {
		nl := vmath.Clamp01(n.Dot(s.Light))
		alpha *= (1 - s.Lambert) + s.Lambert*nl
		rim := math.Pow(1-math.Max(0, vmath.Clamp(n.Z, -1, 1)), s.RimPower) * s.RimIntensity
		alpha += rim * 0.2
	}
	return vmath.Clamp01(alpha)
}

// Specular is the Blinn highlight for a viewer on +Z.
func (s Shading) Specular(n vmath.Vec3) float64 {
	h := s.Light.Add(vmath.Vec3{Z: 1}).Normalize()
	if h == (vmath.Vec3{}) {
		return 0
	}
	ndh := vmath.Clamp01(n.Dot(h))
	return math.Pow(ndh, s.SpecularPower) * s.SpecularIntensity
}
