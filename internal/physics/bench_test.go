package physics

import (
	"testing"

	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/vmath"
)

func BenchmarkStepPlanar(b *testing.B) {
	l := lattice.BuildPlanar(1920, 1080, 80, 45)
	cur := Cursor{X: 960, Y: 540, Active: true}
	p := planarParams
	p.PointerRadius = 400
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StepPlanar(l, p, cur, FixedDt)
	}
}

func BenchmarkStepSpherical(b *testing.B) {
	l := lattice.BuildSpherical(1, 32, 24)
	pick := Pick{Point: vmath.Vec3{Z: 1}, Active: true}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StepSpherical(l, sphereParams, pick, FixedDt)
	}
}
