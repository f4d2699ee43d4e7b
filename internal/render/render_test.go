package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/vmath"
)

var white = color.NRGBA{255, 255, 255, 255}

func TestDotSprite(t *testing.T) {
	img := NewDotSprite(3, white, 0.5)
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("expected 8x8 sprite, got %dx%d", b.Dx(), b.Dy())
	}
	if a := img.RGBAAt(3, 3).A; a != 128 {
		t.Errorf("expected centre alpha 128, got %d", a)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected transparent corner, got %d", a)
	}
	if SpriteSize(0) != 2 || SpriteSize(0.2) != 2 {
		t.Errorf("unexpected sprite size for tiny radius: %d", SpriteSize(0.2))
	}
}

func TestDefaultBands(t *testing.T) {
	tests := []struct {
		w, h  int
		wantX float64
		wantY float64
	}{
		{100, 100, 120, 100},
		{1000, 800, 180, 176},
		{5000, 5000, 280, 240},
	}
	for _, tt := range tests {
		b := DefaultBands(tt.w, tt.h)
		if math.Abs(b.X-tt.wantX) > 1e-9 || math.Abs(b.Y-tt.wantY) > 1e-9 {
			t.Errorf("%dx%d: expected (%f,%f), got (%f,%f)", tt.w, tt.h, tt.wantX, tt.wantY, b.X, b.Y)
		}
	}
}

func TestVignette(t *testing.T) {
	img := NewVignette(1000, 800, 1, DefaultBands(1000, 800))
	if a := img.RGBAAt(500, 400).A; a != 0 {
		t.Errorf("expected clear centre, got alpha %d", a)
	}
	edge := img.RGBAAt(0, 400).A
	if edge < 250 {
		t.Errorf("expected dark left edge, got alpha %d", edge)
	}
	inner := img.RGBAAt(90, 400).A
	if inner >= edge || inner == 0 {
		t.Errorf("expected partial darkening inside the band, got %d (edge %d)", inner, edge)
	}
	if img.RGBAAt(500, 400).R != 0 {
		t.Error("vignette should be black")
	}

	clear := NewVignette(200, 100, 0, DefaultBands(200, 100))
	for _, px := range clear.Pix {
		if px != 0 {
			t.Fatal("zero strength vignette should be fully transparent")
		}
	}
}

func TestDefaultMaxSpeeds(t *testing.T) {
	tests := []struct {
		yaw, pitch         float64
		wantYaw, wantPitch float64
	}{
		{0.08, 0, 1.2, 0.6},
		{1, -0.5, 3, 1.5},
		{0, 0, 1.2, 0.6},
	}
	for _, tt := range tests {
		y, p := DefaultMaxSpeeds(tt.yaw, tt.pitch)
		if math.Abs(y-tt.wantYaw) > 1e-12 || math.Abs(p-tt.wantPitch) > 1e-12 {
			t.Errorf("DefaultMaxSpeeds(%f,%f): expected (%f,%f), got (%f,%f)", tt.yaw, tt.pitch, tt.wantYaw, tt.wantPitch, y, p)
		}
	}

	r := NewRotation(RotationParams{MaxYawSpeed: 0.01, MaxPitchSpeed: 2})
	if r.MaxYawSpeed != 0.05 || r.MaxPitchSpeed != 2 {
		t.Errorf("expected explicit caps (0.05, 2), got (%f, %f)", r.MaxYawSpeed, r.MaxPitchSpeed)
	}
}

func TestRotationDecaysWithoutTargets(t *testing.T) {
	r := NewRotation(RotationParams{
		AutoRotate: true,
		Spring:     1.2,
		Friction:   0.25,
		DragGain:   3,
	})
	r.Drag(0.3, 0.15)
	if r.YawVel <= 0 || r.PitchVel >= 0 {
		t.Fatalf("unexpected drag velocities (%f, %f)", r.YawVel, r.PitchVel)
	}

	prevYaw, prevPitch := math.Abs(r.YawVel), math.Abs(r.PitchVel)
	dt := 1.0 / 60
	for i := 0; i < 600; i++ {
		r.Advance(dt)
		y, p := math.Abs(r.YawVel), math.Abs(r.PitchVel)
		if y > r.MaxYawSpeed || p > r.MaxPitchSpeed {
			t.Fatalf("step %d: velocity (%f, %f) outside caps", i, r.YawVel, r.PitchVel)
		}
		if y > prevYaw || p > prevPitch {
			t.Fatalf("step %d: velocity grew without input", i)
		}
		prevYaw, prevPitch = y, p
	}
	if prevYaw > 1e-3 || prevPitch > 1e-3 {
		t.Errorf("expected velocities near zero, got (%f, %f)", r.YawVel, r.PitchVel)
	}
}

func TestRotationApproachesTarget(t *testing.T) {
	r := NewRotation(RotationParams{AutoRotate: true, YawSpeed: 0.08, Spring: 1.2, Friction: 0.25})
	for i := 0; i < 60*30; i++ {
		r.Advance(1.0 / 60)
	}
	// Friction pulls the steady state below the target: v = s*T/(s+f).
	want := 0.08 * 1.2 / (1.2 + 0.25)
	if math.Abs(r.YawVel-want) > 2e-3 {
		t.Errorf("expected steady yaw velocity near %f, got %f", want, r.YawVel)
	}
	if r.Yaw <= 0 {
		t.Error("expected positive yaw after auto-rotation")
	}
}

func TestRotationDragClamps(t *testing.T) {
	r := NewRotation(RotationParams{DragGain: 3})
	r.Drag(100, -100)
	if r.YawVel != r.MaxYawSpeed || r.PitchVel != r.MaxPitchSpeed {
		t.Errorf("expected clamped velocities (%f, %f), got (%f, %f)", r.MaxYawSpeed, r.MaxPitchSpeed, r.YawVel, r.PitchVel)
	}
}

func TestCameraProjectCentre(t *testing.T) {
	cam := NewCamera(800, 600)
	if math.Abs(cam.Focal-540) > 1e-9 {
		t.Fatalf("expected focal 540, got %f", cam.Focal)
	}
	sx, sy, zc := cam.Project(vmath.Vec3{})
	if sx != 400 || sy != 300 || zc != DefaultCameraDistance {
		t.Errorf("expected (400,300,%f), got (%f,%f,%f)", DefaultCameraDistance, sx, sy, zc)
	}
	sx, sy, _ = cam.Project(vmath.Vec3{X: 1, Y: 1})
	if sx <= 400 || sy >= 300 {
		t.Errorf("expected +X right and +Y up, got (%f,%f)", sx, sy)
	}
}

func TestPickSphereCentre(t *testing.T) {
	cam := NewCamera(800, 600)
	hit, ok := cam.PickSphere(vmath.RotationYawPitch(0, 0), 400, 300, 1.2)
	if !ok {
		t.Fatal("expected a hit at the screen centre")
	}
	if math.Abs(hit.Z-1.2) > 1e-9 || math.Abs(hit.X) > 1e-9 || math.Abs(hit.Y) > 1e-9 {
		t.Errorf("expected front pole (0,0,1.2), got %+v", hit)
	}
	if _, ok := cam.PickSphere(vmath.RotationYawPitch(0, 0), 0, 0, 1.2); ok {
		t.Error("expected a miss at the screen corner")
	}
}

func TestPickInvertsProjection(t *testing.T) {
	cam := NewCamera(1024, 768)
	R := 1.4
	rot := vmath.RotationYawPitch(0.7, -0.25)
	front := vmath.Vec3{X: 0.3, Y: 0.2, Z: 1}.Normalize().Scale(R)
	obj := rot.Transpose().Mul(front)

	sx, sy, _ := cam.Project(rot.Mul(obj))
	hit, ok := cam.PickSphere(rot, sx, sy, R)
	if !ok {
		t.Fatal("expected the projected point to be pickable")
	}
	if d := hit.Sub(obj).Length(); d > 1e-9 {
		t.Errorf("pick should return the projected point, off by %e", d)
	}
}

func TestShadingAlpha(t *testing.T) {
	s := DefaultShading()
	back := s.Alpha(0.8, vmath.Vec3{Z: -1}, false)
	if math.Abs(back-0.8*0.25) > 1e-12 {
		t.Errorf("expected back alpha %f, got %f", 0.8*0.25, back)
	}
	front := s.Alpha(0.8, vmath.Vec3{Z: 1}, false)
	if math.Abs(front-0.8*0.9) > 1e-12 {
		t.Errorf("expected front alpha %f, got %f", 0.8*0.9, front)
	}

	side := vmath.Vec3{X: 1}
	nl := side.Dot(s.Light)
	want := 0.8*(0.25+0.65*0.5)*(0.6+0.4*nl) + 0.2*0.2
	if got := s.Alpha(0.8, side, true); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected lit silhouette alpha %f, got %f", want, got)
	}
	if got := s.Alpha(5, vmath.Vec3{Z: 1}, true); got > 1 {
		t.Errorf("alpha should be clamped, got %f", got)
	}
}

func TestShadingSpecular(t *testing.T) {
	s := DefaultShading()
	h := s.Light.Add(vmath.Vec3{Z: 1}).Normalize()
	if got := s.Specular(h); math.Abs(got-s.SpecularIntensity) > 1e-12 {
		t.Errorf("expected peak %f at half vector, got %f", s.SpecularIntensity, got)
	}
	if got := s.Specular(vmath.Vec3{Z: -1}); got != 0 {
		t.Errorf("expected no highlight facing away, got %f", got)
	}
}

func TestDrawPlanar(t *testing.T) {
	l := lattice.BuildPlanarSpacing(10, 3, 3)
	surf := &recordSurface{w: 20, h: 20}
	dot := Sprite{Image: &fakeImage{4, 4}, Size: 4}
	vig := &fakeImage{20, 20}

	if n := DrawPlanar(surf, l, dot, vig); n != 9 {
		t.Errorf("expected 9 dots, got %d", n)
	}
	last := surf.ops[len(surf.ops)-1]
	if last.img != Image(vig) || last.x != 0 || last.y != 0 {
		t.Error("vignette should be composited last at the origin")
	}
	if first := surf.ops[0]; first.x != -2 || first.y != -2 {
		t.Errorf("sprite should be centred on the point, got (%f,%f)", first.x, first.y)
	}

	l.Px[0] = -100
	if n := DrawPlanar(surf, l, dot, nil); n != 8 {
		t.Errorf("expected off-screen point to be culled, drew %d", n)
	}
}

func TestDrawSkipsZeroArea(t *testing.T) {
	l := lattice.BuildPlanarSpacing(10, 3, 3)
	surf := &recordSurface{w: 0, h: 20}
	if n := DrawPlanar(surf, l, Sprite{Image: &fakeImage{2, 2}, Size: 2}, nil); n != 0 {
		t.Errorf("expected nothing drawn, got %d", n)
	}
	if surf.clears != 0 {
		t.Error("zero-area surface should not be cleared")
	}
	if n := DrawSphere(surf, &Projection{}, 1, SphereStyle{}, nil); n != 0 {
		t.Errorf("expected nothing drawn, got %d", n)
	}
}

func TestDrawSphere(t *testing.T) {
	l := lattice.BuildSpherical(1, 16, 12)
	cam := NewCamera(400, 400)
	var proj Projection
	ProjectSphere(l, vmath.RotationYawPitch(0.3, -0.25), cam, &proj)

	style := SphereStyle{
		Color:     white,
		PointSize: 2,
		Opacity:   0.85,
		Lighting:  true,
		Specular:  true,
		Shading:   DefaultShading(),
	}
	surf := &recordSurface{w: 400, h: 400}
	if n := DrawSphere(surf, &proj, 1, style, nil); n != l.Count() {
		t.Errorf("expected all %d points drawn, got %d", l.Count(), n)
	}
	spec := surf.count(BlendAdditive)
	if spec == 0 || spec >= l.Count() {
		t.Errorf("expected a partial specular pass, got %d highlights", spec)
	}
	for _, op := range surf.ops {
		if op.blend == BlendAdditive && op.r != 1.8 {
			t.Fatalf("specular radius should be 0.9x point size, got %f", op.r)
		}
	}

	style.Lighting = false
	DrawSphere(surf, &proj, 1, style, nil)
	if surf.count(BlendAdditive) != 0 {
		t.Error("specular pass should be skipped when lighting is off")
	}
}
