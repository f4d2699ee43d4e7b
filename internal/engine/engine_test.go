package engine_test

import (
	"image"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lattice/internal/config"
	"github.com/san-kum/lattice/internal/device"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/lattice"
	"github.com/san-kum/lattice/internal/physics"
	"github.com/san-kum/lattice/internal/quality"
	"github.com/san-kum/lattice/internal/raster"
	"github.com/san-kum/lattice/internal/render"
)

// countingSurface tracks bitmap uploads and releases on top of a raster canvas.
type countingSurface struct {
	*raster.Canvas
	uploads, releases int
}

func (s *countingSurface) Upload(img *image.RGBA) render.Image {
	s.uploads++
	return s.Canvas.Upload(img)
}

func (s *countingSurface) Release(img render.Image) {
	s.releases++
	s.Canvas.Release(img)
}

func preset(name string) *config.Config {
	cfg, err := config.GetPreset(name)
	Expect(err).NotTo(HaveOccurred())
	return cfg
}

func run(e *engine.Engine, s render.Surface, from, frames int, each func(engine.FrameStats)) {
	for i := from; i < from+frames; i++ {
		st := e.Frame(float64(i)/60, s)
		if each != nil {
			each(st)
		}
	}
}

func neighboursInRange(l *lattice.Lattice) {
	Expect(l.Validate()).To(Succeed())
	for _, j := range l.Nbr {
		Expect(j).To(BeNumerically("<", l.Count()))
	}
}

var _ = Describe("Planar engine", func() {
	var (
		cfg  *config.Config
		surf *raster.Canvas
	)

	BeforeEach(func() {
		cfg = preset("crystal")
		cfg.Planar.Cols = 10
		cfg.Planar.Rows = 10
		surf = raster.New(180, 180)
	})

	It("builds a 10x10 grid with spacing 20 for a 180px surface", func() {
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)
		l := e.Lattice()
		Expect(l.Cols).To(Equal(10))
		Expect(l.Rows).To(Equal(10))
		Expect(l.Spacing).To(BeNumerically("~", 20, 1e-9))
	})

	It("stays at rest without pointer activity", func() {
		e := engine.New(cfg, device.Default())
		total := 0
		run(e, surf, 0, 121, func(st engine.FrameStats) {
			Expect(st.Substeps).To(BeNumerically("<=", 3))
			total += st.Substeps
		})
		Expect(total).To(BeNumerically(">=", 119))
		Expect(e.Stats().MaxDisplacement).To(BeNumerically("<", 1e-9))
		Expect(e.Stats().Drawn).To(Equal(100))
	})

	It("returns to its anchors after a pointer disturbance", func() {
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)
		e.PointerMove(95, 85)
		run(e, surf, 1, 10, nil)
		Expect(e.Stats().MaxDisplacement).To(BeNumerically(">", 0.1))

		e.PointerLeave()
		frame := 11
		for ; frame < 11+6000 && physics.MaxSpeed(e.Lattice()) >= 1e-6; frame++ {
			e.Frame(float64(frame)/60, surf)
		}
		Expect(physics.MaxSpeed(e.Lattice())).To(BeNumerically("<", 1e-6), "still moving after %d frames", frame-11)
		Expect(e.Stats().MaxDisplacement).To(BeNumerically("<", 1e-3))
		Expect(e.Stats().KineticEnergy).To(BeNumerically("<", 1e-6))
	})

	It("ignores the pointer when it is disabled", func() {
		cfg.Pointer.Enabled = false
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)
		e.PointerMove(90, 90)
		run(e, surf, 1, 30, nil)
		Expect(e.Stats().MaxDisplacement).To(BeNumerically("<", 1e-9))
	})

	It("deactivates the cursor when it leaves the surface", func() {
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)
		e.PointerMove(90, 90)
		Expect(e.State().Cursor.Active).To(BeTrue())
		e.PointerMove(-5, 90)
		Expect(e.State().Cursor.Active).To(BeFalse())
		e.PointerMove(90, 90)
		e.PointerLeave()
		Expect(e.State().Cursor.Active).To(BeFalse())
	})

	It("re-activates the cursor where it left on enter", func() {
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)
		e.PointerEnter()
		Expect(e.State().Cursor.Active).To(BeFalse())

		e.PointerMove(90, 80)
		e.PointerLeave()
		e.PointerEnter()
		c := e.State().Cursor
		Expect(c.Active).To(BeTrue())
		Expect(c.X).To(Equal(90.0))
		Expect(c.Y).To(Equal(80.0))

		e.PointerMove(-5, 10)
		e.PointerEnter()
		Expect(e.State().Cursor.X).To(Equal(90.0))
	})

	It("does not re-activate a disabled pointer", func() {
		cfg.Pointer.Enabled = false
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)
		e.PointerMove(90, 80)
		e.PointerEnter()
		Expect(e.State().Cursor.Active).To(BeFalse())
	})

	It("skips drawing on a zero-area surface", func() {
		e := engine.New(cfg, device.Default())
		empty := raster.New(0, 0)
		var drawn int
		run(e, empty, 0, 5, func(st engine.FrameStats) { drawn += st.Drawn })
		Expect(drawn).To(Equal(0))
	})

	It("releases uploaded bitmaps on resize", func() {
		e := engine.New(cfg, device.Default())
		cs := &countingSurface{Canvas: raster.New(180, 180)}
		e.Frame(0, cs)
		e.Frame(1.0/60, cs)
		Expect(cs.uploads).To(Equal(2))
		Expect(cs.releases).To(Equal(0))
		e.Resize(200, 200)
		Expect(cs.releases).To(Equal(2))
	})
})

var _ = Describe("Resizing", func() {
	It("rebuilds the grid without stale neighbour indices", func() {
		cfg := preset("crystal-fluid")
		e := engine.New(cfg, device.Default())

		e.Frame(0, raster.New(800, 600))
		before := e.Lattice()
		want := lattice.PlanarGrid(800, 600, 800*0.015)
		Expect(before.Count()).To(Equal(want.Count()))

		e.Frame(1.0/60, raster.New(400, 300))
		after := e.Lattice()
		want = lattice.PlanarGrid(400, 300, 400*0.015)
		Expect(after).NotTo(BeIdenticalTo(before))
		Expect(after.Cols).To(Equal(want.Cols))
		Expect(after.Rows).To(Equal(want.Rows))
		Expect(after.Spacing).To(BeNumerically("~", 6, 1e-9))
		Expect(e.State().Projection.Len()).To(Equal(after.Count()))
		neighboursInRange(after)
	})

	It("changes the point count when the aspect ratio changes", func() {
		cfg := preset("crystal-fluid")
		e := engine.New(cfg, device.Default())
		e.Frame(0, raster.New(800, 600))
		n := e.Lattice().Count()
		e.Frame(1.0/60, raster.New(400, 600))
		Expect(e.Lattice().Count()).NotTo(Equal(n))
		Expect(e.Lattice().Count()).To(Equal(lattice.PlanarGrid(400, 600, 400*0.015).Count()))
		neighboursInRange(e.Lattice())
	})

	It("derives spacing from height on low-power devices", func() {
		cfg := preset("crystal-fluid")
		e := engine.New(cfg, device.Capabilities{IsLowPower: true, PixelDensityCap: 2})
		e.Frame(0, raster.New(800, 600))
		Expect(e.Lattice().Spacing).To(BeNumerically("~", 12, 1e-9))
		e.Frame(1.0/60, raster.New(800, 300))
		Expect(e.Lattice().Spacing).To(BeNumerically("~", 6, 1e-9))
	})
})

var _ = Describe("Intro wave", func() {
	It("kicks the grid shortly after start", func() {
		e := engine.New(preset("crystal-fluid"), device.Default())
		surf := raster.New(400, 300)
		st := e.Frame(0, surf)
		Expect(st.KineticEnergy).To(BeZero())
		run(e, surf, 1, 30, nil)
		Expect(e.State().WavePending).To(BeFalse())
		Expect(e.Stats().MaxDisplacement).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Spherical engine", func() {
	var surf *raster.Canvas

	BeforeEach(func() {
		surf = raster.New(400, 400)
	})

	It("keeps every point on the sphere while the pointer pushes it", func() {
		e := engine.New(preset("sphere"), device.Default())
		e.Frame(0, surf)
		e.PointerMove(200, 200)
		R := e.Lattice().Radius
		Expect(R).To(BeNumerically(">", 0))
		run(e, surf, 1, 120, func(engine.FrameStats) {
			l := e.Lattice()
			for i := 0; i < l.Count(); i++ {
				n := math.Sqrt(l.Px[i]*l.Px[i] + l.Py[i]*l.Py[i] + l.Pz[i]*l.Pz[i])
				Expect(n).To(BeNumerically("~", R, 1e-9))
			}
		})
		Expect(e.State().Pick.Active).To(BeTrue())
		Expect(e.Stats().MaxDisplacement).To(BeNumerically(">", 0))
	})

	It("decays rotation to rest with zero target speeds", func() {
		cfg := preset("sphere")
		cfg.Sphere.YawSpeed = 0
		cfg.Sphere.PitchSpeed = 0
		e := engine.New(cfg, device.Default())
		e.Frame(0, surf)

		e.PointerMove(200, 200)
		e.PointerMove(260, 230)
		rot := e.Rotation()
		Expect(rot.YawVel).To(BeNumerically(">", 0))
		Expect(rot.PitchVel).To(BeNumerically("<", 0))
		e.PointerLeave()

		run(e, surf, 1, 600, func(engine.FrameStats) {
			Expect(math.Abs(rot.YawVel)).To(BeNumerically("<=", rot.MaxYawSpeed))
			Expect(math.Abs(rot.PitchVel)).To(BeNumerically("<=", rot.MaxPitchSpeed))
		})
		Expect(math.Abs(rot.YawVel)).To(BeNumerically("<", 1e-3))
		Expect(math.Abs(rot.PitchVel)).To(BeNumerically("<", 1e-3))
	})

	It("does not rotate without auto-rotation or drag", func() {
		e := engine.New(preset("sphere-still"), device.Default())
		run(e, surf, 0, 120, nil)
		Expect(e.Rotation().Yaw).To(BeZero())
		Expect(e.Rotation().YawVel).To(BeZero())
	})

	It("auto-rotates by default", func() {
		e := engine.New(preset("sphere"), device.Default())
		run(e, surf, 0, 120, nil)
		Expect(e.Rotation().Yaw).To(BeNumerically(">", 0))
		Expect(e.Stats().Drawn).To(Equal(e.Lattice().Count()))
	})
})

var _ = Describe("Adaptive quality", func() {
	It("lowers the level when frames are slow", func() {
		e := engine.New(preset("sphere"), device.Default())
		surf := raster.New(200, 200)
		start := e.Level()
		changed := false
		for i := 0; i < 120; i++ {
			st := e.Frame(float64(i)/20, surf)
			changed = changed || st.LevelChanged
		}
		Expect(changed).To(BeTrue())
		Expect(e.Level()).To(BeNumerically("<", start))
		Expect(e.Stats().Level).To(Equal(e.Level()))
	})

	It("holds a forced level instead of adapting from the old one", func() {
		e := engine.New(preset("sphere"), device.Default())
		surf := raster.New(200, 200)
		e.Frame(0, surf)
		e.SetLevel(quality.Low)
		Expect(e.Level()).To(Equal(quality.Low))
		for i := 1; i < 120; i++ {
			st := e.Frame(float64(i)/20, surf)
			Expect(st.Level).To(Equal(quality.Low))
		}
		Expect(e.Level()).To(Equal(quality.Low))
	})

	It("starts one level lower on low-power devices", func() {
		full := engine.New(preset("sphere"), device.Default())
		low := engine.New(preset("sphere"), device.Capabilities{IsLowPower: true})
		Expect(low.Level()).To(Equal(full.Level() - 1))
	})
})
