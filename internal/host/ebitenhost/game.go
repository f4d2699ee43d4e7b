// Package ebitenhost runs an engine in an ebiten window.
package ebitenhost

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/quality"
)

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	HUD        bool
}

func DefaultOptions() Options {
	return Options{Title: "lattice", Width: 1280, Height: 720}
}

// Game implements ebiten.Game around one engine.
type Game struct {
	eng     *engine.Engine
	log     *log.Logger
	surface *Surface
	start   time.Time
	hud     bool

	width, height int
	inside        bool
}

func NewGame(eng *engine.Engine, logger *log.Logger, hud bool) *Game {
	bg := eng.Background()
	return &Game{
		eng:     eng,
		log:     logger,
		surface: NewSurface(bg),
		start:   time.Now(),
		hud:     hud,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.eng.Wave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.hud = !g.hud
	}
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(k) {
			g.eng.SetLevel(quality.Level(i))
			g.log.Info("quality override", "level", quality.Level(i))
		}
	}

	x, y := ebiten.CursorPosition()
	in := ebiten.IsFocused() && x >= 0 && y >= 0 && x < g.width && y < g.height
	switch {
	case in && !g.inside:
		g.eng.PointerEnter()
		g.eng.PointerMove(float64(x), float64(y))
	case in:
		g.eng.PointerMove(float64(x), float64(y))
	case g.inside:
		g.eng.PointerLeave()
	}
	g.inside = in
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	stats := g.eng.Frame(time.Since(g.start).Seconds(), g.surface)
	if stats.LevelChanged {
		g.log.Info("quality changed", "level", stats.Level, "fps", fmt.Sprintf("%.1f", stats.FPS))
	}
	if g.hud {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nLevel: %s\nSubsteps: %d\nKE: %.4g\nPoints: %d",
			ebiten.ActualFPS(), stats.Level, stats.Substeps, stats.KineticEnergy, stats.Drawn))
	}
}

// Layout renders at the outside size scaled by the quality level's pixel
// scale and the capped device ratio.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := g.eng.PixelScale(ebiten.Monitor().DeviceScaleFactor())
	w := max(1, int(float64(outsideWidth)*scale))
	h := max(1, int(float64(outsideHeight)*scale))
	if w != g.width || h != g.height {
		g.log.Debug("resize", "width", w, "height", h, "scale", fmt.Sprintf("%.2f", scale))
		g.width, g.height = w, h
	}
	return w, h
}

// Run opens a window and blocks until it is closed.
func Run(eng *engine.Engine, opts Options, logger *log.Logger) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(opts.Fullscreen)
	ebiten.SetScreenClearedEveryFrame(false)

	g := NewGame(eng, logger, opts.HUD)
	logger.Info("window open", "mode", eng.Config().Mode, "width", opts.Width, "height", opts.Height)
	defer eng.Close()

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	logger.Info("window closed")
	return err
}

var _ ebiten.Game = (*Game)(nil)
