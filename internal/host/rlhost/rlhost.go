//go:build raylib

// Package rlhost runs an engine in a raylib window. Build with -tags raylib.
package rlhost

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/render"
)

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	HUD        bool
}

type texture struct {
	tex rl.Texture2D
}

func (t *texture) Size() (int, int) { return int(t.tex.Width), int(t.tex.Height) }

// surface draws into an off-screen render texture sized to the scaled
// resolution; the window blits it up to full size.
type surface struct {
	target     rl.RenderTexture2D
	w, h       int
	background rl.Color
}

func rlColor(c color.NRGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func (s *surface) Size() (int, int) { return s.w, s.h }

func (s *surface) Clear() { rl.ClearBackground(s.background) }

func (s *surface) Upload(img *image.RGBA) render.Image {
	im := rl.NewImageFromImage(img)
	defer rl.UnloadImage(im)
	return &texture{tex: rl.LoadTextureFromImage(im)}
}

func (s *surface) Release(img render.Image) {
	if t, ok := img.(*texture); ok {
		rl.UnloadTexture(t.tex)
	}
}

func (s *surface) DrawImage(img render.Image, x, y float64) {
	if t, ok := img.(*texture); ok {
		rl.DrawTextureV(t.tex, rl.NewVector2(float32(x), float32(y)), rl.White)
	}
}

func (s *surface) FillCircle(x, y, r float64, c color.NRGBA, blend render.Blend) {
	if blend == render.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	}
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rlColor(c))
}

// resize swaps the render texture when the scaled size changes.
func (s *surface) resize(w, h int) bool {
	w, h = max(1, w), max(1, h)
	if w == s.w && h == s.h {
		return false
	}
	if s.w > 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(int32(w), int32(h))
	s.w, s.h = w, h
	return true
}

// Run opens a window and blocks until it is closed.
func Run(eng *engine.Engine, opts Options, logger *log.Logger) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	logger.Info("window open", "host", "raylib", "mode", eng.Config().Mode)

	s := &surface{background: rlColor(eng.Background())}
	defer func() {
		eng.Close()
		if s.w > 0 {
			rl.UnloadRenderTexture(s.target)
		}
	}()

	inside := false
	hud := opts.HUD
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		if rl.IsKeyPressed(rl.KeyW) {
			eng.Wave()
		}
		if rl.IsKeyPressed(rl.KeyF1) {
			hud = !hud
		}

		sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
		scale := eng.PixelScale(float64(rl.GetWindowScaleDPI().X))
		if s.resize(int(float64(sw)*scale), int(float64(sh)*scale)) {
			logger.Debug("resize", "width", s.w, "height", s.h, "scale", fmt.Sprintf("%.2f", scale))
		}

		m := rl.GetMousePosition()
		in := rl.IsCursorOnScreen() && rl.IsWindowFocused()
		if in && !inside {
			eng.PointerEnter()
		} else if !in && inside {
			eng.PointerLeave()
		}
		if in {
			fx, fy := float64(s.w)/float64(sw), float64(s.h)/float64(sh)
			eng.PointerMove(float64(m.X)*fx, float64(m.Y)*fy)
		}
		inside = in

		rl.BeginTextureMode(s.target)
		stats := eng.Frame(rl.GetTime(), s)
		rl.EndTextureMode()
		if stats.LevelChanged {
			logger.Info("quality changed", "level", stats.Level, "fps", fmt.Sprintf("%.1f", stats.FPS))
		}

		rl.BeginDrawing()
		rl.ClearBackground(s.background)
		src := rl.NewRectangle(0, 0, float32(s.w), -float32(s.h))
		dst := rl.NewRectangle(0, 0, float32(sw), float32(sh))
		rl.DrawTexturePro(s.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
		if hud {
			rl.DrawFPS(10, 10)
			rl.DrawText(fmt.Sprintf("%s  substeps %d  KE %.4g", stats.Level, stats.Substeps, stats.KineticEnergy), 10, 34, 16, rl.Gray)
		}
		rl.EndDrawing()
	}
	logger.Info("window closed")
	return nil
}
