package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/lattice/internal/render"
)

func TestFillCircleSourceOver(t *testing.T) {
	c := New(20, 20)
	c.FillCircle(10, 10, 4, color.NRGBA{255, 255, 255, 255}, render.BlendSourceOver)
	if got := c.Image().RGBAAt(10, 10); got.A != 255 || got.R != 255 {
		t.Errorf("expected opaque white centre, got %+v", got)
	}
	if got := c.Image().RGBAAt(0, 0); got.A != 0 {
		t.Errorf("expected untouched corner, got %+v", got)
	}

	c.FillCircle(10, 10, 4, color.NRGBA{0, 0, 0, 128}, render.BlendSourceOver)
	if got := c.Image().RGBAAt(10, 10); got.R < 120 || got.R > 135 || got.A != 255 {
		t.Errorf("expected half-darkened centre, got %+v", got)
	}
}

func TestFillCircleAdditiveSaturates(t *testing.T) {
	c := New(10, 10)
	col := color.NRGBA{200, 200, 200, 255}
	c.FillCircle(5, 5, 3, col, render.BlendAdditive)
	c.FillCircle(5, 5, 3, col, render.BlendAdditive)
	if got := c.Image().RGBAAt(5, 5); got.R != 255 {
		t.Errorf("expected saturated channel, got %d", got.R)
	}
}

func TestFillCircleClipsToBounds(t *testing.T) {
	c := New(8, 8)
	c.FillCircle(-50, -50, 3, color.NRGBA{255, 255, 255, 255}, render.BlendSourceOver)
	c.FillCircle(7, 7, 30, color.NRGBA{255, 255, 255, 255}, render.BlendSourceOver)
	if got := c.Image().RGBAAt(0, 0); got.A != 255 {
		t.Errorf("expected large circle to cover the canvas, got %+v", got)
	}
}

func TestDrawImageAndClear(t *testing.T) {
	c := New(10, 10)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img := c.Upload(src)
	if w, h := img.Size(); w != 2 || h != 2 {
		t.Fatalf("expected 2x2 bitmap, got %dx%d", w, h)
	}

	c.DrawImage(img, 3.4, 5.6)
	if got := c.Image().RGBAAt(3, 6); got.R != 255 {
		t.Errorf("expected red pixel at (3,6), got %+v", got)
	}

	c.SetBackground(color.RGBA{0, 0, 0, 255})
	c.Clear()
	if got := c.Image().RGBAAt(3, 6); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("expected background after clear, got %+v", got)
	}
}

func TestResize(t *testing.T) {
	c := New(4, 4)
	c.Resize(16, 9)
	if w, h := c.Size(); w != 16 || h != 9 {
		t.Errorf("expected 16x9, got %dx%d", w, h)
	}
	c.Resize(-1, 3)
	if w, _ := c.Size(); w != 0 {
		t.Errorf("expected negative width clamped to 0, got %d", w)
	}
}
