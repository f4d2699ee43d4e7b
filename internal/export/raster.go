package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

var ErrNoFrames = errors.New("export: no frames")

// DefaultPaletteSize is the number of GIF colours between background and
// foreground.
const DefaultPaletteSize = 32

// WriteFile creates path and runs write on it. The close error is returned
// when write succeeded, so a failed flush is not lost.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func FrameToPNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Ramp is an n-step palette from bg to fg.
func Ramp(bg, fg color.NRGBA, n int) color.Palette {
	n = max(n, 2)
	p := make(color.Palette, n)
	for i := range p {
		t := float64(i) / float64(n-1)
		lerp := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5) }
		p[i] = color.RGBA{R: lerp(bg.R, fg.R), G: lerp(bg.G, fg.G), B: lerp(bg.B, fg.B), A: 255}
	}
	return p
}

// Paletted maps img onto palette by nearest colour.
func Paletted(img image.Image, palette color.Palette) *image.Paletted {
	out := image.NewPaletted(img.Bounds(), palette)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// FramesToGIF encodes frames as a looping animation, delay in 1/100 s.
func FramesToGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, max(delay, 1))
	}
	return gif.EncodeAll(w, &anim)
}
