package render

import (
	"image"
	"image/color"
)

type Blend int

const (
	BlendSourceOver Blend = iota
	BlendAdditive
)

func (b Blend) String() string {
	if b == BlendAdditive {
		return "additive"
	}
	return "source-over"
}

// Image is a host-side handle to an uploaded bitmap.
type Image interface {
	Size() (w, h int)
}

// Surface is the immediate-mode drawing target supplied by a host. All
// coordinates are in surface pixels.
type Surface interface {
	Size() (w, h int)
	Clear()
	Upload(img *image.RGBA) Image
	Release(img Image)
	DrawImage(img Image, x, y float64)
	FillCircle(x, y, r float64, c color.NRGBA, blend Blend)
}
