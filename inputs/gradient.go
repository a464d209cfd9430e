package inputs

import (
	"image"
	"image/color"
	"sync"
)

// FallbackSize is the edge length of the fallback gradient texture.
const FallbackSize = 256

var (
	fallbackOnce sync.Once
	fallback     *image.NRGBA
)

// NewGradientTexture builds the deterministic RGB ramp used when the texture
// pattern is selected and nothing has loaded.
func NewGradientTexture(size int) *ImageTexture {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		v := 1 - (float64(y)+0.5)/float64(size)
		for x := 0; x < size; x++ {
			u := (float64(x) + 0.5) / float64(size)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(u*255 + 0.5),
				G: uint8(v*255 + 0.5),
				B: uint8((1-u*0.5)*255 + 0.5),
				A: 255,
			})
		}
	}
	return &ImageTexture{img: img}
}

// Fallback returns a fresh texture sharing the process-wide gradient pixels.
func Fallback() *ImageTexture {
	fallbackOnce.Do(func() {
		fallback = NewGradientTexture(FallbackSize).img
	})
	return &ImageTexture{img: fallback}
}
