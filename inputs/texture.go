package inputs

import (
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/goglass/shader"
)

var _ shader.Texture = (*ImageTexture)(nil)

// ImageTexture is a decoded background image held as straight RGBA.
type ImageTexture struct {
	img *image.NRGBA
}

// NewImageTexture converts img to a texture. The pixels are copied.
func NewImageTexture(img image.Image) *ImageTexture {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return &ImageTexture{img: nrgba}
}

func (t *ImageTexture) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Rect.Dx()
}

func (t *ImageTexture) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Rect.Dy()
}

// Image returns the texture pixels, or nil after Release.
func (t *ImageTexture) Image() *image.NRGBA {
	return t.img
}

// Released reports whether Release has been called.
func (t *ImageTexture) Released() bool {
	return t.img == nil
}

// Release drops the pixel buffer. Sampling a released texture returns
// transparent black.
func (t *ImageTexture) Release() {
	t.img = nil
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (t *ImageTexture) texel(x, y int) mgl64.Vec4 {
	w, h := t.img.Rect.Dx(), t.img.Rect.Dy()
	off := t.img.PixOffset(wrap(x, w), wrap(y, h))
	p := t.img.Pix[off : off+4 : off+4]
	return mgl64.Vec4{
		float64(p[0]) / 255,
		float64(p[1]) / 255,
		float64(p[2]) / 255,
		float64(p[3]) / 255,
	}
}

// BilinearSample filters the four texels around (u, v) with repeat
// wrapping. v=0 is the bottom row of the image.
func (t *ImageTexture) BilinearSample(u, v float64) mgl64.Vec4 {
	if t.img == nil || t.img.Rect.Empty() {
		return mgl64.Vec4{}
	}
	w, h := float64(t.img.Rect.Dx()), float64(t.img.Rect.Dy())
	x := (u - math.Floor(u)) * w
	y := (1 - (v - math.Floor(v))) * h
	x -= 0.5
	y -= 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	top := t.texel(ix, iy).Mul(1 - fx).Add(t.texel(ix+1, iy).Mul(fx))
	bottom := t.texel(ix, iy+1).Mul(1 - fx).Add(t.texel(ix+1, iy+1).Mul(fx))
	return top.Mul(1 - fy).Add(bottom.Mul(fy))
}
