package shader

import (
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	distortionFactor = 0.3
	curvatureBoost   = 2.0
	causticStrength  = 0.4
	causticPower     = 3
	bodyAlpha        = 0.4
	rimAlpha         = 0.6
)

var (
	// ReflectionColor is the near-white tint mixed in by the Fresnel term.
	ReflectionColor = mgl64.Vec3{0.95, 0.97, 1.0}
	// CausticTint warms the additive highlight.
	CausticTint = mgl64.Vec3{1.0, 0.9, 0.7}
	causticDir  = mgl64.Vec3{0.5, 0.5, 1.0}
)

// Uniforms is the per-frame parameter set of the glass program.
type Uniforms struct {
	Shape           Shape
	Pattern         Pattern
	Size            float64
	RefractionIndex float64
	Dispersion      float64
	Thickness       float64
	Mouse           mgl64.Vec2
	Time            float64
	Ripples         bool
}

// Alpha is the soft disk mask plus the rim band for a normalized edge
// distance. The sum is not clamped; the body fades out under the rim, so it
// peaks at about 0.96.
func Alpha(edge float64) float64 {
	body := bodyAlpha * (1 - smoothstep(0.95, 1.0, edge))
	rim := rimAlpha * smoothstep(0.85, 0.97, edge) * (1 - smoothstep(0.97, 1.0, edge))
	return body + rim
}

// DistortionScale is the refraction offset multiplier at distance d from
// the glass centre.
func DistortionScale(shape Shape, thickness, d float64) float64 {
	scale := thickness * distortionFactor
	if shape == ShapeSphere || shape == ShapeLens {
		scale *= 1 + d*d*curvatureBoost
	}
	return scale
}

func refracted(u Uniforms, uv mgl64.Vec2, o Optics, tex Texture) mgl64.Vec3 {
	scale := DistortionScale(u.Shape, u.Thickness, uv.Sub(u.Mouse).Len())
	var out mgl64.Vec3
	for _, c := range [...]Channel{Red, Green, Blue} {
		sample := SamplePattern(u.Pattern, uv.Add(o.Offsets[c].Mul(scale)), tex)
		out[c] = sample[c]
	}
	return out
}

func caustic(n mgl64.Vec3) mgl64.Vec3 {
	k := math.Pow(math.Max(0, n.Dot(causticDir)), causticPower) * causticStrength
	return CausticTint.Mul(k)
}

// Fragment evaluates the glass at uv. The result is straight RGBA; a miss
// is fully transparent.
func Fragment(u Uniforms, uv mgl64.Vec2, tex Texture) mgl64.Vec4 {
	hit, ok := Intersect(u.Shape, PrimaryRay(uv), u.Mouse, u.Size, u.Time, u.Ripples)
	if !ok {
		return mgl64.Vec4{}
	}
	o := Evaluate(hit.Entry, u.RefractionIndex, u.Dispersion)
	col := refracted(u, uv, o, tex)
	col = col.Add(ReflectionColor.Sub(col).Mul(o.Reflectance))
	col = col.Add(caustic(hit.Entry))
	return col.Vec4(Alpha(hit.Edge))
}

// PixelUV maps the centre of pixel (x, y) of a w×h frame to UV space with
// v pointing up.
func PixelUV(x, y, w, h int) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(x) + 0.5) / float64(w),
		1 - (float64(y)+0.5)/float64(h),
	}
}

// supersample offsets in pixel units for 2×2 antialiasing.
var supersample = [4]mgl64.Vec2{{-0.25, -0.25}, {0.25, -0.25}, {-0.25, 0.25}, {0.25, 0.25}}

// Compositor runs the glass program over a frame.
type Compositor struct {
	Antialias bool
	// Preserve composites source-over onto the previous frame contents
	// instead of clearing first.
	Preserve bool
}

func (c Compositor) fragment(u Uniforms, x, y, w, h int, tex Texture) mgl64.Vec4 {
	if !c.Antialias {
		return Fragment(u, PixelUV(x, y, w, h), tex)
	}
	var rgb mgl64.Vec3
	var alpha float64
	for _, off := range supersample {
		uv := mgl64.Vec2{
			(float64(x) + 0.5 + off[0]) / float64(w),
			1 - (float64(y)+0.5+off[1])/float64(h),
		}
		s := Fragment(u, uv, tex)
		rgb = rgb.Add(s.Vec3().Mul(s[3]))
		alpha += s[3]
	}
	if alpha == 0 {
		return mgl64.Vec4{}
	}
	return rgb.Mul(1 / alpha).Vec4(alpha / float64(len(supersample)))
}

// rows runs fn for every row in [0, h), interleaving rows across one worker
// per logical CPU. fn must only touch its own row.
func rows(h int, fn func(y int)) {
	wn := runtime.NumCPU()
	if wn > h {
		wn = h
	}
	var wg sync.WaitGroup
	wg.Add(wn)
	for wi := 0; wi < wn; wi++ {
		go func(wi int) {
			defer wg.Done()
			for y := wi; y < h; y += wn {
				fn(y)
			}
		}(wi)
	}
	wg.Wait()
}

// Draw evaluates every pixel of dst.
func (c Compositor) Draw(dst *image.NRGBA, u Uniforms, tex Texture) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	rows(h, func(y int) {
		line := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			src := c.fragment(u, x, y, w, h, tex)
			px := line[4*x : 4*x+4 : 4*x+4]
			var out color.NRGBA
			if c.Preserve {
				out = over(src, color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
			} else {
				out = toNRGBA(src)
			}
			px[0], px[1], px[2], px[3] = out.R, out.G, out.B, out.A
		}
	})
}

// DrawBackdrop fills dst with the unrefracted background, for hosts that
// flatten the glass layer onto it.
func DrawBackdrop(dst *image.NRGBA, p Pattern, tex Texture) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	rows(h, func(y int) {
		for x := 0; x < w; x++ {
			col := SamplePattern(p, PixelUV(x, y, w, h), tex)
			dst.SetNRGBA(b.Min.X+x, b.Min.Y+y, toNRGBA(col.Vec4(1)))
		}
	})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func quantize(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func toNRGBA(c mgl64.Vec4) color.NRGBA {
	return color.NRGBA{R: quantize(c[0]), G: quantize(c[1]), B: quantize(c[2]), A: quantize(c[3])}
}

// over blends straight-alpha src onto dst.
func over(src mgl64.Vec4, dst color.NRGBA) color.NRGBA {
	sa := clamp01(src[3])
	da := float64(dst.A) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return color.NRGBA{}
	}
	var out mgl64.Vec4
	d := mgl64.Vec3{float64(dst.R) / 255, float64(dst.G) / 255, float64(dst.B) / 255}
	for i := 0; i < 3; i++ {
		out[i] = (clamp01(src[i])*sa + d[i]*da*(1-sa)) / oa
	}
	out[3] = oa
	return toNRGBA(out)
}
