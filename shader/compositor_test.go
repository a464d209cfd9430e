package shader

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testUniforms() Uniforms {
	return Uniforms{
		Shape:           ShapeSphere,
		Pattern:         PatternStripes,
		Size:            0.2,
		RefractionIndex: 1.5,
		Dispersion:      0.03,
		Thickness:       1,
		Mouse:           mgl64.Vec2{0.5, 0.5},
		Time:            0,
		Ripples:         true,
	}
}

func TestFragmentCentreAndCorner(t *testing.T) {
	u := testUniforms()
	if c := Fragment(u, mgl64.Vec2{0.5, 0.5}, nil); c[3] <= 0 {
		t.Errorf("centre alpha = %v, want > 0", c[3])
	}
	if c := Fragment(u, mgl64.Vec2{0, 0}, nil); c != (mgl64.Vec4{}) {
		t.Errorf("corner = %v, want transparent", c)
	}
}

func TestFragmentDeterministic(t *testing.T) {
	u := testUniforms()
	u.Time = 4.2
	uv := mgl64.Vec2{0.45, 0.55}
	if a, b := Fragment(u, uv, nil), Fragment(u, uv, nil); a != b {
		t.Errorf("Fragment not deterministic: %v vs %v", a, b)
	}
}

func TestRefractedChannelsEqualWithoutDispersion(t *testing.T) {
	u := testUniforms()
	u.Dispersion = 0
	u.Pattern = PatternCircles
	for _, uv := range []mgl64.Vec2{{0.5, 0.5}, {0.58, 0.47}, {0.41, 0.62}} {
		hit, ok := Intersect(u.Shape, PrimaryRay(uv), u.Mouse, u.Size, u.Time, u.Ripples)
		if !ok {
			t.Fatalf("%v: missed", uv)
		}
		c := refracted(u, uv, Evaluate(hit.Entry, u.RefractionIndex, u.Dispersion), nil)
		if c[0] != c[1] || c[1] != c[2] {
			t.Errorf("%v: channels differ with zero dispersion: %v", uv, c)
		}
	}
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		edge, want float64
	}{
		{0, 0.4},
		{0.5, 0.4},
		{1, 0},
	}
	for _, tt := range tests {
		if got := Alpha(tt.edge); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Alpha(%v) = %v, want %v", tt.edge, got, tt.want)
		}
	}
}

// The rim band is added on top of the body without clamping. The body fades
// out under the rim, so the sum peaks near 0.96 and never reaches 1.
func TestAlphaRimAddsToBody(t *testing.T) {
	for _, edge := range []float64{0.9, 0.95, 0.96, 0.97} {
		body := 0.4 * (1 - smoothstep(0.95, 1, edge))
		rim := 0.6 * smoothstep(0.85, 0.97, edge) * (1 - smoothstep(0.97, 1, edge))
		if got := Alpha(edge); got != body+rim {
			t.Errorf("Alpha(%v) = %v, want %v", edge, got, body+rim)
		}
		if Alpha(edge) <= 0.4 {
			t.Errorf("Alpha(%v) = %v, want rim above body alpha", edge, Alpha(edge))
		}
	}
}

func TestDistortionScale(t *testing.T) {
	tests := []struct {
		shape Shape
		d     float64
		want  float64
	}{
		{ShapeSphere, 0, 0.3},
		{ShapeSphere, 0.5, 0.3 * 1.5},
		{ShapeLens, 0.5, 0.3 * 1.5},
		{ShapeCylinder, 0.5, 0.3},
		{ShapePrism, 0.5, 0.3},
		{ShapeFlat, 0.5, 0.3},
	}
	for _, tt := range tests {
		if got := DistortionScale(tt.shape, 1, tt.d); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DistortionScale(%v, 1, %v) = %v, want %v", tt.shape, tt.d, got, tt.want)
		}
	}
}

func TestPixelUV(t *testing.T) {
	if got := PixelUV(50, 50, 101, 101); !got.ApproxEqualThreshold(mgl64.Vec2{0.5, 0.5}, 1e-12) {
		t.Errorf("PixelUV centre = %v", got)
	}
	// row 0 is the top of the frame
	if got := PixelUV(0, 0, 10, 10); math.Abs(got[1]-0.95) > 1e-12 {
		t.Errorf("PixelUV(0,0) v = %v, want 0.95", got[1])
	}
}

func TestCompositorDraw(t *testing.T) {
	u := testUniforms()
	red := color.NRGBA{R: 255, A: 255}
	for _, c := range []Compositor{{}, {Antialias: true}, {Preserve: true}, {Antialias: true, Preserve: true}} {
		dst := image.NewNRGBA(image.Rect(0, 0, 101, 101))
		for i := range dst.Pix {
			if i%4 == 0 || i%4 == 3 {
				dst.Pix[i] = 255
			}
		}
		c.Draw(dst, u, nil)

		if got := dst.NRGBAAt(50, 50); got.A == 0 {
			t.Errorf("%+v: centre pixel transparent", c)
		}
		corner := dst.NRGBAAt(0, 100)
		if c.Preserve {
			if corner != red {
				t.Errorf("%+v: corner = %v, want previous contents %v", c, corner, red)
			}
		} else if corner != (color.NRGBA{}) {
			t.Errorf("%+v: corner = %v, want transparent", c, corner)
		}
	}
}

func TestAlphaBound(t *testing.T) {
	peak := 0.0
	for i := 0; i <= 10000; i++ {
		peak = math.Max(peak, Alpha(float64(i)/10000))
	}
	if peak <= 0.9 || peak >= 1 {
		t.Errorf("peak alpha = %v, want in (0.9, 1)", peak)
	}
}

func TestCompositorDrawMatchesPerPixel(t *testing.T) {
	u := testUniforms()
	u.Shape = ShapeLens
	// heights below and above the worker count
	for _, size := range []image.Point{{7, 1}, {33, 3}, {64, 57}} {
		for _, c := range []Compositor{{}, {Antialias: true}} {
			dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
			c.Draw(dst, u, nil)
			for y := 0; y < size.Y; y++ {
				for x := 0; x < size.X; x++ {
					want := toNRGBA(c.fragment(u, x, y, size.X, size.Y, nil))
					if got := dst.NRGBAAt(x, y); got != want {
						t.Fatalf("%v %+v: pixel (%d,%d) = %v, want %v", size, c, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestCompositorDrawEmpty(t *testing.T) {
	Compositor{}.Draw(image.NewNRGBA(image.Rect(0, 0, 0, 0)), testUniforms(), nil)
	DrawBackdrop(image.NewNRGBA(image.Rect(0, 0, 5, 0)), PatternGrid, nil)
}

func benchmarkDraw(b *testing.B, c Compositor) {
	dst := image.NewNRGBA(image.Rect(0, 0, 1280, 720))
	u := testUniforms()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.Time = float64(i) / 60
		c.Draw(dst, u, nil)
	}
}

func BenchmarkDraw1280x720(b *testing.B) {
	benchmarkDraw(b, Compositor{})
}

func BenchmarkDraw1280x720Antialias(b *testing.B) {
	benchmarkDraw(b, Compositor{Antialias: true})
}

func TestDrawBackdropOpaque(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	DrawBackdrop(dst, PatternStripes, nil)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if a := dst.NRGBAAt(x, y).A; a != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
			}
		}
	}
	// stripes are 2 pixels wide at this size
	if dst.NRGBAAt(0, 0).R != 0 || dst.NRGBAAt(1, 0).R != 255 {
		t.Errorf("unexpected stripe layout: %v %v", dst.NRGBAAt(0, 0), dst.NRGBAAt(1, 0))
	}
}
