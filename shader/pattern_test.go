package shader

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type solidTexture mgl64.Vec4

func (s solidTexture) BilinearSample(u, v float64) mgl64.Vec4 { return mgl64.Vec4(s) }

func TestSamplePattern(t *testing.T) {
	tex := solidTexture{0.2, 0.4, 0.6, 1}
	tests := []struct {
		name    string
		pattern Pattern
		uv      mgl64.Vec2
		tex     Texture
		want    mgl64.Vec3
	}{
		{"stripe off", PatternStripes, mgl64.Vec2{0.02, 0.5}, nil, mgl64.Vec3{0, 0, 0}},
		{"stripe on", PatternStripes, mgl64.Vec2{0.07, 0.5}, nil, mgl64.Vec3{1, 1, 1}},
		{"grid off", PatternGrid, mgl64.Vec2{0.01, 0.01}, nil, mgl64.Vec3{0, 0, 0}},
		{"grid row", PatternGrid, mgl64.Vec2{0.01, 0.03}, nil, mgl64.Vec3{1, 1, 1}},
		{"grid column", PatternGrid, mgl64.Vec2{0.03, 0.01}, nil, mgl64.Vec3{1, 1, 1}},
		{"circles centre", PatternCircles, mgl64.Vec2{0.5, 0.5}, nil, mgl64.Vec3{0.5, 0.5, 0.5}},
		{"texture", PatternTexture, mgl64.Vec2{0.3, 0.3}, tex, mgl64.Vec3{0.2, 0.4, 0.6}},
		{"texture fallback", PatternTexture, mgl64.Vec2{0.5, 0.25}, nil, mgl64.Vec3{0.5, 0.25, 0.75}},
		{"unknown pattern", Pattern(9), mgl64.Vec2{0.07, 0.5}, nil, mgl64.Vec3{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SamplePattern(tt.pattern, tt.uv, tt.tex)
			if !got.ApproxEqualThreshold(tt.want, 1e-12) {
				t.Errorf("SamplePattern(%v, %v) = %v, want %v", tt.pattern, tt.uv, got, tt.want)
			}
		})
	}
}

func TestSamplePatternIgnoresTextureForProcedural(t *testing.T) {
	uv := mgl64.Vec2{0.37, 0.61}
	tex := solidTexture{1, 0, 0, 1}
	for _, p := range []Pattern{PatternStripes, PatternGrid, PatternCircles} {
		if a, b := SamplePattern(p, uv, nil), SamplePattern(p, uv, tex); a != b {
			t.Errorf("%v: texture changed the result: %v vs %v", p, a, b)
		}
	}
}

func TestGradientWraps(t *testing.T) {
	if a, b := Gradient(mgl64.Vec2{0.25, 0.75}), Gradient(mgl64.Vec2{1.25, -0.25}); !a.ApproxEqualThreshold(b, 1e-12) {
		t.Errorf("Gradient not periodic: %v vs %v", a, b)
	}
}
