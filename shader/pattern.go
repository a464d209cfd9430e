package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	stripeWidth     = 0.1
	gridCell        = 0.05
	circleFrequency = 50.0
)

var patternCenter = mgl64.Vec2{0.5, 0.5}

// Texture is a resident background image sampled by the texture pattern.
// Samples are straight RGBA in [0, 1]; v=0 is the bottom edge.
type Texture interface {
	BilinearSample(u, v float64) mgl64.Vec4
}

type patternFunc func(uv mgl64.Vec2, tex Texture) mgl64.Vec3

var patterns = [...]patternFunc{
	PatternStripes: stripes,
	PatternGrid:    grid,
	PatternCircles: circles,
	PatternTexture: textured,
}

func gray(g float64) mgl64.Vec3 {
	return mgl64.Vec3{g, g, g}
}

func stripes(uv mgl64.Vec2, _ Texture) mgl64.Vec3 {
	return gray(step(0.5, fract(uv[0]/stripeWidth)))
}

func grid(uv mgl64.Vec2, _ Texture) mgl64.Vec3 {
	gx := step(0.5, fract(uv[0]/gridCell))
	gy := step(0.5, fract(uv[1]/gridCell))
	return gray(math.Max(gx, gy))
}

func circles(uv mgl64.Vec2, _ Texture) mgl64.Vec3 {
	d := uv.Sub(patternCenter).Len()
	return gray(0.5 + 0.5*math.Sin(circleFrequency*d))
}

func textured(uv mgl64.Vec2, tex Texture) mgl64.Vec3 {
	if tex == nil {
		return Gradient(uv)
	}
	return tex.BilinearSample(uv[0], uv[1]).Vec3()
}

// Gradient is the procedural ramp substituted when no texture is resident.
func Gradient(uv mgl64.Vec2) mgl64.Vec3 {
	u, v := fract(uv[0]), fract(uv[1])
	return mgl64.Vec3{u, v, 1 - u*0.5}
}

// SamplePattern returns the background colour at uv. tex is only consulted
// by PatternTexture and may be nil.
func SamplePattern(p Pattern, uv mgl64.Vec2, tex Texture) mgl64.Vec3 {
	if !p.Valid() {
		p = PatternStripes
	}
	return patterns[p](uv, tex)
}
