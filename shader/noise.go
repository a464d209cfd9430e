package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	noiseScale     = 20.0
	noiseSpeed     = 0.5
	rippleStrength = 0.05
	// fbmMean is the midpoint of the two-octave fbm range [0, 0.75].
	fbmMean = 0.375
)

func fract(x float64) float64 {
	return x - math.Floor(x)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

func hash(p mgl64.Vec2) float64 {
	return fract(math.Sin(p.Dot(mgl64.Vec2{127.1, 311.7})) * 43758.5453)
}

// valueNoise is smoothly interpolated lattice noise in [0, 1].
func valueNoise(p mgl64.Vec2) float64 {
	ix, iy := math.Floor(p[0]), math.Floor(p[1])
	fx, fy := p[0]-ix, p[1]-iy
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := hash(mgl64.Vec2{ix, iy})
	b := hash(mgl64.Vec2{ix + 1, iy})
	c := hash(mgl64.Vec2{ix, iy + 1})
	d := hash(mgl64.Vec2{ix + 1, iy + 1})
	return mix(mix(a, b, ux), mix(c, d, ux), uy)
}

func fbm(p mgl64.Vec2) float64 {
	return 0.5*valueNoise(p) + 0.25*valueNoise(p.Mul(2))
}

// perturb tilts n by the animated surface noise at uv and renormalizes it.
func perturb(n mgl64.Vec3, uv mgl64.Vec2, time float64) mgl64.Vec3 {
	drift := time * noiseSpeed
	p := uv.Mul(noiseScale).Add(mgl64.Vec2{drift, drift})
	dx := fbm(p) - fbmMean
	dy := fbm(p.Add(mgl64.Vec2{5.2, 1.3})) - fbmMean
	return n.Add(mgl64.Vec3{dx, dy, 0}.Mul(rippleStrength)).Normalize()
}
