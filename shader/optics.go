package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const airIndex = 1.0

// ViewDir is the fixed direction from the surface towards the viewer.
var ViewDir = mgl64.Vec3{0, 0, 1}

// Channel indexes the per-channel refraction results.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Fresnel returns Schlick's approximation of the reflectance at an interface
// between media n1 and n2 for the given incidence cosine.
func Fresnel(cosTheta, n1, n2 float64) float64 {
	r0 := (n1 - n2) / (n1 + n2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-math.Abs(cosTheta), 5)
}

// Reflect mirrors the incident direction i about the normal n.
func Reflect(i, n mgl64.Vec3) mgl64.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// Refract bends i through a surface with normal n and relative index eta.
// On total internal reflection it returns the mirror direction and false.
func Refract(i, n mgl64.Vec3, eta float64) (mgl64.Vec3, bool) {
	cosI := -n.Dot(i)
	sinT2 := eta * eta * (1 - cosI*cosI)
	if sinT2 >= 1 {
		return Reflect(i, n), false
	}
	cosT := math.Sqrt(1 - sinT2)
	return i.Mul(eta).Add(n.Mul(eta*cosI - cosT)), true
}

// Optics is the result of evaluating a surface normal for one fragment.
type Optics struct {
	Reflectance float64
	// Offsets are the x/y parts of the refracted direction per channel.
	Offsets [3]mgl64.Vec2
}

// Etas returns the relative indices used for the red, green and blue
// channels. The ray is traced back from the eye, hence the inversion.
func Etas(ior, dispersion float64) [3]float64 {
	return [3]float64{
		1 / (ior - dispersion),
		1 / ior,
		1 / (ior + dispersion),
	}
}

// Evaluate computes the Fresnel term and the three dispersed refraction
// directions for normal.
func Evaluate(normal mgl64.Vec3, ior, dispersion float64) Optics {
	cosTheta := math.Abs(ViewDir.Dot(normal))
	o := Optics{Reflectance: Fresnel(cosTheta, airIndex, ior)}
	incident := ViewDir.Mul(-1)
	for c, eta := range Etas(ior, dispersion) {
		dir, _ := Refract(incident, normal, eta)
		o.Offsets[c] = dir.Vec2()
	}
	return o
}
