package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	lensRatio   = 1.5
	lensFlatten = 0.3
	prismLobes  = 3
	// cameraDepth is the z the primary rays start from; the glass sits at z=0.
	cameraDepth = 1.0
)

// Ray is a primary ray cast from the screen into the glass.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// PrimaryRay returns the ray for a fragment: the camera is static and
// orthographic, so every ray points straight into the screen.
func PrimaryRay(uv mgl64.Vec2) Ray {
	return Ray{
		Origin:    uv.Vec3(cameraDepth),
		Direction: mgl64.Vec3{0, 0, -1},
	}
}

// Hit describes where a ray passes through the glass.
type Hit struct {
	Entry mgl64.Vec3 // normal where the ray enters, facing the viewer
	Exit  mgl64.Vec3 // normal where the ray leaves
	// Edge is the fragment's footprint distance from the centre divided by
	// the footprint extent, 0 at the centre and 1 on the boundary.
	Edge float64
}

type intersectFunc func(r Ray, center mgl64.Vec3, size float64) (Hit, bool)

var intersectors = [...]intersectFunc{
	ShapeSphere:   intersectSphere,
	ShapeCylinder: intersectCylinder,
	ShapeLens:     intersectLens,
	ShapePrism:    intersectPrism,
	ShapeFlat:     intersectFlat,
}

// Intersect tests r against the glass shape centred at center with the
// given size. When ripples is set both normals are perturbed by the animated
// surface noise. ok is false when the ray misses.
func Intersect(shape Shape, r Ray, center mgl64.Vec2, size, time float64, ripples bool) (hit Hit, ok bool) {
	if !shape.Valid() || !(size > 0) {
		return Hit{}, false
	}
	hit, ok = intersectors[shape](r, center.Vec3(0), size)
	if !ok {
		return Hit{}, false
	}
	if ripples {
		uv := r.Origin.Vec2()
		hit.Entry = perturb(hit.Entry, uv, time)
		hit.Exit = perturb(hit.Exit, uv, time)
	}
	return hit, true
}

func planarDistance(r Ray, center mgl64.Vec3) float64 {
	return r.Origin.Vec2().Sub(center.Vec2()).Len()
}

// solveSphere returns the near and far ray parameters of a ray/sphere
// intersection. The direction must be unit length.
func solveSphere(r Ray, center mgl64.Vec3, radius float64) (t1, t2 float64, ok bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	h := b*b - c
	if h < 0 {
		return 0, 0, false
	}
	h = math.Sqrt(h)
	return -b - h, -b + h, true
}

func pointAt(r Ray, t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

func intersectSphere(r Ray, center mgl64.Vec3, size float64) (Hit, bool) {
	t1, t2, ok := solveSphere(r, center, size)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Entry: pointAt(r, t1).Sub(center).Normalize(),
		Exit:  pointAt(r, t2).Sub(center).Normalize(),
		Edge:  planarDistance(r, center) / size,
	}, true
}

// intersectCylinder treats the glass as an infinite cylinder along the view
// axis. The primary ray has no (x, y) component, so the solve reduces to the
// disk test h = size² - |oc.xy|² and both normals point radially in the
// screen plane.
func intersectCylinder(r Ray, center mgl64.Vec3, size float64) (Hit, bool) {
	oc := r.Origin.Vec2().Sub(center.Vec2())
	if size*size-oc.Dot(oc) < 0 {
		return Hit{}, false
	}
	d := oc.Len()
	if d < 1e-12 {
		// the radial direction is undefined on the axis itself
		return Hit{Entry: ViewDir, Exit: ViewDir.Mul(-1)}, true
	}
	n := oc.Mul(1 / d).Vec3(0)
	return Hit{Entry: n, Exit: n, Edge: d / size}, true
}

// intersectLens uses a shallow sphere clipped to the lens aperture and
// compresses the normals' depth to flatten the bulge.
func intersectLens(r Ray, center mgl64.Vec3, size float64) (Hit, bool) {
	d := planarDistance(r, center)
	if d > size {
		return Hit{}, false
	}
	t1, t2, ok := solveSphere(r, center, size*lensRatio)
	if !ok {
		return Hit{}, false
	}
	flatten := func(n mgl64.Vec3) mgl64.Vec3 {
		n[2] *= lensFlatten
		return n.Normalize()
	}
	return Hit{
		Entry: flatten(pointAt(r, t1).Sub(center).Normalize()),
		Exit:  flatten(pointAt(r, t2).Sub(center).Normalize()),
		Edge:  d / size,
	}, true
}

// intersectPrism is a stylized triangular footprint: a radial mask with
// three lobes and normals derived from the polar angle, not from real faces.
func intersectPrism(r Ray, center mgl64.Vec3, size float64) (Hit, bool) {
	delta := r.Origin.Vec2().Sub(center.Vec2())
	d := delta.Len()
	angle := math.Atan2(delta[1], delta[0])
	limit := size * (0.3*math.Sin(prismLobes*angle) + 0.7)
	if d > limit {
		return Hit{}, false
	}
	cx, cy := math.Cos(angle), math.Sin(angle)
	return Hit{
		Entry: mgl64.Vec3{cx * 0.5, cy * 0.5, 1}.Normalize(),
		Exit:  mgl64.Vec3{cx * 0.5, cy * 0.5, -1}.Normalize(),
		Edge:  d / limit,
	}, true
}

func intersectFlat(r Ray, center mgl64.Vec3, size float64) (Hit, bool) {
	d := planarDistance(r, center)
	if d > size {
		return Hit{}, false
	}
	return Hit{
		Entry: mgl64.Vec3{0, 0, 1},
		Exit:  mgl64.Vec3{0, 0, -1},
		Edge:  d / size,
	}, true
}
