package shader

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIntersectMissesOutsideFootprint(t *testing.T) {
	centers := []mgl64.Vec2{{0.5, 0.5}, {0.1, 0.9}, {0.3, 0.2}}
	sizes := []float64{0.01, 0.2, 0.5}
	for _, shape := range Shapes() {
		for _, c := range centers {
			for _, size := range sizes {
				for i := 0; i < 16; i++ {
					angle := float64(i) * math.Pi / 8
					d := size * 1.01
					uv := c.Add(mgl64.Vec2{math.Cos(angle) * d, math.Sin(angle) * d})
					for _, ripples := range []bool{false, true} {
						if _, ok := Intersect(shape, PrimaryRay(uv), c, size, 1.25, ripples); ok {
							t.Errorf("%v: hit at distance %v > size %v (center %v)", shape, d, size, c)
						}
					}
				}
			}
		}
	}
}

func TestIntersectCentreFacesViewer(t *testing.T) {
	c := mgl64.Vec2{0.4, 0.6}
	for _, shape := range Shapes() {
		hit, ok := Intersect(shape, PrimaryRay(c), c, 0.2, 0, false)
		if !ok {
			t.Errorf("%v: centre ray missed", shape)
			continue
		}
		if shape == ShapePrism {
			// prism normals are tilted by the polar angle even at the centre
			continue
		}
		if !hit.Entry.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9) {
			t.Errorf("%v: entry normal = %v, want (0,0,1)", shape, hit.Entry)
		}
		if !hit.Exit.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
			t.Errorf("%v: exit normal = %v, want (0,0,-1)", shape, hit.Exit)
		}
		if hit.Edge != 0 {
			t.Errorf("%v: edge = %v, want 0", shape, hit.Edge)
		}
	}
}

func TestIntersectNormalsAreUnit(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	for _, shape := range Shapes() {
		for _, uv := range []mgl64.Vec2{{0.55, 0.5}, {0.5, 0.62}, {0.43, 0.41}} {
			hit, ok := Intersect(shape, PrimaryRay(uv), c, 0.2, 3.5, true)
			if !ok {
				continue
			}
			for _, n := range []mgl64.Vec3{hit.Entry, hit.Exit} {
				if l := n.Len(); math.Abs(l-1) > 1e-9 {
					t.Errorf("%v at %v: |normal| = %v, want 1", shape, uv, l)
				}
			}
			if hit.Edge < 0 || hit.Edge > 1 {
				t.Errorf("%v at %v: edge = %v, want [0,1]", shape, uv, hit.Edge)
			}
		}
	}
}

func TestIntersectSphereNormal(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	hit, ok := Intersect(ShapeSphere, PrimaryRay(mgl64.Vec2{0.6, 0.5}), c, 0.2, 0, false)
	if !ok {
		t.Fatal("missed")
	}
	// the entry point is (0.1, 0, sqrt(0.03)) relative to the centre
	want := mgl64.Vec3{0.1, 0, math.Sqrt(0.03)}.Normalize()
	if !hit.Entry.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("entry = %v, want %v", hit.Entry, want)
	}
	if math.Abs(hit.Edge-0.5) > 1e-9 {
		t.Errorf("edge = %v, want 0.5", hit.Edge)
	}
}

func TestIntersectCylinderDiskFootprint(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	tests := []struct {
		uv  mgl64.Vec2
		hit bool
	}{
		{mgl64.Vec2{0.5, 0.5}, true},
		{mgl64.Vec2{0.6, 0.5}, true},
		{mgl64.Vec2{0.5, 0.31}, true},
		{mgl64.Vec2{0.5, 0.05}, false},
		{mgl64.Vec2{0.65, 0.65}, false},
		{mgl64.Vec2{0.71, 0.5}, false},
	}
	for _, tt := range tests {
		if _, ok := Intersect(ShapeCylinder, PrimaryRay(tt.uv), c, 0.2, 0, false); ok != tt.hit {
			t.Errorf("uv %v: hit = %v, want %v", tt.uv, ok, tt.hit)
		}
	}
}

func TestIntersectCylinderRadialNormals(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	hit, ok := Intersect(ShapeCylinder, PrimaryRay(mgl64.Vec2{0.5, 0.4}), c, 0.2, 0, false)
	if !ok {
		t.Fatal("missed")
	}
	want := mgl64.Vec3{0, -1, 0}
	if !hit.Entry.ApproxEqualThreshold(want, 1e-9) || !hit.Exit.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("normals = %v, %v, want %v", hit.Entry, hit.Exit, want)
	}
	if math.Abs(hit.Edge-0.5) > 1e-9 {
		t.Errorf("edge = %v, want 0.5", hit.Edge)
	}

	axis, ok := Intersect(ShapeCylinder, PrimaryRay(c), c, 0.2, 0, false)
	if !ok || axis.Entry != ViewDir || axis.Edge != 0 {
		t.Errorf("on axis: ok %v, hit %+v", ok, axis)
	}
}

func TestIntersectLensFlattensNormals(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	uv := mgl64.Vec2{0.6, 0.5}
	lens, ok := Intersect(ShapeLens, PrimaryRay(uv), c, 0.2, 0, false)
	if !ok {
		t.Fatal("missed")
	}
	sphere, _ := Intersect(ShapeSphere, PrimaryRay(uv), c, 0.2*lensRatio, 0, false)
	if lens.Entry[2] >= sphere.Entry[2] {
		t.Errorf("lens normal z = %v, want flatter than %v", lens.Entry[2], sphere.Entry[2])
	}
}

func TestIntersectInvalid(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	if _, ok := Intersect(Shape(42), PrimaryRay(c), c, 0.2, 0, false); ok {
		t.Error("unknown shape reported a hit")
	}
	if _, ok := Intersect(ShapeSphere, PrimaryRay(c), c, 0, 0, false); ok {
		t.Error("zero size reported a hit")
	}
}

func TestRipplesDeterministic(t *testing.T) {
	c := mgl64.Vec2{0.5, 0.5}
	uv := mgl64.Vec2{0.52, 0.47}
	a, _ := Intersect(ShapeSphere, PrimaryRay(uv), c, 0.2, 2.0, true)
	b, _ := Intersect(ShapeSphere, PrimaryRay(uv), c, 0.2, 2.0, true)
	if a != b {
		t.Errorf("same inputs gave %v and %v", a, b)
	}
	flat, _ := Intersect(ShapeSphere, PrimaryRay(uv), c, 0.2, 2.0, false)
	if a.Entry == flat.Entry {
		t.Error("ripples did not perturb the normal")
	}
}
