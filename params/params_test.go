package params

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/goglass/shader"
)

func TestClampingMatchesBoundary(t *testing.T) {
	tests := []struct {
		name       string
		out, bound Mutation
		get        func(State) float64
	}{
		{"size", SetSize(-1), SetSize(0.01), func(s State) float64 { return s.Config.Size }},
		{"ior", SetRefractionIndex(10), SetRefractionIndex(3), func(s State) float64 { return s.Config.RefractionIndex }},
		{"dispersion", SetDispersion(1), SetDispersion(0.2), func(s State) float64 { return s.Config.Dispersion }},
		{"thickness", SetThickness(0), SetThickness(0.1), func(s State) float64 { return s.Config.Thickness }},
		{"speed", SetAnimationSpeed(-3), SetAnimationSpeed(0), func(s State) float64 { return s.Config.Animation.Speed }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewStore(DefaultConfig())
			a.Enqueue(tt.out)
			b := NewStore(DefaultConfig())
			b.Enqueue(tt.bound)
			if sa, sb := a.Commit(), b.Commit(); sa != sb {
				t.Errorf("clamped state %v differs from boundary state %v", tt.get(sa), tt.get(sb))
			}
		})
	}
}

func TestNaNKeepsPreviousValue(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.Enqueue(SetSize(0.5), SetSize(math.NaN()), SetPointer(math.NaN(), 0.25))
	st := s.Commit()
	if st.Config.Size != 0.5 {
		t.Errorf("Size = %v, want 0.5", st.Config.Size)
	}
	if st.Pointer != (mgl64.Vec2{0.5, 0.25}) {
		t.Errorf("Pointer = %v, want (0.5, 0.25)", st.Pointer)
	}
}

func TestSetMaterialExact(t *testing.T) {
	m, err := MaterialByName("diamond")
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(DefaultConfig())
	for i := 0; i < 3; i++ {
		s.Enqueue(SetMaterial(m))
		st := s.Commit()
		if st.Config.RefractionIndex != 2.42 || st.Config.Dispersion != 0.08 {
			t.Errorf("pass %d: material = %v/%v, want 2.42/0.08", i, st.Config.RefractionIndex, st.Config.Dispersion)
		}
	}
}

func TestMaterials(t *testing.T) {
	want := map[string]Material{
		"water":      {"water", 1.33, 0.01},
		"crownGlass": {"crownGlass", 1.52, 0.02},
		"flintGlass": {"flintGlass", 1.65, 0.05},
		"diamond":    {"diamond", 2.42, 0.08},
		"acrylic":    {"acrylic", 1.49, 0.015},
	}
	got := Materials()
	if len(got) != len(want) {
		t.Fatalf("len(Materials()) = %d, want %d", len(got), len(want))
	}
	for _, m := range got {
		if want[m.Name] != m {
			t.Errorf("preset %q = %+v, want %+v", m.Name, m, want[m.Name])
		}
	}
	got[0].RefractionIndex = 9
	if Materials()[0].RefractionIndex == 9 {
		t.Error("Materials exposes the preset table")
	}
	if _, err := MaterialByName("unobtainium"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("MaterialByName(unknown) error = %v, want ErrInvalidConfiguration", err)
	}
	if m, err := MaterialByName("CROWNGLASS"); err != nil || m.RefractionIndex != 1.52 {
		t.Errorf("MaterialByName is case sensitive: %v, %v", m, err)
	}
}

func TestNextMaterialCycles(t *testing.T) {
	m := NextMaterial(0, 0)
	seen := map[string]bool{}
	for i := 0; i < len(presets); i++ {
		seen[m.Name] = true
		m = NextMaterial(m.RefractionIndex, m.Dispersion)
	}
	if len(seen) != len(presets) {
		t.Errorf("visited %d presets, want %d", len(seen), len(presets))
	}
	if m.Name != "water" {
		t.Errorf("cycle ended on %q, want water", m.Name)
	}
}

func TestCommitOrderAndPeek(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.Enqueue(SetShape(shader.ShapeLens), SetShape(shader.ShapePrism))
	if s.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending())
	}
	if got := s.Peek().Config.Shape; got != shader.ShapePrism {
		t.Errorf("Peek shape = %v, want prism", got)
	}
	if s.Pending() != 2 {
		t.Error("Peek consumed the queue")
	}
	if got := s.Commit().Config.Shape; got != shader.ShapePrism {
		t.Errorf("Commit shape = %v, want prism", got)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending after Commit = %d", s.Pending())
	}
}

func TestSnapshotIsolated(t *testing.T) {
	s := NewStore(DefaultConfig())
	snap := s.Commit()
	s.Enqueue(SetSize(0.9))
	s.Commit()
	if snap.Config.Size != 0.2 {
		t.Errorf("earlier snapshot changed: size %v", snap.Config.Size)
	}
}

func TestPointer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mouse.CenterX, cfg.Mouse.CenterY = 0.3, 0.7
	s := NewStore(cfg)
	if p := s.Commit().Pointer; p != (mgl64.Vec2{0.3, 0.7}) {
		t.Errorf("initial pointer = %v", p)
	}
	s.Enqueue(SetPointer(2, -1))
	if p := s.Commit().Pointer; p != (mgl64.Vec2{1, 0}) {
		t.Errorf("clamped pointer = %v, want (1,0)", p)
	}
	s.Enqueue(ResetPointer())
	if p := s.Commit().Pointer; p != (mgl64.Vec2{0.3, 0.7}) {
		t.Errorf("reset pointer = %v", p)
	}
}

func TestViewport(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.Enqueue(SetViewport(640, 480), SetViewport(0, 100))
	st := s.Commit()
	if st.ViewportWidth != 640 || st.ViewportHeight != 480 {
		t.Errorf("viewport = %dx%d, want 640x480", st.ViewportWidth, st.ViewportHeight)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Shape = shader.Shape(12)
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Validate = %v, want ErrInvalidConfiguration", err)
	}
}

func TestConfigClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 4
	cfg.RefractionIndex = math.NaN()
	cfg.Performance.PixelRatio = 0
	c := cfg.Clamped()
	if c.Size != 1 || c.RefractionIndex != 1.5 || c.Performance.PixelRatio != 0.25 {
		t.Errorf("Clamped = size %v ior %v ratio %v", c.Size, c.RefractionIndex, c.Performance.PixelRatio)
	}
}

func TestConfigJSON(t *testing.T) {
	cfg := DefaultConfig()
	data := []byte(`{"shape":"cylinder","size":0.3,"backgroundPattern":"circles","animation":{"enabled":false,"speed":2,"surfaceRipples":true}}`)
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Shape != shader.ShapeCylinder || cfg.Size != 0.3 || cfg.BackgroundPattern != shader.PatternCircles {
		t.Errorf("decoded %+v", cfg)
	}
	if cfg.Animation.Enabled || cfg.Animation.Speed != 2 {
		t.Errorf("animation = %+v", cfg.Animation)
	}
	// untouched fields keep their defaults
	if cfg.RefractionIndex != 1.5 || !cfg.Mouse.Enabled {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestRange(t *testing.T) {
	if got := SizeRange.Clamp(math.Inf(1), 0.2); got != 1 {
		t.Errorf("Clamp(+Inf) = %v", got)
	}
	if !RefractionIndexRange.Contains(1) || RefractionIndexRange.Contains(3.01) {
		t.Error("Contains wrong at the bounds")
	}
}
