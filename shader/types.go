package shader

import (
	"fmt"
	"strings"
)

// Shape selects the glass geometry.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeCylinder
	ShapeLens
	ShapePrism
	ShapeFlat
)

var shapeNames = [...]string{
	ShapeSphere:   "sphere",
	ShapeCylinder: "cylinder",
	ShapeLens:     "lens",
	ShapePrism:    "prism",
	ShapeFlat:     "flat",
}

// Shapes returns every shape in selector order.
func Shapes() []Shape {
	return []Shape{ShapeSphere, ShapeCylinder, ShapeLens, ShapePrism, ShapeFlat}
}

// Valid reports whether s names a known shape.
func (s Shape) Valid() bool {
	return s >= ShapeSphere && s <= ShapeFlat
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape returns the shape with the given name, ignoring case.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid shape %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Pattern selects the background the glass refracts.
type Pattern int

const (
	PatternStripes Pattern = iota
	PatternGrid
	PatternCircles
	// PatternTexture samples the resident background texture, or the
	// fallback gradient when none is loaded.
	PatternTexture
)

var patternNames = [...]string{
	PatternStripes: "stripes",
	PatternGrid:    "grid",
	PatternCircles: "circles",
	PatternTexture: "texture",
}

// Patterns returns every pattern in selector order.
func Patterns() []Pattern {
	return []Pattern{PatternStripes, PatternGrid, PatternCircles, PatternTexture}
}

// Valid reports whether p names a known pattern.
func (p Pattern) Valid() bool {
	return p >= PatternStripes && p <= PatternTexture
}

func (p Pattern) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern returns the pattern with the given name. "image" is accepted
// as an alias of "texture".
func ParsePattern(name string) (Pattern, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "image" {
		return PatternTexture, nil
	}
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid pattern %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
