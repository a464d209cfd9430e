package params

import "math"

// Range is an inclusive bound for a numeric parameter.
type Range struct {
	Min, Max float64
}

var (
	SizeRange            = Range{0.01, 1}
	RefractionIndexRange = Range{1, 3}
	DispersionRange      = Range{0, 0.2}
	ThicknessRange       = Range{0.1, 2}
	SpeedRange           = Range{0, 5}
	PointerRange         = Range{0, 1}
	PixelRatioRange      = Range{0.25, 4}
)

// Clamp limits v to r. NaN yields fallback.
func (r Range) Clamp(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Contains reports whether v lies within r.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
