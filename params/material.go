package params

import (
	"fmt"
	"strings"
)

// Material is a refraction index and dispersion pair.
type Material struct {
	Name            string  `json:"name,omitempty"`
	RefractionIndex float64 `json:"refractionIndex"`
	Dispersion      float64 `json:"dispersion"`
}

var presets = []Material{
	{"water", 1.33, 0.01},
	{"crownGlass", 1.52, 0.02},
	{"flintGlass", 1.65, 0.05},
	{"diamond", 2.42, 0.08},
	{"acrylic", 1.49, 0.015},
}

// Materials returns a copy of the preset list.
func Materials() []Material {
	out := make([]Material, len(presets))
	copy(out, presets)
	return out
}

// MaterialByName looks up a preset, ignoring case.
func MaterialByName(name string) (Material, error) {
	for _, m := range presets {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: unknown material %q", ErrInvalidConfiguration, name)
}

// NextMaterial returns the preset after the one matching ior and dispersion,
// or the first preset when none matches.
func NextMaterial(ior, dispersion float64) Material {
	for i, m := range presets {
		if m.RefractionIndex == ior && m.Dispersion == dispersion {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}
