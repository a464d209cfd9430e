package params

import (
	"fmt"

	"github.com/richinsley/goglass/shader"
)

// MouseConfig controls how the pointer drives the glass centre.
type MouseConfig struct {
	Enabled      bool    `json:"enabled"`
	FollowCursor bool    `json:"followCursor"`
	CenterX      float64 `json:"centerX"`
	CenterY      float64 `json:"centerY"`
}

// AnimationConfig controls the frame clock.
type AnimationConfig struct {
	Enabled        bool    `json:"enabled"`
	Speed          float64 `json:"speed"`
	SurfaceRipples bool    `json:"surfaceRipples"`
}

// PerformanceConfig holds drawing quality options.
type PerformanceConfig struct {
	PixelRatio            float64 `json:"pixelRatio"`
	Antialias             bool    `json:"antialias"`
	PreserveDrawingBuffer bool    `json:"preserveDrawingBuffer"`
	PremultipliedAlpha    bool    `json:"premultipliedAlpha"`
}

// Config is the complete set of glass options.
type Config struct {
	Shape             shader.Shape   `json:"shape"`
	Size              float64        `json:"size"`
	RefractionIndex   float64        `json:"refractionIndex"`
	Dispersion        float64        `json:"dispersion"`
	Thickness         float64        `json:"thickness"`
	BackgroundPattern shader.Pattern `json:"backgroundPattern"`

	// BackgroundTexture is a file path or URL loaded at construction.
	BackgroundTexture string `json:"backgroundTexture,omitempty"`

	Mouse       MouseConfig       `json:"mouse"`
	Animation   AnimationConfig   `json:"animation"`
	Performance PerformanceConfig `json:"performance"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Shape:             shader.ShapeSphere,
		Size:              0.2,
		RefractionIndex:   1.5,
		Dispersion:        0.03,
		Thickness:         1.0,
		BackgroundPattern: shader.PatternStripes,
		Mouse: MouseConfig{
			Enabled:      true,
			FollowCursor: true,
			CenterX:      0.5,
			CenterY:      0.5,
		},
		Animation: AnimationConfig{
			Enabled:        true,
			Speed:          1.0,
			SurfaceRipples: true,
		},
		Performance: PerformanceConfig{
			PixelRatio: 1,
		},
	}
}

// Validate reports structurally invalid values.
func (c Config) Validate() error {
	if !c.Shape.Valid() {
		return fmt.Errorf("%w: shape %v", ErrInvalidConfiguration, c.Shape)
	}
	if !c.BackgroundPattern.Valid() {
		return fmt.Errorf("%w: pattern %v", ErrInvalidConfiguration, c.BackgroundPattern)
	}
	return nil
}

// Clamped returns c with every numeric field limited to its range. NaN
// fields take the default value.
func (c Config) Clamped() Config {
	d := DefaultConfig()
	c.Size = SizeRange.Clamp(c.Size, d.Size)
	c.RefractionIndex = RefractionIndexRange.Clamp(c.RefractionIndex, d.RefractionIndex)
	c.Dispersion = DispersionRange.Clamp(c.Dispersion, d.Dispersion)
	c.Thickness = ThicknessRange.Clamp(c.Thickness, d.Thickness)
	c.Mouse.CenterX = PointerRange.Clamp(c.Mouse.CenterX, d.Mouse.CenterX)
	c.Mouse.CenterY = PointerRange.Clamp(c.Mouse.CenterY, d.Mouse.CenterY)
	c.Animation.Speed = SpeedRange.Clamp(c.Animation.Speed, d.Animation.Speed)
	c.Performance.PixelRatio = PixelRatioRange.Clamp(c.Performance.PixelRatio, d.Performance.PixelRatio)
	return c
}

// Material returns the current refraction index and dispersion.
func (c Config) Material() Material {
	return Material{RefractionIndex: c.RefractionIndex, Dispersion: c.Dispersion}
}
