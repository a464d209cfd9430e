// Package options maps command line flags and JSON config files onto a
// params.Config.
package options

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/richinsley/goglass/params"
	"github.com/richinsley/goglass/shader"
)

type GlassOptions struct {
	Help       *bool
	Verbose    *bool
	Mode       *string // window, record or snapshot
	Duration   *float64
	FPS        *int
	Width      *int
	Height     *int
	OutputFile *string
	FFmpegPath *string
	Codec      *string
	Bitrate    *string
	ConfigFile *string

	// Glass options. Only flags set on the command line override the
	// config file.
	Shape       *string
	Pattern     *string
	Material    *string
	Texture     *string
	Size        *float64
	IOR         *float64
	Dispersion  *float64
	Thickness   *float64
	Speed       *float64
	PixelRatio  *float64
	Antialias   *bool
	Ripples     *bool
	NoAnimation *bool
	NoMouse     *bool
}

// RegisterFlags defines the goglass flags on fs.
func RegisterFlags(fs *flag.FlagSet) *GlassOptions {
	d := params.DefaultConfig()
	return &GlassOptions{
		Help:       fs.Bool("help", false, "Show help message"),
		Verbose:    fs.Bool("v", false, "Verbose logging"),
		Mode:       fs.String("mode", "window", "Output mode: window, record or snapshot"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		Width:      fs.Int("width", 1280, "Width of the output"),
		Height:     fs.Int("height", 720, "Height of the output"),
		OutputFile: fs.String("output", "", "Output file (default output.mp4 or output.png)"),
		FFmpegPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      fs.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		Bitrate:    fs.String("bitrate", "", "Video bitrate for recording, e.g. 8M"),
		ConfigFile: fs.String("config", "", "JSON config file"),

		Shape:       fs.String("shape", d.Shape.String(), "Glass shape: sphere, cylinder, lens, prism or flat"),
		Pattern:     fs.String("pattern", d.BackgroundPattern.String(), "Background: stripes, grid, circles or texture"),
		Material:    fs.String("material", "", "Material preset (overrides -ior and -dispersion)"),
		Texture:     fs.String("texture", "", "Background texture file or URL"),
		Size:        fs.Float64("size", d.Size, "Glass size in UV units"),
		IOR:         fs.Float64("ior", d.RefractionIndex, "Refraction index"),
		Dispersion:  fs.Float64("dispersion", d.Dispersion, "Chromatic dispersion"),
		Thickness:   fs.Float64("thickness", d.Thickness, "Glass thickness"),
		Speed:       fs.Float64("speed", d.Animation.Speed, "Animation speed"),
		PixelRatio:  fs.Float64("pixel-ratio", d.Performance.PixelRatio, "Drawing buffer pixel ratio"),
		Antialias:   fs.Bool("antialias", d.Performance.Antialias, "Supersample each pixel"),
		Ripples:     fs.Bool("ripples", d.Animation.SurfaceRipples, "Animate surface ripples"),
		NoAnimation: fs.Bool("no-animation", false, "Start with animation stopped"),
		NoMouse:     fs.Bool("no-mouse", false, "Ignore the pointer"),
	}
}

// LoadConfigFile reads a JSON config over the defaults. Absent fields keep
// their default values.
func LoadConfigFile(path string) (params.Config, error) {
	cfg := params.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", params.ErrInvalidConfiguration, path, err)
	}
	return cfg, nil
}

// Config builds the glass configuration: defaults, then the config file,
// then every flag explicitly set on fs.
func (o *GlassOptions) Config(fs *flag.FlagSet) (params.Config, error) {
	cfg := params.DefaultConfig()
	if o.ConfigFile != nil && *o.ConfigFile != "" {
		var err error
		if cfg, err = LoadConfigFile(*o.ConfigFile); err != nil {
			return cfg, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		err = o.apply(&cfg, f.Name)
	})
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.Clamped(), nil
}

func (o *GlassOptions) apply(cfg *params.Config, name string) error {
	switch name {
	case "shape":
		s, err := shader.ParseShape(*o.Shape)
		if err != nil {
			return fmt.Errorf("%w: %w", params.ErrInvalidConfiguration, err)
		}
		cfg.Shape = s
	case "pattern":
		p, err := shader.ParsePattern(*o.Pattern)
		if err != nil {
			return fmt.Errorf("%w: %w", params.ErrInvalidConfiguration, err)
		}
		cfg.BackgroundPattern = p
	case "material":
		m, err := params.MaterialByName(*o.Material)
		if err != nil {
			return err
		}
		cfg.RefractionIndex = m.RefractionIndex
		cfg.Dispersion = m.Dispersion
	case "texture":
		cfg.BackgroundTexture = *o.Texture
		if cfg.BackgroundTexture != "" {
			cfg.BackgroundPattern = shader.PatternTexture
		}
	case "size":
		cfg.Size = *o.Size
	case "ior":
		cfg.RefractionIndex = *o.IOR
	case "dispersion":
		cfg.Dispersion = *o.Dispersion
	case "thickness":
		cfg.Thickness = *o.Thickness
	case "speed":
		cfg.Animation.Speed = *o.Speed
	case "pixel-ratio":
		cfg.Performance.PixelRatio = *o.PixelRatio
	case "antialias":
		cfg.Performance.Antialias = *o.Antialias
	case "ripples":
		cfg.Animation.SurfaceRipples = *o.Ripples
	case "no-animation":
		cfg.Animation.Enabled = !*o.NoAnimation
	case "no-mouse":
		cfg.Mouse.Enabled = !*o.NoMouse
	}
	return nil
}

// Output returns the output file, defaulting per mode.
func (o *GlassOptions) Output() string {
	if *o.OutputFile != "" {
		return *o.OutputFile
	}
	if *o.Mode == "snapshot" {
		return "output.png"
	}
	return "output.mp4"
}
