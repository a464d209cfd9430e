package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goglass"
	"github.com/richinsley/goglass/encoder"
	"github.com/richinsley/goglass/glfwcontext"
	"github.com/richinsley/goglass/graphics"
	"github.com/richinsley/goglass/headless"
	"github.com/richinsley/goglass/inputs"
	"github.com/richinsley/goglass/options"
	"github.com/richinsley/goglass/params"
	"github.com/richinsley/goglass/renderer"
	"github.com/richinsley/goglass/shader"
)

func callbacks() renderer.Callbacks {
	return renderer.Callbacks{
		OnReady: func() { log.Println("Glass renderer ready") },
		OnError: func(err error) { log.Printf("Renderer error: %v", err) },
		OnShapeChange: func(s shader.Shape) {
			log.Printf("Shape: %s", s)
		},
		OnMaterialChange: func(m params.Material) {
			log.Printf("Material: %s (ior %.2f, dispersion %.3f)", m.Name, m.RefractionIndex, m.Dispersion)
		},
	}
}

// refresh redraws after a key press when the clock is not already drawing.
func refresh(r *renderer.Renderer) {
	if r.State() != renderer.Running {
		r.Render()
	}
}

func runWindow(opts *options.GlassOptions, cfg params.Config) {
	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(graphics.Options{
		Width:   *opts.Width,
		Height:  *opts.Height,
		Title:   "goglass",
		Visible: true,
	})
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.New(ctx, cfg, callbacks())
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Destroy()

	shapeKeys := []glfw.Key{glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5}
	for i, s := range shader.Shapes() {
		ctx.RegisterKeyCallback(shapeKeys[i], func() {
			r.SetShape(s)
			refresh(r)
		})
	}
	patternKeys := []glfw.Key{glfw.KeyQ, glfw.KeyW, glfw.KeyE, glfw.KeyR}
	for i, p := range shader.Patterns() {
		ctx.RegisterKeyCallback(patternKeys[i], func() {
			r.SetBackgroundPattern(p)
			refresh(r)
		})
	}
	ctx.RegisterKeyCallback(glfw.KeyM, func() {
		cfg := r.Config()
		if err := r.SetMaterialValues(params.NextMaterial(cfg.RefractionIndex, cfg.Dispersion)); err != nil {
			log.Printf("Material change failed: %v", err)
		}
		refresh(r)
	})
	ctx.RegisterKeyCallback(glfw.KeySpace, func() {
		if r.State() == renderer.Running {
			r.StopAnimation()
		} else {
			r.StartAnimation()
		}
	})

	log.Println("Starting interactive render loop...")
	ctx.Run()
	s := r.Stats()
	log.Printf("Rendered %d frames in %.1fs", s.Frames, s.Elapsed)
}

// offscreen builds a renderer on a headless surface and waits for the
// background texture, if any.
func offscreen(opts *options.GlassOptions, cfg params.Config) *renderer.Renderer {
	texture := cfg.BackgroundTexture
	cfg.BackgroundTexture = ""
	r, err := renderer.New(headless.New(*opts.Width, *opts.Height), cfg, callbacks())
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	if texture != "" {
		if err := <-r.SetBackgroundTexture(inputs.ParseSource(texture)); err != nil {
			log.Fatalf("Failed to load background texture: %v", err)
		}
	}
	return r
}

func runRecord(opts *options.GlassOptions, cfg params.Config) {
	r := offscreen(opts, cfg)
	defer r.Destroy()

	frames := int(*opts.Duration * float64(*opts.FPS))
	enc, err := encoder.New(encoder.Options{
		Width:      *opts.Width,
		Height:     *opts.Height,
		FPS:        *opts.FPS,
		Codec:      *opts.Codec,
		Bitrate:    *opts.Bitrate,
		OutputFile: opts.Output(),
		FFmpegPath: *opts.FFmpegPath,
	})
	if err != nil {
		log.Fatalf("Failed to start encoder: %v", err)
	}

	log.Printf("Recording %d frames...", frames)
	err = r.Record(frames, func(i int, img *image.RGBA) error {
		return enc.WriteFrame(img)
	})
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("Offscreen rendering failed: %v", err)
	}
	log.Printf("Successfully rendered to %s", opts.Output())
}

func runSnapshot(opts *options.GlassOptions, cfg params.Config) {
	r := offscreen(opts, cfg)
	defer r.Destroy()

	img, err := r.Composite()
	if err != nil {
		log.Fatalf("Failed to composite frame: %v", err)
	}
	f, err := os.Create(opts.Output())
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("Failed to encode PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Wrote %s", opts.Output())
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Printf("goglass %s: glass refraction viewer/recorder\n", goglass.Version)
		flag.PrintDefaults()
		fmt.Println("\nKeys: 1-5 shape, Q/W/E/R background, M next material, Space pause, Esc quit")
		return
	}

	level := slog.LevelInfo
	if *opts.Verbose {
		level = slog.LevelDebug
	}
	goglass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := opts.Config(flag.CommandLine)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	switch *opts.Mode {
	case "window":
		runWindow(opts, cfg)
	case "record":
		runRecord(opts, cfg)
	case "snapshot":
		runSnapshot(opts, cfg)
	default:
		log.Fatalf("Unknown mode %q", *opts.Mode)
	}
}
