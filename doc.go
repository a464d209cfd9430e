// Package goglass renders a real-time glass distortion effect over a
// background pattern or image.
//
// The per-pixel program lives in package shader: a shape intersector, an
// optical evaluator (Fresnel, Snell refraction, chromatic dispersion), a
// pattern generator and the frame compositor that combines them. Package
// renderer drives it once per display refresh against any graphics.Context,
// either the in-memory headless surface or a GLFW window.
//
//	ctx := headless.New(640, 480)
//	r, err := renderer.New(ctx, params.DefaultConfig(), renderer.Callbacks{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Destroy()
//	r.SetMousePosition(0.5, 0.5)
//	r.Render()
//
// By default nothing is logged. Call SetLogger to enable logging.
package goglass

// Version is the current version of the module.
const Version = "0.3.0"
