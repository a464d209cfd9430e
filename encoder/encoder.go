// Package encoder streams RGBA frames into an ffmpeg process.
package encoder

import (
	"errors"
	"fmt"
	"image"
	"io"
	"runtime"
	"strings"

	"github.com/richinsley/goglass"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options configures an encoder.
type Options struct {
	Width      int
	Height     int
	FPS        int
	Codec      string // h264 or hevc
	Bitrate    string
	OutputFile string
	FFmpegPath string
}

// Encoder writes raw RGBA frames to ffmpeg's stdin. Frames must match
// the configured size.
type Encoder struct {
	opts   Options
	pipe   *io.PipeWriter
	errc   chan error
	frames int
	closed bool
}

func inputArgs(opts Options) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       opts.FPS,
	}
}

func outputArgs(opts Options, goos string) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{"pix_fmt": "yuv420p"}
	hevc := opts.Codec == "hevc"

	switch goos {
	case "darwin":
		if hevc {
			args["c:v"] = "hevc_videotoolbox"
		} else {
			args["c:v"] = "h264_videotoolbox"
		}
	default:
		if hevc {
			args["c:v"] = "libx265"
		} else {
			args["c:v"] = "libx264"
		}
	}

	if opts.Bitrate != "" {
		args["b:v"] = opts.Bitrate
	} else {
		args["b:v"] = "8M"
	}
	if hevc && strings.HasSuffix(strings.ToLower(opts.OutputFile), ".mp4") {
		args["tag:v"] = "hvc1"
	}
	return args
}

// New starts ffmpeg writing to opts.OutputFile.
func New(opts Options) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("encoder: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("encoder: invalid frame rate %d", opts.FPS)
	}
	if opts.OutputFile == "" {
		return nil, errors.New("encoder: no output file")
	}

	pipeReader, pipeWriter := io.Pipe()
	out := outputArgs(opts, runtime.GOOS)
	goglass.Logger().Info("starting ffmpeg", "output", opts.OutputFile, "codec", out["c:v"], "size", inputArgs(opts)["s"])

	cmd := ffmpeg.Input("pipe:", inputArgs(opts)).
		Output(opts.OutputFile, out).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
	}

	e := &Encoder{opts: opts, pipe: pipeWriter, errc: make(chan error, 1)}
	go func() {
		err := cmd.Run()
		// Unblock writers if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		e.errc <- err
	}()
	return e, nil
}

// WriteFrame writes one frame.
func (e *Encoder) WriteFrame(img *image.RGBA) error {
	if e.closed {
		return errors.New("encoder: write after close")
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != e.opts.Width || h != e.opts.Height {
		return fmt.Errorf("encoder: frame is %dx%d, want %dx%d", w, h, e.opts.Width, e.opts.Height)
	}
	if img.Stride == 4*w {
		if _, err := e.pipe.Write(img.Pix[:4*w*h]); err != nil {
			return fmt.Errorf("failed to write frame to ffmpeg: %w", err)
		}
	} else {
		for y := 0; y < h; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			if _, err := e.pipe.Write(row); err != nil {
				return fmt.Errorf("failed to write frame to ffmpeg: %w", err)
			}
		}
	}
	e.frames++
	return nil
}

// Frames returns the number of frames written.
func (e *Encoder) Frames() int {
	return e.frames
}

// Close finishes the stream and waits for ffmpeg to exit.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.pipe.Close()
	if err := <-e.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	goglass.Logger().Info("ffmpeg finished", "output", e.opts.OutputFile, "frames", e.frames)
	return nil
}
