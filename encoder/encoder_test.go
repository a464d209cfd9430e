package encoder

import (
	"image"
	"testing"
)

func TestOutputArgs(t *testing.T) {
	tests := []struct {
		opts  Options
		goos  string
		codec string
		tag   bool
	}{
		{Options{Codec: "h264", OutputFile: "a.mp4"}, "linux", "libx264", false},
		{Options{Codec: "hevc", OutputFile: "a.mp4"}, "linux", "libx265", true},
		{Options{Codec: "hevc", OutputFile: "a.mkv"}, "windows", "libx265", false},
		{Options{Codec: "h264", OutputFile: "a.mp4"}, "darwin", "h264_videotoolbox", false},
		{Options{Codec: "hevc", OutputFile: "A.MP4"}, "darwin", "hevc_videotoolbox", true},
	}
	for _, tt := range tests {
		args := outputArgs(tt.opts, tt.goos)
		if got := args["c:v"]; got != tt.codec {
			t.Errorf("%s/%s: c:v = %v, want %s", tt.goos, tt.opts.Codec, got, tt.codec)
		}
		if _, ok := args["tag:v"]; ok != tt.tag {
			t.Errorf("%s/%s %s: tag:v present = %v", tt.goos, tt.opts.Codec, tt.opts.OutputFile, ok)
		}
		if args["b:v"] != "8M" {
			t.Errorf("default bitrate = %v", args["b:v"])
		}
	}

	args := outputArgs(Options{Bitrate: "20M"}, "linux")
	if args["b:v"] != "20M" {
		t.Errorf("b:v = %v", args["b:v"])
	}
}

func TestInputArgs(t *testing.T) {
	args := inputArgs(Options{Width: 320, Height: 240, FPS: 30})
	if args["s"] != "320x240" || args["pix_fmt"] != "rgba" || args["f"] != "rawvideo" || args["r"] != 30 {
		t.Errorf("got %v", args)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	for _, opts := range []Options{
		{Width: 0, Height: 10, FPS: 30, OutputFile: "x.mp4"},
		{Width: 10, Height: 10, FPS: 0, OutputFile: "x.mp4"},
		{Width: 10, Height: 10, FPS: 30},
	} {
		if _, err := New(opts); err == nil {
			t.Errorf("New(%+v) succeeded", opts)
		}
	}
}

func TestWriteFrameChecksSize(t *testing.T) {
	e := &Encoder{opts: Options{Width: 4, Height: 4}}
	if err := e.WriteFrame(image.NewRGBA(image.Rect(0, 0, 2, 2))); err == nil {
		t.Error("expected size mismatch error")
	}
	e.closed = true
	if err := e.WriteFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Error("expected write after close error")
	}
}
