package inputs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/richinsley/goglass"
)

// MaxTextureSize is the largest edge kept for a background texture; larger
// images are scaled down preserving aspect ratio.
const MaxTextureSize = 2048

// ErrTextureLoadFailed wraps every failure to fetch or decode a texture.
var ErrTextureLoadFailed = errors.New("texture load failed")

// Source describes where a background texture comes from. Exactly one
// field is expected to be set.
type Source struct {
	Image image.Image
	Path  string
	URL   string
	Data  []byte
}

func FromImage(img image.Image) Source { return Source{Image: img} }
func FromFile(path string) Source      { return Source{Path: path} }
func FromURL(url string) Source        { return Source{URL: url} }
func FromBytes(data []byte) Source     { return Source{Data: data} }

// ParseSource treats http and https references as URLs and anything else
// as a file path.
func ParseSource(ref string) Source {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return FromURL(ref)
	}
	return FromFile(ref)
}

func (s Source) String() string {
	switch {
	case s.Image != nil:
		b := s.Image.Bounds()
		return fmt.Sprintf("image %dx%d", b.Dx(), b.Dy())
	case s.Path != "":
		return s.Path
	case s.URL != "":
		return s.URL
	case s.Data != nil:
		return fmt.Sprintf("%d bytes", len(s.Data))
	}
	return "empty source"
}

func (s Source) decode(ctx context.Context) (image.Image, error) {
	switch {
	case s.Image != nil:
		return s.Image, nil
	case s.Path != "":
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, err
		}
		return decodeBytes(data)
	case s.URL != "":
		data, err := fetch(ctx, s.URL)
		if err != nil {
			return nil, err
		}
		return decodeBytes(data)
	case s.Data != nil:
		return decodeBytes(s.Data)
	}
	return nil, errors.New("empty source")
}

func decodeBytes(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	goglass.Logger().Debug("decoded texture", "format", format, "bounds", img.Bounds())
	return img, nil
}

// Load fetches and decodes src into a texture.
func Load(ctx context.Context, src Source) (*ImageTexture, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureLoadFailed, src, err)
	}
	img, err := src.decode(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureLoadFailed, src, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %s: empty image", ErrTextureLoadFailed, src)
	}
	if b.Dx() > MaxTextureSize || b.Dy() > MaxTextureSize {
		img = resize.Thumbnail(MaxTextureSize, MaxTextureSize, img, resize.Lanczos3)
		goglass.Logger().Info("downscaled texture", "source", src.String(), "from", b.Size(), "to", img.Bounds().Size())
	}
	return NewImageTexture(img), nil
}
