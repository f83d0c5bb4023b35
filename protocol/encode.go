package protocol

import (
	"fmt"
	"image"
	"os"

	// Decoders for the formats the vendor software accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Source selects the input for Encode: a file path, an in-memory image, or
// the debug test pattern.
type Source struct {
	path  string
	img   image.Image
	debug bool
}

// FromPath encodes the image file at path.
func FromPath(path string) Source { return Source{path: path} }

// FromImage encodes an in-memory image.
func FromImage(img image.Image) Source { return Source{img: img} }

// DebugPattern encodes a repeating 3-byte test pattern of the full frame
// length, used for exercising the protocol without a real image.
func DebugPattern() Source { return Source{debug: true} }

// Encode converts a source into the flat byte sequence the screen expects.
func Encode(src Source) (Frame, error) {
	switch {
	case src.debug:
		f := make(Frame, 0, FrameSize)
		for range PixelCount {
			f = append(f, 0x7e, 0x73, 0x21)
		}
		return f, nil

	case src.img != nil:
		return EncodeImage(src.img), nil

	case src.path != "":
		r, err := os.Open(src.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		defer r.Close()
		img, _, err := image.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return EncodeImage(img), nil

	default:
		return nil, ErrInvalidInput
	}
}

// EncodeImage resizes img to the screen dimensions if needed and packs it:
// pixels are visited column by column, top to bottom, three bytes (R, G, B)
// each, full 0-255 intensity, no compression.
func EncodeImage(img image.Image) Frame {
	b := img.Bounds()
	if b.Dx() != ScreenCols || b.Dy() != ScreenRows {
		dst := image.NewRGBA(image.Rect(0, 0, ScreenCols, ScreenRows))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
		b = dst.Bounds()
	}

	f := make(Frame, 0, FrameSize)
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			f = append(f, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return f
}
