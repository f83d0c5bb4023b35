// Package canvas produces 60x9 bitmaps for the keyboard screen: rendered
// text and decoded animation frames. It only builds images; the protocol
// package turns them into wire bytes.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"

	"github.com/epoled/epoled/protocol"
)

// Segment is a run of text in one color.
type Segment struct {
	Text  string
	Color color.Color
}

// Align positions rendered text on the canvas.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign maps an alignment name to an Align.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return 0, fmt.Errorf("alignment must be left, center or right, got %q", s)
	}
}

// New returns a black canvas of the screen dimensions.
func New() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, protocol.ScreenCols, protocol.ScreenRows))
}

// DrawText renders the segments side by side on a fresh canvas.
//
// The smallest bundled face is taller than the screen's nine rows, so text
// is rendered at face height and scaled down to fit.
func DrawText(segments []Segment, align Align) *image.RGBA {
	face := basicfont.Face7x13

	total := 0
	for _, seg := range segments {
		total += font.MeasureString(face, seg.Text).Ceil()
	}

	// Render at face height, scaled to the screen width so the downscale
	// only squeezes vertically.
	tall := image.NewRGBA(image.Rect(0, 0, protocol.ScreenCols, face.Height))

	x := 0
	switch align {
	case AlignCenter:
		x = (protocol.ScreenCols - total) / 2
	case AlignRight:
		x = protocol.ScreenCols - total
	}

	d := font.Drawer{
		Dst:  tall,
		Face: face,
		Dot:  fixed.P(x, face.Ascent),
	}
	for _, seg := range segments {
		d.Src = image.NewUniform(seg.Color)
		d.DrawString(seg.Text)
	}

	out := New()
	xdraw.BiLinear.Scale(out, out.Bounds(), tall, tall.Bounds(), xdraw.Src, nil)
	return out
}

