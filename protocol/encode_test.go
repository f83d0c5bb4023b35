package protocol_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/epoled/epoled/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, protocol.ScreenCols, protocol.ScreenRows))
	for x := 0; x < protocol.ScreenCols; x++ {
		for y := 0; y < protocol.ScreenRows; y++ {
			img.Set(x, y, color.RGBA{R: byte(x * 4), G: byte(y * 28), B: byte(x + y), A: 0xff})
		}
	}

	frame := protocol.EncodeImage(img)
	require.Len(t, []byte(frame), protocol.FrameSize)

	// Column-major: pixel (x, y) lands at (x*rows + y) * 3.
	for x := 0; x < protocol.ScreenCols; x++ {
		for y := 0; y < protocol.ScreenRows; y++ {
			off := (x*protocol.ScreenRows + y) * 3
			assert.Equal(t, byte(x*4), frame[off], "red at (%d,%d)", x, y)
			assert.Equal(t, byte(y*28), frame[off+1], "green at (%d,%d)", x, y)
			assert.Equal(t, byte(x+y), frame[off+2], "blue at (%d,%d)", x, y)
		}
	}
}

func TestEncodeImageResizes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	frame := protocol.EncodeImage(img)
	assert.Len(t, []byte(frame), protocol.FrameSize)
}

func TestEncodeDebugPattern(t *testing.T) {
	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)
	require.Len(t, []byte(frame), protocol.FrameSize)
	for i := 0; i < len(frame); i += 3 {
		assert.Equal(t, byte(0x7e), frame[i])
		assert.Equal(t, byte(0x73), frame[i+1])
		assert.Equal(t, byte(0x21), frame[i+2])
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := protocol.Encode(protocol.Source{})
	assert.ErrorIs(t, err, protocol.ErrInvalidInput)

	_, err = protocol.Encode(protocol.FromPath(filepath.Join(t.TempDir(), "missing.png")))
	assert.ErrorIs(t, err, protocol.ErrInvalidInput)

	notAnImage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(notAnImage, []byte("not an image"), 0o644))
	_, err = protocol.Encode(protocol.FromPath(notAnImage))
	assert.ErrorIs(t, err, protocol.ErrUnsupportedFormat)
}
