package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"time"
)

// LoadGIF decodes an animated GIF into one composed image per frame, plus
// the per-frame delays. Frames are composed over their predecessor, so
// partial-update GIFs come out whole. The screen plays animations at its own
// fixed rate; the delays are returned for reporting only.
func LoadGIF(path string) ([]image.Image, []time.Duration, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	acc := image.NewRGBA(bounds)

	frames := make([]image.Image, 0, len(g.Image))
	delays := make([]time.Duration, 0, len(g.Image))
	for i, src := range g.Image {
		draw.Draw(acc, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frame := image.NewRGBA(bounds)
		copy(frame.Pix, acc.Pix)
		frames = append(frames, frame)
		delays = append(delays, time.Duration(g.Delay[i])*10*time.Millisecond)
	}
	return frames, delays, nil
}
