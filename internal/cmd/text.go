package cmd

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/epoled/epoled/canvas"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/protocol"
)

// Text renders a line of text and uploads it as a still image.
type Text struct {
	Text   string `arg:"" help:"Text to display"`
	Color  string `help:"Text color as R,G,B" default:"0,0,255"`
	Align  string `help:"Text alignment" enum:"left,center,right" default:"center"`
	DryRun bool   `help:"Build and log the packet stream without touching the device" env:"EPOLED_DRY_RUN"`
}

// Run is called by kong when the text command is executed.
func (t *Text) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	col, err := parseColor(t.Color)
	if err != nil {
		return err
	}
	align, err := canvas.ParseAlign(t.Align)
	if err != nil {
		return err
	}

	img := canvas.DrawText([]canvas.Segment{{Text: t.Text, Color: col}}, align)
	frame := protocol.EncodeImage(img)

	session, err := openSession(logger, rawLogger, t.DryRun)
	if err != nil {
		return err
	}
	defer session.Close()

	warnUnresponsive(logger)
	if err := session.SendStill(ctx, frame); err != nil {
		return err
	}
	logger.Info("text uploaded", "text", t.Text)
	return nil
}

// parseColor parses "R,G,B" with each channel in 0-255.
func parseColor(s string) (color.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("color must be R,G,B, got %q", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("color channel %q must be an integer in 0-255", p)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}
