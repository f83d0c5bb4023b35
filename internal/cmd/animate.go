package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epoled/epoled/canvas"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/protocol"
)

// Animate uploads an animated GIF for looped playback on the screen.
type Animate struct {
	GIF    string `arg:"" help:"Animated GIF to upload" type:"existingfile"`
	DryRun bool   `help:"Build and log the packet stream without touching the device" env:"EPOLED_DRY_RUN"`
}

// Run is called by kong when the animate command is executed.
func (a *Animate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	images, delays, err := canvas.LoadGIF(a.GIF)
	if err != nil {
		return err
	}

	frames := make([]protocol.Frame, 0, len(images))
	for _, img := range images {
		frames = append(frames, protocol.EncodeImage(img))
	}

	var total time.Duration
	for _, d := range delays {
		total += d
	}
	// The screen plays animations at its own rate; the file's timing is
	// informational only.
	logger.Info("decoded animation", "frames", len(frames), "sourceDuration", total)

	session, err := openSession(logger, rawLogger, a.DryRun)
	if err != nil {
		return err
	}
	defer session.Close()

	warnUnresponsive(logger)
	if err := session.SendAnimation(ctx, frames); err != nil {
		return err
	}
	logger.Info("animation uploaded", "gif", a.GIF)
	return nil
}
