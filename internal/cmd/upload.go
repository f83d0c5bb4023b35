package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/protocol"
)

// Upload sends a still image to the keyboard screen.
type Upload struct {
	Image  string `arg:"" help:"Path to the image file" type:"existingfile"`
	DryRun bool   `help:"Build and log the packet stream without touching the device" env:"EPOLED_DRY_RUN"`
	Debug  bool   `help:"Send the repeating test pattern instead of the image"`
}

// Run is called by kong when the upload command is executed.
func (u *Upload) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := protocol.FromPath(u.Image)
	if u.Debug {
		src = protocol.DebugPattern()
	}
	frame, err := protocol.Encode(src)
	if err != nil {
		return err
	}

	session, err := openSession(logger, rawLogger, u.DryRun)
	if err != nil {
		return err
	}
	defer session.Close()

	warnUnresponsive(logger)
	if err := session.SendStill(ctx, frame); err != nil {
		return err
	}
	logger.Info("image uploaded", "image", u.Image)
	return nil
}
