// Package cmd contains the kong command implementations.
package cmd

import (
	"errors"
	"log/slog"

	"github.com/epoled/epoled/epomaker"
	"github.com/epoled/epoled/hid"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/internal/util"
)

// openSession locates the screen command interface and opens a session on
// it. In dry-run mode no device is located or opened.
func openSession(logger *slog.Logger, raw log.RawLogger, dryRun bool) (*epomaker.Session, error) {
	backend := hid.Hidapi()
	var opts []epomaker.Option
	if dryRun {
		opts = append(opts, epomaker.WithDryRun())
	}
	session := epomaker.NewSession(backend, logger, raw, opts...)

	var path string
	if !dryRun {
		locator := epomaker.NewLocator(backend)
		p, err := locator.FindDevicePath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := session.Open(path); err != nil {
		if errors.Is(err, epomaker.ErrDeviceOpen) {
			logger.Error("could not open the keyboard; install the udev rule (epoled dev --udev) or run as root")
		}
		if errors.Is(err, epomaker.ErrCommunication) {
			logger.Error("the keyboard opened but is not responding; unplug it and plug it back in")
		}
		return nil, err
	}
	return session, nil
}

// warnUnresponsive tells interactive users the keyboard stops reporting keys
// while a transfer is in flight.
func warnUnresponsive(logger *slog.Logger) {
	if util.Interactive() {
		logger.Info("uploading; the keyboard will be unresponsive until the transfer completes")
	}
}
