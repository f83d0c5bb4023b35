//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errNoServiceSupport = errors.New("service installation is only supported on Linux")

func installDaemon(*slog.Logger, string) error { return errNoServiceSupport }

func uninstallDaemon(*slog.Logger) error { return errNoServiceSupport }
