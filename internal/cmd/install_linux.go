//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

const (
	serviceName = "epoled.service"
	servicePath = "/etc/systemd/system/epoled.service"
)

func installDaemon(logger *slog.Logger, tempKey string) error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}

	unit := systemdUnitContent(exePath, tempKey)
	if err := os.WriteFile(servicePath, []byte(unit), 0o644); err != nil {
		return err
	}

	steps := [][]string{
		{"daemon-reload"},
		{"enable", serviceName},
		{"restart", serviceName},
	}
	for _, args := range steps {
		if err := runSystemctl(args...); err != nil {
			return err
		}
	}

	logger.Info("epoled systemd service installed", "path", servicePath, "exe", exePath)
	return nil
}

func uninstallDaemon(logger *slog.Logger) error {
	var errs []error

	if err := runSystemctl("stop", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := runSystemctl("disable", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := runSystemctl("daemon-reload"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("epoled systemd service removed", "path", servicePath)
	return nil
}

func systemdUnitContent(exePath, tempKey string) string {
	args := "daemon"
	if tempKey != "" {
		args += " " + tempKey
	}
	return fmt.Sprintf(`[Unit]
Description=Epomaker screen readout daemon
After=multi-user.target

[Service]
Type=simple
ExecStart=%q %s
Restart=on-failure

[Install]
WantedBy=multi-user.target
`, exePath, args)
}

func runSystemctl(args ...string) error {
	cmd := exec.Command("systemctl", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
