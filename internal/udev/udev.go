// Package udev generates and installs the device permission rule that lets
// epoled open the keyboard without root.
package udev

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/epoled/epoled/protocol"
)

const rulePath = "/etc/udev/rules.d/99-epomaker-screen.rules"

// Rule returns the udev rule text for the given product id. Both the usb
// and hidraw subsystems are covered; hidapi opens the hidraw node.
func Rule(productID uint16) string {
	return fmt.Sprintf(`# Epomaker keyboard screen
SUBSYSTEM=="usb", ATTRS{idVendor}=="%04x", ATTRS{idProduct}=="%04x", MODE="0666", GROUP="plugdev"
KERNEL=="hidraw*", ATTRS{idVendor}=="%04x", ATTRS{idProduct}=="%04x", MODE="0666", GROUP="plugdev"
`, protocol.VendorID, productID, protocol.VendorID, productID)
}

// Install writes the rule to /etc/udev/rules.d and reloads udev, escalating
// through sudo when not already root.
func Install(productID uint16, logger *slog.Logger) error {
	tmp := filepath.Join(os.TempDir(), filepath.Base(rulePath))
	if err := os.WriteFile(tmp, []byte(Rule(productID)), 0o644); err != nil {
		return err
	}

	logger.Info("installing udev rule", "path", rulePath)
	steps := [][]string{
		{"mv", tmp, rulePath},
		{"udevadm", "control", "--reload-rules"},
		{"udevadm", "trigger"},
	}
	for _, step := range steps {
		if os.Geteuid() != 0 {
			step = append([]string{"sudo"}, step...)
		}
		cmd := exec.Command(step[0], step[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", strings.Join(step, " "), err)
		}
	}

	logger.Info("udev rule installed; replug the keyboard to apply it")
	return nil
}
