package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/epoled/epoled/epomaker"
	"github.com/epoled/epoled/hid"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/internal/udev"
)

// Dev groups developer tools: enumeration info and udev rule generation.
type Dev struct {
	Print bool `help:"Print enumeration info for the connected keyboard" xor:"tool" required:""`
	Udev  bool `help:"Generate and install a udev rule for the connected keyboard" xor:"tool"`
}

// Run is called by kong when the dev command is executed.
func (d *Dev) Run(logger *slog.Logger, _ log.RawLogger) error {
	locator := epomaker.NewLocator(hid.Hidapi())
	pid, err := locator.FindProductID()
	if err != nil {
		return err
	}
	logger.Debug("keyboard found", "productId", fmt.Sprintf("0x%04x", pid))

	switch {
	case d.Print:
		return printInterfaces(locator.Interfaces())
	case d.Udev:
		return udev.Install(pid, logger)
	}
	return nil
}

func printInterfaces(infos []hid.DeviceInfo) error {
	out, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
