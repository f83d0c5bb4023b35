// Package epomaker finds the keyboard's screen command interface and drives
// the transfer handshake over it.
package epomaker

import (
	"github.com/epoled/epoled/hid"
	"github.com/epoled/epoled/protocol"
)

// Locator enumerates candidate HID interfaces and selects the one that
// accepts screen commands.
type Locator struct {
	backend hid.Backend
	infos   []hid.DeviceInfo
}

// NewLocator returns a Locator using the given HID backend.
func NewLocator(backend hid.Backend) *Locator {
	return &Locator{backend: backend}
}

// FindProductID probes the known wired product ids in order and returns the
// first one with at least one enumerated interface.
func (l *Locator) FindProductID() (uint16, error) {
	for _, pid := range protocol.ProductIDsWired {
		infos, err := l.backend.Enumerate(protocol.VendorID, pid)
		if err != nil {
			return 0, err
		}
		if len(infos) > 0 {
			l.infos = infos
			return pid, nil
		}
	}
	return 0, ErrDeviceNotFound
}

// FindDevicePath selects the command interface among the enumerated ones.
// Opening by path leaves the keyboard's input interfaces untouched, so
// typing keeps working while the screen is driven.
func (l *Locator) FindDevicePath() (string, error) {
	if l.infos == nil {
		if _, err := l.FindProductID(); err != nil {
			return "", err
		}
	}
	for _, info := range l.infos {
		if info.UsagePage == protocol.CommandUsagePage && info.Usage == protocol.CommandUsage {
			return info.Path, nil
		}
	}
	return "", ErrCommandInterfaceNotFound
}

// Interfaces returns the enumeration results of the last successful probe.
func (l *Locator) Interfaces() []hid.DeviceInfo {
	return l.infos
}
