// Package hid narrows hidapi to what the Epomaker screen protocol needs:
// enumeration with usage metadata, open-by-path, and feature report I/O.
// The interfaces exist so the transport session can be tested without
// hardware.
package hid

// DeviceInfo describes one enumerated HID interface.
type DeviceInfo struct {
	// Path is the platform-specific path used to open this interface.
	Path string `json:"path"`

	VendorID     uint16 `json:"vendorId"`
	ProductID    uint16 `json:"productId"`
	Manufacturer string `json:"manufacturer"`
	Product      string `json:"product"`

	// UsagePage and Usage identify the logical interface. The screen's
	// command interface reports a vendor-defined pair, distinct from the
	// keyboard's input-reporting interfaces.
	UsagePage uint16 `json:"usagePage"`
	Usage     uint16 `json:"usage"`
}

// Device is an opened HID interface capable of feature-report I/O.
type Device interface {
	// SendFeatureReport writes a feature report. The first byte of p must be
	// the report id, zero if the device does not use numbered reports.
	SendFeatureReport(p []byte) (int, error)

	// GetFeatureReport reads a feature report into p. p[0] selects the
	// report id and is part of the returned data.
	GetFeatureReport(p []byte) (int, error)

	// ProductString returns the device's product string descriptor.
	ProductString() (string, error)

	Close() error
}

// Backend enumerates and opens HID interfaces.
type Backend interface {
	// Enumerate lists interfaces matching the vendor and product id.
	Enumerate(vendorID, productID uint16) ([]DeviceInfo, error)

	// OpenPath opens the interface at a path returned by Enumerate.
	OpenPath(path string) (Device, error)
}
