package hid

import (
	syshid "github.com/sstallion/go-hid"
)

// Hidapi returns the Backend backed by the system hidapi library. hidapi
// initializes itself on first use; no explicit setup is required.
func Hidapi() Backend { return hidapiBackend{} }

type hidapiBackend struct{}

func (hidapiBackend) Enumerate(vendorID, productID uint16) ([]DeviceInfo, error) {
	var infos []DeviceInfo
	err := syshid.Enumerate(vendorID, productID, func(info *syshid.DeviceInfo) error {
		infos = append(infos, DeviceInfo{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Manufacturer: info.MfrStr,
			Product:      info.ProductStr,
			UsagePage:    info.UsagePage,
			Usage:        info.Usage,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

func (hidapiBackend) OpenPath(path string) (Device, error) {
	dev, err := syshid.OpenPath(path)
	if err != nil {
		return nil, err
	}
	return hidapiDevice{dev}, nil
}

type hidapiDevice struct {
	dev *syshid.Device
}

func (d hidapiDevice) SendFeatureReport(p []byte) (int, error) { return d.dev.SendFeatureReport(p) }
func (d hidapiDevice) GetFeatureReport(p []byte) (int, error)  { return d.dev.GetFeatureReport(p) }
func (d hidapiDevice) ProductString() (string, error)          { return d.dev.GetProductStr() }
func (d hidapiDevice) Close() error                            { return d.dev.Close() }
