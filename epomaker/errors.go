package epomaker

import "errors"

var (
	// ErrDeviceNotFound means no known product id was enumerated. Retrying
	// without replugging the keyboard cannot succeed.
	ErrDeviceNotFound = errors.New("no Epomaker keyboard found")

	// ErrCommandInterfaceNotFound means the keyboard is present but none of
	// its interfaces matches the screen command selector.
	ErrCommandInterfaceNotFound = errors.New("no screen command interface found")

	// ErrDeviceOpen wraps an OS-level open failure, usually missing
	// permissions on the hidraw node.
	ErrDeviceOpen = errors.New("could not open device")

	// ErrCommunication means the device opened but did not answer the
	// liveness probe; the handle is stale and no data should be sent.
	ErrCommunication = errors.New("device is not responding")

	// ErrNotOpen is returned when a send is attempted outside an open
	// session.
	ErrNotOpen = errors.New("session is not open")

	// ErrAlreadyOpen is returned when Open is called twice without an
	// intervening Close.
	ErrAlreadyOpen = errors.New("session is already open")
)
