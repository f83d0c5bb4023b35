package epomaker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/epoled/epoled/epomaker"
	"github.com/epoled/epoled/hid"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves canned enumerations and hands out fakeDevices.
type fakeBackend struct {
	devices   map[uint16][]hid.DeviceInfo
	dev       *fakeDevice
	openErr   error
	openCalls int
}

func (b *fakeBackend) Enumerate(vendorID, productID uint16) ([]hid.DeviceInfo, error) {
	if vendorID != protocol.VendorID {
		return nil, nil
	}
	return b.devices[productID], nil
}

func (b *fakeBackend) OpenPath(path string) (hid.Device, error) {
	b.openCalls++
	if b.openErr != nil {
		return nil, b.openErr
	}
	if b.dev == nil {
		b.dev = &fakeDevice{}
	}
	return b.dev, nil
}

// fakeDevice records every feature report transaction. failAfter, when
// positive, fails every send once that many reports have been accepted.
type fakeDevice struct {
	sent       [][]byte
	reads      int
	sendErr    error
	failAfter  int
	productErr error
	closed     int
}

func (d *fakeDevice) SendFeatureReport(p []byte) (int, error) {
	if d.sendErr != nil {
		return 0, d.sendErr
	}
	if d.failAfter > 0 && len(d.sent) >= d.failAfter {
		return 0, errors.New("write failed")
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	d.sent = append(d.sent, buf)
	return len(p), nil
}

func (d *fakeDevice) GetFeatureReport(p []byte) (int, error) {
	d.reads++
	return len(p), nil
}

func (d *fakeDevice) ProductString() (string, error) {
	if d.productErr != nil {
		return "", d.productErr
	}
	return "RT100 Wired", nil
}

func (d *fakeDevice) Close() error {
	d.closed++
	return nil
}

func newTestSession(t *testing.T, backend hid.Backend, opts ...epomaker.Option) *epomaker.Session {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append(opts, epomaker.WithDelay(0))
	return epomaker.NewSession(backend, logger, log.NewRaw(nil), opts...)
}

func TestSendStill(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(t, backend)
	require.NoError(t, session.Open("/dev/hidraw1"))
	defer session.Close()

	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)
	require.NoError(t, session.SendStill(context.Background(), frame))

	dev := backend.dev
	// 1 preamble + 29 frame packets, with one acknowledge read in between.
	require.Len(t, dev.sent, 30)
	assert.Equal(t, 1, dev.reads)
	for i, report := range dev.sent {
		assert.Len(t, report, 65, "report %d", i)
		assert.Equal(t, byte(0x00), report[0], "report %d id", i)
	}
	assert.Equal(t, byte(0xa9), dev.sent[0][1], "first report is the preamble")
	assert.Equal(t, byte(0x29), dev.sent[1][1], "second report starts frame data")
	// Last packet carries the still override.
	last := dev.sent[len(dev.sent)-1]
	assert.Equal(t, byte(0x34), last[7])
	assert.Equal(t, byte(0x85), last[8])
}

func TestSendAnimation(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(t, backend)
	require.NoError(t, session.Open("/dev/hidraw1"))
	defer session.Close()

	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)

	require.NoError(t, session.SendAnimation(context.Background(), []protocol.Frame{frame, frame}))

	dev := backend.dev
	require.Len(t, dev.sent, 59) // preamble + 2*29
	preamble := dev.sent[0]
	assert.Equal(t, byte(2), preamble[3], "frame count byte")
	assert.Equal(t, byte(0xC8), preamble[8], "timing byte")
}

func TestSendAnimationInsufficientFrames(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(t, backend)
	require.NoError(t, session.Open("/dev/hidraw1"))
	defer session.Close()

	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)
	err = session.SendAnimation(context.Background(), []protocol.Frame{frame})
	assert.ErrorIs(t, err, protocol.ErrInsufficientFrames)
	assert.Empty(t, backend.dev.sent)
}

func TestSessionStateMachine(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(t, backend)

	err := session.SendStill(context.Background(), make(protocol.Frame, protocol.FrameSize))
	assert.ErrorIs(t, err, epomaker.ErrNotOpen)

	require.NoError(t, session.Open("/dev/hidraw1"))
	assert.ErrorIs(t, session.Open("/dev/hidraw1"), epomaker.ErrAlreadyOpen)

	err = session.SendStill(context.Background(), protocol.Frame{})
	assert.ErrorIs(t, err, protocol.ErrEmptyPayload)

	session.Close()
	session.Close() // idempotent
	assert.Equal(t, 1, backend.dev.closed)

	// A fresh Open transition from Closed is allowed.
	require.NoError(t, session.Open("/dev/hidraw1"))
	session.Close()
}

func TestOpenErrors(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		backend := &fakeBackend{openErr: errors.New("permission denied")}
		session := newTestSession(t, backend)
		err := session.Open("/dev/hidraw1")
		assert.ErrorIs(t, err, epomaker.ErrDeviceOpen)
	})

	t.Run("liveness probe failure closes the handle", func(t *testing.T) {
		dev := &fakeDevice{productErr: errors.New("no answer")}
		backend := &fakeBackend{dev: dev}
		session := newTestSession(t, backend)
		err := session.Open("/dev/hidraw1")
		assert.ErrorIs(t, err, epomaker.ErrCommunication)
		assert.Equal(t, 1, dev.closed)

		// The stale handle must not accept sends.
		err = session.SendStill(context.Background(), make(protocol.Frame, protocol.FrameSize))
		assert.ErrorIs(t, err, epomaker.ErrNotOpen)
	})
}

func TestDryRunPerformsNoIO(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(t, backend, epomaker.WithDryRun())
	require.NoError(t, session.Open(""))
	defer session.Close()

	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)
	require.NoError(t, session.SendStill(context.Background(), frame))

	assert.Zero(t, backend.openCalls)
}

func TestMidTransferErrorAborts(t *testing.T) {
	// Fail on the 11th report: preamble plus ten frame packets make it
	// through, the rest of the stream is abandoned.
	dev := &fakeDevice{failAfter: 11}
	backend := &fakeBackend{dev: dev}
	session := newTestSession(t, backend)
	require.NoError(t, session.Open("/dev/hidraw1"))
	defer session.Close()

	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)

	err = session.SendStill(context.Background(), frame)
	require.Error(t, err)
	assert.Len(t, dev.sent, 11, "no packet is sent after the failure")
}

func TestInterruptClosesSession(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(t, backend)
	require.NoError(t, session.Open("/dev/hidraw1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)
	err = session.SendStill(ctx, frame)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, backend.dev.closed, "interrupt releases the handle")
}
