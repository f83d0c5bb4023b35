package epomaker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/epoled/epoled/hid"
	"github.com/epoled/epoled/internal/log"
	"github.com/epoled/epoled/protocol"
)

// packetDelay is the pause after every feature-report transaction. The
// screen's buffer cannot absorb back-to-back reports; without the pause the
// firmware drops or corrupts frames.
const packetDelay = 5 * time.Millisecond

type sessionState int

const (
	stateClosed sessionState = iota
	stateOpen
	stateStreaming
)

// Session owns the open command interface and drives the
// preamble/acknowledge/stream handshake.
//
// The device exposes a single logical command channel; a Session is not safe
// for concurrent use and correctness depends on the strict ordering of
// sends, not on locking.
type Session struct {
	backend hid.Backend
	logger  *slog.Logger
	raw     log.RawLogger

	dryRun bool
	delay  time.Duration

	state sessionState
	dev   hid.Device
}

// Option configures a Session.
type Option func(*Session)

// WithDryRun fabricates the byte stream without any device I/O; every report
// still reaches the raw logger.
func WithDryRun() Option {
	return func(s *Session) { s.dryRun = true }
}

// WithDelay overrides the inter-packet delay. The 5 ms default is a firmware
// requirement; shortening it is only sane in tests.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// NewSession returns a closed Session over the given backend.
func NewSession(backend hid.Backend, logger *slog.Logger, raw log.RawLogger, opts ...Option) *Session {
	s := &Session{
		backend: backend,
		logger:  logger,
		raw:     raw,
		delay:   packetDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the command interface at path and probes it for liveness. In
// dry-run mode no device is touched and path may be empty.
func (s *Session) Open(path string) error {
	if s.state != stateClosed {
		return ErrAlreadyOpen
	}
	if s.dryRun {
		s.logger.Debug("dry run, skipping device open")
		s.state = stateOpen
		return nil
	}

	dev, err := s.backend.OpenPath(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceOpen, err)
	}
	product, err := dev.ProductString()
	if err != nil {
		_ = dev.Close()
		return fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	s.logger.Debug("device opened", "path", path, "product", product)
	s.dev = dev
	s.state = stateOpen
	return nil
}

// SendStill streams a single frame to the screen.
func (s *Session) SendStill(ctx context.Context, frame protocol.Frame) error {
	if s.state != stateOpen {
		return ErrNotOpen
	}
	if len(frame) == 0 {
		return protocol.ErrEmptyPayload
	}
	packets := protocol.StillPackets(frame)
	s.logger.Debug("sending still image", "packets", len(packets))
	return s.stream(ctx, protocol.StillPreamble(), packets)
}

// SendAnimation streams frames for looped playback on the screen.
func (s *Session) SendAnimation(ctx context.Context, frames []protocol.Frame) error {
	if s.state != stateOpen {
		return ErrNotOpen
	}
	packets, err := protocol.AnimationPackets(frames)
	if err != nil {
		return err
	}
	s.logger.Debug("sending animation", "frames", len(frames), "packets", len(packets))
	return s.stream(ctx, protocol.AnimationPreamble(len(frames)), packets)
}

// SendCommand sends a single command packet (clock, temperature, CPU).
// Command packets need no preamble or acknowledge.
func (s *Session) SendCommand(p protocol.Packet) error {
	if s.state != stateOpen {
		return ErrNotOpen
	}
	return s.sendPacket(p)
}

// stream performs the wire handshake: preamble, acknowledge read, then the
// packet sequence in order.
func (s *Session) stream(ctx context.Context, preamble protocol.Packet, packets []protocol.Packet) error {
	s.state = stateStreaming
	defer func() {
		if s.state == stateStreaming {
			s.state = stateOpen
		}
	}()

	if err := s.sendPacket(preamble); err != nil {
		return fmt.Errorf("preamble: %w", err)
	}
	if err := s.ackRead(); err != nil {
		return fmt.Errorf("acknowledge: %w", err)
	}

	for i := range packets {
		select {
		case <-ctx.Done():
			// There is no mid-transfer resync; the screen needs a replug
			// after an aborted stream. Close now so the handle never
			// outlives the interrupt.
			s.logger.Warn("transfer interrupted; the keyboard may need a replug to recover")
			s.Close()
			return ctx.Err()
		default:
		}
		if err := s.sendPacket(packets[i]); err != nil {
			s.logger.Warn("transfer aborted; the keyboard may need a replug to recover")
			return fmt.Errorf("packet %d of %d: %w", i+1, len(packets), err)
		}
	}
	return nil
}

func (s *Session) sendPacket(p protocol.Packet) error {
	report := p.Report()
	s.raw.Log(false, report)
	if s.dryRun {
		return nil
	}
	if _, err := s.dev.SendFeatureReport(report); err != nil {
		return err
	}
	time.Sleep(s.delay)
	return nil
}

// ackRead requests a feature report after the preamble. The response content
// is not interpreted; completing the read is what unblocks the firmware.
func (s *Session) ackRead() error {
	if s.dryRun {
		return nil
	}
	buf := make([]byte, 1+protocol.PacketSize)
	buf[0] = protocol.ReportID
	if _, err := s.dev.GetFeatureReport(buf); err != nil {
		return err
	}
	s.raw.Log(true, buf)
	time.Sleep(s.delay)
	return nil
}

// Close releases the device handle. It is idempotent and safe on a session
// that never opened; every caller defers it so the handle is released on any
// exit path.
func (s *Session) Close() {
	if s.dev != nil {
		_ = s.dev.Close()
		s.dev = nil
	}
	s.state = stateClosed
}
