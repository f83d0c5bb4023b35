// Package protocol implements the reverse-engineered feature-report protocol
// of the Epomaker keyboard dot-matrix screen: pixel encoding, packet framing
// and the transfer preambles. All byte layouts here were captured from the
// vendor software; the firmware rejects or misrenders anything that deviates.
package protocol

// USB identifiers of the supported keyboards.
const VendorID = 0x3151

// ProductIDsWired lists the known wired product ids in probe order. A
// wireless variant exists but is not supported.
var ProductIDsWired = []uint16{0x4010, 0x4015}

// The interface reporting this usage page/usage pair is the one that accepts
// screen commands. Empirical, observed on the wired firmware only; the
// keyboard's other interfaces report standard input usages.
const (
	CommandUsagePage = 0xFFFF
	CommandUsage     = 2
)

// Screen geometry. Every frame is exactly this size; smaller or larger
// bitmaps are resized before encoding.
const (
	ScreenCols = 60
	ScreenRows = 9
	PixelCount = ScreenCols * ScreenRows
	FrameSize  = PixelCount * 3 // 3 bytes (R, G, B) per pixel
)

// Packet layout. Each packet is a 64-byte feature report body: an 8-byte
// header followed by up to 56 bytes of pixel payload.
const (
	PacketSize  = 64
	ReportID    = 0x00
	headerSize  = 8
	PayloadSize = PacketSize - headerSize

	packetMagic = 0x29

	stillFrameCount = 0x01
	stillMode       = 0x00
	animationMode   = 0x32
)

// Base values for the decrementing address counter, one per transfer type.
// The counter is a virtual address, not a checksum.
const (
	stillBaseAddress     uint16 = 0x389D
	animationBaseAddress uint16 = 0x3861
)

// The last packet of each frame carries a fixed address override instead of
// the naturally decremented value; the firmware uses it to detect frame
// boundaries.
const (
	overrideHigh         = 0x34
	stillOverrideLow     = 0x85
	animationOverrideLow = 0x49
)

// Animation frame count limits. The count is carried in a single preamble
// byte, and the final-packet override formula assumes at least two frames.
const (
	MinAnimationFrames = 2
	MaxAnimationFrames = 255
)
