package protocol

// Packet is one 64-byte feature report body. Each packet owns its buffer so
// that the per-frame final override never aliases another packet's bytes.
type Packet [PacketSize]byte

// Bytes returns the packet contents as a slice backed by the packet itself.
func (p *Packet) Bytes() []byte { return p[:] }

// Report returns the packet as written to the wire: the constant report-id
// byte followed by the 64 packet bytes.
func (p *Packet) Report() []byte {
	buf := make([]byte, 1+PacketSize)
	buf[0] = ReportID
	copy(buf[1:], p[:])
	return buf
}

// stillPreamble is the fixed transfer announcement for a single image,
// captured verbatim from the vendor software. The remaining bytes are zero.
var stillPreamble = [12]byte{
	0xa9, 0x00, 0x01, 0x00, 0x54, 0x06, 0x00, 0xfb, 0x00, 0x00, 0x3c, 0x09,
}

// StillPreamble returns the packet announcing a single-image transfer. It is
// sent before any frame data, followed by an acknowledge read.
func StillPreamble() Packet {
	var p Packet
	copy(p[:], stillPreamble[:])
	return p
}

// AnimationPreamble returns the packet announcing an animated transfer of n
// frames. Byte 2 carries the frame count and byte 7 a timing byte derived
// from it: 0xC8 for two frames, one less per additional frame.
//
// n must already be validated against the animation frame count limits.
func AnimationPreamble(n int) Packet {
	p := StillPreamble()
	p[2] = byte(n)
	p[3] = animationMode
	p[7] = 0xC8 - byte(n-MinAnimationFrames)
	return p
}
