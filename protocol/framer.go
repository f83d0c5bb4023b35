package protocol

import "encoding/binary"

// Frame is one encoded screen frame: FrameSize bytes in column-major R,G,B
// order. Frames are immutable once produced.
type Frame []byte

// framePackets splits frames into ordered 64-byte packets.
//
// Per frame: the incrementing counter restarts at zero and the decrementing
// counter at base; the payload is consumed in 56-byte chunks; the last
// packet's address field is overwritten with the frame's override pair.
// An empty frame contributes no packets; callers guard against that upstream.
func framePackets(frames []Frame, base uint16, overrides [][2]byte, animated bool) []Packet {
	count := byte(stillFrameCount)
	mode := byte(stillMode)
	if animated {
		count = byte(len(frames))
		mode = animationMode
	}

	var out []Packet
	for i, frame := range frames {
		inc := uint16(0)
		dec := base
		first := len(out)

		for off := 0; off < len(frame); off += PayloadSize {
			chunk := frame[off:min(off+PayloadSize, len(frame))]

			var p Packet
			p[0] = packetMagic
			p[1] = byte(i)
			p[2] = count
			p[3] = mode
			binary.LittleEndian.PutUint16(p[4:6], inc)
			binary.BigEndian.PutUint16(p[6:8], dec)
			copy(p[8:], chunk)

			out = append(out, p)
			inc++
			dec--
		}

		if len(out) > first {
			last := &out[len(out)-1]
			last[6] = overrides[i][0]
			last[7] = overrides[i][1]
		}
	}
	return out
}

// StillPackets frames a single image transfer.
func StillPackets(f Frame) []Packet {
	overrides := [][2]byte{{overrideHigh, stillOverrideLow}}
	return framePackets([]Frame{f}, stillBaseAddress, overrides, false)
}

// AnimationPackets frames an animated transfer. Frame i's final packet is
// overridden with {0x34, 0x49-i}.
func AnimationPackets(frames []Frame) ([]Packet, error) {
	if len(frames) < MinAnimationFrames {
		return nil, ErrInsufficientFrames
	}
	if len(frames) > MaxAnimationFrames {
		return nil, ErrTooManyFrames
	}
	overrides := make([][2]byte, len(frames))
	for i, f := range frames {
		if len(f) == 0 {
			return nil, ErrEmptyPayload
		}
		overrides[i] = [2]byte{overrideHigh, animationOverrideLow - byte(i)}
	}
	return framePackets(frames, animationBaseAddress, overrides, true), nil
}
