package protocol_test

import (
	"encoding/binary"
	"testing"

	"github.com/epoled/epoled/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugFrame(t *testing.T) protocol.Frame {
	t.Helper()
	f, err := protocol.Encode(protocol.DebugPattern())
	require.NoError(t, err)
	return f
}

func TestStillPackets(t *testing.T) {
	frame := debugFrame(t)
	packets := protocol.StillPackets(frame)

	// 1620 payload bytes in 56-byte chunks.
	require.Len(t, packets, 29)

	var payload []byte
	for k, p := range packets {
		assert.Equal(t, byte(0x29), p[0], "packet %d magic", k)
		assert.Equal(t, byte(0x00), p[1], "packet %d frame index", k)
		assert.Equal(t, byte(0x01), p[2], "packet %d frame count", k)
		assert.Equal(t, byte(0x00), p[3], "packet %d mode", k)
		assert.Equal(t, uint16(k), binary.LittleEndian.Uint16(p[4:6]), "packet %d sequence", k)

		if k == len(packets)-1 {
			// Final packet carries the override, not 0x389D-28.
			assert.Equal(t, byte(0x34), p[6])
			assert.Equal(t, byte(0x85), p[7])
		} else {
			assert.Equal(t, uint16(0x389D-k), binary.BigEndian.Uint16(p[6:8]), "packet %d address", k)
		}
		payload = append(payload, p[8:]...)
	}

	// Concatenated payloads reproduce the frame; the final chunk is
	// zero-padded.
	assert.Equal(t, []byte(frame), payload[:len(frame)])
	for _, b := range payload[len(frame):] {
		assert.Equal(t, byte(0), b)
	}
}

func TestStillPacketsChunkCounts(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		packets int
	}{
		{name: "empty frame yields no packets", size: 0, packets: 0},
		{name: "single byte", size: 1, packets: 1},
		{name: "exactly one chunk", size: 56, packets: 1},
		{name: "one chunk plus one byte", size: 57, packets: 2},
		{name: "full frame", size: 1620, packets: 29},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			packets := protocol.StillPackets(make(protocol.Frame, tc.size))
			assert.Len(t, packets, tc.packets)
		})
	}
}

func TestAnimationPackets(t *testing.T) {
	frames := []protocol.Frame{debugFrame(t), debugFrame(t)}
	packets, err := protocol.AnimationPackets(frames)
	require.NoError(t, err)
	require.Len(t, packets, 58)

	for k, p := range packets {
		frameIdx := k / 29
		seq := k % 29
		assert.Equal(t, byte(0x29), p[0], "packet %d magic", k)
		assert.Equal(t, byte(frameIdx), p[1], "packet %d frame index", k)
		assert.Equal(t, byte(2), p[2], "packet %d frame count", k)
		assert.Equal(t, byte(0x32), p[3], "packet %d mode", k)
		assert.Equal(t, uint16(seq), binary.LittleEndian.Uint16(p[4:6]), "packet %d sequence", k)
		if seq != 28 {
			assert.Equal(t, uint16(0x3861-seq), binary.BigEndian.Uint16(p[6:8]), "packet %d address", k)
		}
	}

	// Frame overrides decrement per frame: 0x49, 0x48, ...
	assert.Equal(t, byte(0x34), packets[28][6])
	assert.Equal(t, byte(0x49), packets[28][7])
	assert.Equal(t, byte(0x34), packets[57][6])
	assert.Equal(t, byte(0x48), packets[57][7])
}

func TestAnimationPacketsErrors(t *testing.T) {
	frame := debugFrame(t)

	_, err := protocol.AnimationPackets(nil)
	assert.ErrorIs(t, err, protocol.ErrInsufficientFrames)

	_, err = protocol.AnimationPackets([]protocol.Frame{frame})
	assert.ErrorIs(t, err, protocol.ErrInsufficientFrames)

	_, err = protocol.AnimationPackets([]protocol.Frame{frame, {}})
	assert.ErrorIs(t, err, protocol.ErrEmptyPayload)

	tooMany := make([]protocol.Frame, 256)
	for i := range tooMany {
		tooMany[i] = frame
	}
	_, err = protocol.AnimationPackets(tooMany)
	assert.ErrorIs(t, err, protocol.ErrTooManyFrames)
}
