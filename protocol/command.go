package protocol

import "time"

// Simple commands are single packets that update the readouts on the screen
// overlay (clock, temperature, CPU). They share an 8-byte header whose final
// byte is the complement checksum of the preceding seven.

// checksum returns 0xff minus the low byte of the sum of b, or 0 when the
// sum is 0.
func checksum(b []byte) byte {
	var sum int
	for _, v := range b {
		sum += int(v)
	}
	if sum == 0 {
		return 0
	}
	return 0xff - byte(sum&0xff)
}

func simpleCommand(id byte, payload []byte) Packet {
	var p Packet
	p[0] = id
	p[7] = checksum(p[:7])
	copy(p[8:], payload)
	return p
}

// ClockCommand sets the clock shown on the screen.
func ClockCommand(t time.Time) Packet {
	year := t.Year()
	return simpleCommand(0x28, []byte{
		byte(year >> 8), byte(year),
		byte(t.Month()), byte(t.Day()),
		byte(t.Hour()), byte(t.Minute()), byte(t.Second()),
	})
}

// TempCommand sets the temperature readout, in whole degrees Celsius.
func TempCommand(degrees int) Packet {
	return simpleCommand(0x2a, []byte{byte(degrees)})
}

// CPUCommand sets the CPU usage readout, in percent. The fixed payload
// prefix configures the gauge and was captured from the vendor software.
func CPUCommand(percent int) Packet {
	return simpleCommand(0x22, []byte{
		0x63, 0x00, 0x7f, 0x00, 0x04, 0x00, 0x08, 0x00, byte(percent),
	})
}
