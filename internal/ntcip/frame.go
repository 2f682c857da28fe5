package ntcip

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/disersoft-code/traductor-pmv/internal/types"
)

const (
	// ActivationFrameLen is the size of an activate message code.
	ActivationFrameLen = 12
	// ActionCodeLen is the size of a scheduled action message code.
	ActionCodeLen = 5
)

// ParseIPv4 accepts only dotted IPv4 addresses.
func ParseIPv4(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip address %q", s)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("not an IPv4 address %q", s)
	}
	return ip4, nil
}

// ActivationFrame builds the activate message code:
// three 0xFF duration/priority bytes, memory type, message number and CRC
// (both big-endian), then the source address.
func ActivationFrame(mem types.MemoryType, number, crc int, ip net.IP) []byte {
	frame := make([]byte, ActivationFrameLen)
	frame[0] = 0xff
	frame[1] = 0xff
	frame[2] = 0xff
	frame[3] = byte(mem)
	binary.BigEndian.PutUint16(frame[4:6], uint16(number))
	binary.BigEndian.PutUint16(frame[6:8], uint16(crc))
	copy(frame[8:12], ip.To4())
	return frame
}

// DeactivationFrame activates blank message 1, clearing the display.
func DeactivationFrame(ip net.IP) []byte {
	return ActivationFrame(types.MemoryTypeBlank, 1, 0, ip)
}

// ScheduleActivationFrame hands display control to the schedule.
func ScheduleActivationFrame(ip net.IP) []byte {
	return ActivationFrame(types.MemoryTypeSchedule, 1, 0, ip)
}

// ActionCode builds the 5 byte message code stored in an action entry.
func ActionCode(mem types.MemoryType, number int) []byte {
	code := make([]byte, ActionCodeLen)
	code[0] = byte(mem)
	binary.BigEndian.PutUint16(code[1:3], uint16(number))
	return code
}

// ParseActionCode reads the memory type and message number of an action
// message code. The trailing CRC bytes are ignored.
func ParseActionCode(code []byte) (types.MemoryType, int, error) {
	if len(code) < 3 {
		return 0, 0, fmt.Errorf("action code too short: %d bytes", len(code))
	}
	return types.MemoryType(code[0]), int(binary.BigEndian.Uint16(code[1:3])), nil
}
