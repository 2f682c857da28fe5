package ntcip

import (
	"bytes"
	"net"
	"testing"

	"github.com/disersoft-code/traductor-pmv/internal/types"
)

func TestActivationFrame(t *testing.T) {
	ip := net.IPv4(10, 0, 12, 200)
	got := ActivationFrame(types.MemoryTypeChangeable, 5, 0xA99A, ip)
	want := []byte{0xff, 0xff, 0xff, 0x03, 0x00, 0x05, 0xa9, 0x9a, 10, 0, 12, 200}
	if !bytes.Equal(got, want) {
		t.Errorf("ActivationFrame = % x, want % x", got, want)
	}
}

func TestActivationFrameLargeSlot(t *testing.T) {
	got := ActivationFrame(types.MemoryTypeChangeable, 300, 1, net.IPv4(1, 2, 3, 4))
	if got[4] != 0x01 || got[5] != 0x2c {
		t.Errorf("slot bytes = % x, want 01 2c", got[4:6])
	}
	if got[6] != 0x00 || got[7] != 0x01 {
		t.Errorf("crc bytes = % x, want 00 01", got[6:8])
	}
}

func TestDeactivationAndScheduleFrames(t *testing.T) {
	ip := net.IPv4(192, 168, 0, 5)

	deact := DeactivationFrame(ip)
	if !bytes.Equal(deact, []byte{0xff, 0xff, 0xff, 7, 0, 1, 0, 0, 192, 168, 0, 5}) {
		t.Errorf("DeactivationFrame = % x", deact)
	}

	sched := ScheduleActivationFrame(ip)
	if !bytes.Equal(sched, []byte{0xff, 0xff, 0xff, 6, 0, 1, 0, 0, 192, 168, 0, 5}) {
		t.Errorf("ScheduleActivationFrame = % x", sched)
	}
}

func TestActionCodeRoundTrip(t *testing.T) {
	code := ActionCode(types.MemoryTypeChangeable, 258)
	if !bytes.Equal(code, []byte{3, 1, 2, 0, 0}) {
		t.Fatalf("ActionCode = % x", code)
	}

	mem, n, err := ParseActionCode(code)
	if err != nil {
		t.Fatalf("ParseActionCode: %v", err)
	}
	if mem != types.MemoryTypeChangeable || n != 258 {
		t.Errorf("ParseActionCode = %v, %d", mem, n)
	}

	if _, _, err := ParseActionCode([]byte{3, 0}); err == nil {
		t.Error("expected error for short code")
	}
}

func TestParseIPv4(t *testing.T) {
	if ip, err := ParseIPv4("10.1.2.3"); err != nil || len(ip) != 4 {
		t.Errorf("ParseIPv4 valid = %v, %v", ip, err)
	}
	for _, bad := range []string{"", "10.1.2", "256.1.1.1", "::1", "sign-1"} {
		if _, err := ParseIPv4(bad); err == nil {
			t.Errorf("ParseIPv4(%q) expected error", bad)
		}
	}
}
