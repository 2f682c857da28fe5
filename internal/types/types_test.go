package types

import "testing"

func TestMemoryTypeMapping(t *testing.T) {
	tests := []struct {
		wire  int
		want  MemoryType
		label string
	}{
		{1, MemoryTypeOther, "other"},
		{2, MemoryTypePermanent, "permanent"},
		{3, MemoryTypeChangeable, "changeable"},
		{4, MemoryTypeVolatile, "volatile"},
		{5, MemoryTypeCurrentBuffer, "currentBuffer"},
		{6, MemoryTypeSchedule, "schedule"},
		{7, MemoryTypeBlank, "blank"},
		{0, MemoryTypeUnknown, "unknown"},
		{8, MemoryTypeUnknown, "unknown"},
		{-1, MemoryTypeUnknown, "unknown"},
	}
	for _, tt := range tests {
		got := ParseMemoryType(tt.wire)
		if got != tt.want {
			t.Errorf("ParseMemoryType(%d) = %v, want %v", tt.wire, got, tt.want)
		}
		if got.String() != tt.label {
			t.Errorf("ParseMemoryType(%d).String() = %q, want %q", tt.wire, got.String(), tt.label)
		}
		if tt.want != MemoryTypeUnknown && got.Wire() != tt.wire {
			t.Errorf("Wire() = %d, want %d", got.Wire(), tt.wire)
		}
	}
}

func TestMessageStatusMapping(t *testing.T) {
	labels := []string{"", "notUsed", "modifying", "validating", "valid", "error", "modifyReq", "validateReq", "notUsedReq"}
	for wire := 1; wire <= 8; wire++ {
		s := ParseMessageStatus(wire)
		if s.Wire() != wire {
			t.Errorf("ParseMessageStatus(%d).Wire() = %d", wire, s.Wire())
		}
		if s.String() != labels[wire] {
			t.Errorf("ParseMessageStatus(%d).String() = %q, want %q", wire, s.String(), labels[wire])
		}
	}
	if ParseMessageStatus(9) != MessageStatusUnknown {
		t.Error("wire 9 should be unknown")
	}
}

func TestIlluminationControlMapping(t *testing.T) {
	if got := ParseIlluminationControl(2).String(); got != "photocell" {
		t.Errorf("2 = %q, want photocell", got)
	}
	if got := ParseIlluminationControl(6).String(); got != "manualIndexed" {
		t.Errorf("6 = %q, want manualIndexed", got)
	}
	if ParseIlluminationControl(42) != IlluminationUnknown {
		t.Error("42 should be unknown")
	}
}
