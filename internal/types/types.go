// Package types holds the closed enumerations a sign reports on the wire.
// Every enum maps unknown wire values to an explicit Unknown variant.
package types

// MemoryType is where a message is stored on the sign.
type MemoryType int

const (
	MemoryTypeUnknown       MemoryType = 0
	MemoryTypeOther         MemoryType = 1
	MemoryTypePermanent     MemoryType = 2
	MemoryTypeChangeable    MemoryType = 3
	MemoryTypeVolatile      MemoryType = 4
	MemoryTypeCurrentBuffer MemoryType = 5
	MemoryTypeSchedule      MemoryType = 6
	MemoryTypeBlank         MemoryType = 7
)

var memoryTypeDescriptions = map[MemoryType]string{
	MemoryTypeOther:         "other",
	MemoryTypePermanent:     "permanent",
	MemoryTypeChangeable:    "changeable",
	MemoryTypeVolatile:      "volatile",
	MemoryTypeCurrentBuffer: "currentBuffer",
	MemoryTypeSchedule:      "schedule",
	MemoryTypeBlank:         "blank",
}

// ParseMemoryType converts a wire value to a MemoryType.
func ParseMemoryType(v int) MemoryType {
	if _, ok := memoryTypeDescriptions[MemoryType(v)]; ok {
		return MemoryType(v)
	}
	return MemoryTypeUnknown
}

func (m MemoryType) Wire() int {
	return int(m)
}

func (m MemoryType) String() string {
	if s, ok := memoryTypeDescriptions[m]; ok {
		return s
	}
	return "unknown"
}

// MessageStatus is the message lifecycle state. The Req variants are written
// by the gateway to request a transition.
type MessageStatus int

const (
	MessageStatusUnknown     MessageStatus = 0
	MessageStatusNotUsed     MessageStatus = 1
	MessageStatusModifying   MessageStatus = 2
	MessageStatusValidating  MessageStatus = 3
	MessageStatusValid       MessageStatus = 4
	MessageStatusError       MessageStatus = 5
	MessageStatusModifyReq   MessageStatus = 6
	MessageStatusValidateReq MessageStatus = 7
	MessageStatusNotUsedReq  MessageStatus = 8
)

var messageStatusDescriptions = map[MessageStatus]string{
	MessageStatusNotUsed:     "notUsed",
	MessageStatusModifying:   "modifying",
	MessageStatusValidating:  "validating",
	MessageStatusValid:       "valid",
	MessageStatusError:       "error",
	MessageStatusModifyReq:   "modifyReq",
	MessageStatusValidateReq: "validateReq",
	MessageStatusNotUsedReq:  "notUsedReq",
}

func ParseMessageStatus(v int) MessageStatus {
	if _, ok := messageStatusDescriptions[MessageStatus(v)]; ok {
		return MessageStatus(v)
	}
	return MessageStatusUnknown
}

func (s MessageStatus) Wire() int {
	return int(s)
}

func (s MessageStatus) String() string {
	if d, ok := messageStatusDescriptions[s]; ok {
		return d
	}
	return "unknown"
}

// IlluminationControl is the brightness control mode of the sign.
type IlluminationControl int

const (
	IlluminationUnknown       IlluminationControl = 0
	IlluminationOther         IlluminationControl = 1
	IlluminationPhotocell     IlluminationControl = 2
	IlluminationTimer         IlluminationControl = 3
	IlluminationManual        IlluminationControl = 4
	IlluminationManualDirect  IlluminationControl = 5
	IlluminationManualIndexed IlluminationControl = 6
)

var illuminationDescriptions = map[IlluminationControl]string{
	IlluminationOther:         "other",
	IlluminationPhotocell:     "photocell",
	IlluminationTimer:         "timer",
	IlluminationManual:        "manual",
	IlluminationManualDirect:  "manualDirect",
	IlluminationManualIndexed: "manualIndexed",
}

func ParseIlluminationControl(v int) IlluminationControl {
	if _, ok := illuminationDescriptions[IlluminationControl(v)]; ok {
		return IlluminationControl(v)
	}
	return IlluminationUnknown
}

func (c IlluminationControl) Wire() int {
	return int(c)
}

func (c IlluminationControl) String() string {
	if d, ok := illuminationDescriptions[c]; ok {
		return d
	}
	return "unknown"
}
