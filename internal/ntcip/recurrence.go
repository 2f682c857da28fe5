package ntcip

import (
	"math/bits"
	"time"
)

// Reserved bits of the time base month mask: bit 0 and bits 13..15.
const monthReserved = 1<<0 | 1<<13 | 1<<14 | 1<<15

// Recurrence is the trigger of a time base schedule entry as three bitmasks.
// A single-shot entry has exactly one bit set in Month and Date.
type Recurrence struct {
	Month uint32
	Date  uint32
	Day   uint32
}

// NewRecurrence encodes t (already in the sign's local time).
func NewRecurrence(t time.Time) Recurrence {
	return Recurrence{
		Month: 1 << uint(t.Month()),
		Date:  1 << uint(t.Day()),
		Day:   1 << uint(t.Weekday()+1),
	}
}

// RecurrenceFromWire builds a Recurrence from the integers read off the
// device. Values above MaxInt32 arrive as negative Integer32.
func RecurrenceFromWire(month, date, day int) Recurrence {
	return Recurrence{
		Month: uint32(int32(month)),
		Date:  uint32(int32(date)),
		Day:   uint32(int32(day)),
	}
}

// Wire returns the masks as signed Integer32 values, ready to set.
func (r Recurrence) Wire() (month, date, day int) {
	return int(int32(r.Month)), int(int32(r.Date)), int(int32(r.Day))
}

// IsZero reports an unused entry.
func (r Recurrence) IsZero() bool {
	return r.Month == 0
}

// Valid reports whether the masks describe exactly one month and one
// day of the month with no reserved bits set.
func (r Recurrence) Valid() bool {
	if r.Month&monthReserved != 0 || r.Month>>16 != 0 {
		return false
	}
	if r.Date&1 != 0 {
		return false
	}
	return bits.OnesCount32(r.Month) == 1 && bits.OnesCount32(r.Date) == 1
}

// MonthDay decodes the month and day of month. ok is false when the masks
// are not Valid.
func (r Recurrence) MonthDay() (month time.Month, day int, ok bool) {
	if !r.Valid() {
		return 0, 0, false
	}
	return time.Month(bits.TrailingZeros32(r.Month)), bits.TrailingZeros32(r.Date), true
}
