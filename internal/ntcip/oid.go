package ntcip

import (
	"strconv"
	"strings"

	"github.com/disersoft-code/traductor-pmv/internal/types"
)

// Root is the NTCIP devices branch every parameter lives under.
const Root = "1.3.6.1.4.1.1206.4.2."

// Device-wide scalar parameters.
const (
	SignHeight             = Root + "3.2.3.0"
	SignWidth              = Root + "3.2.4.0"
	NumFonts               = Root + "3.3.1.0"
	MaxFontCharacters      = Root + "3.3.3.0"
	DefaultFont            = Root + "3.4.5.0"
	MaxPages               = Root + "3.4.15.0"
	MaxMultiStringLength   = Root + "3.4.16.0"
	NumPermanentMessages   = Root + "3.5.1.0"
	NumChangeableMessages  = Root + "3.5.2.0"
	MaxChangeableMessages  = Root + "3.5.3.0"
	ValidateMessageError   = Root + "3.5.9.0"
	SoftwareReset          = Root + "3.6.2.0"
	ActivateMessage        = Root + "3.6.3.0"
	MultiSyntaxError       = Root + "3.6.18.0"
	MultiSyntaxErrorPos    = Root + "3.6.19.0"
	ActivateMessageState   = Root + "3.6.25.0"
	IlluminationControl    = Root + "3.7.1.0"
	IlluminationBrightness = Root + "3.7.5.0"
	IlluminationManual     = Root + "3.7.6.0"
	NumActionEntries       = Root + "3.8.1.0"
	ShortErrorStatus       = Root + "3.9.7.1.0"
	MaxGraphics            = Root + "3.10.1.0"
	NumGraphics            = Root + "3.10.2.0"
	GlobalTime             = Root + "6.3.1.0"
	MaxTimeBaseEntries     = Root + "6.3.3.1.0"
	MaxDayPlans            = Root + "6.3.3.3.0"
	MaxDayPlanEvents       = Root + "6.3.3.4.0"
	DayPlanStatus          = Root + "6.3.3.6.0"
	TimeBaseScheduleStatus = Root + "6.3.3.7.0"
)

// MessageColumn is a column of the message table.
type MessageColumn int

const (
	MessageMemoryType      MessageColumn = 1
	MessageNumber          MessageColumn = 2
	MessageMulti           MessageColumn = 3
	MessageOwner           MessageColumn = 4
	MessageCRC             MessageColumn = 5
	MessageBeacon          MessageColumn = 6
	MessagePixelService    MessageColumn = 7
	MessageRunTimePriority MessageColumn = 8
	MessageStatus          MessageColumn = 9
)

func Message(col MessageColumn, mem types.MemoryType, n int) string {
	return join(Root+"3.5.8.1", int(col), mem.Wire(), n)
}

// FontColumn is a column of the font table.
type FontColumn int

const (
	FontIndex   FontColumn = 1
	FontNumber  FontColumn = 2
	FontName    FontColumn = 3
	FontHeight  FontColumn = 4
	FontVersion FontColumn = 7
	FontStatus  FontColumn = 8
)

func Font(col FontColumn, i int) string {
	return join(Root+"3.3.2.1", int(col), i)
}

// GraphicColumn is a column of the graphic table.
type GraphicColumn int

const (
	GraphicNumber             GraphicColumn = 2
	GraphicName               GraphicColumn = 3
	GraphicHeight             GraphicColumn = 4
	GraphicWidth              GraphicColumn = 5
	GraphicType               GraphicColumn = 6
	GraphicID                 GraphicColumn = 7
	GraphicTransparentEnabled GraphicColumn = 8
	GraphicTransparentColor   GraphicColumn = 9
	GraphicStatus             GraphicColumn = 10
)

func Graphic(col GraphicColumn, n int) string {
	return join(Root+"3.10.6.1", int(col), n)
}

// GraphicBitmap addresses block i (1..6) of graphic n.
func GraphicBitmap(n, i int) string {
	return join(Root+"3.10.7.1.3", n, i)
}

// TimeBaseColumn is a column of the time base schedule table.
type TimeBaseColumn int

const (
	TimeBaseMonth   TimeBaseColumn = 2
	TimeBaseDay     TimeBaseColumn = 3
	TimeBaseDate    TimeBaseColumn = 4
	TimeBaseDayPlan TimeBaseColumn = 5
)

func TimeBase(col TimeBaseColumn, tbs int) string {
	return join(Root+"6.3.3.2.1", int(col), tbs)
}

// DayPlanColumn is a column of the day plan table.
type DayPlanColumn int

const (
	DayPlanHour      DayPlanColumn = 3
	DayPlanMinute    DayPlanColumn = 4
	DayPlanActionOID DayPlanColumn = 5
)

func DayPlan(col DayPlanColumn, dayPlan, event int) string {
	return join(Root+"6.3.3.5.1", int(col), dayPlan, event)
}

// ActionIndex is the identifier a day plan event points at.
func ActionIndex(a int) string {
	return join(Root+"3.8.2.1.1", a)
}

// ActionMsgCode holds the 5 byte message code of action a.
func ActionMsgCode(a int) string {
	return join(Root+"3.8.2.1.2", a)
}

// LastArc returns the final numeric arc of a dotted identifier.
func LastArc(oid string) (int, bool) {
	oid = strings.TrimSuffix(oid, ".")
	i := strings.LastIndexByte(oid, '.')
	n, err := strconv.Atoi(oid[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func join(prefix string, idx ...int) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, i := range idx {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}
