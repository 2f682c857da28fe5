package panel

import (
	"github.com/disersoft-code/traductor-pmv/internal/multi"
	"github.com/disersoft-code/traductor-pmv/internal/types"
)

// Message is one row of the sign's message table.
type Message struct {
	Number          int                 `json:"messageNumber"`
	Multi           string              `json:"multiString"`
	Owner           string              `json:"ownerParameter"`
	CRC             int                 `json:"crcParameter"`
	Beacon          int                 `json:"beaconParameter"`
	PixelService    int                 `json:"pixelServiceParameter"`
	RunTimePriority int                 `json:"runTimePriorityParameter"`
	Status          types.MessageStatus `json:"statusParameterNumber"`
	StatusName      string              `json:"statusParameter"`
	MemoryType      types.MemoryType    `json:"memoryTypeParameterNumber"`
	MemoryTypeName  string              `json:"memoryTypeParameter"`
	Text            string              `json:"message"`
	Document        *multi.Document     `json:"dynamicMessage,omitempty"`
	IsActive        bool                `json:"isActive"`
}

// MessageWrite stores a message in a changeable slot. When Pages is set it
// is encoded and Multi is ignored.
type MessageWrite struct {
	Number   int          `json:"messageNumber"`
	Owner    string       `json:"messageOwner"`
	Pages    []multi.Page `json:"pages"`
	Multi    string       `json:"multiString"`
	Activate bool         `json:"activateMessage"`
}

type Font struct {
	Index     int    `json:"index"`
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Height    int    `json:"height"`
	VersionID string `json:"versionID"`
	Status    int    `json:"status"`
}

type Graphic struct {
	Number             int    `json:"number"`
	Name               string `json:"name"`
	Height             int    `json:"height"`
	Width              int    `json:"width"`
	Type               int    `json:"type"`
	ID                 int    `json:"id"`
	TransparentEnabled int    `json:"transparentEnabled"`
	TransparentColor   string `json:"transparentColor"`
	Status             int    `json:"status"`
}

// GraphicUpload is a graphic definition plus its base64 BMP file.
type GraphicUpload struct {
	Number             int    `json:"number"`
	Name               string `json:"name"`
	Height             int    `json:"height"`
	Width              int    `json:"width"`
	Type               int    `json:"type"`
	TransparentEnabled int    `json:"transparentEnabled"`
	TransparentColor   string `json:"transparentColor"`
	BMP                string `json:"bmp"`
}

// Schedule is a single-shot time base entry and the message it shows.
type Schedule struct {
	Index                  int      `json:"index"`
	ID                     string   `json:"id"`
	Date                   int64    `json:"date"`
	DateGMT                string   `json:"dateGMT"`
	LocalTime              string   `json:"localTime"`
	DayPlanNumber          int      `json:"dayPlanNumber"`
	DayPlanEventNumber     int      `json:"dayPlanEventNumber"`
	MessageNumber          int      `json:"messageNumber"`
	ActionIndex            int      `json:"actionIndex"`
	TimeBaseScheduleNumber int      `json:"timeBaseScheduleNumber"`
	MessageObject          *Message `json:"messageObject,omitempty"`
	Message                string   `json:"message"`
}

// SignStatus is the sign's capacity and illumination block plus the
// message currently on display.
type SignStatus struct {
	CurrentDate                     int64                     `json:"currentDate"`
	CurrentDateGMT                  string                    `json:"currentDateGTM"`
	LocalTime                       string                    `json:"localTime"`
	SignHeight                      int                       `json:"signHeightInPixels"`
	SignWidth                       int                       `json:"signWidthInPixels"`
	NumberFonts                     int                       `json:"numberFonts"`
	DefaultFont                     int                       `json:"defaultFont"`
	MaximumFontCharacters           int                       `json:"maximumFontCharacters"`
	MaximumNumberPages              int                       `json:"maximumNumberPages"`
	MaximumMultiStringLength        int                       `json:"maximumMultiStringLength"`
	NumberPermanentMessages         int                       `json:"numberPermanentMessages"`
	NumberChangeableMessages        int                       `json:"numberChangeableMessages"`
	MaximumNumberChangeableMessages int                       `json:"maximumNumberChangeableMessages"`
	MaximumNumberGraphics           int                       `json:"maximumNumberGraphics"`
	NumberGraphics                  int                       `json:"numberGraphics"`
	IlluminationControl             types.IlluminationControl `json:"illuminationControlNumber"`
	IlluminationControlName         string                    `json:"illuminationControl"`
	BrightnessLevel                 int                       `json:"statusIlluminationBrightnessLevel"`
	IlluminationManualLevel         int                       `json:"illuminationManualLevel"`
	CurrentMessage                  *Message                  `json:"currentMessage"`
}
