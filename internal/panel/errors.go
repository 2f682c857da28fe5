package panel

import (
	"errors"
	"fmt"

	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
)

// Kind classifies every failure the gateway reports. The string form is
// the error name returned to API callers.
type Kind int

const (
	OK Kind = iota
	NameAlreadyExist
	WrongData
	InvalidModel
	EmailAlreadyExist
	InvalidLoginAttempt
	NetworkException
	NoResponseFromAgent
	ErrorInAgentReply
	WrongMessageId
	WrongFontId
	WrongGraphicId
	WrongGraphicPage
	WrongMessagePage
	MessageErrorOther
	MessageErrorBeacons
	MessageErrorPixelService
	MessageErrorSyntaxMultiOther
	MessageErrorSyntaxMultiUnsupportedTag
	MessageErrorSyntaxMultiUnsupportedTagValue
	MessageErrorSyntaxMultiTextTooBig
	MessageErrorSyntaxMultiFontNotDefined
	MessageErrorSyntaxMultiCharacterNotDefined
	MessageErrorSyntaxMultiFieldDeviceNotExist
	MessageErrorSyntaxMultiFieldDeviceError
	MessageErrorSyntaxMultiFlashRegionError
	MessageErrorSyntaxMultiTagConflict
	MessageErrorSyntaxMultiTooManyPages
	MessageErrorSyntaxMultiFontVersionID
	MessageErrorSyntaxMultiGraphicID
	MessageErrorSyntaxMultiGraphicNotDefined
	WrongDateTime
	WrongScheduleId
	LimitExceededScheduleItems
	Exception
)

// kindNames are the names API clients already match on, misspellings
// included.
var kindNames = map[Kind]string{
	OK:                       "OK",
	NameAlreadyExist:         "NAME_ALREDY_EXIST",
	WrongData:                "ERROR_WRONG_DATA",
	InvalidModel:             "ERROR_INVALID_MODEL",
	EmailAlreadyExist:        "ERROR_EMAIL_ALREADY_EXIST",
	InvalidLoginAttempt:      "INAVLID_LOGIN_ATTEMPT",
	NetworkException:         "NETWORK_EXCEPTION",
	NoResponseFromAgent:      "NO_RESPONSE_RECEIVED_FROM_SNMP_AGENT",
	ErrorInAgentReply:        "ERROR_IN_SNMP_REPLY",
	WrongMessageId:           "WRONG_MESSAGE_ID",
	WrongFontId:              "WRONG_FONT_ID",
	WrongGraphicId:           "WRONG_GRAPHIC_ID",
	WrongGraphicPage:         "WRONG_GRAPHIC_PAGE",
	WrongMessagePage:         "WRONG_MESSAGE_PAGE",
	MessageErrorOther:        "MESSAGE_ERROR_OTHER",
	MessageErrorBeacons:      "MESSAGE_ERROR_BEACONS",
	MessageErrorPixelService: "MESSAGE_ERROR_PIXEL_SERVICE",

	MessageErrorSyntaxMultiOther:               "MESSAGE_ERROR_SYNTAXMULTI_OTHER",
	MessageErrorSyntaxMultiUnsupportedTag:      "MESSAGE_ERROR_SYNTAXMULTI_UNSUPPORTED_TAG",
	MessageErrorSyntaxMultiUnsupportedTagValue: "MESSAGE_ERROR_SYNTAXMULTI_UNSUPPORTED_TAG_VALUE",
	MessageErrorSyntaxMultiTextTooBig:          "MESSAGE_ERROR_SYNTAXMULTI_TEXT_TOO_BIG",
	MessageErrorSyntaxMultiFontNotDefined:      "MESSAGE_ERROR_SYNTAXMULTI_FONT_NOT_DEFINED",
	MessageErrorSyntaxMultiCharacterNotDefined: "MESSAGE_ERROR_SYNTAXMULTI_CHARACTER_NOT_DEFINED",
	MessageErrorSyntaxMultiFieldDeviceNotExist: "MESSAGE_ERROR_SYNTAXMULTI_FIELD_DEVICE_NOT_EXIST",
	MessageErrorSyntaxMultiFieldDeviceError:    "MESSAGE_ERROR_SYNTAXMULTI_FIELD_DEVICE_ERROR",
	MessageErrorSyntaxMultiFlashRegionError:    "MESSAGE_ERROR_SYNTAXMULTI_FLASH_REGION_ERROR",
	MessageErrorSyntaxMultiTagConflict:         "MESSAGE_ERROR_SYNTAXMULTI_TAG_CONFLICT",
	MessageErrorSyntaxMultiTooManyPages:        "MESSAGE_ERROR_SYNTAXMULTI_TOO_MANY_PAGES",
	MessageErrorSyntaxMultiFontVersionID:       "MESSAGE_ERROR_SYNTAXMULTI_FONT_VERSION_ID",
	MessageErrorSyntaxMultiGraphicID:           "MESSAGE_ERROR_SYNTAXMULTI_GRAPHIC_ID",
	MessageErrorSyntaxMultiGraphicNotDefined:   "MESSAGE_ERROR_SYNTAXMULTI_GRAPHIC_NOT_DEFINED",

	WrongDateTime:              "WRONG_DATE_TIME",
	WrongScheduleId:            "WRONG_SCHEDULE_ID",
	LimitExceededScheduleItems: "LIMIT_EXCEEDED_SCHEDULE_ITEMS",
	Exception:                  "EXCEPTION",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Exception]
}

// Error is a failed gateway operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so callers can write
// errors.Is(err, &panel.Error{Kind: panel.WrongMessageId}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind carried by err. nil is OK; an error not raised
// by this package is Exception.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Exception
}

// transportKind maps a transport failure onto its Kind.
func transportKind(err error) Kind {
	switch {
	case errors.Is(err, ntcip.ErrNoResponse):
		return NoResponseFromAgent
	case errors.Is(err, ntcip.ErrAgentReply):
		return ErrorInAgentReply
	case errors.Is(err, ntcip.ErrNetwork):
		return NetworkException
	}
	return Exception
}

// Outer codes of validateMessageError.
const (
	validateOther        = 1
	validateNone         = 2
	validateBeacons      = 3
	validatePixelService = 4
	validateSyntaxMulti  = 5
)

var syntaxKinds = map[int]Kind{
	1:  MessageErrorSyntaxMultiOther,
	3:  MessageErrorSyntaxMultiUnsupportedTag,
	4:  MessageErrorSyntaxMultiUnsupportedTagValue,
	5:  MessageErrorSyntaxMultiTextTooBig,
	6:  MessageErrorSyntaxMultiFontNotDefined,
	7:  MessageErrorSyntaxMultiCharacterNotDefined,
	8:  MessageErrorSyntaxMultiFieldDeviceNotExist,
	9:  MessageErrorSyntaxMultiFieldDeviceError,
	10: MessageErrorSyntaxMultiFlashRegionError,
	11: MessageErrorSyntaxMultiTagConflict,
	12: MessageErrorSyntaxMultiTooManyPages,
	13: MessageErrorSyntaxMultiFontVersionID,
	14: MessageErrorSyntaxMultiGraphicID,
	15: MessageErrorSyntaxMultiGraphicNotDefined,
}

// validationKind maps the validate error and MULTI syntax error codes read
// back after a write. ok is false for codes with no mapping.
func validationKind(validate, syntax int) (kind Kind, ok bool) {
	switch validate {
	case validateNone:
		return OK, true
	case validateOther:
		return MessageErrorOther, true
	case validateBeacons:
		return MessageErrorBeacons, true
	case validatePixelService:
		return MessageErrorPixelService, true
	case validateSyntaxMulti:
		if k, found := syntaxKinds[syntax]; found {
			return k, true
		}
	}
	return Exception, false
}
