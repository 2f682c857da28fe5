package panel

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		OK:                                    "OK",
		WrongMessageId:                        "WRONG_MESSAGE_ID",
		NoResponseFromAgent:                   "NO_RESPONSE_RECEIVED_FROM_SNMP_AGENT",
		MessageErrorSyntaxMultiFontNotDefined: "MESSAGE_ERROR_SYNTAXMULTI_FONT_NOT_DEFINED",
		LimitExceededScheduleItems:            "LIMIT_EXCEEDED_SCHEDULE_ITEMS",
		Kind(999):                             "EXCEPTION",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d) = %q, want %q", int(k), got, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != OK {
		t.Error("nil is not OK")
	}
	if KindOf(errors.New("x")) != Exception {
		t.Error("foreign error is not EXCEPTION")
	}
	wrapped := fmt.Errorf("handler: %w", newError(WrongFontId, "get font", nil))
	if KindOf(wrapped) != WrongFontId {
		t.Errorf("wrapped kind = %s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, &Error{Kind: WrongFontId}) {
		t.Error("errors.Is does not match on kind")
	}
	if errors.Is(wrapped, &Error{Kind: WrongGraphicId}) {
		t.Error("errors.Is matched a different kind")
	}
}

func TestValidationKind(t *testing.T) {
	tests := []struct {
		validate, syntax int
		want             Kind
		ok               bool
	}{
		{2, 0, OK, true},
		{2, 6, OK, true},
		{1, 0, MessageErrorOther, true},
		{3, 0, MessageErrorBeacons, true},
		{4, 0, MessageErrorPixelService, true},
		{5, 1, MessageErrorSyntaxMultiOther, true},
		{5, 3, MessageErrorSyntaxMultiUnsupportedTag, true},
		{5, 6, MessageErrorSyntaxMultiFontNotDefined, true},
		{5, 15, MessageErrorSyntaxMultiGraphicNotDefined, true},
		{5, 2, Exception, false},
		{5, 16, Exception, false},
		{0, 0, Exception, false},
		{9, 0, Exception, false},
	}
	for _, tt := range tests {
		got, ok := validationKind(tt.validate, tt.syntax)
		if got != tt.want || ok != tt.ok {
			t.Errorf("validationKind(%d, %d) = %s, %v, want %s, %v", tt.validate, tt.syntax, got, ok, tt.want, tt.ok)
		}
	}
}
