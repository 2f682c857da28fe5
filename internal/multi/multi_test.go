package multi

import (
	"errors"
	"reflect"
	"testing"
)

func sampleDocument() Document {
	return Document{Pages: []Page{
		{
			PageTime:      200,
			Spacing:       1,
			Justification: 0,
			Font:          50,
			TextRect:      Rect{49, 1, 144, 48},
			Graphic:       GraphicRef{1, 1, 1},
			Foreground:    Color{255, 255, 0},
			Lines: []Line{
				{NewLine: 1, Justification: 2, Text: "AAAA"},
				{NewLine: 1, Justification: 3, Text: "BBB"},
			},
		},
		{
			PageTime:      60,
			Background:    Color{0, 0, 64},
			Spacing:       2,
			Justification: 2,
			Font:          51,
			TextRect:      Rect{1, 1, 192, 48},
			Foreground:    Color{0, 255, 0},
			Lines: []Line{
				{NewLine: 1, Justification: 3, Text: "ENCIENDA LUCES"},
				{NewLine: 2, Justification: 2, Text: ""},
			},
		},
	}}
}

func TestEncode(t *testing.T) {
	got := Encode(sampleDocument())
	want := "[pt200o][pb0,0,0][jp0][fo50][tr49,1,144,48][g1,1,1][cf255,255,0]" +
		"[nl1][jl2][sc1]AAAA[/sc][nl1][jl3][sc1]BBB[/sc]" +
		"[np][pt60o][pb0,0,64][jp2][fo51][tr1,1,192,48][cf0,255,0]" +
		"[nl1][jl3][sc2]ENCIENDA LUCES[/sc][nl2][jl2][sc2][/sc]"
	if got != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []Document{
		sampleDocument(),
		{Pages: []Page{{PageTime: 30, Font: 1, TextRect: Rect{1, 1, 96, 32}, Foreground: Color{255, 255, 255}}}},
		{Pages: []Page{{Spacing: 3, Lines: []Line{{Text: "ONE"}, {NewLine: 4, Text: "TWO"}}}}},
		{Pages: []Page{{Spacing: 3}}},
		{Pages: []Page{{Spacing: 1, Lines: []Line{{Text: "A[B"}, {Text: "[C]]"}, {Text: "]"}, {Text: "["}}}}},
	}
	for i, d := range docs {
		got, err := Decode(Encode(d))
		if err != nil {
			t.Fatalf("doc %d: Decode: %v", i, err)
		}
		if !reflect.DeepEqual(got, d) {
			t.Errorf("doc %d: round trip\n got %+v\nwant %+v", i, got, d)
		}
	}
}

func TestEncodeOmitsZeroGraphic(t *testing.T) {
	d := Document{Pages: []Page{{PageTime: 10}}}
	if got := Encode(d); got != "[pt10o][pb0,0,0][jp0][fo0][tr0,0,0,0][cf0,0,0][sc0][/sc]" {
		t.Errorf("Encode = %s", got)
	}
}

func TestDecodeDeviceStrings(t *testing.T) {
	got, err := Decode("[pt30o5]THIS IS[np][pt20o10]A TEST")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Document{Pages: []Page{
		{PageTime: 30, Lines: []Line{{Text: "THIS IS"}}},
		{PageTime: 20, Lines: []Line{{Text: "A TEST"}}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}

	// The font version id after the comma is not kept.
	got, err = Decode("[pt200o][pb0,0,0][sc1][jp0][fo50,1a2b][tr49,1,144,48][g1,1,1][cf255,255,0][nl1][jl2]AAAA[nl1][jl3]BBB")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Pages) != 1 || len(got.Pages[0].Lines) != 2 || got.Pages[0].Font != 50 {
		t.Errorf("Decode = %+v", got)
	}
}

func TestDecodeBlank(t *testing.T) {
	got, err := Decode(Blank)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Pages) != 1 || len(got.Pages[0].Lines) != 0 || !got.Pages[0].Graphic.IsZero() {
		t.Errorf("Decode(Blank) = %+v", got)
	}
	if PlainText(Blank) != "" {
		t.Errorf("PlainText(Blank) = %q", PlainText(Blank))
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode("")
	if err != nil || !got.Empty() {
		t.Errorf("Decode(\"\") = %+v, %v", got, err)
	}
}

func TestDecodeMalformedIsSoft(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		pages int
	}{
		{"bad number", "[ptXo][fo2]HELLO", 1},
		{"short color", "[cf255,0][nl1]HI", 1},
		{"unterminated", "[fo3]HELLO[np][fo4]WORLD[jl", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
			if len(got.Pages) != tt.pages {
				t.Errorf("pages = %d, want %d (%+v)", len(got.Pages), tt.pages, got)
			}
		})
	}
}

func TestEncodeEscapesBrackets(t *testing.T) {
	d := Document{Pages: []Page{{Lines: []Line{{Text: "A[B]"}}}}}
	want := "[pt0o][pb0,0,0][jp0][fo0][tr0,0,0,0][cf0,0,0][nl0][jl0][sc0]A[[B]][/sc]"
	if got := Encode(d); got != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}
	if got := PlainText(want); got != "A[B]" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestDecodeUnescapedBracket(t *testing.T) {
	got, err := Decode("[nl1]A[B[/sc]")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if len(got.Pages) != 1 || got.Pages[0].Lines[0].Text != "A" {
		t.Errorf("Decode = %+v", got)
	}
}

func TestDecodeSkipsUnknownTags(t *testing.T) {
	got, err := Decode("[fo1][fl]FLASH[/fl]")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Pages) != 1 || got.Pages[0].Lines[0].Text != "FLASH" {
		t.Errorf("Decode = %+v", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"[pt30o5]THIS IS[np][pt20o10]A TEST", "THIS IS A TEST"},
		{Encode(sampleDocument()), "AAAA BBB ENCIENDA LUCES"},
		{"  [nl1]  [jl2] X ", "X"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
