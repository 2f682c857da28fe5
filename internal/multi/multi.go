// Package multi reads and writes NTCIP 1203 MULTI markup, the page
// description language understood by dynamic message signs.
package multi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Blank is written to a slot to clear it.
const Blank = "[pb0,0,0][tr0,0,0,0][g0,0,0][cf0,0,0]"

// ErrMalformed is returned by Decode alongside whatever could be parsed.
var ErrMalformed = errors.New("multi: malformed markup")

type Color [3]int

// Rect is a text rectangle: x, y, width, height.
type Rect [4]int

// GraphicRef places a stored graphic: id, x, y.
type GraphicRef [3]int

func (g GraphicRef) IsZero() bool {
	return g == GraphicRef{}
}

type Line struct {
	NewLine       int    `json:"newLine"`
	Justification int    `json:"justificationLine"`
	Text          string `json:"text"`
}

type Page struct {
	PageTime      int        `json:"pageTime"`
	Background    Color      `json:"pageBackgroundColor"`
	Spacing       int        `json:"spacingCharacter"`
	Justification int        `json:"justificationPage"`
	Font          int        `json:"font"`
	TextRect      Rect       `json:"textRectangle"`
	Graphic       GraphicRef `json:"graphic"`
	Foreground    Color      `json:"colorForeground"`
	Lines         []Line     `json:"lines"`
}

type Document struct {
	Pages []Page `json:"pages"`
}

func (d Document) Empty() bool {
	return len(d.Pages) == 0
}

var textEscaper = strings.NewReplacer("[", "[[", "]", "]]")

// Encode renders d. Every line carries its page's character spacing; a page
// without lines carries it in an empty [sc] block. Brackets in line text
// are doubled.
func Encode(d Document) string {
	var sb strings.Builder
	for i, p := range d.Pages {
		if i > 0 {
			sb.WriteString("[np]")
		}
		fmt.Fprintf(&sb, "[pt%do][pb%s][jp%d][fo%d][tr%s]",
			p.PageTime, joinInts(p.Background[:]), p.Justification, p.Font, joinInts(p.TextRect[:]))
		if !p.Graphic.IsZero() {
			fmt.Fprintf(&sb, "[g%s]", joinInts(p.Graphic[:]))
		}
		fmt.Fprintf(&sb, "[cf%s]", joinInts(p.Foreground[:]))
		if len(p.Lines) == 0 {
			fmt.Fprintf(&sb, "[sc%d][/sc]", p.Spacing)
		}
		for _, l := range p.Lines {
			fmt.Fprintf(&sb, "[nl%d][jl%d][sc%d]%s[/sc]", l.NewLine, l.Justification, p.Spacing, textEscaper.Replace(l.Text))
		}
	}
	return sb.String()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

type token struct {
	tag  bool
	body string
}

// scan splits s into bracket tags and the literal runs between them. "[["
// and "]]" are literal brackets. An unterminated tag stops the scan.
func scan(s string) ([]token, error) {
	var (
		out []token
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token{body: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(s); {
		switch {
		case s[i] == '[' && i+1 < len(s) && s[i+1] == '[':
			lit.WriteByte('[')
			i += 2
		case s[i] == ']' && i+1 < len(s) && s[i+1] == ']':
			lit.WriteByte(']')
			i += 2
		case s[i] == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				flush()
				return out, fmt.Errorf("%w: unterminated tag at %d", ErrMalformed, i)
			}
			flush()
			out = append(out, token{tag: true, body: s[i+1 : i+end]})
			i += end + 1
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flush()
	return out, nil
}

type decoder struct {
	doc   Document
	page  Page
	dirty bool
	line  *Line
	err   error
}

// Decode parses s into a Document. Malformed tags or numbers do not stop
// decoding; the partial document is returned with an error wrapping
// ErrMalformed. Unknown tags are skipped.
func Decode(s string) (Document, error) {
	tokens, err := scan(s)
	d := &decoder{err: err}
	for _, t := range tokens {
		if t.tag {
			d.tag(t.body)
		} else {
			d.text(t.body)
		}
	}
	d.flushPage()
	return d.doc, d.err
}

func (d *decoder) fail(tag string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: [%s]: %v", ErrMalformed, tag, err)
	}
}

func (d *decoder) flushLine() {
	if d.line != nil {
		d.page.Lines = append(d.page.Lines, *d.line)
		d.line = nil
	}
}

func (d *decoder) flushPage() {
	d.flushLine()
	if d.dirty {
		d.doc.Pages = append(d.doc.Pages, d.page)
	}
	d.page = Page{}
	d.dirty = false
}

func (d *decoder) text(s string) {
	if d.line == nil {
		d.line = &Line{}
	}
	d.line.Text = s
	d.dirty = true
	d.flushLine()
}

func (d *decoder) tag(body string) {
	if strings.IndexByte(body, '[') >= 0 {
		d.fail(body, errors.New("unescaped '['"))
		return
	}
	lower := strings.ToLower(body)
	switch {
	case lower == "/sc":
		// A line opened by [nl]/[jl] with no text is still a line.
		d.flushLine()
		return
	case lower == "np":
		d.dirty = true
		d.flushPage()
		return
	case strings.HasPrefix(lower, "nl"):
		d.flushLine()
		d.line = &Line{}
		d.line.NewLine = d.int(body, lower[2:])
	case strings.HasPrefix(lower, "jl"):
		if d.line == nil {
			d.line = &Line{}
		}
		d.line.Justification = d.int(body, lower[2:])
	case strings.HasPrefix(lower, "jp"):
		d.page.Justification = d.int(body, lower[2:])
	case strings.HasPrefix(lower, "pt"):
		on, _, _ := strings.Cut(lower[2:], "o")
		d.page.PageTime = d.int(body, on)
	case strings.HasPrefix(lower, "pb"):
		d.ints(body, lower[2:], d.page.Background[:])
	case strings.HasPrefix(lower, "sc"):
		d.page.Spacing = d.int(body, lower[2:])
	case strings.HasPrefix(lower, "fo"):
		// [fo n,version]; the version is not kept.
		n, _, _ := strings.Cut(lower[2:], ",")
		d.page.Font = d.int(body, n)
	case strings.HasPrefix(lower, "tr"):
		d.ints(body, lower[2:], d.page.TextRect[:])
	case strings.HasPrefix(lower, "cf"):
		d.ints(body, lower[2:], d.page.Foreground[:])
	case strings.HasPrefix(lower, "g"):
		d.ints(body, lower[1:], d.page.Graphic[:])
	default:
		return
	}
	d.dirty = true
}

func (d *decoder) int(tag, s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		d.fail(tag, err)
		return 0
	}
	return n
}

func (d *decoder) ints(tag, s string, dst []int) {
	parts := strings.Split(s, ",")
	if len(parts) != len(dst) {
		d.fail(tag, fmt.Errorf("want %d values, got %d", len(dst), len(parts)))
	}
	for i := 0; i < len(parts) && i < len(dst); i++ {
		dst[i] = d.int(tag, parts[i])
	}
}

// PlainText drops all tags and joins the non-blank literal runs with single
// spaces. Markup after an unterminated tag is dropped.
func PlainText(s string) string {
	tokens, _ := scan(s)
	var words []string
	for _, t := range tokens {
		if t.tag {
			continue
		}
		if w := strings.TrimSpace(t.body); w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}
