package scribe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// dateScribe handles BDAY, ANNIVERSARY and DEATHDATE. A value is a full date
// with an optional time, a reduced-precision date (4.0 only) or free text
// (4.0 only).
type dateScribe struct {
	base
	versions
}

func newDate(kind vcard.Kind, name string, vs versions) *dateScribe {
	return &dateScribe{base: base{kind: kind, name: name}, versions: vs}
}

func (s *dateScribe) DefaultDataType(v vcard.Version) vcard.DataType {
	if v == vcard.V4_0 {
		return vcard.TypeDateAndOrTime
	}
	return vcard.TypeDate
}

func (s *dateScribe) DataType(p vcard.Property, v vcard.Version) vcard.DataType {
	d, ok := p.(*vcard.DateOrTime)
	if !ok {
		return s.DefaultDataType(v)
	}
	switch v {
	case vcard.V4_0:
		if d.Text != "" && d.Partial == nil && d.Date.IsZero() {
			return vcard.TypeText
		}
		return vcard.TypeDateAndOrTime
	case vcard.V3_0:
		if d.HasTime {
			return vcard.TypeDateTime
		}
	}
	return vcard.TypeDate
}

// Date layouts, tried in order. Values without an offset are read as UTC.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405Z07",
	"20060102T150405",
	"20060102T1504Z0700",
	"20060102T1504",
	"2006-01-02",
	"20060102",
}

const (
	layoutBasicDate        = "20060102"
	layoutBasicDateTime    = "20060102T150405Z"
	layoutExtendedDate     = "2006-01-02"
	layoutExtendedDateTime = "2006-01-02T15:04:05Z"
)

// partialDate matches the reduced-precision forms of RFC 6350 in basic or
// extended format.
var partialDate = regexp.MustCompile(`^` +
	`(?:(\d{4})-?(\d{2})-?(\d{2})|(\d{4})-(\d{2})|(\d{4})|--(\d{2})-?(\d{2})|--(\d{2})|---(\d{2}))?` +
	`(?:T(?:(\d{2})(?::?(\d{2})(?::?(\d{2}))?)?|-(\d{2})(?::?(\d{2}))?|--(\d{2}))` +
	`(Z|[+-]\d{2}(?::?\d{2})?)?)?$`)

// parseFullDate parses a complete date or date-time.
func parseFullDate(value string) (t time.Time, withTime bool, ok bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, strings.Contains(layout, "T"), true
		}
	}
	return time.Time{}, false, false
}

// parsePartialDate parses a reduced-precision date.
func parsePartialDate(value string) (vcard.PartialDate, bool) {
	m := partialDate.FindStringSubmatch(value)
	if m == nil || value == "" {
		return vcard.PartialDate{}, false
	}
	p := vcard.NewPartialDate()
	field := func(indices ...int) int {
		for _, i := range indices {
			if m[i] != "" {
				n, _ := strconv.Atoi(m[i])
				return n
			}
		}
		return vcard.Unset
	}
	p.Year = field(1, 4, 6)
	p.Month = field(2, 5, 7, 9)
	p.Day = field(3, 8, 10)
	p.Hour = field(11)
	p.Minute = field(12, 14)
	p.Second = field(13, 15, 16)
	p.Offset = strings.ReplaceAll(m[17], ":", "")
	if !p.HasDate() && !p.HasTime() {
		return vcard.PartialDate{}, false
	}
	return p, true
}

// formatPartialDate renders p in basic format, or in the extended format of
// the JSON syntax.
func formatPartialDate(p vcard.PartialDate, extended bool) string {
	var b strings.Builder
	sep := func(s string) {
		if extended {
			b.WriteString(s)
		}
	}
	two := func(n int) { fmt.Fprintf(&b, "%02d", n) }
	switch {
	case p.Year != vcard.Unset && p.Month != vcard.Unset && p.Day != vcard.Unset:
		fmt.Fprintf(&b, "%04d", p.Year)
		sep("-")
		two(p.Month)
		sep("-")
		two(p.Day)
	case p.Year != vcard.Unset && p.Month != vcard.Unset:
		fmt.Fprintf(&b, "%04d-%02d", p.Year, p.Month)
	case p.Year != vcard.Unset:
		fmt.Fprintf(&b, "%04d", p.Year)
	case p.Month != vcard.Unset && p.Day != vcard.Unset:
		b.WriteString("--")
		two(p.Month)
		sep("-")
		two(p.Day)
	case p.Month != vcard.Unset:
		b.WriteString("--")
		two(p.Month)
	case p.Day != vcard.Unset:
		b.WriteString("---")
		two(p.Day)
	}
	if !p.HasTime() {
		return b.String()
	}
	b.WriteString("T")
	switch {
	case p.Hour != vcard.Unset:
		two(p.Hour)
		if p.Minute != vcard.Unset {
			sep(":")
			two(p.Minute)
			if p.Second != vcard.Unset {
				sep(":")
				two(p.Second)
			}
		}
	case p.Minute != vcard.Unset:
		b.WriteString("-")
		two(p.Minute)
		if p.Second != vcard.Unset {
			sep(":")
			two(p.Second)
		}
	default:
		b.WriteString("--")
		two(p.Second)
	}
	offset := p.Offset
	if extended && len(offset) == 5 {
		offset = offset[:3] + ":" + offset[3:]
	}
	b.WriteString(offset)
	return b.String()
}

func (s *dateScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	d, err := cast[*vcard.DateOrTime](s, p)
	if err != nil {
		return "", err
	}
	return s.format(d, ctx.Version, ctx.Version == vcard.V3_0)
}

func (s *dateScribe) format(d *vcard.DateOrTime, v vcard.Version, extended bool) (string, error) {
	switch {
	case !d.Date.IsZero():
		layout := layoutBasicDate
		switch {
		case extended && d.HasTime:
			layout = layoutExtendedDateTime
		case extended:
			layout = layoutExtendedDate
		case d.HasTime:
			layout = layoutBasicDateTime
		}
		return d.Date.UTC().Format(layout), nil
	case d.Partial != nil:
		if v != vcard.V4_0 {
			return "", Skipf(s.kind, diag.CodeSkipped, "reduced-precision dates require version 4.0")
		}
		return formatPartialDate(*d.Partial, extended), nil
	case d.Text != "":
		if v != vcard.V4_0 {
			return "", Skipf(s.kind, diag.CodeTextDateUnsupported)
		}
		return grammar.Escape(d.Text), nil
	}
	return "", nil
}

func (s *dateScribe) ParseText(value string, dt vcard.DataType, _ *vcard.Parameters, ctx *ParseContext) Result {
	if ctx.Version == vcard.V4_0 && dt == vcard.TypeText {
		return Decoded(vcard.NewDateText(s.kind, grammar.Unescape(value)))
	}
	return s.parse(strings.TrimSpace(value), ctx)
}

func (s *dateScribe) parse(value string, ctx *ParseContext) Result {
	if t, withTime, ok := parseFullDate(value); ok {
		return Decoded(vcard.NewDate(s.kind, t, withTime))
	}
	if ctx.Version == vcard.V4_0 {
		if p, ok := parsePartialDate(value); ok {
			return Decoded(vcard.NewPartial(s.kind, p))
		}
		ctx.Warn(diag.CodeUnparseableDate, value)
		return Decoded(vcard.NewDateText(s.kind, grammar.Unescape(value)))
	}
	return Fail(diag.CodeParseFailed, fmt.Sprintf("invalid date %q", value))
}

func (s *dateScribe) WriteJSON(p vcard.Property, ctx *WriteContext) (JSONValue, error) {
	d, err := cast[*vcard.DateOrTime](s, p)
	if err != nil {
		return nil, err
	}
	if d.Text != "" && d.Partial == nil && d.Date.IsZero() {
		return SingleJSON(d.Text), nil
	}
	v, err := s.format(d, vcard.V4_0, true)
	if err != nil {
		return nil, err
	}
	return SingleJSON(v), nil
}

func (s *dateScribe) ParseJSON(value JSONValue, dt vcard.DataType, _ *vcard.Parameters, ctx *ParseContext) Result {
	if dt == vcard.TypeText {
		return Decoded(vcard.NewDateText(s.kind, value.String()))
	}
	return s.parse(strings.TrimSpace(value.String()), ctx)
}

func (s *dateScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	d, err := cast[*vcard.DateOrTime](s, p)
	if err != nil {
		return err
	}
	if d.Text != "" && d.Partial == nil && d.Date.IsZero() {
		xmlAppend(el, string(vcard.TypeText), d.Text)
		return nil
	}
	v, err := s.format(d, vcard.V4_0, false)
	if err != nil {
		return err
	}
	name := vcard.TypeDate
	switch {
	case d.Partial != nil && d.Partial.HasTime() && d.Partial.HasDate():
		name = vcard.TypeDateTime
	case d.Partial != nil && d.Partial.HasTime():
		name = vcard.TypeTime
	case d.Partial == nil && d.HasTime:
		name = vcard.TypeDateTime
	}
	xmlAppend(el, string(name), v)
	return nil
}

func (s *dateScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, ctx *ParseContext) Result {
	dt, value := xmlValue(el)
	if dt == vcard.TypeText {
		return Decoded(vcard.NewDateText(s.kind, value))
	}
	return s.parse(strings.TrimSpace(value), ctx)
}

func (s *dateScribe) ParseHTML(el *HTMLElement, _ *vcard.Parameters, ctx *ParseContext) Result {
	value := el.Value()
	if el.Node.DataAtom == atom.Time {
		if dt := el.Attr("datetime"); dt != "" {
			value = dt
		}
	}
	return s.parse(strings.TrimSpace(value), ctx)
}

func (s *dateScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	d, err := cast[*vcard.DateOrTime](s, p)
	if err != nil {
		return nil, err
	}
	class := HTMLClass(s)
	if d.Date.IsZero() && d.Partial == nil {
		return Element(atom.Span, class, d.Text), nil
	}
	v, err := s.format(d, vcard.V4_0, true)
	if err != nil {
		return nil, err
	}
	n := Element(atom.Time, class, v)
	SetAttr(n, "datetime", v)
	return n, nil
}
