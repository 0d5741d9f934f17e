package scribe

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/eluv-io/utc-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
)

// timestampScribe handles REV.
type timestampScribe struct {
	base
}

func newTimestamp() *timestampScribe {
	return &timestampScribe{base{kind: vcard.KindRevision, name: "REV"}}
}

func (s *timestampScribe) DefaultDataType(v vcard.Version) vcard.DataType {
	switch v {
	case vcard.V3_0:
		return vcard.TypeDateTime
	case vcard.V4_0:
		return vcard.TypeTimestamp
	}
	return ""
}

var timestampLayouts = []string{
	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405Z07",
	"20060102T150405",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"20060102",
	"2006-01-02",
}

func parseTimestamp(value string) (utc.UTC, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := utc.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return utc.Zero, false
}

func (s *timestampScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	ts, err := cast[*vcard.Timestamp](s, p)
	if err != nil {
		return "", err
	}
	if ctx.Version == vcard.V3_0 {
		return ts.Time.Format(layoutExtendedDateTime), nil
	}
	return ts.Time.Format(layoutBasicDateTime), nil
}

func (s *timestampScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	t, ok := parseTimestamp(value)
	if !ok {
		return Fail(diag.CodeBadTimestamp, value)
	}
	return Decoded(&vcard.Timestamp{Time: t})
}

func (s *timestampScribe) WriteJSON(p vcard.Property, _ *WriteContext) (JSONValue, error) {
	ts, err := cast[*vcard.Timestamp](s, p)
	if err != nil {
		return nil, err
	}
	return SingleJSON(ts.Time.Format(layoutExtendedDateTime)), nil
}

func (s *timestampScribe) ParseJSON(value JSONValue, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result {
	return s.ParseText(value.String(), dt, params, ctx)
}

func (s *timestampScribe) WriteXML(p vcard.Property, el *etree.Element, ctx *WriteContext) error {
	text, err := s.WriteText(p, at(ctx, vcard.V4_0))
	if err != nil {
		return err
	}
	xmlAppend(el, string(vcard.TypeTimestamp), text)
	return nil
}

func (s *timestampScribe) ParseXML(el *etree.Element, params *vcard.Parameters, ctx *ParseContext) Result {
	dt, value := xmlValue(el)
	return s.ParseText(value, dt, params, ctx)
}
