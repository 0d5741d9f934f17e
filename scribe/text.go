package scribe

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// textScribe handles the properties holding one text or URI value.
type textScribe struct {
	base
	versions
	dataTypes map[vcard.Version]vcard.DataType
	pref      bool
}

// NewTextScribe returns a scribe for a single-valued text property, for use
// with extension properties. dt is the default data type in every version.
func NewTextScribe(kind vcard.Kind, name string, dt vcard.DataType) Scribe {
	return &textScribe{
		base:      base{kind: kind, name: strings.ToUpper(name)},
		dataTypes: map[vcard.Version]vcard.DataType{vcard.V2_1: dt, vcard.V3_0: dt, vcard.V4_0: dt},
	}
}

func newText(kind vcard.Kind, name string, vs versions) *textScribe {
	return &textScribe{base: base{kind: kind, name: name}, versions: vs}
}

// withTypes sets the default data type per version, oldest first.
func (s *textScribe) withTypes(v21, v30, v40 vcard.DataType) *textScribe {
	s.dataTypes = map[vcard.Version]vcard.DataType{vcard.V2_1: v21, vcard.V3_0: v30, vcard.V4_0: v40}
	return s
}

func (s *textScribe) withPref() *textScribe {
	s.pref = true
	return s
}

func (s *textScribe) DefaultDataType(v vcard.Version) vcard.DataType {
	if dt, ok := s.dataTypes[v]; ok {
		return dt
	}
	return vcard.TypeText
}

func (s *textScribe) WriteText(p vcard.Property, _ *WriteContext) (string, error) {
	t, err := cast[*vcard.Text](s, p)
	if err != nil {
		return "", err
	}
	return grammar.Escape(t.Value), nil
}

func (s *textScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	return Decoded(vcard.NewText(s.kind, grammar.Unescape(value)))
}

func (s *textScribe) PrepareParameters(p vcard.Property, params *vcard.Parameters, ctx *WriteContext) {
	if s.pref {
		HandlePref(p, params, ctx)
	}
}

func (s *textScribe) ParseHTML(el *HTMLElement, params *vcard.Parameters, _ *ParseContext) Result {
	value := el.Value()
	switch s.kind {
	case vcard.KindEmail:
		if href := el.Attr("href"); strings.HasPrefix(strings.ToLower(href), "mailto:") {
			value = href[len("mailto:"):]
			if i := strings.IndexByte(value, '?'); i >= 0 {
				value = value[:i]
			}
		}
	case vcard.KindURL, vcard.KindSource:
		if href := el.AbsURL("href"); href != "" {
			value = href
		}
	}
	for _, t := range el.Types() {
		params.AddType(t)
	}
	return Decoded(vcard.NewText(s.kind, value))
}

func (s *textScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	t, err := cast[*vcard.Text](s, p)
	if err != nil {
		return nil, err
	}
	class := HTMLClass(s)
	switch s.kind {
	case vcard.KindEmail:
		n := Element(atom.A, class, "")
		SetAttr(n, "href", "mailto:"+t.Value)
		appendTypes(n, &t.Params)
		appendText(n, t.Value)
		return n, nil
	case vcard.KindURL, vcard.KindSource:
		n := Element(atom.A, class, t.Value)
		SetAttr(n, "href", t.Value)
		return n, nil
	}
	return Element(atom.Div, class, t.Value), nil
}

// listScribe handles the comma-separated list properties.
type listScribe struct {
	base
	versions
}

func newList(kind vcard.Kind, name string, vs versions) *listScribe {
	return &listScribe{base: base{kind: kind, name: name}, versions: vs}
}

func (s *listScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return vcard.TypeText
}

func (s *listScribe) WriteText(p vcard.Property, _ *WriteContext) (string, error) {
	l, err := cast[*vcard.List](s, p)
	if err != nil {
		return "", err
	}
	return grammar.JoinList(l.Values), nil
}

func (s *listScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	return Decoded(vcard.NewList(s.kind, grammar.SplitList(value)...))
}

func (s *listScribe) WriteJSON(p vcard.Property, _ *WriteContext) (JSONValue, error) {
	l, err := cast[*vcard.List](s, p)
	if err != nil {
		return nil, err
	}
	if len(l.Values) == 0 {
		return SingleJSON(""), nil
	}
	return ListJSON(l.Values), nil
}

func (s *listScribe) ParseJSON(value JSONValue, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	var values []string
	for _, v := range value.List() {
		if v != "" {
			values = append(values, v)
		}
	}
	return Decoded(vcard.NewList(s.kind, values...))
}

func (s *listScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	l, err := cast[*vcard.List](s, p)
	if err != nil {
		return err
	}
	xmlAppend(el, string(vcard.TypeText), l.Values...)
	return nil
}

func (s *listScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	return Decoded(vcard.NewList(s.kind, xmlValues(el, string(vcard.TypeText))...))
}

// ParseHTML reads one list item; every item has its own element in hCard.
func (s *listScribe) ParseHTML(el *HTMLElement, _ *vcard.Parameters, _ *ParseContext) Result {
	return Decoded(vcard.NewList(s.kind, el.Value()))
}
