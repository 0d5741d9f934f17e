package scribe

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

type telScribe struct {
	base
}

func newTel() *telScribe {
	return &telScribe{base{kind: vcard.KindTelephone, name: "TEL"}}
}

func (s *telScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return vcard.TypeText
}

func (s *telScribe) DataType(p vcard.Property, v vcard.Version) vcard.DataType {
	if t, ok := p.(*vcard.Telephone); ok && t.Text == "" && t.URI != "" && v == vcard.V4_0 {
		return vcard.TypeURI
	}
	return vcard.TypeText
}

func (s *telScribe) PrepareParameters(p vcard.Property, params *vcard.Parameters, ctx *WriteContext) {
	HandlePref(p, params, ctx)
}

func (s *telScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	t, err := cast[*vcard.Telephone](s, p)
	if err != nil {
		return "", err
	}
	if t.Text != "" || t.URI == "" {
		return grammar.Escape(t.Text), nil
	}
	if ctx.Version == vcard.V4_0 {
		return t.URI, nil
	}
	return grammar.Escape(telNumber(t.URI)), nil
}

func (s *telScribe) ParseText(value string, dt vcard.DataType, _ *vcard.Parameters, ctx *ParseContext) Result {
	value = grammar.Unescape(value)
	if ctx.Version == vcard.V4_0 && (dt == vcard.TypeURI || strings.HasPrefix(strings.ToLower(value), "tel:")) {
		return Decoded(&vcard.Telephone{URI: value})
	}
	return Decoded(&vcard.Telephone{Text: value})
}

func (s *telScribe) WriteXML(p vcard.Property, el *etree.Element, ctx *WriteContext) error {
	t, err := cast[*vcard.Telephone](s, p)
	if err != nil {
		return err
	}
	if t.Text == "" && t.URI != "" {
		xmlAppend(el, string(vcard.TypeURI), t.URI)
		return nil
	}
	xmlAppend(el, string(vcard.TypeText), t.Text)
	return nil
}

func (s *telScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	if uri, ok := xmlFirst(el, string(vcard.TypeURI)); ok {
		return Decoded(&vcard.Telephone{URI: uri})
	}
	text, _ := xmlFirst(el, string(vcard.TypeText))
	return Decoded(&vcard.Telephone{Text: text})
}

func (s *telScribe) ParseHTML(el *HTMLElement, params *vcard.Parameters, _ *ParseContext) Result {
	for _, t := range el.Types() {
		params.AddType(t)
	}
	if href := el.Attr("href"); strings.HasPrefix(strings.ToLower(href), "tel:") {
		return Decoded(&vcard.Telephone{Text: telNumber(href)})
	}
	return Decoded(&vcard.Telephone{Text: el.Value()})
}

func (s *telScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	t, err := cast[*vcard.Telephone](s, p)
	if err != nil {
		return nil, err
	}
	number := t.Text
	if number == "" {
		number = telNumber(t.URI)
	}
	n := Element(atom.Div, "tel", "")
	appendTypes(n, &t.Params)
	n.AppendChild(Element(atom.Span, "value", number))
	return n, nil
}

// telNumber extracts the number of a tel URI, dropping its parameters.
func telNumber(uri string) string {
	n := uri
	if len(n) >= 4 && strings.EqualFold(n[:4], "tel:") {
		n = n[4:]
	}
	if i := strings.IndexByte(n, ';'); i >= 0 {
		n = n[:i]
	}
	return n
}
