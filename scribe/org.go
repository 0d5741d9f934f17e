package scribe

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// orgScribe handles ORG, a semi-structured value of the organization name
// followed by its units.
type orgScribe struct {
	base
}

func newOrg() *orgScribe {
	return &orgScribe{base{kind: vcard.KindOrganization, name: "ORG"}}
}

func (s *orgScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return vcard.TypeText
}

func (s *orgScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	o, err := cast[*vcard.Organization](s, p)
	if err != nil {
		return "", err
	}
	return grammar.JoinSemiStructured(o.Values, ctx.Version != vcard.V2_1, ctx.TrailingSemicolons), nil
}

func (s *orgScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	o := &vcard.Organization{}
	it := grammar.ParseSemiStructured(value, -1)
	for it.HasNext() {
		o.Values = append(o.Values, it.NextString())
	}
	return Decoded(o)
}

func (s *orgScribe) WriteJSON(p vcard.Property, _ *WriteContext) (JSONValue, error) {
	o, err := cast[*vcard.Organization](s, p)
	if err != nil {
		return nil, err
	}
	switch len(o.Values) {
	case 0:
		return SingleJSON(""), nil
	case 1:
		return SingleJSON(o.Values[0]), nil
	}
	components := make([][]string, len(o.Values))
	for i, v := range o.Values {
		components[i] = []string{v}
	}
	return StructuredJSON(components), nil
}

func (s *orgScribe) ParseJSON(value JSONValue, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	o := &vcard.Organization{}
	if value.IsStructured() {
		for _, c := range value.Structured() {
			o.Values = append(o.Values, strings.Join(c, ","))
		}
		return Decoded(o)
	}
	o.Values = value.List()
	return Decoded(o)
}

func (s *orgScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	o, err := cast[*vcard.Organization](s, p)
	if err != nil {
		return err
	}
	xmlAppend(el, string(vcard.TypeText), o.Values...)
	return nil
}

func (s *orgScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	return Decoded(&vcard.Organization{Values: xmlValues(el, string(vcard.TypeText))})
}

func (s *orgScribe) ParseHTML(el *HTMLElement, _ *vcard.Parameters, _ *ParseContext) Result {
	o := &vcard.Organization{}
	name, ok := el.FirstValue("organization-name")
	if !ok {
		o.Values = []string{el.Value()}
		return Decoded(o)
	}
	o.Values = append([]string{name}, el.AllValues("organization-unit")...)
	return Decoded(o)
}

func (s *orgScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	o, err := cast[*vcard.Organization](s, p)
	if err != nil {
		return nil, err
	}
	n := Element(atom.Div, "org", "")
	for i, v := range o.Values {
		class := "organization-unit"
		if i == 0 {
			class = "organization-name"
		} else {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
		}
		n.AppendChild(Element(atom.Span, class, v))
	}
	return n, nil
}
