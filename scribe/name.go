package scribe

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// nameScribe handles N.
type nameScribe struct {
	base
}

func newName() *nameScribe {
	return &nameScribe{base{kind: vcard.KindStructuredName, name: "N"}}
}

func (s *nameScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return vcard.TypeText
}

func (s *nameScribe) components(n *vcard.StructuredName) [][]string {
	return [][]string{single(n.Family), single(n.Given), n.Additional, n.Prefixes, n.Suffixes}
}

func (s *nameScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	n, err := cast[*vcard.StructuredName](s, p)
	if err != nil {
		return "", err
	}
	if ctx.Version == vcard.V2_1 {
		return grammar.JoinSemiStructured(flatten(s.components(n)), false, ctx.TrailingSemicolons), nil
	}
	return grammar.JoinStructured(s.components(n), ctx.TrailingSemicolons), nil
}

func (s *nameScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, ctx *ParseContext) Result {
	n := &vcard.StructuredName{}
	if ctx.Version == vcard.V2_1 {
		it := grammar.ParseSemiStructured(value, -1)
		n.Family = it.NextString()
		n.Given = it.NextString()
		n.Additional = optional(it.NextValue())
		n.Prefixes = optional(it.NextValue())
		n.Suffixes = optional(it.NextValue())
		return Decoded(n)
	}
	s.fill(n, grammar.ParseStructured(value))
	return Decoded(n)
}

func (s *nameScribe) fill(n *vcard.StructuredName, it *grammar.StructuredIterator) {
	n.Family = it.NextString()
	n.Given = it.NextString()
	n.Additional = it.NextComponent()
	n.Prefixes = it.NextComponent()
	n.Suffixes = it.NextComponent()
}

func (s *nameScribe) WriteJSON(p vcard.Property, _ *WriteContext) (JSONValue, error) {
	n, err := cast[*vcard.StructuredName](s, p)
	if err != nil {
		return nil, err
	}
	return StructuredJSON(s.components(n)), nil
}

func (s *nameScribe) ParseJSON(value JSONValue, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	n := &vcard.StructuredName{}
	s.fill(n, grammar.NewStructuredIterator(value.Structured()))
	return Decoded(n)
}

var nameElements = []string{"surname", "given", "additional", "prefix", "suffix"}

func (s *nameScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	n, err := cast[*vcard.StructuredName](s, p)
	if err != nil {
		return err
	}
	for i, c := range s.components(n) {
		xmlAppend(el, nameElements[i], nonEmpty(c)...)
	}
	return nil
}

func (s *nameScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	components := make([][]string, len(nameElements))
	for i, name := range nameElements {
		components[i] = nonEmpty(xmlValues(el, name))
	}
	n := &vcard.StructuredName{}
	s.fill(n, grammar.NewStructuredIterator(components))
	return Decoded(n)
}

var nameClasses = []string{"family-name", "given-name", "additional-name", "honorific-prefix", "honorific-suffix"}

func (s *nameScribe) ParseHTML(el *HTMLElement, _ *vcard.Parameters, _ *ParseContext) Result {
	components := make([][]string, len(nameClasses))
	for i, class := range nameClasses {
		components[i] = el.AllValues(class)
	}
	n := &vcard.StructuredName{}
	s.fill(n, grammar.NewStructuredIterator(components))
	return Decoded(n)
}

func (s *nameScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	n, err := cast[*vcard.StructuredName](s, p)
	if err != nil {
		return nil, err
	}
	return structuredHTML(Element(atom.Div, "n", ""), nameClasses, s.components(n)), nil
}

// structuredHTML appends one span per component value to n.
func structuredHTML(n *html.Node, classes []string, components [][]string) *html.Node {
	first := true
	for i, c := range components {
		for _, v := range c {
			if v == "" {
				continue
			}
			if !first {
				n.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
			}
			first = false
			n.AppendChild(Element(atom.Span, classes[i], v))
		}
	}
	return n
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func optional(v string, ok bool) []string {
	if !ok {
		return nil
	}
	return []string{v}
}

// flatten joins the sub-values of every component with commas, for the
// semi-structured values of version 2.1.
func flatten(components [][]string) []string {
	values := make([]string, len(components))
	for i, c := range components {
		values[i] = strings.Join(c, ",")
	}
	return values
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
