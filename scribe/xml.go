package scribe

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// XMLScribe is implemented by scribes with their own xCard representation.
// WriteXML fills el, the property element already created by the writer.
// ParseXML reads the property element; its parameters have been read
// already.
type XMLScribe interface {
	WriteXML(p vcard.Property, el *etree.Element, ctx *WriteContext) error
	ParseXML(el *etree.Element, params *vcard.Parameters, ctx *ParseContext) Result
}

// XMLFragmenter is implemented by scribes of opaque XML properties. The
// returned element is added to the record as-is, without a property element
// or parameters.
type XMLFragmenter interface {
	XMLFragment(p vcard.Property) (*etree.Element, error)
}

const (
	elemParameters = "parameters"
	elemUnknown    = "unknown"
)

// NamespaceOf resolves the namespace URI of el from the xmlns declarations on
// el and its ancestors.
func NamespaceOf(el *etree.Element) string {
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if el.Space == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if el.Space != "" && a.Space == "xmlns" && a.Key == el.Space {
				return a.Value
			}
		}
	}
	return ""
}

// VCardChildren returns the child elements of el in the vCard namespace.
func VCardChildren(el *etree.Element) []*etree.Element {
	var children []*etree.Element
	for _, c := range el.ChildElements() {
		if NamespaceOf(c) == vcard.Namespace {
			children = append(children, c)
		}
	}
	return children
}

// xmlValues returns the text of every vCard child of el named name.
func xmlValues(el *etree.Element, name string) []string {
	var values []string
	for _, c := range VCardChildren(el) {
		if c.Tag == name {
			values = append(values, c.Text())
		}
	}
	return values
}

// xmlFirst returns the text of the first vCard child of el with one of the
// given names.
func xmlFirst(el *etree.Element, names ...string) (string, bool) {
	for _, c := range VCardChildren(el) {
		for _, n := range names {
			if c.Tag == n {
				return c.Text(), true
			}
		}
	}
	return "", false
}

// xmlValue returns the first value element of a property element with its
// data type. A property element without value elements yields its own text.
func xmlValue(el *etree.Element) (vcard.DataType, string) {
	for _, c := range VCardChildren(el) {
		if c.Tag == elemParameters {
			continue
		}
		if c.Tag == elemUnknown {
			return "", c.Text()
		}
		dt, _ := vcard.ParseDataType(c.Tag)
		return dt, c.Text()
	}
	return "", strings.TrimSpace(el.Text())
}

// xmlAppend adds one child element per value. Without values a single empty
// element is added, since xCard requires the element to be present.
func xmlAppend(el *etree.Element, name string, values ...string) {
	if len(values) == 0 {
		values = []string{""}
	}
	for _, v := range values {
		el.CreateElement(name).SetText(v)
	}
}

func dataTypeElement(dt vcard.DataType) string {
	if dt == "" {
		return elemUnknown
	}
	return string(dt)
}

// WriteXML fills the property element el. The default writes the unescaped
// text value of version 4.0 in an element named after its data type.
func WriteXML(s Scribe, p vcard.Property, el *etree.Element, ctx *WriteContext) error {
	if xs, ok := s.(XMLScribe); ok {
		return xs.WriteXML(p, el, ctx)
	}
	ctx = at(ctx, vcard.V4_0)
	text, err := s.WriteText(p, ctx)
	if err != nil {
		return err
	}
	xmlAppend(el, dataTypeElement(DataType(s, p, vcard.V4_0)), grammar.Unescape(text))
	return nil
}

// ParseXML decodes a property element. The default parses the escaped text
// of the first value element.
func ParseXML(s Scribe, el *etree.Element, params *vcard.Parameters, ctx *ParseContext) Result {
	if xs, ok := s.(XMLScribe); ok {
		return xs.ParseXML(el, params, ctx)
	}
	dt, value := xmlValue(el)
	if dt == "" {
		dt = s.DefaultDataType(vcard.V4_0)
	}
	return s.ParseText(grammar.Escape(value), dt, params, ctx)
}
