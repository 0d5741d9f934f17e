package scribe

import (
	"github.com/beevik/etree"
	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// xmlScribe handles the XML property of version 4.0 and the elements of
// foreign namespaces found in an xCard. Either way the value is a serialized
// XML element, which the xCard writer inserts as-is.
type xmlScribe struct {
	base
	versions
}

func newXML() *xmlScribe {
	return &xmlScribe{base: base{kind: vcard.KindXML, name: "XML"}, versions: versions{vcard.V4_0}}
}

func (s *xmlScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return vcard.TypeText
}

func (s *xmlScribe) WriteText(p vcard.Property, _ *WriteContext) (string, error) {
	x, err := cast[*vcard.XML](s, p)
	if err != nil {
		return "", err
	}
	return grammar.Escape(x.Value), nil
}

func (s *xmlScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	value = grammar.Unescape(value)
	if _, err := parseFragment(value); err != nil {
		return Fail(diag.CodeBadXML, err)
	}
	return Decoded(&vcard.XML{Value: value})
}

func parseFragment(value string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(value); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.E("parseFragment", errors.K.Invalid, "reason", "no root element")
	}
	return root, nil
}

// XMLFragment returns a copy of the element held by p.
func (s *xmlScribe) XMLFragment(p vcard.Property) (*etree.Element, error) {
	x, err := cast[*vcard.XML](s, p)
	if err != nil {
		return nil, err
	}
	root, err := parseFragment(x.Value)
	if err != nil {
		return nil, &WriteError{Name: s.name, Err: err}
	}
	return root.Copy(), nil
}

// WriteXML is only reached for an XML property that the writer could not
// insert as a fragment; the value is kept as text.
func (s *xmlScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	x, err := cast[*vcard.XML](s, p)
	if err != nil {
		return err
	}
	xmlAppend(el, string(vcard.TypeText), x.Value)
	return nil
}

// ParseXML serializes a foreign element. Its namespace declaration is copied
// onto the element when it was inherited from an ancestor.
func (s *xmlScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	c := el.Copy()
	if ns := NamespaceOf(el); ns != "" {
		key := "xmlns"
		if el.Space != "" {
			key = "xmlns:" + el.Space
		}
		if c.SelectAttr(key) == nil {
			c.CreateAttr(key, ns)
		}
	}
	doc := etree.NewDocument()
	doc.SetRoot(c)
	value, err := doc.WriteToString()
	if err != nil {
		return Fail(diag.CodeBadXML, err)
	}
	return Decoded(&vcard.XML{Value: value})
}
