// Package xcard reads and writes the XML representation of vCards defined by
// RFC 6351 (xCard). xCard only exists for version 4.0.
//
//	<vcards xmlns="urn:ietf:params:xml:ns:vcard-4.0">
//	  <vcard>
//	    <fn><text>John Doe</text></fn>
//	    <group name="item1">
//	      <email>
//	        <parameters><type><text>work</text></type></parameters>
//	        <text>john@example.com</text>
//	      </email>
//	    </group>
//	  </vcard>
//	</vcards>
//
// Elements of other namespaces are kept as XML properties and written back
// unchanged.
package xcard

import (
	"bytes"

	"github.com/KimNorgaard/go-vcard"
)

const (
	elemVCards     = "vcards"
	elemVCard      = "vcard"
	elemGroup      = "group"
	elemParameters = "parameters"
	attrName       = "name"
)

// parameterTypes holds the value element of parameters whose value is not
// text.
var parameterTypes = map[string]vcard.DataType{
	vcard.ParamPref: vcard.TypeInteger,
	"LANGUAGE":      vcard.TypeLanguageTag,
	"GEO":           vcard.TypeURI,
}

func parameterType(name string) string {
	if dt, ok := parameterTypes[name]; ok {
		return string(dt)
	}
	return string(vcard.TypeText)
}

// Marshal returns an xCard document holding cards.
func Marshal(cards ...*vcard.VCard) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, card := range cards {
		if err := w.Write(card); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses all records of the xCard document in data.
func Unmarshal(data []byte, opts ...Option) ([]*vcard.VCard, error) {
	return NewReader(bytes.NewReader(data), opts...).ReadAll()
}
