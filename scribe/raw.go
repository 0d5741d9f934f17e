package scribe

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/KimNorgaard/go-vcard"
)

// rawScribe handles a property no other scribe claims. The value is kept as
// written, escapes included, so that it survives a round trip through the
// text syntax unchanged.
type rawScribe struct {
	base
}

// NewRawScribe returns a scribe for the extended or unknown property name.
func NewRawScribe(name string) Scribe {
	return &rawScribe{base{kind: vcard.KindRaw, name: strings.ToUpper(name)}}
}

func (s *rawScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return ""
}

func (s *rawScribe) DataType(p vcard.Property, _ vcard.Version) vcard.DataType {
	if r, ok := p.(*vcard.Raw); ok {
		return r.DataType
	}
	return ""
}

func (s *rawScribe) WriteText(p vcard.Property, _ *WriteContext) (string, error) {
	r, err := cast[*vcard.Raw](s, p)
	if err != nil {
		return "", err
	}
	return r.Value, nil
}

func (s *rawScribe) ParseText(value string, dt vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	return Decoded(&vcard.Raw{Name: s.name, Value: value, DataType: dt})
}

func (s *rawScribe) WriteJSON(p vcard.Property, _ *WriteContext) (JSONValue, error) {
	r, err := cast[*vcard.Raw](s, p)
	if err != nil {
		return nil, err
	}
	return SingleJSON(r.Value), nil
}

func (s *rawScribe) ParseJSON(value JSONValue, dt vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	if dt == vcard.TypeUnknown {
		dt = ""
	}
	v := value.String()
	if len(value) > 1 || value.IsStructured() {
		v = value.TextProjection()
	}
	return Decoded(&vcard.Raw{Name: s.name, Value: v, DataType: dt})
}

func (s *rawScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	r, err := cast[*vcard.Raw](s, p)
	if err != nil {
		return err
	}
	xmlAppend(el, dataTypeElement(r.DataType), r.Value)
	return nil
}

func (s *rawScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	dt, value := xmlValue(el)
	return Decoded(&vcard.Raw{Name: s.name, Value: value, DataType: dt})
}

