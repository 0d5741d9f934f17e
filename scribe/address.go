package scribe

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// addressScribe handles ADR. The mailing label lives in the LABEL parameter,
// which only exists in version 4.0; the text writer turns it into a LABEL
// property for the older versions.
type addressScribe struct {
	base
}

func newAddress() *addressScribe {
	return &addressScribe{base{kind: vcard.KindAddress, name: "ADR"}}
}

func (s *addressScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return vcard.TypeText
}

func (s *addressScribe) PrepareParameters(p vcard.Property, params *vcard.Parameters, ctx *WriteContext) {
	HandlePref(p, params, ctx)
	if ctx.Version != vcard.V4_0 {
		params.Remove(vcard.ParamLabel)
	}
}

func (s *addressScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	a, err := cast[*vcard.Address](s, p)
	if err != nil {
		return "", err
	}
	if ctx.Version == vcard.V2_1 {
		return grammar.JoinSemiStructured(flatten(a.Components()), false, ctx.TrailingSemicolons), nil
	}
	return grammar.JoinStructured(a.Components(), ctx.TrailingSemicolons), nil
}

func (s *addressScribe) ParseText(value string, _ vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result {
	a := &vcard.Address{}
	switch ctx.Version {
	case vcard.V2_1:
		it := grammar.ParseSemiStructured(value, -1)
		a.POBoxes = optional(it.NextValue())
		a.ExtendedAddresses = optional(it.NextValue())
		a.StreetAddresses = optional(it.NextValue())
		a.Localities = optional(it.NextValue())
		a.Regions = optional(it.NextValue())
		a.PostalCodes = optional(it.NextValue())
		a.Countries = optional(it.NextValue())
	default:
		fillAddress(a, grammar.ParseStructured(value))
	}
	if ctx.Version == vcard.V4_0 {
		if label := params.Label(); strings.Contains(label, `\n`) {
			params.Set(vcard.ParamLabel, strings.ReplaceAll(label, `\n`, "\n"))
		}
	}
	return Decoded(a)
}

func fillAddress(a *vcard.Address, it *grammar.StructuredIterator) {
	a.POBoxes = it.NextComponent()
	a.ExtendedAddresses = it.NextComponent()
	a.StreetAddresses = it.NextComponent()
	a.Localities = it.NextComponent()
	a.Regions = it.NextComponent()
	a.PostalCodes = it.NextComponent()
	a.Countries = it.NextComponent()
}

func (s *addressScribe) WriteJSON(p vcard.Property, _ *WriteContext) (JSONValue, error) {
	a, err := cast[*vcard.Address](s, p)
	if err != nil {
		return nil, err
	}
	return StructuredJSON(a.Components()), nil
}

func (s *addressScribe) ParseJSON(value JSONValue, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	a := &vcard.Address{}
	fillAddress(a, grammar.NewStructuredIterator(value.Structured()))
	return Decoded(a)
}

var addressElements = []string{"pobox", "ext", "street", "locality", "region", "code", "country"}

func (s *addressScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	a, err := cast[*vcard.Address](s, p)
	if err != nil {
		return err
	}
	for i, c := range a.Components() {
		xmlAppend(el, addressElements[i], nonEmpty(c)...)
	}
	return nil
}

func (s *addressScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	components := make([][]string, len(addressElements))
	for i, name := range addressElements {
		components[i] = nonEmpty(xmlValues(el, name))
	}
	a := &vcard.Address{}
	fillAddress(a, grammar.NewStructuredIterator(components))
	return Decoded(a)
}

var addressClasses = []string{
	"post-office-box", "extended-address", "street-address", "locality",
	"region", "postal-code", "country-name",
}

func (s *addressScribe) ParseHTML(el *HTMLElement, params *vcard.Parameters, _ *ParseContext) Result {
	components := make([][]string, len(addressClasses))
	for i, class := range addressClasses {
		components[i] = el.AllValues(class)
	}
	for _, t := range el.Types() {
		params.AddType(t)
	}
	a := &vcard.Address{}
	fillAddress(a, grammar.NewStructuredIterator(components))
	return Decoded(a)
}

func (s *addressScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	a, err := cast[*vcard.Address](s, p)
	if err != nil {
		return nil, err
	}
	n := Element(atom.Div, "adr", "")
	appendTypes(n, &a.Params)
	return structuredHTML(n, addressClasses, a.Components()), nil
}
