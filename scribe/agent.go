package scribe

import (
	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// agentScribe handles AGENT, which either links to another contact or embeds
// it. An embedded record is not written by the scribe: Nested hands it to the
// writer, and parsing returns an Embedded result.
type agentScribe struct {
	base
	versions
}

func newAgent() *agentScribe {
	return &agentScribe{
		base:     base{kind: vcard.KindAgent, name: "AGENT"},
		versions: versions{vcard.V2_1, vcard.V3_0},
	}
}

func (s *agentScribe) DefaultDataType(vcard.Version) vcard.DataType {
	return ""
}

func (s *agentScribe) DataType(p vcard.Property, v vcard.Version) vcard.DataType {
	if a, ok := p.(*vcard.Agent); ok && a.URL != "" {
		if v == vcard.V2_1 {
			return vcard.TypeURL
		}
		return vcard.TypeURI
	}
	return ""
}

// Nested returns the embedded record of an AGENT.
func (s *agentScribe) Nested(p vcard.Property) *vcard.VCard {
	if a, ok := p.(*vcard.Agent); ok && a.URL == "" {
		return a.VCard
	}
	return nil
}

func (s *agentScribe) WriteText(p vcard.Property, _ *WriteContext) (string, error) {
	a, err := cast[*vcard.Agent](s, p)
	if err != nil {
		return "", err
	}
	if a.URL != "" {
		return a.URL, nil
	}
	return "", Skipf(s.kind, diag.CodeNoValue)
}

func (s *agentScribe) ParseText(value string, dt vcard.DataType, _ *vcard.Parameters, ctx *ParseContext) Result {
	if dt == vcard.TypeURL || dt == vcard.TypeURI {
		return Decoded(&vcard.Agent{URL: value})
	}
	switch ctx.Version {
	case vcard.V2_1:
		if value != "" {
			return Decoded(&vcard.Agent{URL: value})
		}
		return s.embed(&Nested{})
	case vcard.V3_0:
		return s.embed(&Nested{Text: grammar.Unescape(value)})
	}
	if value == "" {
		return Skip(diag.CodeEmbeddedUnsupported)
	}
	return Decoded(&vcard.Agent{URL: value})
}

// embed returns an Embedded result whose property receives the nested record
// through Inject.
func (s *agentScribe) embed(n *Nested) Result {
	a := &vcard.Agent{}
	n.Inject = func(card *vcard.VCard) { a.VCard = card }
	return Embed(a, n)
}

func (s *agentScribe) WriteJSON(p vcard.Property, ctx *WriteContext) (JSONValue, error) {
	a, err := cast[*vcard.Agent](s, p)
	if err != nil {
		return nil, err
	}
	if a.URL == "" {
		return nil, Skipf(s.kind, diag.CodeEmbeddedUnsupported)
	}
	return SingleJSON(a.URL), nil
}

func (s *agentScribe) ParseJSON(value JSONValue, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	if value.String() == "" {
		return Skip(diag.CodeEmbeddedUnsupported)
	}
	return Decoded(&vcard.Agent{URL: value.String()})
}

func (s *agentScribe) WriteXML(p vcard.Property, el *etree.Element, _ *WriteContext) error {
	a, err := cast[*vcard.Agent](s, p)
	if err != nil {
		return err
	}
	if a.URL == "" {
		return Skipf(s.kind, diag.CodeEmbeddedUnsupported)
	}
	xmlAppend(el, string(vcard.TypeURI), a.URL)
	return nil
}

func (s *agentScribe) ParseXML(el *etree.Element, _ *vcard.Parameters, _ *ParseContext) Result {
	_, value := xmlValue(el)
	if value == "" {
		return Skip(diag.CodeEmbeddedUnsupported)
	}
	return Decoded(&vcard.Agent{URL: value})
}

func (s *agentScribe) ParseHTML(el *HTMLElement, _ *vcard.Parameters, _ *ParseContext) Result {
	if el.HasClass("vcard") {
		return s.embed(&Nested{Element: el.Node})
	}
	if href := el.AbsURL("href"); href != "" {
		return Decoded(&vcard.Agent{URL: href})
	}
	return Decoded(&vcard.Agent{URL: el.Value()})
}

// WriteHTML renders a linked agent. Embedded agents are rendered by the
// writer, which nests the record markup inside the agent element.
func (s *agentScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	a, err := cast[*vcard.Agent](s, p)
	if err != nil {
		return nil, err
	}
	if a.URL == "" {
		return Element(atom.Div, "agent vcard", ""), nil
	}
	n := Element(atom.A, "agent", a.URL)
	SetAttr(n, "href", a.URL)
	return n, nil
}
