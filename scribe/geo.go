package scribe

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// geoScribe handles GEO: "lat;lon" in versions 2.1 and 3.0, a geo URI in
// version 4.0.
type geoScribe struct {
	base
}

func newGeo() *geoScribe {
	return &geoScribe{base{kind: vcard.KindGeo, name: "GEO"}}
}

func (s *geoScribe) DefaultDataType(v vcard.Version) vcard.DataType {
	switch v {
	case vcard.V2_1:
		return ""
	case vcard.V3_0:
		return vcard.TypeFloat
	}
	return vcard.TypeURI
}

func (s *geoScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	g, err := cast[*vcard.Geo](s, p)
	if err != nil {
		return "", err
	}
	lat, lon := formatCoordinate(g.Latitude), formatCoordinate(g.Longitude)
	if ctx.Version == vcard.V4_0 {
		return "geo:" + lat + "," + lon, nil
	}
	return lat + ";" + lon, nil
}

func (s *geoScribe) ParseText(value string, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	return s.parse(grammar.Unescape(value))
}

func (s *geoScribe) parse(value string) Result {
	g, ok := parseGeo(value)
	if !ok {
		return Fail(diag.CodeBadGeo, value)
	}
	return Decoded(g)
}

func (s *geoScribe) WriteJSON(p vcard.Property, ctx *WriteContext) (JSONValue, error) {
	text, err := s.WriteText(p, at(ctx, vcard.V4_0))
	if err != nil {
		return nil, err
	}
	return SingleJSON(text), nil
}

func (s *geoScribe) ParseJSON(value JSONValue, _ vcard.DataType, _ *vcard.Parameters, _ *ParseContext) Result {
	return s.parse(value.String())
}

// parseGeo accepts both forms in every version, with or without the URI
// scheme.
func parseGeo(value string) (*vcard.Geo, bool) {
	v := strings.TrimSpace(value)
	if len(v) >= 4 && strings.EqualFold(v[:4], "geo:") {
		v = v[4:]
		if i := strings.IndexByte(v, ';'); i >= 0 {
			v = v[:i]
		}
	}
	sep := strings.IndexAny(v, ";,")
	if sep < 0 {
		return nil, false
	}
	lon := v[sep+1:]
	if i := strings.IndexByte(lon, ','); i >= 0 {
		lon = lon[:i] // altitude
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(v[:sep]), 64)
	if err != nil {
		return nil, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return nil, false
	}
	return &vcard.Geo{Latitude: lat, Longitude: lng}, true
}

func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s *geoScribe) WriteXML(p vcard.Property, el *etree.Element, ctx *WriteContext) error {
	text, err := s.WriteText(p, at(ctx, vcard.V4_0))
	if err != nil {
		return err
	}
	xmlAppend(el, string(vcard.TypeURI), text)
	return nil
}

func (s *geoScribe) ParseXML(el *etree.Element, params *vcard.Parameters, ctx *ParseContext) Result {
	_, value := xmlValue(el)
	return s.ParseText(value, vcard.TypeURI, params, ctx)
}

func (s *geoScribe) ParseHTML(el *HTMLElement, params *vcard.Parameters, ctx *ParseContext) Result {
	lat, latOK := el.FirstValue("latitude")
	lon, lonOK := el.FirstValue("longitude")
	if !latOK || !lonOK {
		return s.ParseText(el.Value(), vcard.TypeFloat, params, ctx)
	}
	return s.ParseText(lat+";"+lon, vcard.TypeFloat, params, ctx)
}

func (s *geoScribe) WriteHTML(p vcard.Property, _ *WriteContext) (*html.Node, error) {
	g, err := cast[*vcard.Geo](s, p)
	if err != nil {
		return nil, err
	}
	n := Element(atom.Div, "geo", "")
	n.AppendChild(Element(atom.Span, "latitude", formatCoordinate(g.Latitude)))
	n.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
	n.AppendChild(Element(atom.Span, "longitude", formatCoordinate(g.Longitude)))
	return n, nil
}
