package scribe

import (
	"encoding/base64"
	"path"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/eluv-io/errors-go"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/grammar"
)

const octetStream = "application/octet-stream"

// binaryScribe handles PHOTO, LOGO, SOUND and KEY. A value is a link or
// inline data; KEY also accepts plain text.
//
// The content type comes from a data URI, the MEDIATYPE parameter (4.0), a
// TYPE value naming a format (2.1 and 3.0), the file extension of the link,
// or, for inline data, the data itself.
type binaryScribe struct {
	base
	media string // top-level media type of the property, "image" or "audio"
}

func newBinary(kind vcard.Kind, name, media string) *binaryScribe {
	return &binaryScribe{base: base{kind: kind, name: name}, media: media}
}

func (s *binaryScribe) DefaultDataType(v vcard.Version) vcard.DataType {
	switch v {
	case vcard.V3_0:
		return vcard.TypeBinary
	case vcard.V4_0:
		return vcard.TypeURI
	}
	return ""
}

func (s *binaryScribe) DataType(p vcard.Property, v vcard.Version) vcard.DataType {
	b, ok := p.(*vcard.Binary)
	if !ok {
		return s.DefaultDataType(v)
	}
	switch {
	case b.Text != "" && b.URL == "" && b.Data == nil:
		return vcard.TypeText
	case v == vcard.V4_0:
		return vcard.TypeURI
	case b.URL != "" && v == vcard.V2_1:
		return vcard.TypeURL
	case b.URL != "":
		return vcard.TypeURI
	}
	return s.DefaultDataType(v)
}

func (s *binaryScribe) PrepareParameters(p vcard.Property, params *vcard.Parameters, ctx *WriteContext) {
	b, ok := p.(*vcard.Binary)
	if !ok {
		return
	}
	params.Remove(vcard.ParamEncoding)
	if b.Text != "" && b.URL == "" && b.Data == nil {
		return
	}
	if ctx.Version == vcard.V4_0 {
		params.Remove(vcard.ParamMediaType)
		if b.URL != "" && b.ContentType != "" {
			params.Set(vcard.ParamMediaType, b.ContentType)
		}
		return
	}
	params.Remove(vcard.ParamMediaType)
	if b.Data != nil {
		if ctx.Version == vcard.V2_1 {
			params.Set(vcard.ParamEncoding, vcard.EncodingBase64)
		} else {
			params.Set(vcard.ParamEncoding, vcard.EncodingB)
		}
	}
	if t := shortType(b.ContentType); t != "" && !params.HasType(t) {
		if ctx.Version == vcard.V2_1 {
			t = strings.ToUpper(t)
		}
		params.AddType(t)
	}
}

func (s *binaryScribe) WriteText(p vcard.Property, ctx *WriteContext) (string, error) {
	b, err := cast[*vcard.Binary](s, p)
	if err != nil {
		return "", err
	}
	switch {
	case b.URL != "":
		return b.URL, nil
	case b.Data != nil:
		data := base64.StdEncoding.EncodeToString(b.Data)
		if ctx.Version == vcard.V4_0 {
			return dataURI(b.ContentType, data), nil
		}
		return data, nil
	case b.Text != "":
		return grammar.Escape(b.Text), nil
	}
	return "", Skipf(s.kind, diag.CodeNoValue)
}

func dataURI(contentType, data string) string {
	return "data:" + contentType + ";base64," + data
}

func (s *binaryScribe) ParseText(value string, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result {
	if s.kind == vcard.KindKey && dt == vcard.TypeText {
		return Decoded(vcard.NewKeyText(grammar.Unescape(value)))
	}
	return s.parse(strings.TrimSpace(value), dt, params, ctx)
}

func (s *binaryScribe) parse(value string, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result {
	if value == "" {
		return Skip(diag.CodeNoValue)
	}
	encoding := params.Encoding()
	params.Remove(vcard.ParamEncoding)
	contentType := params.MediaType()
	params.Remove(vcard.ParamMediaType)
	if ctx.Version != vcard.V4_0 {
		for _, t := range params.Types() {
			if ct := s.typeContentType(t); ct != "" {
				if contentType == "" {
					contentType = ct
				}
				params.RemoveValue(vcard.ParamType, t)
			}
		}
	}

	if strings.HasPrefix(strings.ToLower(value), "data:") {
		ct, data, err := parseDataURI(value)
		if err != nil {
			return Fail(diag.CodeBadBase64, err)
		}
		if ct == "" {
			ct = contentType
		}
		return s.inline(data, ct)
	}
	if strings.EqualFold(encoding, vcard.EncodingBase64) || strings.EqualFold(encoding, vcard.EncodingB) {
		data, err := decodeBase64(value)
		if err != nil {
			return Fail(diag.CodeBadBase64, err)
		}
		return s.inline(data, contentType)
	}
	if s.kind == vcard.KindKey && ctx.Version != vcard.V4_0 && (dt == "" || dt == vcard.TypeBinary) &&
		!strings.Contains(value, ":") {
		return Decoded(vcard.NewKeyText(grammar.Unescape(value)))
	}
	if contentType == "" {
		contentType = extensionContentType(value)
	}
	return Decoded(vcard.NewBinaryURL(s.kind, value, contentType))
}

// inline returns inline data, sniffing its content type when none is known.
func (s *binaryScribe) inline(data []byte, contentType string) Result {
	if contentType == "" {
		contentType = sniff(data)
	}
	return Decoded(vcard.NewBinaryData(s.kind, data, contentType))
}

func parseDataURI(uri string) (contentType string, data []byte, err error) {
	rest := uri[len("data:"):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", nil, errors.E("parseDataURI", errors.K.Invalid, "reason", "missing comma")
	}
	meta, payload := rest[:comma], rest[comma+1:]
	isBase64 := false
	if i := strings.LastIndex(meta, ";"); i >= 0 && strings.EqualFold(meta[i+1:], "base64") {
		isBase64 = true
		meta = meta[:i]
	}
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		meta = meta[:i]
	}
	if !isBase64 {
		return meta, []byte(payload), nil
	}
	data, err = decodeBase64(payload)
	return meta, data, err
}

// decodeBase64 decodes standard base64 ignoring embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	return data, nil
}

func sniff(data []byte) string {
	m := mimetype.Detect(data)
	if m.Is(octetStream) || m.Is("text/plain") {
		return ""
	}
	ct := m.String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// typeContentType maps a TYPE value such as "JPEG" or "image/png" to a
// content type, or "" when the value does not name a format.
func (s *binaryScribe) typeContentType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if strings.Contains(t, "/") {
		return t
	}
	if ct, ok := formatTypes[t]; ok {
		return ct
	}
	if s.media == "" {
		return ""
	}
	if m := mimetype.Lookup(s.media + "/" + t); m != nil {
		return m.String()
	}
	return ""
}

// formatTypes are the TYPE values whose content type is not "<media>/<type>".
var formatTypes = map[string]string{
	"jpg":  "image/jpeg",
	"tif":  "image/tiff",
	"wave": "audio/wav",
	"mp3":  "audio/mpeg",
	"pgp":  "application/pgp-keys",
	"x509": "application/x-x509-ca-cert",
}

// shortType returns the TYPE value for a content type: its subtype without
// an "x-" prefix, or a well-known alias.
func shortType(contentType string) string {
	if contentType == "" {
		return ""
	}
	for t, ct := range formatTypes {
		if ct == contentType && t != "jpg" && t != "tif" && t != "mp3" {
			return t
		}
	}
	i := strings.IndexByte(contentType, '/')
	if i < 0 {
		return ""
	}
	return strings.TrimPrefix(contentType[i+1:], "x-")
}

var (
	extensionsOnce sync.Once
	extensions     map[string]string
)

// knownContentTypes seeds the extension table.
var knownContentTypes = []string{
	"image/jpeg", "image/png", "image/gif", "image/bmp", "image/tiff",
	"image/webp", "image/svg+xml", "image/vnd.microsoft.icon",
	"audio/mpeg", "audio/wav", "audio/ogg", "audio/aiff", "audio/flac",
	"audio/mp4", "audio/basic", "application/pgp-keys",
	"application/pkix-cert",
}

// extensionContentType guesses the content type of a link from its file
// extension.
func extensionContentType(link string) string {
	extensionsOnce.Do(func() {
		extensions = map[string]string{
			".jpeg": "image/jpeg",
			".tif":  "image/tiff",
			".asc":  "application/pgp-keys",
			".pgp":  "application/pgp-keys",
			".cer":  "application/pkix-cert",
		}
		for _, ct := range knownContentTypes {
			if m := mimetype.Lookup(ct); m != nil && m.Extension() != "" {
				extensions[m.Extension()] = ct
			}
		}
	})
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	return extensions[strings.ToLower(path.Ext(link))]
}

func (s *binaryScribe) WriteJSON(p vcard.Property, ctx *WriteContext) (JSONValue, error) {
	text, err := s.WriteText(p, at(ctx, vcard.V4_0))
	if err != nil {
		return nil, err
	}
	if b, ok := p.(*vcard.Binary); ok && b.Text != "" && b.URL == "" && b.Data == nil {
		text = grammar.Unescape(text)
	}
	return SingleJSON(text), nil
}

func (s *binaryScribe) ParseJSON(value JSONValue, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result {
	if dt == vcard.TypeText {
		return s.ParseText(grammar.Escape(value.String()), dt, params, ctx)
	}
	return s.parse(strings.TrimSpace(value.String()), dt, params, ctx)
}

func (s *binaryScribe) ParseXML(el *etree.Element, params *vcard.Parameters, ctx *ParseContext) Result {
	dt, value := xmlValue(el)
	if dt == vcard.TypeText {
		return s.ParseText(grammar.Escape(value), dt, params, ctx)
	}
	if dt == "" {
		dt = vcard.TypeURI
	}
	return s.parse(strings.TrimSpace(value), dt, params, ctx)
}

func (s *binaryScribe) ParseHTML(el *HTMLElement, params *vcard.Parameters, ctx *ParseContext) Result {
	var link string
	switch el.Node.DataAtom {
	case atom.Img:
		link = el.AbsURL("src")
	case atom.A:
		link = el.AbsURL("href")
	case atom.Object:
		link = el.AbsURL("data")
	}
	if link == "" {
		link = el.Value()
	}
	if ct := el.Attr("type"); ct != "" && !params.Has(vcard.ParamMediaType) {
		params.Set(vcard.ParamMediaType, ct)
	}
	return s.parse(strings.TrimSpace(link), vcard.TypeURI, params, ctx)
}

func (s *binaryScribe) WriteHTML(p vcard.Property, ctx *WriteContext) (*html.Node, error) {
	b, err := cast[*vcard.Binary](s, p)
	if err != nil {
		return nil, err
	}
	class := HTMLClass(s)
	if b.URL == "" && b.Data == nil {
		return Element(atom.Div, class, b.Text), nil
	}
	link, err := s.WriteText(p, at(ctx, vcard.V4_0))
	if err != nil {
		return nil, err
	}
	if s.media == "image" {
		n := Element(atom.Img, class, "")
		SetAttr(n, "src", link)
		return n, nil
	}
	n := Element(atom.A, class, link)
	SetAttr(n, "href", link)
	if b.ContentType != "" {
		SetAttr(n, "type", b.ContentType)
	}
	return n, nil
}
