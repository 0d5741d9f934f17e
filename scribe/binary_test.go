package scribe_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/scribe"
)

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestBinaryParse(t *testing.T) {
	data := []byte("not really a jpeg")
	encoded := base64.StdEncoding.EncodeToString(data)

	t.Run("2.1 inline", func(t *testing.T) {
		p := decode(t, "PHOTO", vcard.V2_1, encoded, "ENCODING", "BASE64", "TYPE", "JPEG")
		b := p.(*vcard.Binary)
		require.Equal(t, data, b.Data)
		require.Equal(t, "image/jpeg", b.ContentType)
		require.Empty(t, b.Types())
		require.False(t, b.Params.Has(vcard.ParamEncoding))
	})
	t.Run("3.0 inline", func(t *testing.T) {
		p := decode(t, "LOGO", vcard.V3_0, encoded, "ENCODING", "b", "TYPE", "image/gif")
		b := p.(*vcard.Binary)
		require.Equal(t, data, b.Data)
		require.Equal(t, "image/gif", b.ContentType)
	})
	t.Run("3.0 url", func(t *testing.T) {
		p := decode(t, "PHOTO", vcard.V3_0, "http://example.com/me.png", "VALUE", "uri")
		b := p.(*vcard.Binary)
		require.Equal(t, "http://example.com/me.png", b.URL)
		require.Equal(t, "image/png", b.ContentType)
	})
	t.Run("4.0 data uri", func(t *testing.T) {
		p := decode(t, "PHOTO", vcard.V4_0, "data:image/jpeg;base64,"+encoded, "TYPE", "work")
		b := p.(*vcard.Binary)
		require.Equal(t, data, b.Data)
		require.Equal(t, "image/jpeg", b.ContentType)
		require.Equal(t, []string{"work"}, b.Types())
	})
	t.Run("4.0 mediatype", func(t *testing.T) {
		p := decode(t, "SOUND", vcard.V4_0, "http://example.com/hello", "MEDIATYPE", "audio/ogg")
		b := p.(*vcard.Binary)
		require.Equal(t, "audio/ogg", b.ContentType)
		require.False(t, b.Params.Has(vcard.ParamMediaType))
	})
	t.Run("sniffed", func(t *testing.T) {
		p := decode(t, "PHOTO", vcard.V3_0, base64.StdEncoding.EncodeToString(pngHeader), "ENCODING", "b")
		require.Equal(t, "image/png", p.(*vcard.Binary).ContentType)
	})
	t.Run("text key", func(t *testing.T) {
		p := decode(t, "KEY", vcard.V4_0, "ssh-ed25519 AAAA", "VALUE", "text")
		require.Equal(t, "ssh-ed25519 AAAA", p.(*vcard.Binary).Text)
	})
}

func TestBinaryProblems(t *testing.T) {
	res, _ := parse(t, "PHOTO", vcard.V3_0, "", "ENCODING", "b")
	require.Equal(t, scribe.Skipped, res.Outcome)
	require.Equal(t, diag.CodeNoValue, res.Code)

	res, _ = parse(t, "PHOTO", vcard.V3_0, "!!!", "ENCODING", "b")
	require.Equal(t, scribe.Failed, res.Outcome)
	require.Equal(t, diag.CodeBadBase64, res.Code)

	_, err := write(t, vcard.V3_0, vcard.NewBinaryURL(vcard.KindPhoto, "", ""), nil)
	require.True(t, scribe.IsSkip(err))
}

func TestBinaryWrite(t *testing.T) {
	data := []byte("not really a jpeg")
	encoded := base64.StdEncoding.EncodeToString(data)
	photo := vcard.NewBinaryData(vcard.KindPhoto, data, "image/jpeg")

	tests := []struct {
		v        vcard.Version
		value    string
		encoding string
		types    []string
		dt       vcard.DataType
	}{
		{vcard.V2_1, encoded, "BASE64", []string{"JPEG"}, ""},
		{vcard.V3_0, encoded, "b", []string{"jpeg"}, vcard.TypeBinary},
		{vcard.V4_0, "data:image/jpeg;base64," + encoded, "", nil, vcard.TypeURI},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			w := mustWrite(t, tt.v, photo)
			require.Equal(t, tt.value, w.value)
			require.Equal(t, tt.encoding, w.params.Encoding())
			require.Equal(t, tt.types, w.params.Types())
			require.Equal(t, tt.dt, w.dataType)
		})
	}
	require.Empty(t, photo.Params.Names(), "the property must not be modified")

	link := vcard.NewBinaryURL(vcard.KindSound, "http://example.com/hello.ogg", "audio/ogg")
	w := mustWrite(t, vcard.V2_1, link)
	require.Equal(t, vcard.TypeURL, w.dataType)
	require.Equal(t, []string{"OGG"}, w.params.Types())
	w = mustWrite(t, vcard.V4_0, link)
	require.Equal(t, "audio/ogg", w.params.MediaType())
}

func TestAgent(t *testing.T) {
	t.Run("2.1 block", func(t *testing.T) {
		res, _ := parse(t, "AGENT", vcard.V2_1, "")
		require.Equal(t, scribe.Embedded, res.Outcome)
		require.Empty(t, res.Nested.Text)

		nested := vcard.New(vcard.V2_1)
		nested.Add(vcard.NewFormattedName("Jane"))
		res.Nested.Inject(nested)
		require.Same(t, nested, res.Property.(*vcard.Agent).VCard)
		require.Same(t, nested, scribe.NestedRecord(registry.ByName("AGENT"), res.Property))
	})
	t.Run("3.0 inline", func(t *testing.T) {
		res, _ := parse(t, "AGENT", vcard.V3_0, `BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nEND:VCARD`)
		require.Equal(t, scribe.Embedded, res.Outcome)
		require.Equal(t, "BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nEND:VCARD", res.Nested.Text)
	})
	t.Run("url", func(t *testing.T) {
		p := decode(t, "AGENT", vcard.V3_0, "http://example.com/jane.vcf", "VALUE", "uri")
		a := p.(*vcard.Agent)
		require.Equal(t, "http://example.com/jane.vcf", a.URL)
		require.Nil(t, scribe.NestedRecord(registry.ByName("AGENT"), a))
		require.Equal(t, vcard.TypeURL, mustWrite(t, vcard.V2_1, a).dataType)
	})
	t.Run("not in 4.0", func(t *testing.T) {
		require.False(t, scribe.Supports(registry.ByName("AGENT"), vcard.V4_0))
	})
}

func TestRaw(t *testing.T) {
	res, _ := parse(t, "X-CUSTOM", vcard.V3_0, `a\,b;c`, "VALUE", "uri")
	raw := res.Property.(*vcard.Raw)
	require.Equal(t, "X-CUSTOM", raw.Name)
	require.Equal(t, `a\,b;c`, raw.Value)
	require.Equal(t, vcard.TypeURI, raw.DataType)

	w := mustWrite(t, vcard.V3_0, raw)
	require.Equal(t, `a\,b;c`, w.value)
	require.Equal(t, vcard.TypeURI, w.dataType)
}

func TestXMLProperty(t *testing.T) {
	p := decode(t, "XML", vcard.V4_0, `<a xmlns="http://example.com/ns">b</a>`)
	require.Equal(t, `<a xmlns="http://example.com/ns">b</a>`, p.(*vcard.XML).Value)

	res, _ := parse(t, "XML", vcard.V4_0, `not xml`)
	require.Equal(t, scribe.Failed, res.Outcome)
	require.Equal(t, diag.CodeBadXML, res.Code)

	s := registry.ByName("XML")
	frag, ok := s.(scribe.XMLFragmenter)
	require.True(t, ok)
	el, err := frag.XMLFragment(p)
	require.NoError(t, err)
	require.Equal(t, "a", el.Tag)
	require.Equal(t, "b", el.Text())
}
