package scribe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/scribe"
)

func TestTextScribe(t *testing.T) {
	p := decode(t, "NOTE", vcard.V3_0, `one\, two\; three\nfour`)
	note, ok := p.(*vcard.Text)
	require.True(t, ok)
	require.Equal(t, vcard.KindNote, note.Kind())
	require.Equal(t, "one, two; three\nfour", note.Value)

	w := mustWrite(t, vcard.V3_0, note)
	require.Equal(t, "one\\, two\\; three\nfour", w.value)
}

func TestTextDefaultDataTypes(t *testing.T) {
	tests := []struct {
		name string
		v    vcard.Version
		want vcard.DataType
	}{
		{"URL", vcard.V2_1, vcard.TypeURL},
		{"URL", vcard.V3_0, vcard.TypeURI},
		{"URL", vcard.V4_0, vcard.TypeURI},
		{"UID", vcard.V3_0, vcard.TypeText},
		{"UID", vcard.V4_0, vcard.TypeURI},
		{"LANG", vcard.V4_0, vcard.TypeLanguageTag},
		{"FN", vcard.V2_1, vcard.TypeText},
		{"ADR", vcard.V4_0, vcard.TypeText},
		{"REV", vcard.V4_0, vcard.TypeTimestamp},
		{"BDAY", vcard.V4_0, vcard.TypeDateAndOrTime},
		{"BDAY", vcard.V3_0, vcard.TypeDate},
		{"PHOTO", vcard.V3_0, vcard.TypeBinary},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.v.String(), func(t *testing.T) {
			require.Equal(t, tt.want, registry.ByName(tt.name).DefaultDataType(tt.v))
		})
	}
}

// A property whose data type equals the version default is written without
// VALUE; the writer compares DataType with DefaultDataType.
func TestVersionDefaultOmission(t *testing.T) {
	for _, v := range vcard.Versions {
		url := vcard.NewURL("http://example.com/")
		s := registry.ForProperty(url)
		require.Equal(t, s.DefaultDataType(v), scribe.DataType(s, url, v), v.String())
	}

	tel := &vcard.Telephone{URI: "tel:+1-555-555-0100"}
	s := registry.ForProperty(tel)
	require.Equal(t, vcard.TypeURI, scribe.DataType(s, tel, vcard.V4_0))
	require.NotEqual(t, s.DefaultDataType(vcard.V4_0), scribe.DataType(s, tel, vcard.V4_0))
	require.Equal(t, s.DefaultDataType(vcard.V3_0), scribe.DataType(s, tel, vcard.V3_0))
}

func TestListScribe(t *testing.T) {
	p := decode(t, "CATEGORIES", vcard.V3_0, `work,friends\, close,golf`)
	l := p.(*vcard.List)
	require.Equal(t, []string{"work", "friends, close", "golf"}, l.Values)
	require.Equal(t, `work,friends\, close,golf`, mustWrite(t, vcard.V3_0, l).value)

	jv, err := scribe.WriteJSON(registry.ForProperty(l), l, &scribe.WriteContext{Version: vcard.V4_0})
	require.NoError(t, err)
	require.Equal(t, scribe.JSONValue{"work", "friends, close", "golf"}, jv)
}

func TestTelephone(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		p := decode(t, "TEL", vcard.V3_0, "+1 555 555 0100", "TYPE", "home")
		tel := p.(*vcard.Telephone)
		require.Equal(t, "+1 555 555 0100", tel.Text)
		require.Equal(t, []string{"home"}, tel.Types())
	})
	t.Run("uri in 4.0", func(t *testing.T) {
		p := decode(t, "TEL", vcard.V4_0, "tel:+1-555-555-0100", "VALUE", "uri")
		require.Equal(t, "tel:+1-555-555-0100", p.(*vcard.Telephone).URI)
	})
	t.Run("uri written to 3.0", func(t *testing.T) {
		w := mustWrite(t, vcard.V3_0, &vcard.Telephone{URI: "tel:+1-555-555-0100;ext=5"})
		require.Equal(t, "+1-555-555-0100", w.value)
	})
}

func TestWrongPropertyType(t *testing.T) {
	s := registry.ByName("TEL")
	_, err := s.WriteText(vcard.NewNote("x"), &scribe.WriteContext{Version: vcard.V3_0})
	require.Error(t, err)
	var we *scribe.WriteError
	require.ErrorAs(t, err, &we)
	require.Equal(t, "TEL", we.Name)
}
