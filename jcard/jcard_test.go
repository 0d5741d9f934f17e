package jcard_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/internal/testutil"
	"github.com/KimNorgaard/go-vcard/jcard"
)

const producer = `["prodid",{},"text","` + vcard.ProducerID + `"]`

func sampleCard() *vcard.VCard {
	card := vcard.New(vcard.V4_0)
	card.Add(
		vcard.NewFormattedName("John Doe"),
		&vcard.StructuredName{Family: "Doe", Given: "John", Prefixes: []string{"Mr."}},
	)
	tel := &vcard.Telephone{URI: "tel:+1-555-555-0100"}
	tel.AddType("work")
	tel.AddType("voice")
	card.Add(tel)
	email := vcard.NewEmail("john@example.com")
	email.Group = "item1"
	card.Add(email)
	card.Add(&vcard.Address{
		StreetAddresses: []string{"1 Elm St", "Apt 2"},
		Localities:      []string{"Town"},
	})
	card.Add(vcard.NewList(vcard.KindCategories, "friends", "work"))
	card.Add(&vcard.Geo{Latitude: 37.386013, Longitude: -122.082932})
	return card
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := jcard.NewWriter(&buf)
	require.NoError(t, w.Write(sampleCard()))
	require.NoError(t, w.Close())

	require.JSONEq(t, `["vcard",[
		["version",{},"text","4.0"],
		`+producer+`,
		["fn",{},"text","John Doe"],
		["n",{},"text",["Doe","John","","Mr.",""]],
		["tel",{"type":["work","voice"]},"uri","tel:+1-555-555-0100"],
		["email",{"group":"item1"},"text","john@example.com"],
		["adr",{},"text",["","",["1 Elm St","Apt 2"],"Town","","",""]],
		["categories",{},"text","friends","work"],
		["geo",{},"uri","geo:37.386013,-122.082932"]
	]]`, buf.String())
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestRoundTrip(t *testing.T) {
	data, err := jcard.Marshal(sampleCard())
	require.NoError(t, err)

	r := jcard.NewReader(bytes.NewReader(data))
	card, err := r.ReadVCard()
	require.NoError(t, err)
	require.Empty(t, r.Warnings())

	require.Equal(t, vcard.V4_0, card.Version)
	require.Equal(t, "John Doe", card.FormattedName())

	n := card.StructuredName()
	require.Equal(t, "Doe", n.Family)
	require.Equal(t, "John", n.Given)
	require.Equal(t, []string{"Mr."}, n.Prefixes)
	require.Empty(t, n.Suffixes)

	tels := card.Telephones()
	require.Len(t, tels, 1)
	require.Equal(t, "tel:+1-555-555-0100", tels[0].URI)
	require.Equal(t, []string{"work", "voice"}, tels[0].Types())

	email := card.First(vcard.KindEmail).(*vcard.Text)
	require.Equal(t, "item1", email.Group)
	require.False(t, email.Params.Has("GROUP"))

	adr := card.Addresses()[0]
	require.Equal(t, []string{"1 Elm St", "Apt 2"}, adr.StreetAddresses)
	require.Equal(t, "Town", adr.Locality())
	require.Nil(t, adr.POBoxes)

	cats := card.First(vcard.KindCategories).(*vcard.List)
	require.Equal(t, []string{"friends", "work"}, cats.Values)

	geo := card.First(vcard.KindGeo).(*vcard.Geo)
	require.InDelta(t, 37.386013, geo.Latitude, 1e-9)
	require.InDelta(t, -122.082932, geo.Longitude, 1e-9)

	prodid := card.First(vcard.KindProductID).(*vcard.Text)
	require.Equal(t, vcard.ProducerID, prodid.Value)

	again, err := jcard.Unmarshal(mustMarshal(t, card))
	require.NoError(t, err)
	require.Equal(t, card, again[0], testutil.Diff("first", card, "second", again[0]))
}

func mustMarshal(t *testing.T, card *vcard.VCard) []byte {
	t.Helper()
	data, err := jcard.Marshal(card)
	require.NoError(t, err)
	return data
}

func TestReadForms(t *testing.T) {
	one := `["vcard",[["version",{},"text","4.0"],["fn",{},"text","One"]]]`
	two := `["vcard",[["version",{},"text","4.0"],["fn",{},"text","Two"]]]`

	testCases := []struct {
		name  string
		input string
	}{
		{"concatenated", one + "\n" + two},
		{"vcardstream", `["vcardstream",` + one + `,` + two + `]`},
		{"bare array", `[` + one + `,` + two + `]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := jcard.Unmarshal([]byte(tc.input))
			require.NoError(t, err)
			require.Len(t, cards, 2)
			require.Equal(t, "One", cards[0].FormattedName())
			require.Equal(t, "Two", cards[1].FormattedName())
		})
	}
}

func TestReadGeo(t *testing.T) {
	input := `["vcard",[
		["version",{},"text","4.0"],
		["geo",{},"uri","geo:37.386013,-122.082932"]
	]]`

	r := jcard.NewReader(strings.NewReader(input))
	card, err := r.ReadVCard()
	require.NoError(t, err)
	require.Empty(t, r.Warnings())

	geo, ok := card.First(vcard.KindGeo).(*vcard.Geo)
	require.True(t, ok)
	require.InDelta(t, 37.386013, geo.Latitude, 1e-9)
	require.InDelta(t, -122.082932, geo.Longitude, 1e-9)
}

func TestReadInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"not json", `["vcard",`},
		{"object", `{"vcard":[]}`},
		{"stream of strings", `["vcardstream","x"]`},
		{"no property array", `["vcard"]`},
		{"property list is an object", `["vcard",{}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jcard.Unmarshal([]byte(tc.input))
			require.Error(t, err)
			require.True(t, errors.IsKind(errors.K.Invalid, err))
		})
	}
}

func TestReadWarnings(t *testing.T) {
	input := `["vcard",[
		["version",{},"text","3.0"],
		"not a property",
		["fn",{},"text"],
		["label",{},"text","1 Elm St"],
		["geo",{},"uri","nowhere"],
		["x-shoe-size",{"x-unit":"eu"},"integer",44],
		["x-note",{},"unknown","raw"]
	]]`

	r := jcard.NewReader(strings.NewReader(input))
	card, err := r.ReadVCard()
	require.NoError(t, err)

	warnings := r.Warnings()
	require.True(t, warnings.Has(diag.CodeUnknownVersion))
	require.True(t, warnings.Has(diag.CodeJSONValue))
	require.True(t, warnings.Has(diag.CodeVersionUnsupported))
	require.True(t, warnings.Has(diag.CodeBadGeo))

	require.Equal(t, vcard.V4_0, card.Version)
	require.Len(t, card.Labels(), 1)
	require.Nil(t, card.First(vcard.KindGeo))

	shoe := card.Raw("X-SHOE-SIZE")
	require.Len(t, shoe, 1)
	require.Equal(t, "44", shoe[0].Value)
	require.Equal(t, vcard.TypeInteger, shoe[0].DataType)
	require.Equal(t, "eu", shoe[0].Params.Get("X-UNIT"))

	note := card.Raw("X-NOTE")
	require.Len(t, note, 1)
	require.Equal(t, vcard.DataType(""), note[0].DataType)

	// warnings are reset by the next read
	_, err = r.ReadVCard()
	require.Error(t, err)
	require.Empty(t, r.Warnings())
}

func TestWriteSkipped(t *testing.T) {
	nested := vcard.New(vcard.V3_0)
	nested.Add(vcard.NewFormattedName("Jane Doe"))

	card := vcard.New(vcard.V3_0)
	card.Add(
		vcard.NewProductID("-//Other//EN"),
		&vcard.Agent{VCard: nested},
		vcard.NewLabel("1 Elm St"),
		vcard.NewRaw("X-EMPTY", ""),
	)

	var buf bytes.Buffer
	w := jcard.NewWriter(&buf, jcard.VersionStrict(false))
	require.NoError(t, w.Write(card))
	require.JSONEq(t, `["vcard",[
		["version",{},"text","4.0"],
		`+producer+`,
		["label",{},"text","1 Elm St"],
		["x-empty",{},"unknown",""]
	]]`, buf.String())

	buf.Reset()
	w = jcard.NewWriter(&buf, jcard.ProductID(false))
	require.NoError(t, w.Write(card))
	require.JSONEq(t, `["vcard",[
		["version",{},"text","4.0"],
		["prodid",{},"text","-//Other//EN"],
		["x-empty",{},"unknown",""]
	]]`, buf.String())
}

func TestWriteStream(t *testing.T) {
	one := vcard.New(vcard.V4_0)
	one.Add(vcard.NewFormattedName("One"))
	two := vcard.New(vcard.V4_0)
	two.Add(vcard.NewFormattedName("Two"))

	var buf bytes.Buffer
	w := jcard.NewWriter(&buf, jcard.Stream(true), jcard.ProductID(false), jcard.Indent(2))
	require.NoError(t, w.Write(one))
	require.NoError(t, w.Write(two))
	require.Zero(t, buf.Len())
	require.NoError(t, w.Close())

	require.JSONEq(t, `["vcardstream",
		["vcard",[["version",{},"text","4.0"],["fn",{},"text","One"]]],
		["vcard",[["version",{},"text","4.0"],["fn",{},"text","Two"]]]
	]`, buf.String())
	require.Contains(t, buf.String(), "\n  ")

	err := w.Write(one)
	require.Error(t, err)
	require.True(t, errors.IsKind(errors.K.Invalid, err))
	require.NoError(t, w.Close())

	cards, err := jcard.Unmarshal(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, cards, 2)
}

func TestInvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	err := jcard.NewWriter(&buf, jcard.Indent(-1)).Write(vcard.New(vcard.V4_0))
	require.Error(t, err)
	require.True(t, errors.IsKind(errors.K.Invalid, err))
}
