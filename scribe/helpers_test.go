package scribe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/scribe"
)

var registry = scribe.NewRegistry()

// parse runs the text parser of the scribe for name the way the text reader
// does: VALUE is consumed and the remaining parameters end up on the
// property.
func parse(t *testing.T, name string, v vcard.Version, value string, pairs ...string) (scribe.Result, *scribe.ParseContext) {
	t.Helper()
	s := registry.ForName(name)
	params := vcard.NewParameters(pairs...)
	dt := params.Value()
	params.Remove(vcard.ParamValue)
	if dt == "" {
		dt = s.DefaultDataType(v)
	}
	ctx := &scribe.ParseContext{Version: v, Name: name, Line: 1}
	res := s.ParseText(value, dt, params, ctx)
	if res.Property != nil {
		res.Property.Meta().Params = *params
	}
	return res, ctx
}

// decode is parse for values that must decode cleanly.
func decode(t *testing.T, name string, v vcard.Version, value string, pairs ...string) vcard.Property {
	t.Helper()
	res, _ := parse(t, name, v, value, pairs...)
	require.Equal(t, scribe.OK, res.Outcome, res.Message)
	return res.Property
}

// written is the value and parameters a writer produces for p.
type written struct {
	value    string
	params   *vcard.Parameters
	dataType vcard.DataType
}

func write(t *testing.T, v vcard.Version, p vcard.Property, card *vcard.VCard) (written, error) {
	t.Helper()
	s := registry.ForProperty(p)
	require.NotNil(t, s)
	ctx := &scribe.WriteContext{Version: v, VCard: card}
	params := scribe.PrepareParameters(s, p, ctx)
	value, err := s.WriteText(p, ctx)
	return written{value: value, params: params, dataType: scribe.DataType(s, p, v)}, err
}

func mustWrite(t *testing.T, v vcard.Version, p vcard.Property) written {
	t.Helper()
	w, err := write(t, v, p, nil)
	require.NoError(t, err)
	return w
}
