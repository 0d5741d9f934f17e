package text

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		version vcard.Version
		group   string
		prop    string
		params  *vcard.Parameters
		value   string
	}{
		{
			name:    "plain",
			input:   "FN:John Doe",
			version: vcard.V3_0,
			prop:    "FN",
			params:  vcard.NewParameters(),
			value:   "John Doe",
		},
		{
			name:    "group",
			input:   "item1.TEL;TYPE=work,voice:+1-555-555-0100",
			version: vcard.V3_0,
			group:   "item1",
			prop:    "TEL",
			params:  vcard.NewParameters("TYPE", "work", "TYPE", "voice"),
			value:   "+1-555-555-0100",
		},
		{
			name:    "dotted group",
			input:   "a.b.NOTE:x",
			version: vcard.V4_0,
			group:   "a.b",
			prop:    "NOTE",
			params:  vcard.NewParameters(),
			value:   "x",
		},
		{
			name:    "nameless parameters",
			input:   "TEL;WORK;VOICE;PREF:+1-555-555-0100",
			version: vcard.V2_1,
			prop:    "TEL",
			params:  vcard.NewParameters("TYPE", "WORK", "TYPE", "VOICE", "TYPE", "PREF"),
			value:   "+1-555-555-0100",
		},
		{
			name:    "nameless encoding and value",
			input:   "PHOTO;URL;QUOTED-PRINTABLE:x",
			version: vcard.V2_1,
			prop:    "PHOTO",
			params:  vcard.NewParameters("VALUE", "URL", "ENCODING", "QUOTED-PRINTABLE"),
			value:   "x",
		},
		{
			name:    "whitespace around 2.1 parameters",
			input:   "TEL; TYPE = HOME :1",
			version: vcard.V2_1,
			prop:    "TEL",
			params:  vcard.NewParameters("TYPE", "HOME"),
			value:   "1",
		},
		{
			name:    "quoted value with delimiters",
			input:   `ADR;LABEL="1 Elm St; Town: Here";TYPE=home:;;1 Elm St`,
			version: vcard.V4_0,
			prop:    "ADR",
			params:  vcard.NewParameters("LABEL", "1 Elm St; Town: Here", "TYPE", "home"),
			value:   ";;1 Elm St",
		},
		{
			name:    "caret decoding",
			input:   `X-A;X-P=^'q^'^nline^^:v`,
			version: vcard.V4_0,
			prop:    "X-A",
			params:  vcard.NewParameters("X-P", "\"q\"\nline^"),
			value:   "v",
		},
		{
			name:    "no caret decoding in 2.1",
			input:   `X-A;X-P=a^nb:v`,
			version: vcard.V2_1,
			prop:    "X-A",
			params:  vcard.NewParameters("X-P", "a^nb"),
			value:   "v",
		},
		{
			name:    "empty parameter value",
			input:   "X-A;X-P=:v",
			version: vcard.V3_0,
			prop:    "X-A",
			params:  vcard.NewParameters("X-P", ""),
			value:   "v",
		},
		{
			name:    "value holds colons",
			input:   "URL:http://example.com:8080/",
			version: vcard.V3_0,
			prop:    "URL",
			params:  vcard.NewParameters(),
			value:   "http://example.com:8080/",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := parseLine(tc.input, tc.version, true)
			require.Nil(t, err)
			require.Equal(t, tc.group, line.Group)
			require.Equal(t, tc.prop, line.Name)
			require.True(t, tc.params.Equal(line.Params), "got params %v", line.Params.Names())
			require.Equal(t, tc.value, line.Value)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	testCases := []struct {
		input   string
		message string
		column  int
	}{
		{"NOTE", "missing colon", 5},
		{":value", "expected property name, got :", 1},
		{"group.:value", "expected property name, got :", 7},
		{`X;A="open:v`, "unterminated quoted parameter value", 5},
		{"X;=v:w", "expected parameter name, got =", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			_, err := parseLine(tc.input, vcard.V3_0, true)
			require.NotNil(t, err)
			require.Equal(t, tc.message, err.Message)
			require.Equal(t, tc.column, err.Column)
		})
	}
}

func TestContentLineIs(t *testing.T) {
	line, err := parseLine("begin: vcard ", vcard.V3_0, false)
	require.Nil(t, err)
	require.True(t, line.is("BEGIN", "VCARD"))
	require.False(t, line.is("END", "VCARD"))
}
