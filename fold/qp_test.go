package fold

import (
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"
)

func TestQuotedPrintable(t *testing.T) {
	testCases := []struct {
		name    string
		decoded string
		encoded string
		charset string
	}{
		{"ascii", "Hello World", "Hello World", ""},
		{"equals and newline", "a=b\r\nc", "a=3Db=0D=0Ac", "UTF-8"},
		{"utf-8", "Grüße", "Gr=C3=BC=C3=9Fe", "utf-8"},
		{"latin1", "Grüße", "Gr=FC=DFe", "ISO-8859-1"},
		{"tab kept", "a\tb", "a\tb", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeQuotedPrintable(tc.decoded, tc.charset)
			require.NoError(t, err)
			require.Equal(t, tc.encoded, encoded)

			decoded, err := DecodeQuotedPrintable(tc.encoded, tc.charset)
			require.NoError(t, err)
			require.Equal(t, tc.decoded, decoded)
		})
	}
}

func TestDecodeLowercaseHex(t *testing.T) {
	decoded, err := DecodeQuotedPrintable("Gr=c3=bc=c3=9fe", "")
	require.NoError(t, err)
	require.Equal(t, "Grüße", decoded)
}

func TestCharset(t *testing.T) {
	enc, err := Charset("")
	require.NoError(t, err)
	require.NotNil(t, enc)

	_, err = Charset("windows-1252")
	require.NoError(t, err)

	_, err = Charset("x-no-such-charset")
	require.Error(t, err)
	require.True(t, errors.IsKind(errors.K.NotExist, err))

	_, err = EncodeQuotedPrintable("x", "x-no-such-charset")
	require.Error(t, err)
}
