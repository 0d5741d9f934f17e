package fold

import (
	"io"
	"mime/quotedprintable"
	"strings"

	"github.com/eluv-io/errors-go"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const hexDigits = "0123456789ABCDEF"

// Charset resolves a CHARSET parameter value. An empty name means UTF-8.
func Charset(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.E("fold.Charset", errors.K.NotExist, err, "charset", name)
	}
	return enc, nil
}

// EncodeQuotedPrintable converts s to the given charset and encodes it with
// quoted-printable. Spaces and tabs are kept, every other byte outside the
// printable ASCII range, and the equals sign itself, becomes an =XX triplet.
// The result contains no line breaks.
func EncodeQuotedPrintable(s, charset string) (string, error) {
	enc, err := Charset(charset)
	if err != nil {
		return "", err
	}
	raw, err := enc.NewEncoder().String(s)
	if err != nil {
		return "", errors.E("fold.EncodeQuotedPrintable", errors.K.Invalid, err, "charset", charset)
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch == ' ' || ch == '\t' || (ch >= 33 && ch <= 126 && ch != '=') {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('=')
		b.WriteByte(hexDigits[ch>>4])
		b.WriteByte(hexDigits[ch&0x0f])
	}
	return b.String(), nil
}

// DecodeQuotedPrintable decodes a quoted-printable value and converts it from
// the given charset to UTF-8.
func DecodeQuotedPrintable(s, charset string) (string, error) {
	enc, err := Charset(charset)
	if err != nil {
		return "", err
	}
	raw, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(s)))
	if err != nil {
		return "", errors.E("fold.DecodeQuotedPrintable", errors.K.Invalid, err)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.E("fold.DecodeQuotedPrintable", errors.K.Invalid, err, "charset", charset)
	}
	return string(decoded), nil
}
