// Package text reads and writes the line-oriented vCard syntax in versions
// 2.1, 3.0 and 4.0.
//
// Lines are unfolded and folded by package fold, property values are
// converted by the scribes of package scribe. Problems with single
// properties are collected as warnings by the Reader; only I/O errors and
// invalid options are returned as errors.
package text

import (
	"bytes"

	"github.com/KimNorgaard/go-vcard"
)

// Marshal returns the text encoding of cards in version v, using the
// default options.
func Marshal(v vcard.Version, cards ...*vcard.VCard) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf, v)
	for _, card := range cards {
		if err := w.Write(card); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal parses all records in data. Warnings are logged and otherwise
// discarded; use a Reader to inspect them.
func Unmarshal(data []byte, opts ...Option) ([]*vcard.VCard, error) {
	return NewReader(bytes.NewReader(data), opts...).ReadAll()
}
