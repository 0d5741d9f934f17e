// Package jcard reads and writes the JSON representation of vCards defined
// by RFC 7095 (jCard). jCard only exists for version 4.0.
//
// A record is a two element array, "vcard" followed by the array of its
// properties:
//
//	["vcard", [
//	  ["version", {}, "text", "4.0"],
//	  ["fn", {}, "text", "John Doe"]
//	]]
//
// The Reader also accepts a "vcardstream" array of records and a bare array
// of records.
package jcard

import (
	"bytes"
	"reflect"

	"github.com/ugorji/go/codec"

	"github.com/KimNorgaard/go-vcard"
)

const (
	tagVCard       = "vcard"
	tagVCardStream = "vcardstream"
)

// newHandle returns the JSON handle shared by a Reader or a Writer. Objects
// decode to map[string]any and integers to int64.
func newHandle(indent int) *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]any(nil))
	h.SignedInteger = true
	h.Canonical = true
	h.HTMLCharsAsIs = true
	h.Indent = int8(indent)
	return h
}

// Marshal returns the jCard encoding of cards: a single record, or a
// vcardstream array when there is more than one.
func Marshal(cards ...*vcard.VCard) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Stream(len(cards) > 1))
	for _, card := range cards {
		if err := w.Write(card); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses all records in data.
func Unmarshal(data []byte, opts ...Option) ([]*vcard.VCard, error) {
	return NewReader(bytes.NewReader(data), opts...).ReadAll()
}
