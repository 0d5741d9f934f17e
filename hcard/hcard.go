// Package hcard reads and writes vCards embedded in HTML pages with the hCard
// microformat.
//
// Every element classed "vcard" that is not inside another such element is
// one record. Its properties are the elements below it carrying the class
// name of a property, such as "fn", "tel" or "adr". A "vcard" element nested
// inside a record is not scanned as part of it; it is read only as the value
// of the property it carries, such as "agent vcard".
//
// Records read from hCard are version 3.0. A typical use looks like this:
//
//	r := hcard.NewReader(resp.Body, hcard.PageURL(resp.Request.URL.String()))
//	cards, err := r.ReadAll()
package hcard

import (
	"bytes"

	"github.com/KimNorgaard/go-vcard"
)

const classVCard = "vcard"

// Marshal returns an HTML page holding cards.
func Marshal(cards ...*vcard.VCard) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, c := range cards {
		if err := w.Write(c); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reads all records of the HTML page data.
func Unmarshal(data []byte, opts ...Option) ([]*vcard.VCard, error) {
	return NewReader(bytes.NewReader(data), opts...).ReadAll()
}
