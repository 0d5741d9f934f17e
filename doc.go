/*
Package vcard holds the in-memory model of vCard contact records shared by the
four wire syntaxes this module reads and writes:

  - the line-oriented text syntax, versions 2.1, 3.0 and 4.0 (package text)
  - jCard, the JSON syntax (package jcard)
  - xCard, the XML syntax (package xcard)
  - hCard, the HTML microformat (package hcard)

A VCard is an ordered list of Property values. Every property has a Kind that
selects the scribe (the per-kind codec in package scribe) used to encode it,
an optional group label and a case-insensitive parameter multimap:

	card := vcard.New(vcard.V4_0)
	card.Add(vcard.NewFormattedName("John Doe"))

	adr := &vcard.Address{
		StreetAddresses: []string{"123 Main St"},
		Localities:      []string{"Anytown"},
	}
	adr.AddType("home")
	card.Add(adr)

	out, err := text.Marshal(vcard.V3_0, card)
	if err != nil {
		// handle error
	}

Reading is the mirror image:

	cards, err := text.Unmarshal(data)

Readers never fail because of a single malformed property. Problems local to
one property are reported as warnings (see package diag) and the property is
dropped or kept with a fallback interpretation; only broken stream framing,
such as XML that is not well-formed, is returned as an error.

Properties are never modified while a record is written: version specific
parameter rewriting, such as translating PREF into TYPE=pref for the older
versions, happens on copies.
*/
package vcard
