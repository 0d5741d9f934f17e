package scribe

import (
	"strings"

	"github.com/KimNorgaard/go-vcard"
)

const typePref = "pref"

// HandlePref translates the preference marker of p between its two forms.
//
// Versions 2.1 and 3.0 have no PREF parameter: it is removed, and TYPE=pref is
// added if p has the lowest PREF value among the properties of its kind in
// the record. Version 4.0 has no TYPE=pref: it is turned into PREF=1.
func HandlePref(p vcard.Property, params *vcard.Parameters, ctx *WriteContext) {
	switch ctx.Version {
	case vcard.V2_1, vcard.V3_0:
		params.Remove(vcard.ParamPref)
		if mostPreferred(p, ctx.VCard) == p && !params.HasType(typePref) {
			params.AddType(typePref)
		}
	case vcard.V4_0:
		for _, t := range params.Types() {
			if strings.EqualFold(t, typePref) {
				params.RemoveValue(vcard.ParamType, t)
				params.SetPref(1)
				return
			}
		}
	}
}

// mostPreferred returns the property of p's kind with the lowest valid PREF
// value, the first one on ties. Without a record only p itself is considered.
func mostPreferred(p vcard.Property, card *vcard.VCard) vcard.Property {
	candidates := []vcard.Property{p}
	if card != nil {
		candidates = card.ByKind(p.Kind())
	}
	var best vcard.Property
	lowest := 0
	for _, c := range candidates {
		pref, ok := c.Meta().Params.Pref()
		if !ok {
			continue
		}
		if best == nil || pref < lowest {
			best, lowest = c, pref
		}
	}
	return best
}
