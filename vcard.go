package vcard

import "strings"

// VCard is one contact record: an ordered list of properties plus the version
// it was read as (or is meant to be written as by default).
type VCard struct {
	Version    Version
	Properties []Property
}

// New returns an empty record of the given version.
func New(v Version) *VCard {
	return &VCard{Version: v}
}

// Add appends properties to the record.
func (c *VCard) Add(props ...Property) {
	c.Properties = append(c.Properties, props...)
}

// Remove deletes p from the record. It reports whether p was found.
func (c *VCard) Remove(p Property) bool {
	for i, q := range c.Properties {
		if q == p {
			c.Properties = append(c.Properties[:i], c.Properties[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveKind deletes all properties of the given kind.
func (c *VCard) RemoveKind(k Kind) {
	kept := c.Properties[:0]
	for _, p := range c.Properties {
		if p.Kind() != k {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(c.Properties); i++ {
		c.Properties[i] = nil
	}
	c.Properties = kept
}

// ByKind returns all properties of the given kind in record order.
func (c *VCard) ByKind(k Kind) []Property {
	var props []Property
	for _, p := range c.Properties {
		if p.Kind() == k {
			props = append(props, p)
		}
	}
	return props
}

// First returns the first property of the given kind, or nil.
func (c *VCard) First(k Kind) Property {
	for _, p := range c.Properties {
		if p.Kind() == k {
			return p
		}
	}
	return nil
}

// FormattedName returns the first FN value, or "".
func (c *VCard) FormattedName() string {
	if t, ok := c.First(KindFormattedName).(*Text); ok {
		return t.Value
	}
	return ""
}

// StructuredName returns the N property, or nil.
func (c *VCard) StructuredName() *StructuredName {
	n, _ := c.First(KindStructuredName).(*StructuredName)
	return n
}

// Addresses returns all ADR properties.
func (c *VCard) Addresses() []*Address {
	var addrs []*Address
	for _, p := range c.ByKind(KindAddress) {
		if a, ok := p.(*Address); ok {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// Telephones returns all TEL properties.
func (c *VCard) Telephones() []*Telephone {
	var tels []*Telephone
	for _, p := range c.ByKind(KindTelephone) {
		if t, ok := p.(*Telephone); ok {
			tels = append(tels, t)
		}
	}
	return tels
}

// Labels returns the labels that are not attached to any address.
func (c *VCard) Labels() []*Text {
	var labels []*Text
	for _, p := range c.ByKind(KindLabel) {
		if t, ok := p.(*Text); ok {
			labels = append(labels, t)
		}
	}
	return labels
}

// Raw returns the raw properties with the given name, case-insensitively.
func (c *VCard) Raw(name string) []*Raw {
	var raws []*Raw
	for _, p := range c.ByKind(KindRaw) {
		if r, ok := p.(*Raw); ok && strings.EqualFold(r.Name, name) {
			raws = append(raws, r)
		}
	}
	return raws
}

// AssignLabel attaches label to the first address that has the same TYPE
// values as the label and no label of its own. It reports whether such an
// address was found.
func (c *VCard) AssignLabel(label *Text) bool {
	for _, a := range c.Addresses() {
		if a.Label() == "" && sameTypes(&a.Params, &label.Params) {
			a.SetLabel(label.Value)
			return true
		}
	}
	return false
}
