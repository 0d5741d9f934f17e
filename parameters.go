package vcard

import (
	"strconv"
	"strings"
)

// Well-known parameter names.
const (
	ParamType      = "TYPE"
	ParamValue     = "VALUE"
	ParamPref      = "PREF"
	ParamEncoding  = "ENCODING"
	ParamCharset   = "CHARSET"
	ParamLabel     = "LABEL"
	ParamMediaType = "MEDIATYPE"
	ParamLanguage  = "LANGUAGE"
	ParamAltID     = "ALTID"
	ParamPID       = "PID"
	ParamGeo       = "GEO"
	ParamTZ        = "TZ"
	ParamSortAs    = "SORT-AS"
	ParamCalscale  = "CALSCALE"
	ParamIndex     = "INDEX"
	ParamLevel     = "LEVEL"
)

// Encodings carried by the ENCODING parameter.
const (
	EncodingQuotedPrintable = "QUOTED-PRINTABLE"
	EncodingBase64          = "BASE64"
	EncodingB               = "b"
	Encoding8Bit            = "8BIT"
	Encoding7Bit            = "7BIT"
)

type param struct {
	name   string
	values []string
}

// Parameters is an ordered, case-insensitive multimap of property parameters.
// Names are stored upper-cased in order of first appearance; values keep their
// insertion order. The zero value is an empty set ready to use.
type Parameters struct {
	entries []param
}

// NewParameters returns a parameter set populated from name/value pairs.
func NewParameters(pairs ...string) *Parameters {
	p := &Parameters{}
	for i := 0; i+1 < len(pairs); i += 2 {
		p.Add(pairs[i], pairs[i+1])
	}
	return p
}

func (p *Parameters) index(name string) int {
	name = strings.ToUpper(name)
	for i, e := range p.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// Get returns the first value of the named parameter or "".
func (p *Parameters) Get(name string) string {
	if i := p.index(name); i >= 0 && len(p.entries[i].values) > 0 {
		return p.entries[i].values[0]
	}
	return ""
}

// Has reports whether the named parameter is present.
func (p *Parameters) Has(name string) bool {
	return p.index(name) >= 0
}

// All returns a copy of all values of the named parameter.
func (p *Parameters) All(name string) []string {
	if i := p.index(name); i >= 0 {
		return append([]string(nil), p.entries[i].values...)
	}
	return nil
}

// Add appends a value to the named parameter.
func (p *Parameters) Add(name, value string) {
	if i := p.index(name); i >= 0 {
		p.entries[i].values = append(p.entries[i].values, value)
		return
	}
	p.entries = append(p.entries, param{name: strings.ToUpper(name), values: []string{value}})
}

// Set replaces all values of the named parameter. Calling Set without values
// removes the parameter.
func (p *Parameters) Set(name string, values ...string) {
	if len(values) == 0 {
		p.Remove(name)
		return
	}
	vals := append([]string(nil), values...)
	if i := p.index(name); i >= 0 {
		p.entries[i].values = vals
		return
	}
	p.entries = append(p.entries, param{name: strings.ToUpper(name), values: vals})
}

// Remove deletes the named parameter and all its values.
func (p *Parameters) Remove(name string) {
	if i := p.index(name); i >= 0 {
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
	}
}

// RemoveValue deletes every occurrence of value (case-insensitive) from the
// named parameter, and the parameter itself once it has no values left.
func (p *Parameters) RemoveValue(name, value string) {
	i := p.index(name)
	if i < 0 {
		return
	}
	kept := p.entries[i].values[:0]
	for _, v := range p.entries[i].values {
		if !strings.EqualFold(v, value) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
		return
	}
	p.entries[i].values = kept
}

// Names returns the upper-cased parameter names in order of first appearance.
func (p *Parameters) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of distinct parameter names.
func (p *Parameters) Len() int { return len(p.entries) }

// Each calls fn for every parameter name with its values, in order.
func (p *Parameters) Each(fn func(name string, values []string)) {
	for _, e := range p.entries {
		fn(e.name, e.values)
	}
}

// Clone returns a deep copy. Cloning a nil set yields an empty set.
func (p *Parameters) Clone() *Parameters {
	c := &Parameters{}
	if p == nil {
		return c
	}
	c.entries = make([]param, len(p.entries))
	for i, e := range p.entries {
		c.entries[i] = param{name: e.name, values: append([]string(nil), e.values...)}
	}
	return c
}

// Equal reports whether both sets hold the same names and values, ignoring
// the order of names.
func (p *Parameters) Equal(o *Parameters) bool {
	if p.Len() != o.Len() {
		return false
	}
	for _, e := range p.entries {
		other := o.All(e.name)
		if len(other) != len(e.values) {
			return false
		}
		for i := range other {
			if other[i] != e.values[i] {
				return false
			}
		}
	}
	return true
}

// Types returns the TYPE values.
func (p *Parameters) Types() []string { return p.All(ParamType) }

// AddType appends a TYPE value.
func (p *Parameters) AddType(t string) { p.Add(ParamType, t) }

// HasType reports whether t is among the TYPE values, case-insensitively.
func (p *Parameters) HasType(t string) bool {
	for _, v := range p.All(ParamType) {
		if strings.EqualFold(v, t) {
			return true
		}
	}
	return false
}

// Pref returns the PREF value. ok is false when the parameter is missing or
// is not an integer.
func (p *Parameters) Pref() (pref int, ok bool) {
	s := p.Get(ParamPref)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetPref sets the PREF value; n <= 0 removes it.
func (p *Parameters) SetPref(n int) {
	if n <= 0 {
		p.Remove(ParamPref)
		return
	}
	p.Set(ParamPref, strconv.Itoa(n))
}

// Value returns the data type named by the VALUE parameter, or "".
func (p *Parameters) Value() DataType {
	s := p.Get(ParamValue)
	if s == "" {
		return ""
	}
	dt, _ := ParseDataType(s)
	return dt
}

// SetValue sets the VALUE parameter; an empty data type removes it.
func (p *Parameters) SetValue(dt DataType) {
	if dt == "" {
		p.Remove(ParamValue)
		return
	}
	p.Set(ParamValue, string(dt))
}

// Encoding returns the ENCODING parameter.
func (p *Parameters) Encoding() string { return p.Get(ParamEncoding) }

// Charset returns the CHARSET parameter.
func (p *Parameters) Charset() string { return p.Get(ParamCharset) }

// Label returns the LABEL parameter.
func (p *Parameters) Label() string { return p.Get(ParamLabel) }

// MediaType returns the MEDIATYPE parameter.
func (p *Parameters) MediaType() string { return p.Get(ParamMediaType) }

// sameTypes reports whether both sets carry the same TYPE values, ignoring
// order and case.
func sameTypes(a, b *Parameters) bool {
	at, bt := a.Types(), b.Types()
	if len(at) != len(bt) {
		return false
	}
	for _, t := range at {
		if !b.HasType(t) {
			return false
		}
	}
	return true
}
