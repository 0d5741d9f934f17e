package grammar

import "strings"

// JoinStructured encodes a structured value. The sub-values of each component
// are escaped and comma-joined, and the components are joined with
// semicolons. Trailing empty components are dropped unless trailing is set.
func JoinStructured(components [][]string, trailing bool) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = JoinList(c)
	}
	return joinComponents(parts, trailing)
}

// JoinSemiStructured encodes a semi-structured value, where every component
// holds a single value. Commas are only escaped when escapeCommas is set;
// version 2.1 leaves them as they are.
func JoinSemiStructured(values []string, escapeCommas, trailing bool) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if escapeCommas {
			parts[i] = Escape(v)
		} else {
			parts[i] = EscapeSemi(v)
		}
	}
	return joinComponents(parts, trailing)
}

func joinComponents(parts []string, trailing bool) string {
	if !trailing {
		n := len(parts)
		for n > 0 && parts[n-1] == "" {
			n--
		}
		parts = parts[:n]
	}
	return strings.Join(parts, ";")
}

// StructuredIterator walks the components of a structured value. Running
// past the last component is not an error: it yields empty components.
type StructuredIterator struct {
	components [][]string
	pos        int
}

// ParseStructured splits a structured value into its components and their
// unescaped sub-values. An empty component has no sub-values.
func ParseStructured(s string) *StructuredIterator {
	raw := SplitUnescaped(s, ';', -1)
	components := make([][]string, len(raw))
	for i, r := range raw {
		components[i] = SplitList(r)
	}
	return &StructuredIterator{components: components}
}

// NewStructuredIterator iterates over already decoded components, as found in
// the JSON and XML syntaxes.
func NewStructuredIterator(components [][]string) *StructuredIterator {
	return &StructuredIterator{components: components}
}

// HasNext reports whether components remain.
func (it *StructuredIterator) HasNext() bool {
	return it.pos < len(it.components)
}

// NextComponent returns the sub-values of the next component, or nil.
func (it *StructuredIterator) NextComponent() []string {
	if !it.HasNext() {
		return nil
	}
	c := it.components[it.pos]
	it.pos++
	if len(c) == 1 && c[0] == "" {
		return nil
	}
	return c
}

// NextValue returns the first sub-value of the next component. ok is false
// when the component is empty or missing.
func (it *StructuredIterator) NextValue() (value string, ok bool) {
	c := it.NextComponent()
	if len(c) == 0 {
		return "", false
	}
	return c[0], true
}

// NextString is NextValue without the flag.
func (it *StructuredIterator) NextString() string {
	v, _ := it.NextValue()
	return v
}

// SemiStructuredIterator walks the components of a semi-structured value.
type SemiStructuredIterator struct {
	values []string
	pos    int
}

// ParseSemiStructured splits s at unescaped semicolons and unescapes every
// component. If limit > 0, at most limit components are produced and the
// last one holds the remainder.
func ParseSemiStructured(s string, limit int) *SemiStructuredIterator {
	values := SplitUnescaped(s, ';', limit)
	for i, v := range values {
		values[i] = Unescape(v)
	}
	return &SemiStructuredIterator{values: values}
}

// HasNext reports whether components remain.
func (it *SemiStructuredIterator) HasNext() bool {
	return it.pos < len(it.values)
}

// NextValue returns the next component. ok is false when it is empty or
// missing.
func (it *SemiStructuredIterator) NextValue() (value string, ok bool) {
	if !it.HasNext() {
		return "", false
	}
	v := it.values[it.pos]
	it.pos++
	return v, v != ""
}

// NextString is NextValue without the flag.
func (it *SemiStructuredIterator) NextString() string {
	v, _ := it.NextValue()
	return v
}
