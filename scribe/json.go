package scribe

import (
	"fmt"
	"strconv"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// JSONScribe is implemented by scribes with their own jCard representation.
type JSONScribe interface {
	WriteJSON(p vcard.Property, ctx *WriteContext) (JSONValue, error)
	ParseJSON(value JSONValue, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result
}

// JSONValue is the value part of a jCard property: the elements following the
// data type. Each element is a scalar (string, number, boolean or nil) or,
// for structured values, a slice of components, each a string or a slice of
// strings.
type JSONValue []any

// SingleJSON returns a value with one scalar element.
func SingleJSON(v any) JSONValue {
	return JSONValue{v}
}

// ListJSON returns a multi-valued value.
func ListJSON(values []string) JSONValue {
	jv := make(JSONValue, len(values))
	for i, v := range values {
		jv[i] = v
	}
	return jv
}

// StructuredJSON returns a structured value. Components with one sub-value
// are written as a string, empty components as "".
func StructuredJSON(components [][]string) JSONValue {
	list := make([]any, len(components))
	for i, c := range components {
		switch len(c) {
		case 0:
			list[i] = ""
		case 1:
			list[i] = c[0]
		default:
			sub := make([]any, len(c))
			for j, v := range c {
				sub[j] = v
			}
			list[i] = sub
		}
	}
	return JSONValue{list}
}

// IsStructured reports whether the value is a single structured element.
func (jv JSONValue) IsStructured() bool {
	if len(jv) != 1 {
		return false
	}
	_, ok := jv[0].([]any)
	return ok
}

// Structured returns the components of a structured value. A scalar value is
// treated as a structure with one component.
func (jv JSONValue) Structured() [][]string {
	if len(jv) == 0 {
		return nil
	}
	list, ok := jv[0].([]any)
	if !ok {
		return [][]string{{jsonString(jv[0])}}
	}
	components := make([][]string, len(list))
	for i, c := range list {
		if sub, ok := c.([]any); ok {
			values := make([]string, len(sub))
			for j, v := range sub {
				values[j] = jsonString(v)
			}
			components[i] = values
			continue
		}
		components[i] = []string{jsonString(c)}
	}
	return components
}

// List returns every element as a string. A structured element contributes
// its components flattened.
func (jv JSONValue) List() []string {
	var values []string
	for _, v := range jv {
		if list, ok := v.([]any); ok {
			for _, c := range list {
				values = append(values, jsonString(c))
			}
			continue
		}
		values = append(values, jsonString(v))
	}
	return values
}

// String returns the first element as a string.
func (jv JSONValue) String() string {
	if len(jv) == 0 {
		return ""
	}
	return jsonString(jv[0])
}

// TextProjection renders the value as it would appear in the text syntax:
// several elements become an escaped list, a structured element an escaped
// structured value, and a scalar an escaped string.
func (jv JSONValue) TextProjection() string {
	switch {
	case len(jv) > 1:
		return grammar.JoinList(jv.List())
	case jv.IsStructured():
		return grammar.JoinStructured(jv.Structured(), false)
	default:
		return grammar.Escape(jv.String())
	}
}

func jsonString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case int:
		return strconv.Itoa(x)
	case []any:
		return grammar.JoinList(JSONValue(x).List())
	}
	return fmt.Sprint(v)
}

// WriteJSON returns the jCard value of p. The default is the unescaped text
// value in version 4.0.
func WriteJSON(s Scribe, p vcard.Property, ctx *WriteContext) (JSONValue, error) {
	if js, ok := s.(JSONScribe); ok {
		return js.WriteJSON(p, ctx)
	}
	text, err := s.WriteText(p, at(ctx, vcard.V4_0))
	if err != nil {
		return nil, err
	}
	return SingleJSON(grammar.Unescape(text)), nil
}

// ParseJSON decodes a jCard value. The default parses its text projection.
func ParseJSON(s Scribe, value JSONValue, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result {
	if js, ok := s.(JSONScribe); ok {
		return js.ParseJSON(value, dt, params, ctx)
	}
	return s.ParseText(value.TextProjection(), dt, params, ctx)
}

// at returns a copy of ctx for version v.
func at(ctx *WriteContext, v vcard.Version) *WriteContext {
	c := *ctx
	c.Version = v
	return &c
}
