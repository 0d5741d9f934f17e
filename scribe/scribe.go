// Package scribe holds the per-property codecs ("scribes") that convert typed
// properties to and from the value syntax of every vCard syntax, and the
// Registry that resolves a property name, kind or XML element to its scribe.
//
// Every scribe implements the text syntax through the Scribe interface. The
// other syntaxes and the version hooks are optional interfaces; when a scribe
// does not implement one, the package-level function of the same name falls
// back to a default expressed through the text syntax.
package scribe

import (
	"strings"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
)

// Scribe is the codec of one property kind.
type Scribe interface {
	// Kind is the kind of the properties the scribe handles.
	Kind() vcard.Kind
	// Name is the upper-case property name in the text syntax.
	Name() string
	// DefaultDataType is the data type assumed when a value carries no
	// explicit type. It may be "" when the version has no default.
	DefaultDataType(v vcard.Version) vcard.DataType
	// WriteText returns the escaped value of p in the text syntax.
	WriteText(p vcard.Property, ctx *WriteContext) (string, error)
	// ParseText decodes an escaped text value. dt is the explicit data type
	// or the default one. The scribe may consume entries of params.
	ParseText(value string, dt vcard.DataType, params *vcard.Parameters, ctx *ParseContext) Result
}

// DataTyper is implemented by scribes whose data type depends on the value.
type DataTyper interface {
	DataType(p vcard.Property, v vcard.Version) vcard.DataType
}

// VersionSupporter is implemented by scribes of properties that only exist in
// some versions.
type VersionSupporter interface {
	Supports(v vcard.Version) bool
}

// ParameterPreparer is implemented by scribes that rewrite the parameters of
// a property before it is written. params is a copy owned by the writer.
type ParameterPreparer interface {
	PrepareParameters(p vcard.Property, params *vcard.Parameters, ctx *WriteContext)
}

// Embedder is implemented by scribes of properties that can hold a nested
// record. Nested returns that record, or nil when p holds a plain value.
type Embedder interface {
	Nested(p vcard.Property) *vcard.VCard
}

// QNamer is implemented by scribes whose xCard element is not the lower-case
// property name in the vCard namespace.
type QNamer interface {
	QName() (space, local string)
}

// WriteContext carries what a scribe may need to know while writing.
type WriteContext struct {
	Version            vcard.Version
	VCard              *vcard.VCard
	TrailingSemicolons bool
}

// ParseContext carries the position of the value being parsed and collects
// the warnings raised by the scribe.
type ParseContext struct {
	Version vcard.Version
	Line    int
	Name    string

	warnings diag.Warnings
}

// Warn records a warning for the property being parsed.
func (c *ParseContext) Warn(code diag.Code, args ...any) {
	c.warnings = append(c.warnings, diag.Warning{
		Code:     code,
		Message:  diag.Message(code, args...),
		Property: c.Name,
		Line:     c.Line,
	})
}

// Warnings returns the warnings recorded so far.
func (c *ParseContext) Warnings() diag.Warnings {
	return c.warnings
}

// DataType returns the data type in effect for p in version v.
func DataType(s Scribe, p vcard.Property, v vcard.Version) vcard.DataType {
	if dt, ok := s.(DataTyper); ok {
		return dt.DataType(p, v)
	}
	return s.DefaultDataType(v)
}

// Supports reports whether the property of s exists in version v.
func Supports(s Scribe, v vcard.Version) bool {
	if vs, ok := s.(VersionSupporter); ok {
		return vs.Supports(v)
	}
	return true
}

// PrepareParameters returns the parameters to write for p. The property
// itself is never modified.
func PrepareParameters(s Scribe, p vcard.Property, ctx *WriteContext) *vcard.Parameters {
	params := p.Meta().Params.Clone()
	if pp, ok := s.(ParameterPreparer); ok {
		pp.PrepareParameters(p, params, ctx)
	}
	return params
}

// NestedRecord returns the record embedded in p, or nil.
func NestedRecord(s Scribe, p vcard.Property) *vcard.VCard {
	if e, ok := s.(Embedder); ok {
		return e.Nested(p)
	}
	return nil
}

// QName returns the xCard element name of s.
func QName(s Scribe) (space, local string) {
	if q, ok := s.(QNamer); ok {
		return q.QName()
	}
	return vcard.Namespace, strings.ToLower(s.Name())
}

// versions is the set of versions a property exists in. A nil set means all.
type versions []vcard.Version

func (vs versions) Supports(v vcard.Version) bool {
	if vs == nil {
		return true
	}
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

// base implements the identity part of Scribe.
type base struct {
	kind vcard.Kind
	name string
}

func (b base) Kind() vcard.Kind { return b.kind }
func (b base) Name() string     { return b.name }
