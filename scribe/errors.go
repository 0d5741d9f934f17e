package scribe

import (
	"fmt"

	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
)

// A SkipError is returned by a scribe's write operations when the property
// cannot be represented in the target version and must be left out.
type SkipError struct {
	Kind    vcard.Kind
	Code    diag.Code
	Message string
}

// Skipf returns a SkipError for kind.
func Skipf(kind vcard.Kind, code diag.Code, args ...any) *SkipError {
	return &SkipError{Kind: kind, Code: code, Message: diag.Message(code, args...)}
}

func (e *SkipError) Error() string {
	return "vcard: " + string(e.Kind) + " property skipped: " + e.Message
}

// IsSkip reports whether err is, or wraps, a SkipError.
func IsSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}

// A WriteError reports a property whose scribe failed to produce a value.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return "vcard: error writing " + e.Name + " property: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }

// cast asserts the concrete type of a property handed to a scribe.
func cast[T vcard.Property](s Scribe, p vcard.Property) (T, error) {
	t, ok := p.(T)
	if !ok {
		return t, &WriteError{
			Name: s.Name(),
			Err: errors.E("scribe.cast", errors.K.Invalid,
				"reason", "unexpected property type", "type", fmt.Sprintf("%T", p)),
		}
	}
	return t, nil
}
