package text

import (
	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/fold"
	"github.com/KimNorgaard/go-vcard/scribe"
)

const defaultMaxDepth = 16

// Option configures a Reader or a Writer. Options that only concern one of
// them are ignored by the other.
type Option func(*options) error

type options struct {
	registry *scribe.Registry

	// reader
	defaultVersion vcard.Version
	caretDecoding  bool
	maxDepth       int

	// writer
	foldLength         int
	indent             string
	newline            string
	productID          bool
	versionStrict      bool
	trailingSemicolons bool
	caretEncoding      bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		defaultVersion: vcard.V2_1,
		caretDecoding:  true,
		maxDepth:       defaultMaxDepth,
		foldLength:     fold.DefaultLineLength,
		indent:         fold.DefaultIndent,
		newline:        fold.DefaultNewline,
		productID:      true,
		versionStrict:  true,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.registry == nil {
		o.registry = scribe.NewRegistry()
	}
	return o, nil
}

// WithRegistry sets the registry used to look up scribes. By default only
// the built-in scribes are used.
func WithRegistry(r *scribe.Registry) Option {
	return func(o *options) error {
		o.registry = r
		return nil
	}
}

// DefaultVersion sets the version assumed by the reader until a record
// declares its VERSION. The default is 2.1.
func DefaultVersion(v vcard.Version) Option {
	return func(o *options) error {
		if !v.Valid() {
			return errors.E("text.DefaultVersion", errors.K.Invalid, "version", int(v))
		}
		o.defaultVersion = v
		return nil
	}
}

// CaretDecoding turns RFC 6868 decoding of parameter values on or off. It is
// on by default.
func CaretDecoding(enabled bool) Option {
	return func(o *options) error {
		o.caretDecoding = enabled
		return nil
	}
}

// MaxDepth limits how deeply records may be embedded in one another. Deeper
// records are dropped with a warning.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.E("text.MaxDepth", errors.K.Invalid,
				"reason", "max depth must be a positive integer", "depth", n)
		}
		o.maxDepth = n
		return nil
	}
}

// FoldLength sets the column at which the writer folds lines. A length of
// zero or less disables folding. The default is 75.
func FoldLength(n int) Option {
	return func(o *options) error {
		o.foldLength = n
		return nil
	}
}

// Indent sets the whitespace that starts folded continuation lines. The
// default is a single space.
func Indent(indent string) Option {
	return func(o *options) error {
		o.indent = indent
		return nil
	}
}

// Newline sets the line terminator written. The default is CRLF.
func Newline(nl string) Option {
	return func(o *options) error {
		o.newline = nl
		return nil
	}
}

// ProductID controls whether the writer replaces the PRODID of a record
// with its own (X-PRODID in version 2.1). It is on by default.
func ProductID(enabled bool) Option {
	return func(o *options) error {
		o.productID = enabled
		return nil
	}
}

// VersionStrict controls whether the writer drops properties the target
// version does not support. It is on by default.
func VersionStrict(enabled bool) Option {
	return func(o *options) error {
		o.versionStrict = enabled
		return nil
	}
}

// TrailingSemicolons makes the writer keep the delimiters of empty trailing
// components of structured values.
func TrailingSemicolons(enabled bool) Option {
	return func(o *options) error {
		o.trailingSemicolons = enabled
		return nil
	}
}

// CaretEncoding turns RFC 6868 encoding of parameter values on. Without it,
// double quotes are replaced by single quotes and line breaks are written as
// \n.
func CaretEncoding(enabled bool) Option {
	return func(o *options) error {
		o.caretEncoding = enabled
		return nil
	}
}
