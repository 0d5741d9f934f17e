package jcard

import (
	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard/scribe"
)

// Option configures a Reader or a Writer. Options that only concern one of
// them are ignored by the other.
type Option func(*options) error

type options struct {
	registry *scribe.Registry

	// writer
	indent        int
	stream        bool
	productID     bool
	versionStrict bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		productID:     true,
		versionStrict: true,
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

// WithRegistry sets the registry used to look up scribes.
func WithRegistry(r *scribe.Registry) Option {
	return func(o *options) error {
		o.registry = r
		return nil
	}
}

// Indent makes the writer pretty-print with n spaces per level. Zero, the
// default, writes compact JSON.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 || n > 16 {
			return errors.E("jcard.Indent", errors.K.Invalid,
				"reason", "indent must be between 0 and 16", "indent", n)
		}
		o.indent = n
		return nil
	}
}

// Stream makes the writer collect the records it is given and write them as
// one vcardstream array when it is closed.
func Stream(enabled bool) Option {
	return func(o *options) error {
		o.stream = enabled
		return nil
	}
}

// ProductID controls whether the writer replaces the PRODID of a record
// with its own. It is on by default.
func ProductID(enabled bool) Option {
	return func(o *options) error {
		o.productID = enabled
		return nil
	}
}

// VersionStrict controls whether the writer drops properties version 4.0
// does not support. It is on by default.
func VersionStrict(enabled bool) Option {
	return func(o *options) error {
		o.versionStrict = enabled
		return nil
	}
}
