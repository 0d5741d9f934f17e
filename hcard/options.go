package hcard

import (
	"net/url"

	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard/scribe"
)

const defaultMaxDepth = 16

// Option configures a Reader or a Writer. Options that only concern one of
// them are ignored by the other.
type Option func(*options) error

type options struct {
	registry *scribe.Registry
	maxDepth int

	// reader
	pageURL *url.URL

	// writer
	title         string
	versionStrict bool
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth:      defaultMaxDepth,
		title:         "vCard",
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

// PageURL sets the address of the page, against which relative links are
// resolved. Without it, the href of the page's base element is used.
func PageURL(rawURL string) Option {
	return func(o *options) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return errors.E("hcard.PageURL", errors.K.Invalid, err, "url", rawURL)
		}
		o.pageURL = u
		return nil
	}
}

// MaxDepth limits how deeply records may be embedded in one another.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.E("hcard.MaxDepth", errors.K.Invalid,
				"reason", "max depth must be a positive integer", "depth", n)
		}
		o.maxDepth = n
		return nil
	}
}

// Title sets the title of the page written. The default is "vCard".
func Title(title string) Option {
	return func(o *options) error {
		o.title = title
		return nil
	}
}

// VersionStrict controls whether the writer drops properties version 3.0
// does not support. It is on by default.
func VersionStrict(enabled bool) Option {
	return func(o *options) error {
		o.versionStrict = enabled
		return nil
	}
}
