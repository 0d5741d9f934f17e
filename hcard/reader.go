package hcard

import (
	"io"
	"net/url"
	"strings"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/scribe"
)

var log = elog.Get("/vcard/hcard")

// Reader reads the records of an HTML page. The whole page is parsed by the
// first call to ReadVCard.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r        io.Reader
	opts     []Option
	o        *options
	parsed   bool
	base     *url.URL
	queue    []*html.Node
	warnings diag.Warnings
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return &Reader{r: r, opts: opts}
}

func (r *Reader) init() error {
	if r.o != nil {
		return nil
	}
	o, err := newOptions(r.opts)
	if err != nil {
		return err
	}
	r.o = o
	return nil
}

// Warnings returns the warnings raised by the last call to ReadVCard, or by
// all records read by ReadAll.
func (r *Reader) Warnings() diag.Warnings {
	return r.warnings
}

// ReadVCard reads the next record. It returns io.EOF when there are no more
// records.
func (r *Reader) ReadVCard() (*vcard.VCard, error) {
	if err := r.init(); err != nil {
		return nil, err
	}
	r.warnings = nil
	if !r.parsed {
		r.parsed = true
		if err := r.parse(); err != nil {
			return nil, err
		}
	}
	if len(r.queue) == 0 {
		return nil, io.EOF
	}
	el := r.queue[0]
	r.queue = r.queue[1:]
	return r.readCard(el, 0), nil
}

// ReadAll reads all remaining records.
func (r *Reader) ReadAll() ([]*vcard.VCard, error) {
	var (
		cards    []*vcard.VCard
		warnings diag.Warnings
	)
	for {
		card, err := r.ReadVCard()
		warnings = append(warnings, r.warnings...)
		if err == io.EOF {
			r.warnings = warnings
			return cards, nil
		}
		if err != nil {
			r.warnings = warnings
			return cards, err
		}
		cards = append(cards, card)
	}
}

// parse reads the page and queues its outermost "vcard" elements.
func (r *Reader) parse() error {
	doc, err := html.Parse(r.r)
	if err != nil {
		return errors.E("hcard.Reader.ReadVCard", errors.K.IO, err)
	}
	r.base = r.o.pageURL
	walk(doc, func(n *html.Node) bool {
		switch {
		case n.Type != html.ElementNode:
		case n.DataAtom == atom.Base:
			r.setBase(n)
		case scribe.HasClass(n, classVCard):
			r.queue = append(r.queue, n)
			return false
		}
		return true
	})
	return nil
}

// setBase applies the href of a base element, resolved against the page URL
// when it is relative.
func (r *Reader) setBase(n *html.Node) {
	el := scribe.NewHTMLElement(n, nil)
	href := strings.TrimSpace(el.Attr("href"))
	if href == "" {
		return
	}
	u, err := url.Parse(href)
	if err != nil {
		log.Debug("ignoring base element", "href", href, "error", err)
		return
	}
	if r.base != nil {
		u = r.base.ResolveReference(u)
	}
	r.base = u
}

// readCard reads the properties below el. Nested "vcard" elements are not
// scanned; the property they carry reads them.
func (r *Reader) readCard(el *html.Node, depth int) *vcard.VCard {
	card := vcard.New(vcard.V3_0)
	index := 0
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			for _, class := range scribe.Classes(c) {
				s := r.o.registry.ByHTMLClass(class)
				if s == nil {
					continue
				}
				index++
				r.readProperty(card, s, c, depth, index)
			}
			if !scribe.HasClass(c, classVCard) {
				visit(c)
			}
		}
	}
	visit(el)
	r.assignLabels(card)
	return card
}

// readProperty decodes the property element el and adds the result to card.
// Elements have no line numbers; index counts the properties of the record
// instead.
func (r *Reader) readProperty(card *vcard.VCard, s scribe.Scribe, el *html.Node, depth, index int) {
	name := s.Name()
	if !scribe.Supports(s, vcard.V3_0) {
		r.warn(diag.CodeVersionUnsupported, name, index, vcard.V3_0)
	}

	params := &vcard.Parameters{}
	ctx := &scribe.ParseContext{Version: vcard.V3_0, Line: index, Name: name}
	res := scribe.ParseHTML(s, scribe.NewHTMLElement(el, r.base), params, ctx)
	r.add(ctx.Warnings()...)

	switch res.Outcome {
	case scribe.Skipped, scribe.Failed:
		r.add(diag.Warning{Code: res.Code, Message: res.Message, Property: name, Line: index})
		return
	}

	res.Property.Meta().Params = *params
	card.Add(res.Property)

	if res.Outcome != scribe.Embedded {
		return
	}
	if res.Nested == nil || res.Nested.Element == nil {
		r.warn(diag.CodeEmbeddedUnsupported, name, index)
		return
	}
	if depth+1 > r.o.maxDepth {
		r.warn(diag.CodeEmbeddedDepth, name, index, r.o.maxDepth)
		return
	}
	res.Nested.Inject(r.readCard(res.Nested.Element, depth+1))
}

// assignLabels attaches LABEL properties to the addresses they belong to.
func (r *Reader) assignLabels(card *vcard.VCard) {
	for _, p := range card.ByKind(vcard.KindLabel) {
		if label, ok := p.(*vcard.Text); ok && card.AssignLabel(label) {
			card.Remove(label)
		}
	}
}

func (r *Reader) warn(code diag.Code, property string, index int, args ...any) {
	r.add(diag.Warning{Code: code, Message: diag.Message(code, args...), Property: property, Line: index})
}

func (r *Reader) add(ws ...diag.Warning) {
	for _, w := range ws {
		log.Debug("warning", "property", w.Property, "line", w.Line, "code", w.Code, "message", w.Message)
		r.warnings = append(r.warnings, w)
	}
}

// walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
