package hcard

import (
	"io"

	"github.com/eluv-io/errors-go"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/scribe"
)

// Writer builds an HTML page with one "vcard" element per record. Records
// given to Write are added to the page, which Close writes out. Records are
// written as version 3.0.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	opts   []Option
	o      *options
	doc    *html.Node
	body   *html.Node
	closed bool
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, opts: opts}
}

func (w *Writer) init() error {
	if w.o != nil {
		return nil
	}
	o, err := newOptions(w.opts)
	if err != nil {
		return err
	}
	w.o = o

	meta := scribe.Element(atom.Meta, "", "")
	scribe.SetAttr(meta, "charset", "utf-8")
	head := scribe.Element(atom.Head, "", "")
	head.AppendChild(meta)
	head.AppendChild(scribe.Element(atom.Title, "", o.title))

	w.body = scribe.Element(atom.Body, "", "")
	root := scribe.Element(atom.Html, "", "")
	root.AppendChild(head)
	root.AppendChild(w.body)

	w.doc = &html.Node{Type: html.DocumentNode}
	w.doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	w.doc.AppendChild(root)
	return nil
}

// Write adds card to the page.
func (w *Writer) Write(card *vcard.VCard) error {
	if err := w.init(); err != nil {
		return err
	}
	if w.closed {
		return errors.E("hcard.Writer.Write", errors.K.Invalid, "reason", "writer is closed")
	}
	el := scribe.Element(atom.Div, classVCard, "")
	if err := w.writeProperties(el, card, 0); err != nil {
		return err
	}
	w.body.AppendChild(el)
	return nil
}

// Close writes the page. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.init(); err != nil {
		return err
	}
	if w.closed {
		return nil
	}
	w.closed = true
	if err := html.Render(w.w, w.doc); err != nil {
		return errors.E("hcard.Writer.Close", errors.K.IO, err)
	}
	return nil
}

// writeProperties appends the markup of the properties of card to parent.
// Embedded records are rendered inside the element of their property.
func (w *Writer) writeProperties(parent *html.Node, card *vcard.VCard, depth int) error {
	ctx := &scribe.WriteContext{Version: vcard.V3_0, VCard: card}
	for _, p := range card.Properties {
		s := w.o.registry.ForProperty(p)
		if s == nil {
			return errors.E("hcard.Writer.Write", errors.K.NotExist,
				"reason", "no scribe registered for property", "kind", p.Kind())
		}
		if w.o.versionStrict && !scribe.Supports(s, vcard.V3_0) {
			log.Debug("property skipped", "property", s.Name(), "reason", "not supported by version 3.0")
			continue
		}
		n, err := scribe.WriteHTML(s, p, ctx)
		if err != nil {
			if scribe.IsSkip(err) {
				log.Debug("property skipped", "property", s.Name(), "reason", err)
				continue
			}
			return err
		}
		if nested := scribe.NestedRecord(s, p); nested != nil {
			if depth+1 > w.o.maxDepth {
				log.Debug("property skipped", "property", s.Name(), "reason", "embedded vCard too deep")
				continue
			}
			if err := w.writeProperties(n, nested, depth+1); err != nil {
				return err
			}
		}
		parent.AppendChild(n)
	}
	return nil
}
