package xcard

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/scribe"
)

// Writer builds an xCard document. Records given to Write are added to the
// document, which Close writes out.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	opts   []Option
	o      *options
	doc    *etree.Document
	root   *etree.Element
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
	w.doc = etree.NewDocument()
	w.doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	w.root = w.doc.CreateElement(elemVCards)
	w.root.CreateAttr("xmlns", vcard.Namespace)
	return nil
}

// Write adds card to the document.
func (w *Writer) Write(card *vcard.VCard) error {
	if err := w.init(); err != nil {
		return err
	}
	if w.closed {
		return errors.E("xcard.Writer.Write", errors.K.Invalid, "reason", "writer is closed")
	}

	el := etree.NewElement(elemVCard)
	groups := map[string]*etree.Element{}
	producer := w.o.productID
	props := card.Properties
	if producer {
		props = append([]vcard.Property{vcard.NewProducer(vcard.V4_0)}, props...)
	}
	for i, p := range props {
		if producer && i > 0 && p.Kind() == vcard.KindProductID {
			continue
		}
		if err := w.writeProperty(el, groups, card, p); err != nil {
			return err
		}
	}
	w.root.AddChild(el)
	return nil
}

// Close writes the document. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.init(); err != nil {
		return err
	}
	if w.closed {
		return nil
	}
	w.closed = true
	if w.o.indent >= 0 {
		w.doc.Indent(w.o.indent)
	}
	if _, err := w.doc.WriteTo(w.w); err != nil {
		return errors.E("xcard.Writer.Close", errors.K.IO, err)
	}
	return nil
}

func (w *Writer) writeProperty(parent *etree.Element, groups map[string]*etree.Element, card *vcard.VCard, p vcard.Property) error {
	s := w.o.registry.ForProperty(p)
	if s == nil {
		return errors.E("xcard.Writer.Write", errors.K.NotExist,
			"reason", "no scribe registered for property", "kind", p.Kind())
	}
	if w.o.versionStrict && !scribe.Supports(s, vcard.V4_0) {
		log.Debug("property skipped", "property", s.Name(), "reason", "not supported by version 4.0")
		return nil
	}
	if scribe.NestedRecord(s, p) != nil {
		log.Debug("property skipped", "property", s.Name(), "reason", "embedded vCard")
		return nil
	}

	el, err := w.element(s, card, p)
	if err != nil {
		if scribe.IsSkip(err) {
			log.Debug("property skipped", "property", s.Name(), "reason", err)
			return nil
		}
		return err
	}

	target := parent
	if group := p.Meta().Group; group != "" {
		g, ok := groups[group]
		if !ok {
			g = parent.CreateElement(elemGroup)
			g.CreateAttr(attrName, group)
			groups[group] = g
		}
		target = g
	}
	target.AddChild(el)
	return nil
}

// element returns the property element of p. XML properties are their own
// element.
func (w *Writer) element(s scribe.Scribe, card *vcard.VCard, p vcard.Property) (*etree.Element, error) {
	if f, ok := s.(scribe.XMLFragmenter); ok {
		return f.XMLFragment(p)
	}

	space, local := scribe.QName(s)
	el := etree.NewElement(local)
	if space != vcard.Namespace {
		el.CreateAttr("xmlns", space)
	}

	ctx := &scribe.WriteContext{Version: vcard.V4_0, VCard: card}
	params := scribe.PrepareParameters(s, p, ctx)
	params.Remove(vcard.ParamValue)
	if params.Len() > 0 {
		writeParameters(el, params)
	}
	if err := scribe.WriteXML(s, p, el, ctx); err != nil {
		return nil, err
	}
	return el, nil
}

func writeParameters(el *etree.Element, params *vcard.Parameters) {
	pe := el.CreateElement(elemParameters)
	params.Each(func(name string, values []string) {
		ce := pe.CreateElement(strings.ToLower(name))
		typ := parameterType(name)
		for _, v := range values {
			ce.CreateElement(typ).SetText(v)
		}
	})
}
