package xcard

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/scribe"
)

var log = elog.Get("/vcard/xcard")

// Reader reads the records of an xCard document. The whole document is
// parsed by the first call to ReadVCard.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r        io.Reader
	opts     []Option
	o        *options
	parsed   bool
	queue    []*etree.Element
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
// records, and an error of kind Invalid when the document is not xCard.
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
	return r.readCard(el), nil
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

// parse reads the document and queues its vcard elements. Both a vcards
// root and a single vcard root are accepted.
func (r *Reader) parse() error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r.r); err != nil {
		return errors.E("xcard.Reader.ReadVCard", errors.K.Invalid, err)
	}
	root := doc.Root()
	if root == nil {
		return errors.E("xcard.Reader.ReadVCard", errors.K.Invalid, "reason", "document has no root element")
	}
	if scribe.NamespaceOf(root) != vcard.Namespace {
		return errors.E("xcard.Reader.ReadVCard", errors.K.Invalid,
			"reason", "root element is not in the vCard namespace", "namespace", scribe.NamespaceOf(root))
	}
	switch root.Tag {
	case elemVCard:
		r.queue = append(r.queue, root)
	case elemVCards:
		for _, c := range scribe.VCardChildren(root) {
			if c.Tag == elemVCard {
				r.queue = append(r.queue, c)
			}
		}
	default:
		return errors.E("xcard.Reader.ReadVCard", errors.K.Invalid,
			"reason", "unexpected root element", "element", root.Tag)
	}
	return nil
}

func (r *Reader) readCard(el *etree.Element) *vcard.VCard {
	card := vcard.New(vcard.V4_0)
	num := 0
	for _, c := range el.ChildElements() {
		if c.Tag == elemGroup && scribe.NamespaceOf(c) == vcard.Namespace {
			group := c.SelectAttrValue(attrName, "")
			for _, gc := range c.ChildElements() {
				num++
				r.readProperty(card, gc, group, num)
			}
			continue
		}
		num++
		r.readProperty(card, c, "", num)
	}
	return card
}

// readProperty decodes one property element. num is the position of the
// property in the record and stands in for a line number in warnings.
func (r *Reader) readProperty(card *vcard.VCard, el *etree.Element, group string, num int) {
	space := scribe.NamespaceOf(el)
	s := r.o.registry.ForXML(space, el.Tag)
	name := s.Name()
	params := &vcard.Parameters{}
	if space == vcard.Namespace {
		params = readParameters(el)
	}
	if !scribe.Supports(s, vcard.V4_0) {
		r.warn(diag.CodeVersionUnsupported, name, num, vcard.V4_0)
	}

	ctx := &scribe.ParseContext{Version: vcard.V4_0, Line: num, Name: name}
	res := scribe.ParseXML(s, el, params, ctx)
	r.add(ctx.Warnings()...)

	switch res.Outcome {
	case scribe.Skipped, scribe.Failed:
		r.add(diag.Warning{Code: res.Code, Message: res.Message, Property: name, Line: num})
		return
	case scribe.Embedded:
		r.warn(diag.CodeEmbeddedUnsupported, name, num)
		return
	}

	meta := res.Property.Meta()
	meta.Group = group
	meta.Params = *params
	card.Add(res.Property)
}

// readParameters reads the parameters element of a property element. Every
// value element of a parameter contributes one value.
func readParameters(el *etree.Element) *vcard.Parameters {
	params := &vcard.Parameters{}
	for _, c := range scribe.VCardChildren(el) {
		if c.Tag != elemParameters {
			continue
		}
		for _, pe := range scribe.VCardChildren(c) {
			values := scribe.VCardChildren(pe)
			if len(values) == 0 {
				params.Add(pe.Tag, strings.TrimSpace(pe.Text()))
				continue
			}
			for _, v := range values {
				params.Add(pe.Tag, v.Text())
			}
		}
	}
	return params
}

func (r *Reader) warn(code diag.Code, property string, num int, args ...any) {
	r.add(diag.Warning{Code: code, Message: diag.Message(code, args...), Property: property, Line: num})
}

func (r *Reader) add(ws ...diag.Warning) {
	for _, w := range ws {
		log.Debug("warning", "property", w.Property, "line", w.Line, "code", w.Code, "message", w.Message)
		r.warnings = append(r.warnings, w)
	}
}
